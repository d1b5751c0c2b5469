package api

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/amazona/e2e/internal/config"
	"github.com/amazona/e2e/internal/logging"
)

// Credentials is a signup payload
type Credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

var userSeq atomic.Uint64

// NewUserPayload generates credentials with a random name and an email that
// is unique within the process
func NewUserPayload(password, domain string) Credentials {
	if domain == "" {
		domain = "example.com"
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	n := userSeq.Add(1)
	return Credentials{
		Name:     "User " + suffix,
		Email:    fmt.Sprintf("user_%s_%d@%s", suffix, n, domain),
		Password: password,
	}
}

// AuthHeader returns a bearer Authorization header, or nil without a token
func AuthHeader(token string) map[string]string {
	if token == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// Session is what a signup and login chain hands to later calls. Token and
// UserID may each be empty.
type Session struct {
	Token       string
	UserID      string
	User        map[string]interface{}
	Credentials Credentials
}

// Valid reports whether the session carries a token or a user id
func (s Session) Valid() bool {
	return s.Token != "" || s.UserID != ""
}

// Headers returns the auth header for this session
func (s Session) Headers() map[string]string {
	return AuthHeader(s.Token)
}

// SignupResult is the parsed signup response. User and UserID are empty when
// the body was not the expected shape.
type SignupResult struct {
	Response *Response
	User     map[string]interface{}
	UserID   string
	Token    string
}

// LoginResult is the parsed login response
type LoginResult struct {
	Response *Response
	Token    string
	User     map[string]interface{}
	UserID   string
}

// Harness runs authentication and chained entity calls
type Harness struct {
	client    *Client
	endpoints config.Endpoints
	newUser   config.NewUserFixtures
	log       *zap.Logger
}

// NewHarness builds a harness over client using the configured endpoints
func NewHarness(client *Client, fixtures config.Fixtures, log *zap.Logger) *Harness {
	return &Harness{
		client:    client,
		endpoints: fixtures.API,
		newUser:   fixtures.NewUser,
		log:       logging.OrNop(log),
	}
}

// Client returns the underlying HTTP client
func (h *Harness) Client() *Client {
	return h.client
}

// NewUser generates a fresh signup payload from the fixtures
func (h *Harness) NewUser() Credentials {
	return NewUserPayload(h.newUser.Password, h.newUser.EmailDomain)
}

// Signup registers creds. Only transport failures are returned as errors.
func (h *Harness) Signup(ctx context.Context, creds Credentials) (*SignupResult, error) {
	resp, err := h.client.Post(ctx, h.endpoints.Signup, creds, nil)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	user := ExtractUser(resp.JSON)
	res := &SignupResult{
		Response: resp,
		User:     user,
		UserID:   ExtractID(user),
		Token:    ExtractToken(resp.JSON),
	}
	h.log.Debug("signup", zap.String("email", creds.Email), zap.Int("status", resp.Status), zap.String("userId", res.UserID))
	return res, nil
}

// Login authenticates email and password. Only transport failures are
// returned as errors.
func (h *Harness) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	resp, err := h.client.Post(ctx, h.endpoints.Login, body, nil)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	user := ExtractUser(resp.JSON)
	res := &LoginResult{
		Response: resp,
		Token:    ExtractToken(resp.JSON),
		User:     user,
		UserID:   ExtractID(user),
	}
	h.log.Debug("login", zap.String("email", email), zap.Int("status", resp.Status), zap.Bool("token", res.Token != ""))
	return res, nil
}

// SignupAndLogin registers a fresh user and logs in with it. Login is
// attempted whatever signup returned; login's token and user win and fall
// back to the ones from signup.
func (h *Harness) SignupAndLogin(ctx context.Context) (Session, error) {
	creds := h.NewUser()
	su, err := h.Signup(ctx, creds)
	if err != nil {
		return Session{Credentials: creds}, err
	}
	li, err := h.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		return Session{Credentials: creds}, err
	}

	s := Session{Token: li.Token, UserID: li.UserID, User: li.User, Credentials: creds}
	if s.Token == "" {
		s.Token = su.Token
	}
	if s.UserID == "" {
		s.UserID = su.UserID
	}
	if s.User == nil {
		s.User = su.User
	}
	return s, nil
}
