package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/amazona/e2e/internal/models"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
}

// AuthResult is a user together with a freshly issued token
type AuthResult struct {
	User  *models.User
	Token string
}

// AuthService handles signup, login and token authentication
type AuthService interface {
	Signup(name, email, password string) (*AuthResult, error)
	Login(email, password string) (*AuthResult, error)
	Authenticate(token string) (*models.User, error)
	GetUser(id string) (*models.User, error)
}

// AuthServiceImpl implements AuthService
type AuthServiceImpl struct {
	users  UserRepository
	tokens *TokenIssuer
	cost   int
}

// NewAuthService creates a new auth service. cost is the bcrypt cost; zero
// selects bcrypt.DefaultCost.
func NewAuthService(users UserRepository, tokens *TokenIssuer, cost int) AuthService {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &AuthServiceImpl{
		users:  users,
		tokens: tokens,
		cost:   cost,
	}
}

// Signup registers a user and issues a token
func (s *AuthServiceImpl) Signup(name, email, password string) (*AuthResult, error) {
	if strings.TrimSpace(password) == "" {
		return nil, models.ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := models.NewUser(name, email, string(hash))
	if err != nil {
		return nil, err
	}

	if err := s.users.CreateUser(user); err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issue(user)
}

// Login checks the credentials and issues a token
func (s *AuthServiceImpl) Login(email, password string) (*AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, models.ErrMissingFields
	}

	user, err := s.users.GetUserByEmail(email)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	return s.issue(user)
}

// Authenticate resolves a bearer token to its user
func (s *AuthServiceImpl) Authenticate(token string) (*models.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(claims.Subject)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%w: unknown user", ErrInvalidToken)
	}
	return user, err
}

// GetUser retrieves a user by id
func (s *AuthServiceImpl) GetUser(id string) (*models.User, error) {
	user, err := s.users.GetUserByID(id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *AuthServiceImpl) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}
