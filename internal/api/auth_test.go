package api_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"github.com/amazona/e2e/internal/api"
	"github.com/amazona/e2e/internal/config"
	"github.com/amazona/e2e/internal/handlers"
	"github.com/amazona/e2e/internal/repository"
)

// newStub serves the stub API in the given envelope style
func newStub(t *testing.T, envelope string) *httptest.Server {
	t.Helper()
	router, err := handlers.NewStubRouter(repository.NewMemoryStore(), handlers.StubOptions{
		Config:     config.StubConfig{Envelope: envelope, JWTSecret: "test-secret", TaxRate: 0.1},
		SeedUsers:  []config.Credentials{config.Default().Fixtures.ValidUser},
		BcryptCost: bcrypt.MinCost,
		Log:        zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func newHarness(t *testing.T, baseURL string) *api.Harness {
	t.Helper()
	log := zaptest.NewLogger(t)
	return api.NewHarness(api.NewClient(baseURL, 5*time.Second, log), config.Default().Fixtures, log)
}

func TestNewUserPayload_UniqueOverLargeSample(t *testing.T) {
	const workers, perWorker = 8, 2500

	var mu sync.Mutex
	seen := make(map[string]bool, workers*perWorker)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]string, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				local = append(local, api.NewUserPayload("Password123", "example.com").Email)
			}
			mu.Lock()
			defer mu.Unlock()
			for _, email := range local {
				seen[email] = true
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker, "every generated email is distinct")
}

func TestNewUserPayload_Shape(t *testing.T) {
	creds := api.NewUserPayload("Secret1", "shop.test")

	assert.True(t, strings.HasPrefix(creds.Email, "user_"))
	assert.True(t, strings.HasSuffix(creds.Email, "@shop.test"))
	assert.True(t, strings.HasPrefix(creds.Name, "User "))
	assert.Equal(t, "Secret1", creds.Password)

	assert.True(t, strings.HasSuffix(api.NewUserPayload("x", "").Email, "@example.com"))
}

func TestAuthHeader(t *testing.T) {
	assert.Equal(t, map[string]string{"Authorization": "Bearer abc"}, api.AuthHeader("abc"))
	assert.Nil(t, api.AuthHeader(""))

	assert.Nil(t, api.Session{UserID: "u1"}.Headers())
	assert.True(t, api.Session{UserID: "u1"}.Valid())
	assert.True(t, api.Session{Token: "t"}.Valid())
	assert.False(t, api.Session{}.Valid())
}

func TestSignupAndLogin(t *testing.T) {
	for _, envelope := range []string{config.EnvelopeFlat, config.EnvelopeNested, config.EnvelopeData} {
		t.Run(envelope, func(t *testing.T) {
			// GIVEN a stub answering in the envelope style
			h := newHarness(t, newStub(t, envelope).URL)

			// WHEN a fresh user signs up and logs in
			session, err := h.SignupAndLogin(context.Background())

			// THEN the session carries the token and user id whatever the shape
			require.NoError(t, err)
			assert.True(t, session.Valid())
			assert.NotEmpty(t, session.Token)
			assert.NotEmpty(t, session.UserID)
			assert.Equal(t, session.Credentials.Email, api.StringField(session.User, "email"))
		})
	}
}

func TestSignup_DuplicateAndLoginFailure(t *testing.T) {
	h := newHarness(t, newStub(t, config.EnvelopeFlat).URL)
	ctx := context.Background()
	creds := h.NewUser()

	first, err := h.Signup(ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, 201, first.Response.Status)
	assert.NotEmpty(t, first.Token)

	// A duplicate signup is an HTTP outcome, not an error
	second, err := h.Signup(ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, 409, second.Response.Status)
	assert.Empty(t, second.UserID)

	login, err := h.Login(ctx, creds.Email, "WrongPassword!")
	require.NoError(t, err)
	assert.Equal(t, 401, login.Response.Status)
	assert.Empty(t, login.Token)
}

func TestLogin_SeededUser(t *testing.T) {
	h := newHarness(t, newStub(t, config.EnvelopeFlat).URL)
	valid := config.Default().Fixtures.ValidUser

	login, err := h.Login(context.Background(), valid.Email, valid.Password)

	require.NoError(t, err)
	assert.True(t, login.Response.OK())
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, valid.Email, api.StringField(login.User, "email"))
}
