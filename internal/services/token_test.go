package services

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/amazona/e2e/internal/models"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	user := &models.User{ID: "user-1", Name: "Jane", Email: "jane@example.com"}

	token, err := issuer.Issue(user)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if claims.Subject != "user-1" || claims.Email != "jane@example.com" {
		t.Errorf("Parse() claims = %+v", claims)
	}
}

func TestTokenIssuer_Rejects(t *testing.T) {
	user := &models.User{ID: "user-1"}
	issuer := NewTokenIssuer("secret", time.Hour)

	forged, _ := NewTokenIssuer("other-secret", time.Hour).Issue(user)

	expiring := NewTokenIssuer("secret", time.Minute)
	expiring.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _ := expiring.Issue(user)

	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not.a.token"},
		{name: "wrong secret", token: forged},
		{name: "expired", token: expired},
		{name: "unsigned", token: none},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := issuer.Parse(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Parse() error = %v, want %v", err, ErrInvalidToken)
			}
		})
	}
}
