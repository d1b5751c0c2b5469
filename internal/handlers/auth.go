package handlers

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/amazona/e2e/internal/models"
	"github.com/amazona/e2e/internal/services"
)

type userKey struct{}

// bearerToken returns the token of an "Authorization: Bearer" header
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// currentUser returns the user authenticated by requireUser
func currentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(userKey{}).(*models.User)
	return user
}

// requireUser rejects requests without a valid bearer token and stores the
// authenticated user in the request context
func requireUser(auth services.AuthService, log *zap.Logger, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			sendError(w, log, errUnauthorized)
			return
		}
		user, err := auth.Authenticate(token)
		if err != nil {
			sendError(w, log, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userKey{}, user)))
	}
}
