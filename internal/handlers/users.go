package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/amazona/e2e/internal/services"
)

// UserHandler serves signup, login and user lookups
type UserHandler struct {
	auth     services.AuthService
	envelope Envelope
	log      *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(auth services.AuthService, envelope Envelope, log *zap.Logger) *UserHandler {
	return &UserHandler{auth: auth, envelope: envelope, log: log}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles POST /api/users/signup
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decode(w, r, &req); err != nil {
		sendError(w, h.log, err)
		return
	}

	result, err := h.auth.Signup(req.Name, req.Email, req.Password)
	if err != nil {
		sendError(w, h.log, err)
		return
	}

	h.log.Info("user signed up", zap.String("user", result.User.ID))
	sendJSON(w, h.log, http.StatusCreated,
		h.envelope.wrap("user", userJSON(result.User), map[string]interface{}{"token": result.Token}))
}

// Login handles POST /api/users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decode(w, r, &req); err != nil {
		sendError(w, h.log, err)
		return
	}

	result, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		sendError(w, h.log, err)
		return
	}

	sendJSON(w, h.log, http.StatusOK,
		h.envelope.wrap("user", userJSON(result.User), map[string]interface{}{"token": result.Token}))
}

// Get handles GET /api/users/{id}. The id "me" names the bearer's own user.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "me" {
		requireUser(h.auth, h.log, func(w http.ResponseWriter, r *http.Request) {
			sendJSON(w, h.log, http.StatusOK, h.envelope.wrap("user", userJSON(currentUser(r)), nil))
		})(w, r)
		return
	}

	user, err := h.auth.GetUser(id)
	if err != nil {
		sendError(w, h.log, err)
		return
	}
	sendJSON(w, h.log, http.StatusOK, h.envelope.wrap("user", userJSON(user), nil))
}
