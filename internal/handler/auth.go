package handler

import (
	"net/http"

	"github.com/weatherlog/weatherlog-go/internal/middleware"
	"github.com/weatherlog/weatherlog-go/internal/model"
	"github.com/weatherlog/weatherlog-go/internal/service"
)

// AuthHandler handles HTTP requests for users and sessions.
type AuthHandler struct {
	service *service.AuthService
	errors  errorWriter
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, verboseErrors bool) *AuthHandler {
	return &AuthHandler{service: svc, errors: errorWriter{verbose: verboseErrors}}
}

// HandleRegister handles POST /api/users requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errors.write(w, r, err)
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		h.errors.write(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: resp, Msg: "User created successfully"})
}

// HandleLogin handles POST /api/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.errors.write(w, r, err)
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		h.errors.write(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: resp, Msg: "User logged in successfully"})
}

// HandleMe handles GET /api/me requests.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	resp, err := h.service.Me(r.Context(), userID)
	if err != nil {
		h.errors.write(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: resp, Msg: "User information retrieved successfully"})
}

// HandleLogout handles DELETE /api/logout/{id} requests. The path id is accepted
// for compatibility; the session that is closed is always the caller's own.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	token, _ := middleware.TokenFromContext(r.Context())

	if err := h.service.Logout(r.Context(), token); err != nil {
		h.errors.write(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Msg: "Successfully logged out"})
}
