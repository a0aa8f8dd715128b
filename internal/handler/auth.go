package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dietlog/dietlog-go/internal/middleware"
	"github.com/dietlog/dietlog-go/internal/model"
	"github.com/dietlog/dietlog-go/internal/service"
)

// AuthHandler handles HTTP requests for registration and sessions.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleRegister handles POST /users requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameRequired),
			errors.Is(err, service.ErrPasswordRequired),
			errors.Is(err, service.ErrPasswordTooLong):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrNameTaken):
			writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
		default:
			slog.ErrorContext(r.Context(), "register failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleLogin handles POST /login requests. On success the session token is
// set as the sessionId cookie.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, user, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameRequired), errors.Is(err, service.ErrPasswordRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrInvalidCredentials):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			slog.ErrorContext(r.Context(), "login failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	middleware.SetSessionCookie(w, session)
	writeJSON(w, http.StatusOK, user)
}

// HandleLogout handles POST /logout requests.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
