package handler

import (
	"errors"
	"log/slog"
	"net/http"

	appErr "github.com/samims/notification-api/internal/errors"
	"github.com/samims/notification-api/internal/model"
	"github.com/samims/notification-api/internal/service"
)

type AuthHandler struct {
	authSvc service.AuthService
	logger  *slog.Logger
}

func NewAuthHandler(authSvc service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, logger: logger.With("layer", "handler", "component", "authHandler")}
}

// Register handles User Registration/Signup
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("Invalid register payload", slog.Any("error", err))
		respondError(w, h.logger, err)
		return
	}

	reg, err := h.authSvc.Register(r.Context(), req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, reg)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, h.logger, err)
		return
	}

	_, token, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, appErr.ErrUnauthorized) {
			respondStatus(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}
