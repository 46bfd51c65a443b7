package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/erazemk/wms/internal/auth"
	"github.com/erazemk/wms/internal/model"
	"github.com/erazemk/wms/internal/store"
)

// AuthHandler handles operator session endpoints.
type AuthHandler struct {
	Records   *store.Records
	JWTSecret string
	Operator  model.User
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeValid(w, r, &req) {
		return
	}

	hash, err := store.GetOperatorPasswordHash(r.Context(), h.Records)
	if err != nil {
		slog.Error("failed to read operator password", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to check credentials")
		return
	}
	if !strings.EqualFold(req.Email, h.Operator.Email) || !auth.CheckPassword(hash, req.Password) {
		slog.Warn("login failed", "email", req.Email, "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, h.Operator)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	slog.Info("operator logged in", "email", h.Operator.Email, "role", h.Operator.Role)
	jsonResponse(w, http.StatusOK, loginResponse{Token: token, User: h.Operator})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	jsonResponse(w, http.StatusOK, claims.User())
}

// ChangePassword handles PUT /api/auth/password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if !decodeValid(w, r, &req) {
		return
	}

	hash, err := store.GetOperatorPasswordHash(r.Context(), h.Records)
	if err != nil {
		slog.Error("failed to read operator password", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to check credentials")
		return
	}
	if !auth.CheckPassword(hash, req.CurrentPassword) {
		jsonError(w, http.StatusUnauthorized, "current password is incorrect")
		return
	}

	if err := model.ValidatePassword(req.NewPassword); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}
	if err := store.SetOperatorPasswordHash(r.Context(), h.Records, newHash); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update password")
		return
	}

	slog.Info("operator changed password", "email", h.Operator.Email)
	jsonResponse(w, http.StatusOK, map[string]string{"message": "password updated"})
}
