package handlers

import (
	"net/http"
	"strings"

	"sprintboard/internal/logger"
	"sprintboard/internal/service"

	"go.uber.org/zap"
)

type AuthHandler struct {
	AuthService AuthService
}

func NewAuthHandler(authService AuthService) AuthHandler {
	return AuthHandler{AuthService: authService}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in service.LoginInput
	if !decodeBody(w, r, &in) {
		return
	}

	res, err := h.AuthService.Login(r.Context(), in)
	if err != nil {
		handleError(w, err, "Login failed")
		return
	}

	logger.Info("HTTP_OUT: Вход выполнен", zap.Int64("user_id", res.User.ID))
	responseWithData(w, http.StatusOK, "Login successful", res)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.AuthService.Logout(r.Context(), BearerToken(r)); err != nil {
		handleError(w, err, "Logout failed")
		return
	}
	responseWithData(w, http.StatusOK, "Logged out", nil)
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
