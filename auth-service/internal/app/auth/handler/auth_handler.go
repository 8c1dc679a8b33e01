package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"motormarket/auth-service/internal/app/auth/entity"
	"motormarket/auth-service/internal/app/auth/service"
	"motormarket/pkg/metrics"
)

type AuthHandler struct {
	authService service.AuthServiceInterface
}

func NewAuthHandler(authService service.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req entity.RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			respondError(c, http.StatusConflict, "User with this email already exists")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to register user")
		return
	}

	metrics.AuthRegistrations.Inc()
	respondData(c, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req entity.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			metrics.AuthLogins.WithLabelValues("failed").Inc()
			respondError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to login")
		return
	}

	metrics.AuthLogins.WithLabelValues("success").Inc()
	respondData(c, http.StatusOK, resp)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req entity.RefreshRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	tokens, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) || errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusUnauthorized, "Invalid or expired refresh token")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	respondData(c, http.StatusOK, tokens)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "Authorization header required")
		return
	}

	var req entity.LogoutRequest
	c.ShouldBindJSON(&req)

	if err := h.authService.Logout(c.Request.Context(), token, req.RefreshToken); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to logout")
		return
	}

	respondMessage(c, http.StatusOK, "Successfully logged out")
}

func (h *AuthHandler) GetMe(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), principal.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to get user info")
		return
	}

	respondData(c, http.StatusOK, user)
}

func (h *AuthHandler) ValidateToken(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		respondError(c, http.StatusBadRequest, "Authorization header required")
		return
	}

	claims, err := h.authService.ValidateToken(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenExpired):
			respondError(c, http.StatusUnauthorized, "Token has expired")
		case errors.Is(err, service.ErrInvalidToken):
			respondError(c, http.StatusUnauthorized, "Invalid token")
		default:
			respondError(c, http.StatusInternalServerError, "Failed to validate token")
		}
		return
	}

	respondData(c, http.StatusOK, entity.TokenValidationResponse{
		Valid:  true,
		UserID: claims.UserID.String(),
		Email:  claims.Email,
		Role:   claims.Role,
	})
}

// RequestPasswordReset всегда отвечает 200, чтобы не раскрывать
// зарегистрированные email-адреса
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req entity.PasswordResetRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to request password reset")
		return
	}

	respondMessage(c, http.StatusOK, "If the email is registered, a reset link has been sent")
}

func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req entity.PasswordResetConfirmRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.authService.ConfirmPasswordReset(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			respondError(c, http.StatusBadRequest, "Invalid or expired reset token")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	respondMessage(c, http.StatusOK, "Password has been reset")
}

func (h *AuthHandler) LinkMessaging(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req entity.MessagingLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.authService.LinkMessaging(c.Request.Context(), principal.UserID, req.TelegramChatID); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to link messaging account")
		return
	}

	respondMessage(c, http.StatusOK, "Messaging account linked")
}

func (h *AuthHandler) UnlinkMessaging(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.authService.UnlinkMessaging(c.Request.Context(), principal.UserID); err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to unlink messaging account")
		return
	}

	respondMessage(c, http.StatusOK, "Messaging account unlinked")
}

func (h *AuthHandler) MessagingStatus(c *gin.Context) {
	principal, ok := CurrentPrincipal(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	status, err := h.authService.MessagingStatus(c.Request.Context(), principal.UserID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to get messaging status")
		return
	}

	respondData(c, http.StatusOK, status)
}
