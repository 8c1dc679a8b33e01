package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"motormarket/auth-service/internal/app/auth/entity"
	"motormarket/auth-service/internal/app/auth/service"
	"motormarket/auth-service/internal/app/auth/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AuthResponse), args.Error(1)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*entity.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TokenPair), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	args := m.Called(ctx, accessToken, refreshToken)
	return args.Error(0)
}

func (m *MockAuthService) ValidateToken(ctx context.Context, accessToken string) (*util.JWTClaims, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*util.JWTClaims), args.Error(1)
}

func (m *MockAuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	args := m.Called(ctx, token, newPassword)
	return args.Error(0)
}

func (m *MockAuthService) LinkMessaging(ctx context.Context, userID uuid.UUID, chatID int64) error {
	args := m.Called(ctx, userID, chatID)
	return args.Error(0)
}

func (m *MockAuthService) UnlinkMessaging(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockAuthService) MessagingStatus(ctx context.Context, userID uuid.UUID) (*entity.MessagingStatusResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.MessagingStatusResponse), args.Error(1)
}

// setPrincipal подменяет auth middleware в тестах
func setPrincipal(p entity.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(principalKey, p)
		c.Next()
	}
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func postJSON(router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func authResponseFixture() *entity.AuthResponse {
	return &entity.AuthResponse{
		User: entity.User{
			ID:        uuid.New(),
			Email:     "maria@example.com",
			Name:      "Maria Lopez",
			Role:      entity.RoleUser,
			CreatedAt: time.Now(),
		},
		Tokens: entity.TokenPair{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
			ExpiresIn:    900,
		},
	}
}

// ===================== Register =====================

func TestRegisterHandler_Success(t *testing.T) {
	router := setupTestRouter()

	mockService := new(MockAuthService)
	mockService.On("Register", mock.Anything, mock.AnythingOfType("*entity.RegisterRequest")).Return(authResponseFixture(), nil)

	h := NewAuthHandler(mockService)
	router.POST("/auth/register", h.Register)

	w := postJSON(router, "/auth/register", entity.RegisterRequest{
		Email:    "maria@example.com",
		Password: "secretpass123",
		Name:     "Maria Lopez",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp entity.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestRegisterHandler_DuplicateEmail(t *testing.T) {
	router := setupTestRouter()

	mockService := new(MockAuthService)
	mockService.On("Register", mock.Anything, mock.Anything).Return(nil, service.ErrUserExists)

	h := NewAuthHandler(mockService)
	router.POST("/auth/register", h.Register)

	w := postJSON(router, "/auth/register", entity.RegisterRequest{
		Email:    "maria@example.com",
		Password: "secretpass123",
		Name:     "Maria Lopez",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterHandler_InvalidBody(t *testing.T) {
	router := setupTestRouter()

	mockService := new(MockAuthService)
	h := NewAuthHandler(mockService)
	router.POST("/auth/register", h.Register)

	// Пароль короче 8 символов не проходит binding
	w := postJSON(router, "/auth/register", entity.RegisterRequest{
		Email:    "maria@example.com",
		Password: "short",
		Name:     "Maria Lopez",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

// ===================== Login =====================

func TestLoginHandler_Success(t *testing.T) {
	router := setupTestRouter()

	mockService := new(MockAuthService)
	mockService.On("Login", mock.Anything, mock.AnythingOfType("*entity.LoginRequest")).Return(authResponseFixture(), nil)

	h := NewAuthHandler(mockService)
	router.POST("/auth/login", h.Login)

	w := postJSON(router, "/auth/login", entity.LoginRequest{
		Email:    "maria@example.com",
		Password: "secretpass123",
	})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	router := setupTestRouter()

	mockService := new(MockAuthService)
	mockService.On("Login", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidCredentials)

	h := NewAuthHandler(mockService)
	router.POST("/auth/login", h.Login)

	w := postJSON(router, "/auth/login", entity.LoginRequest{
		Email:    "maria@example.com",
		Password: "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp entity.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)
}

// ===================== RefreshToken =====================

func TestRefreshTokenHandler_Success(t *testing.T) {
	router := setupTestRouter()

	mockService := new(MockAuthService)
	mockService.On("RefreshToken", mock.Anything, "refresh-token").Return(&entity.TokenPair{
		AccessToken:  "new-access",
		RefreshToken: "new-refresh",
		ExpiresIn:    900,
	}, nil)

	h := NewAuthHandler(mockService)
	router.POST("/auth/refresh", h.RefreshToken)

	w := postJSON(router, "/auth/refresh", entity.RefreshRequest{RefreshToken: "refresh-token"})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRefreshTokenHandler_InvalidToken(t *testing.T) {
	router := setupTestRouter()

	mockService := new(MockAuthService)
	mockService.On("RefreshToken", mock.Anything, "stale").Return(nil, service.ErrInvalidRefreshToken)

	h := NewAuthHandler(mockService)
	router.POST("/auth/refresh", h.RefreshToken)

	w := postJSON(router, "/auth/refresh", entity.RefreshRequest{RefreshToken: "stale"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// ===================== GetMe =====================

func TestGetMeHandler_Success(t *testing.T) {
	router := setupTestRouter()
	userID := uuid.New()
	principal := entity.Principal{UserID: userID, Email: "maria@example.com", Name: "Maria Lopez", Role: entity.RoleUser}

	mockService := new(MockAuthService)
	mockService.On("GetUserByID", mock.Anything, userID).Return(&entity.User{
		ID:    userID,
		Email: "maria@example.com",
		Name:  "Maria Lopez",
		Role:  entity.RoleUser,
	}, nil)

	h := NewAuthHandler(mockService)
	router.GET("/auth/me", setPrincipal(principal), h.GetMe)

	req, _ := http.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetMeHandler_Unauthorized(t *testing.T) {
	router := setupTestRouter()

	mockService := new(MockAuthService)
	h := NewAuthHandler(mockService)
	router.GET("/auth/me", h.GetMe)

	req, _ := http.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
}

// ===================== Password Reset =====================

func TestRequestPasswordResetHandler_AlwaysOK(t *testing.T) {
	router := setupTestRouter()

	mockService := new(MockAuthService)
	mockService.On("RequestPasswordReset", mock.Anything, "ghost@example.com").Return(nil)

	h := NewAuthHandler(mockService)
	router.POST("/auth/password-reset/request", h.RequestPasswordReset)

	w := postJSON(router, "/auth/password-reset/request", entity.PasswordResetRequest{Email: "ghost@example.com"})

	// Одинаковый ответ для существующих и несуществующих адресов
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestConfirmPasswordResetHandler_Success(t *testing.T) {
	router := setupTestRouter()

	mockService := new(MockAuthService)
	mockService.On("ConfirmPasswordReset", mock.Anything, "reset-abc", "new-password-123").Return(nil)

	h := NewAuthHandler(mockService)
	router.POST("/auth/password-reset/confirm", h.ConfirmPasswordReset)

	w := postJSON(router, "/auth/password-reset/confirm", entity.PasswordResetConfirmRequest{
		Token:       "reset-abc",
		NewPassword: "new-password-123",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestConfirmPasswordResetHandler_InvalidToken(t *testing.T) {
	router := setupTestRouter()

	mockService := new(MockAuthService)
	mockService.On("ConfirmPasswordReset", mock.Anything, "bogus", "new-password-123").Return(service.ErrInvalidResetToken)

	h := NewAuthHandler(mockService)
	router.POST("/auth/password-reset/confirm", h.ConfirmPasswordReset)

	w := postJSON(router, "/auth/password-reset/confirm", entity.PasswordResetConfirmRequest{
		Token:       "bogus",
		NewPassword: "new-password-123",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ===================== Messaging =====================

func TestLinkMessagingHandler_Success(t *testing.T) {
	router := setupTestRouter()
	userID := uuid.New()
	principal := entity.Principal{UserID: userID, Email: "maria@example.com", Role: entity.RoleUser}

	mockService := new(MockAuthService)
	mockService.On("LinkMessaging", mock.Anything, userID, int64(123456789)).Return(nil)

	h := NewAuthHandler(mockService)
	router.POST("/auth/messaging/link", setPrincipal(principal), h.LinkMessaging)

	w := postJSON(router, "/auth/messaging/link", entity.MessagingLinkRequest{TelegramChatID: 123456789})

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestMessagingStatusHandler_Linked(t *testing.T) {
	router := setupTestRouter()
	userID := uuid.New()
	principal := entity.Principal{UserID: userID, Email: "maria@example.com", Role: entity.RoleUser}
	chatID := int64(123456789)

	mockService := new(MockAuthService)
	mockService.On("MessagingStatus", mock.Anything, userID).Return(&entity.MessagingStatusResponse{
		Linked:         true,
		TelegramChatID: &chatID,
	}, nil)

	h := NewAuthHandler(mockService)
	router.GET("/auth/messaging/status", setPrincipal(principal), h.MessagingStatus)

	req, _ := http.NewRequest(http.MethodGet, "/auth/messaging/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp entity.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, true, data["linked"])
}
