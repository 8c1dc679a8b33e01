package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"motormarket/marketplace-service/internal/app/marketplace/entity"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, claims JWTClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func userClaims() JWTClaims {
	return JWTClaims{
		UserID: "user-123",
		Email:  "carlos@example.com",
		Name:   "Carlos",
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestAuthenticate_ValidTokenBuildsPrincipal(t *testing.T) {
	router := setupTestRouter()
	m := NewAuthMiddleware(testSecret)

	var got entity.Principal
	router.GET("/protected", m.Authenticate(), func(c *gin.Context) {
		got, _ = CurrentPrincipal(c)
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, userClaims(), testSecret))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-123", got.UserID)
	assert.Equal(t, "carlos@example.com", got.Email)
	assert.Equal(t, "Carlos", got.Name)
	assert.False(t, got.IsAdmin())
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	router := setupTestRouter()
	m := NewAuthMiddleware(testSecret)

	router.GET("/protected", m.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	router := setupTestRouter()
	m := NewAuthMiddleware(testSecret)

	router.GET("/protected", m.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	router := setupTestRouter()
	m := NewAuthMiddleware(testSecret)

	router.GET("/protected", m.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, userClaims(), "another-secret"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_NonHMACAlgorithmRejected(t *testing.T) {
	// Принимаются только HMAC-подписи: токен с alg=none не проходит,
	// даже если структура claims валидна
	router := setupTestRouter()
	m := NewAuthMiddleware(testSecret)

	router.GET("/protected", m.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, userClaims()).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+unsigned)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	router := setupTestRouter()
	m := NewAuthMiddleware(testSecret)

	router.GET("/protected", m.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	claims := userClaims()
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, claims, testSecret))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateOptional_NoTokenPassesAnonymously(t *testing.T) {
	router := setupTestRouter()
	m := NewAuthMiddleware(testSecret)

	var hasPrincipal bool
	router.GET("/public", m.AuthenticateOptional(), func(c *gin.Context) {
		_, hasPrincipal = CurrentPrincipal(c)
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest(http.MethodGet, "/public", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, hasPrincipal)
}

func TestAuthenticateOptional_ValidTokenSetsPrincipal(t *testing.T) {
	router := setupTestRouter()
	m := NewAuthMiddleware(testSecret)

	var got entity.Principal
	var hasPrincipal bool
	router.GET("/public", m.AuthenticateOptional(), func(c *gin.Context) {
		got, hasPrincipal = CurrentPrincipal(c)
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, userClaims(), testSecret))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, hasPrincipal)
	assert.Equal(t, "user-123", got.UserID)
}

func TestAuthenticateOptional_InvalidTokenIgnored(t *testing.T) {
	router := setupTestRouter()
	m := NewAuthMiddleware(testSecret)

	var hasPrincipal bool
	router.GET("/public", m.AuthenticateOptional(), func(c *gin.Context) {
		_, hasPrincipal = CurrentPrincipal(c)
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, hasPrincipal)
}
