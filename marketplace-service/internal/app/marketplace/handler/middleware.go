package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"motormarket/marketplace-service/internal/app/marketplace/entity"
)

// JWTClaims структура claims для JWT токена
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

const principalKey = "principal"

// AuthMiddleware проверяет JWT токен в запросах для Gin
type AuthMiddleware struct {
	jwtSecret string
}

// NewAuthMiddleware создает новый middleware для аутентификации
func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
	}
}

// Authenticate проверяет JWT токен и кладет Principal в контекст Gin
// Данные пользователя извлекаются из claims один раз на границе запроса,
// дальше по коду ходит типизированный entity.Principal
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := m.principalFromHeader(c)
		if !ok {
			c.Abort()
			return
		}

		c.Set(principalKey, principal)

		c.Next()
	}
}

// AuthenticateOptional извлекает Principal, если токен передан и валиден
// Запрос без токена проходит дальше анонимно
func (m *AuthMiddleware) AuthenticateOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString, ok := bearerToken(authHeader)
		if !ok {
			c.Next()
			return
		}

		claims, err := m.parseClaims(tokenString)
		if err != nil {
			c.Next()
			return
		}

		c.Set(principalKey, principalFromClaims(claims))

		c.Next()
	}
}

// RequireAdmin пропускает только администраторов, ставится после Authenticate
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, entity.APIResponse{Success: false, Error: "Unauthorized"})
			c.Abort()
			return
		}

		if !principal.IsAdmin() {
			c.JSON(http.StatusForbidden, entity.APIResponse{Success: false, Error: "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentPrincipal возвращает Principal текущего запроса
func CurrentPrincipal(c *gin.Context) (entity.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return entity.Principal{}, false
	}

	principal, ok := value.(entity.Principal)
	return principal, ok
}

func (m *AuthMiddleware) principalFromHeader(c *gin.Context) (entity.Principal, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, entity.APIResponse{Success: false, Error: "Authorization header required"})
		return entity.Principal{}, false
	}

	tokenString, ok := bearerToken(authHeader)
	if !ok {
		c.JSON(http.StatusUnauthorized, entity.APIResponse{Success: false, Error: "Invalid authorization header format"})
		return entity.Principal{}, false
	}

	claims, err := m.parseClaims(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, entity.APIResponse{Success: false, Error: "Invalid or expired token"})
		return entity.Principal{}, false
	}

	return principalFromClaims(claims), true
}

func (m *AuthMiddleware) parseClaims(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

func bearerToken(authHeader string) (string, bool) {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

func principalFromClaims(claims *JWTClaims) entity.Principal {
	return entity.Principal{
		UserID: claims.UserID,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   claims.Role,
	}
}
