package entity

import (
	"time"

	"github.com/google/uuid"
)

// Роли пользователей. Роль хранится в колонке users.role и не меняется через API.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User представляет пользователя маркетплейса
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	TelegramChatID *int64    `json:"telegram_chat_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Principal - аутентифицированный субъект запроса, собирается из JWT claims
// один раз в middleware
type Principal struct {
	UserID uuid.UUID
	Email  string
	Name   string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// TokenPair - пара access/refresh токенов
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// RefreshToken - refresh токен, хранится в Redis с TTL
type RefreshToken struct {
	UserID    uuid.UUID `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// PasswordResetEvent публикуется в топик уведомлений при запросе сброса пароля.
// Worker превращает его в письмо со ссылкой на сброс.
type PasswordResetEvent struct {
	EventType  string    `json:"event_type"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	ResetToken string    `json:"reset_token"`
	Timestamp  time.Time `json:"timestamp"`
}

const EventPasswordReset = "PASSWORD_RESET"
