package entity

// RegisterRequest - запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
}

// LoginRequest - запрос на вход
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest - запрос на обновление пары токенов
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest - refresh токен передается в теле, access токен в заголовке
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// PasswordResetRequest - запрос на сброс пароля по email
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PasswordResetConfirmRequest - подтверждение сброса с одноразовым токеном
type PasswordResetConfirmRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// MessagingLinkRequest - привязка Telegram-чата для уведомлений
type MessagingLinkRequest struct {
	TelegramChatID int64 `json:"telegram_chat_id" binding:"required"`
}

// MessagingStatusResponse - состояние привязки мессенджера
type MessagingStatusResponse struct {
	Linked         bool   `json:"linked"`
	TelegramChatID *int64 `json:"telegram_chat_id,omitempty"`
}

// AuthResponse - ответ на register/login: пользователь плюс токены
type AuthResponse struct {
	User   User      `json:"user"`
	Tokens TokenPair `json:"tokens"`
}

// TokenValidationResponse - результат проверки access токена
type TokenValidationResponse struct {
	Valid  bool   `json:"valid"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// APIResponse - единый конверт ответа API
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}
