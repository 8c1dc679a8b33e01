package service

import (
	"context"

	"motormarket/auth-service/internal/app/auth/entity"
	"motormarket/auth-service/internal/app/auth/util"

	"github.com/google/uuid"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.AuthResponse, error)
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*entity.TokenPair, error)
	Logout(ctx context.Context, accessToken, refreshToken string) error
	ValidateToken(ctx context.Context, accessToken string) (*util.JWTClaims, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error

	LinkMessaging(ctx context.Context, userID uuid.UUID, chatID int64) error
	UnlinkMessaging(ctx context.Context, userID uuid.UUID) error
	MessagingStatus(ctx context.Context, userID uuid.UUID) (*entity.MessagingStatusResponse, error)
}
