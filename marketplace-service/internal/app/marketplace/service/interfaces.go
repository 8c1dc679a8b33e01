package service

import (
	"context"

	"motormarket/marketplace-service/internal/app/marketplace/entity"
)

// ListingCache кеширует список одобренных объявлений в Redis
type ListingCache interface {
	GetApproved(ctx context.Context) ([]entity.Vehicle, error)
	SetApproved(ctx context.Context, vehicles []entity.Vehicle) error
	Invalidate(ctx context.Context) error
}

// ExchangeRateReader читает курсы валют, поддерживаемые background worker'ом
type ExchangeRateReader interface {
	GetRate(ctx context.Context, currency string) (float64, error)
}
