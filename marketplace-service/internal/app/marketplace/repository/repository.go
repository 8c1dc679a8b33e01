package repository

import (
	"context"

	"motormarket/marketplace-service/internal/app/marketplace/entity"
)

// VehicleRepository определяет операции с коллекцией объявлений
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	GetByID(ctx context.Context, id string) (*entity.Vehicle, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Vehicle, error)
	GetByStatus(ctx context.Context, status entity.VehicleStatus) ([]entity.Vehicle, error)
	GetBySeller(ctx context.Context, sellerID string) ([]entity.Vehicle, error)
	GetAll(ctx context.Context) ([]entity.Vehicle, error)
	Update(ctx context.Context, vehicle *entity.Vehicle) error
	UpdateStatus(ctx context.Context, id string, status entity.VehicleStatus, reason string, entry entity.HistoryEntry) error
	AppendHistory(ctx context.Context, id string, entry entity.HistoryEntry) error
	IncrementViews(ctx context.Context, id string) error
	SetRatingAggregate(ctx context.Context, id string, avg float64, count int) error
	SetFeatured(ctx context.Context, id string, featured bool) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, status entity.VehicleStatus) (int64, error)
}

// FavoriteRepository определяет операции с закладками пользователей
type FavoriteRepository interface {
	Get(ctx context.Context, userID, vehicleID string) (*entity.Favorite, error)
	Create(ctx context.Context, favorite *entity.Favorite) error
	Delete(ctx context.Context, userID, vehicleID string) error
	ListByUser(ctx context.Context, userID string) ([]entity.Favorite, error)
}

// RatingRepository определяет операции с оценками объявлений
type RatingRepository interface {
	Upsert(ctx context.Context, rating *entity.Rating) error
	GetByVehicle(ctx context.Context, vehicleID string) ([]entity.Rating, error)
	GetByUserAndVehicle(ctx context.Context, userID, vehicleID string) (*entity.Rating, error)
}
