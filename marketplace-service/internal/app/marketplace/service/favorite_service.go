package service

import (
	"context"
	"errors"
	"fmt"

	"motormarket/marketplace-service/internal/app/marketplace/entity"
	"motormarket/marketplace-service/internal/app/marketplace/repository"
	"motormarket/pkg/metrics"
)

// FavoriteService обрабатывает закладки пользователей
type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	vehicleRepo  repository.VehicleRepository
}

// NewFavoriteService создает новый сервис закладок
func NewFavoriteService(
	favoriteRepo repository.FavoriteRepository,
	vehicleRepo repository.VehicleRepository,
) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		vehicleRepo:  vehicleRepo,
	}
}

// Toggle переключает закладку пары (user, vehicle)
// Возвращает true, если закладка добавлена, false - если снята
// Двойное переключение возвращает систему в исходное состояние
func (s *FavoriteService) Toggle(ctx context.Context, userID, vehicleID string) (bool, error) {
	if _, err := s.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return false, ErrVehicleNotFound
		}
		return false, fmt.Errorf("failed to get vehicle: %w", err)
	}

	existing, err := s.favoriteRepo.Get(ctx, userID, vehicleID)
	if err != nil && !errors.Is(err, repository.ErrFavoriteNotFound) {
		return false, fmt.Errorf("failed to get favorite: %w", err)
	}

	if existing != nil {
		if err := s.favoriteRepo.Delete(ctx, userID, vehicleID); err != nil {
			return false, fmt.Errorf("failed to remove favorite: %w", err)
		}
		metrics.FavoritesToggled.WithLabelValues("removed").Inc()
		return false, nil
	}

	favorite := &entity.Favorite{
		UserID:    userID,
		VehicleID: vehicleID,
	}
	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}

	metrics.FavoritesToggled.WithLabelValues("added").Inc()
	return true, nil
}

// List получает объявления из закладок пользователя
func (s *FavoriteService) List(ctx context.Context, userID string) ([]entity.Vehicle, error) {
	favorites, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	if len(favorites) == 0 {
		return []entity.Vehicle{}, nil
	}

	ids := make([]string, 0, len(favorites))
	for _, f := range favorites {
		ids = append(ids, f.VehicleID)
	}

	vehicles, err := s.vehicleRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get favorite vehicles: %w", err)
	}

	return vehicles, nil
}
