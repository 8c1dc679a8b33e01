package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"motormarket/marketplace-service/internal/app/marketplace/entity"
	"motormarket/marketplace-service/internal/app/marketplace/repository"
	"motormarket/pkg/logger"
	"motormarket/pkg/metrics"
)

// RatingService обрабатывает оценки объявлений
// На каждой записи пересчитывает агрегат полной выборкой оценок - O(n),
// допустимо на текущем масштабе
type RatingService struct {
	ratingRepo  repository.RatingRepository
	vehicleRepo repository.VehicleRepository
}

// NewRatingService создает новый сервис оценок
func NewRatingService(
	ratingRepo repository.RatingRepository,
	vehicleRepo repository.VehicleRepository,
) *RatingService {
	return &RatingService{
		ratingRepo:  ratingRepo,
		vehicleRepo: vehicleRepo,
	}
}

// Rate сохраняет оценку пользователя (upsert) и пересчитывает агрегат объявления
// Повторная оценка той же пары (user, vehicle) обновляет существующий документ
func (s *RatingService) Rate(ctx context.Context, userID, vehicleID string, score int) (*entity.RatingSummary, error) {
	if _, err := s.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	rating := &entity.Rating{
		UserID:    userID,
		VehicleID: vehicleID,
		Score:     score,
	}

	if err := s.ratingRepo.Upsert(ctx, rating); err != nil {
		return nil, fmt.Errorf("failed to upsert rating: %w", err)
	}

	metrics.RatingsSubmitted.Observe(float64(score))

	avg, count, err := s.recomputeAggregate(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	return &entity.RatingSummary{
		VehicleID: vehicleID,
		Average:   avg,
		Count:     count,
		UserScore: score,
	}, nil
}

// ListForVehicle получает все оценки объявления
func (s *RatingService) ListForVehicle(ctx context.Context, vehicleID string) ([]entity.Rating, error) {
	ratings, err := s.ratingRepo.GetByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ratings: %w", err)
	}

	return ratings, nil
}

// GetSummary получает текущий агрегат оценок объявления
func (s *RatingService) GetSummary(ctx context.Context, vehicleID string, userID string) (*entity.RatingSummary, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	summary := &entity.RatingSummary{
		VehicleID: vehicleID,
		Average:   vehicle.RatingAvg,
		Count:     vehicle.RatingCount,
	}

	if userID != "" {
		userRating, err := s.ratingRepo.GetByUserAndVehicle(ctx, userID, vehicleID)
		if err == nil {
			summary.UserScore = userRating.Score
		} else if !errors.Is(err, repository.ErrRatingNotFound) {
			logger.Warn().Err(err).Str("vehicle_id", vehicleID).Msg("failed to get user rating")
		}
	}

	return summary, nil
}

// recomputeAggregate пересчитывает среднее (1 знак после запятой) и количество
// по полному набору оценок и сохраняет их на документе объявления
func (s *RatingService) recomputeAggregate(ctx context.Context, vehicleID string) (float64, int, error) {
	ratings, err := s.ratingRepo.GetByVehicle(ctx, vehicleID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get ratings for aggregation: %w", err)
	}

	var avg float64
	if len(ratings) > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r.Score
		}
		avg = math.Round(float64(sum)/float64(len(ratings))*10) / 10
	}

	if err := s.vehicleRepo.SetRatingAggregate(ctx, vehicleID, avg, len(ratings)); err != nil {
		return 0, 0, fmt.Errorf("failed to persist rating aggregate: %w", err)
	}

	return avg, len(ratings), nil
}
