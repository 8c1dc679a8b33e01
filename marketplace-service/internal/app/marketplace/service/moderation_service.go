package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"motormarket/marketplace-service/internal/app/marketplace/entity"
	"motormarket/marketplace-service/internal/app/marketplace/infrastructure"
	"motormarket/marketplace-service/internal/app/marketplace/repository"
	"motormarket/pkg/logger"
	"motormarket/pkg/metrics"
)

// ModerationService обрабатывает админский workflow проверки объявлений
// Переходы статусов: pending -> approved, pending -> rejected,
// rejected -> pending (через редактирование продавцом)
type ModerationService struct {
	vehicleRepo repository.VehicleRepository
	cache       ListingCache
	notifier    infrastructure.MessagePublisher
}

// NewModerationService создает новый сервис модерации
func NewModerationService(
	vehicleRepo repository.VehicleRepository,
	cache ListingCache,
	notifier infrastructure.MessagePublisher,
) *ModerationService {
	return &ModerationService{
		vehicleRepo: vehicleRepo,
		cache:       cache,
		notifier:    notifier,
	}
}

// ListAll получает объявления всех статусов с применением фильтра (админ-панель)
func (s *ModerationService) ListAll(ctx context.Context, filter entity.ListingFilter) (*entity.VehicleListResponse, error) {
	vehicles, err := s.vehicleRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicles: %w", err)
	}

	filtered := ApplyFilter(vehicles, filter)
	SortListings(filtered, filter.Sort)

	page, pageNum, totalPages := Paginate(filtered, filter.Page, filter.PageSize)

	return &entity.VehicleListResponse{
		Vehicles:   page,
		Total:      len(filtered),
		Page:       pageNum,
		PageSize:   NormalizePageSize(filter.PageSize),
		TotalPages: totalPages,
	}, nil
}

// ListPending получает очередь объявлений, ожидающих проверки
func (s *ModerationService) ListPending(ctx context.Context) ([]entity.Vehicle, error) {
	vehicles, err := s.vehicleRepo.GetByStatus(ctx, entity.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending vehicles: %w", err)
	}

	return vehicles, nil
}

// Approve одобряет объявление: pending -> approved
// Отправляет продавцу уведомление через Kafka
func (s *ModerationService) Approve(ctx context.Context, admin entity.Principal, id string) (*entity.Vehicle, error) {
	vehicle, err := s.getForDecision(ctx, id, entity.StatusApproved)
	if err != nil {
		return nil, err
	}

	entry := entity.HistoryEntry{
		AdminID:   admin.UserID,
		Action:    "approved",
		CreatedAt: time.Now(),
	}

	if err := s.vehicleRepo.UpdateStatus(ctx, id, entity.StatusApproved, "", entry); err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to approve vehicle: %w", err)
	}

	vehicle.Status = entity.StatusApproved
	vehicle.RejectionReason = ""
	vehicle.History = append(vehicle.History, entry)

	metrics.ModerationDecisions.WithLabelValues("approved").Inc()

	s.invalidateCache(ctx)
	s.publishNotification(ctx, "VEHICLE_APPROVED", vehicle, "")

	return vehicle, nil
}

// Reject отклоняет объявление с обязательной причиной: pending -> rejected
// Причина попадает в уведомление продавцу
func (s *ModerationService) Reject(ctx context.Context, admin entity.Principal, id string, reason string) (*entity.Vehicle, error) {
	vehicle, err := s.getForDecision(ctx, id, entity.StatusRejected)
	if err != nil {
		return nil, err
	}

	entry := entity.HistoryEntry{
		AdminID:   admin.UserID,
		Action:    "rejected",
		Note:      reason,
		CreatedAt: time.Now(),
	}

	if err := s.vehicleRepo.UpdateStatus(ctx, id, entity.StatusRejected, reason, entry); err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to reject vehicle: %w", err)
	}

	vehicle.Status = entity.StatusRejected
	vehicle.RejectionReason = reason
	vehicle.History = append(vehicle.History, entry)

	metrics.ModerationDecisions.WithLabelValues("rejected").Inc()

	s.invalidateCache(ctx)
	s.publishNotification(ctx, "VEHICLE_REJECTED", vehicle, reason)

	return vehicle, nil
}

// AddComment дописывает комментарий администратора в историю объявления
// Записи истории никогда не изменяются и не удаляются
func (s *ModerationService) AddComment(ctx context.Context, admin entity.Principal, id string, note string) error {
	entry := entity.HistoryEntry{
		AdminID:   admin.UserID,
		Action:    "comment",
		Note:      note,
		CreatedAt: time.Now(),
	}

	if err := s.vehicleRepo.AppendHistory(ctx, id, entry); err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return ErrVehicleNotFound
		}
		return fmt.Errorf("failed to add comment: %w", err)
	}

	return nil
}

// SetFeatured устанавливает флаг featured на объявлении
func (s *ModerationService) SetFeatured(ctx context.Context, admin entity.Principal, id string, featured bool) error {
	if err := s.vehicleRepo.SetFeatured(ctx, id, featured); err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return ErrVehicleNotFound
		}
		return fmt.Errorf("failed to set featured flag: %w", err)
	}

	action := "featured"
	if !featured {
		action = "unfeatured"
	}
	entry := entity.HistoryEntry{
		AdminID:   admin.UserID,
		Action:    action,
		CreatedAt: time.Now(),
	}
	if err := s.vehicleRepo.AppendHistory(ctx, id, entry); err != nil {
		logger.Warn().Err(err).Str("vehicle_id", id).Msg("failed to append featured history entry")
	}

	s.invalidateCache(ctx)

	return nil
}

// Stats собирает статистику по статусам для админ-панели
func (s *ModerationService) Stats(ctx context.Context) (*entity.ModerationStats, error) {
	stats := &entity.ModerationStats{}

	counts := []struct {
		status entity.VehicleStatus
		dest   *int64
	}{
		{entity.StatusPending, &stats.Pending},
		{entity.StatusApproved, &stats.Approved},
		{entity.StatusRejected, &stats.Rejected},
	}

	for _, c := range counts {
		count, err := s.vehicleRepo.CountByStatus(ctx, c.status)
		if err != nil {
			return nil, fmt.Errorf("failed to count vehicles: %w", err)
		}
		*c.dest = count
		metrics.ListingsByStatus.WithLabelValues(string(c.status)).Set(float64(count))
	}

	stats.Total = stats.Pending + stats.Approved + stats.Rejected

	return stats, nil
}

// getForDecision загружает объявление и проверяет допустимость перехода
func (s *ModerationService) getForDecision(ctx context.Context, id string, to entity.VehicleStatus) (*entity.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	if !vehicle.Status.CanTransition(to) {
		return nil, ErrInvalidTransition
	}

	return vehicle, nil
}

func (s *ModerationService) invalidateCache(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate listings cache")
	}
}

// publishNotification отправляет событие уведомления продавца в Kafka
// Статус уже сохранён, проблемы с Kafka не критичны
func (s *ModerationService) publishNotification(ctx context.Context, eventType string, vehicle *entity.Vehicle, reason string) {
	event := entity.NotificationEvent{
		EventType:   eventType,
		VehicleID:   vehicle.ID.Hex(),
		SellerEmail: vehicle.Seller.Email,
		SellerName:  vehicle.Seller.Name,
		Brand:       vehicle.Brand,
		Model:       vehicle.Model,
		Reason:      reason,
		Timestamp:   time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal notification event")
		return
	}

	if err := s.notifier.PublishMessage(ctx, event.VehicleID, data); err != nil {
		logger.Warn().Err(err).Str("event_type", eventType).Msg("failed to publish notification event")
	}
}
