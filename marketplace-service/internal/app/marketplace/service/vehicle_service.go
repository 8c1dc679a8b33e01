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

// VehicleService обрабатывает бизнес-логику объявлений
// Координирует работу репозитория, Redis кеша и Kafka producer'а
type VehicleService struct {
	vehicleRepo repository.VehicleRepository
	cache       ListingCache
	rates       ExchangeRateReader
	producer    infrastructure.MessagePublisher
}

// NewVehicleService создает новый сервис объявлений с внедрением зависимостей
func NewVehicleService(
	vehicleRepo repository.VehicleRepository,
	cache ListingCache,
	rates ExchangeRateReader,
	producer infrastructure.MessagePublisher,
) *VehicleService {
	return &VehicleService{
		vehicleRepo: vehicleRepo,
		cache:       cache,
		rates:       rates,
		producer:    producer,
	}
}

// CreateVehicle создает объявление в статусе pending
// Контактный блок продавца заполняется из principal
func (s *VehicleService) CreateVehicle(ctx context.Context, principal entity.Principal, req *entity.CreateVehicleRequest) (*entity.Vehicle, error) {
	vehicle := &entity.Vehicle{
		Category:     req.Category,
		Subcategory:  req.Subcategory,
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		Price:        req.Price,
		Currency:     req.Currency,
		Condition:    req.Condition,
		Mileage:      req.Mileage,
		Transmission: req.Transmission,
		Fuel:         req.Fuel,
		Description:  req.Description,
		Images:       req.Images,
		Seller: entity.SellerContact{
			Name:   principal.Name,
			Email:  principal.Email,
			Phone:  req.SellerPhone,
			UserID: principal.UserID,
		},
		Status:       entity.StatusPending,
		PaymentProof: req.PaymentProof,
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	metrics.ListingsCreated.Inc()

	s.invalidateCache(ctx)
	s.publishVehicleEvent(ctx, "VEHICLE_CREATED", vehicle)

	return vehicle, nil
}

// GetVehicle получает объявление по ID
// Не одобренные объявления видны только владельцу и администратору
// Просмотр одобренного объявления атомарно увеличивает счётчик
func (s *VehicleService) GetVehicle(ctx context.Context, id string, principal *entity.Principal, displayCurrency string) (*entity.VehicleResponse, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	if vehicle.Status != entity.StatusApproved {
		// Скрываем существование не одобренного объявления от посторонних
		if principal == nil || (principal.UserID != vehicle.Seller.UserID && !principal.IsAdmin()) {
			return nil, ErrVehicleNotFound
		}
	} else {
		if err := s.vehicleRepo.IncrementViews(ctx, id); err != nil {
			// Счётчик просмотров не критичен для ответа
			logger.Warn().Err(err).Str("vehicle_id", id).Msg("failed to increment views")
		} else {
			vehicle.Views++
		}
	}

	resp := &entity.VehicleResponse{Vehicle: *vehicle}

	if displayCurrency != "" && displayCurrency != vehicle.Currency {
		converted, err := s.convertPrice(ctx, vehicle.Price, vehicle.Currency, displayCurrency)
		if err != nil {
			// Конвертация не критична, возвращаем цену в исходной валюте
			logger.Warn().Err(err).Str("currency", displayCurrency).Msg("failed to convert price")
		} else {
			resp.DisplayPrice = converted
			resp.DisplayCurrency = displayCurrency
		}
	}

	return resp, nil
}

// ListPublic получает страницу одобренных объявлений с применением фильтра
// Полный список читается из Redis кеша, при промахе - из MongoDB
func (s *VehicleService) ListPublic(ctx context.Context, filter entity.ListingFilter) (*entity.VehicleListResponse, error) {
	vehicles, err := s.loadApproved(ctx)
	if err != nil {
		return nil, err
	}

	// Публичный список всегда ограничен одобренными объявлениями
	filter.Status = entity.StatusApproved

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

// ListMine получает все объявления продавца независимо от статуса
func (s *VehicleService) ListMine(ctx context.Context, sellerID string) ([]entity.Vehicle, error) {
	vehicles, err := s.vehicleRepo.GetBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get seller vehicles: %w", err)
	}

	return vehicles, nil
}

// UpdateVehicle обновляет объявление с проверкой прав владельца
// Редактирование отклонённого объявления возвращает его на модерацию
func (s *VehicleService) UpdateVehicle(ctx context.Context, principal entity.Principal, id string, req *entity.UpdateVehicleRequest) (*entity.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	if vehicle.Seller.UserID != principal.UserID && !principal.IsAdmin() {
		return nil, ErrNotOwner
	}

	applyUpdate(vehicle, req)

	if vehicle.Status == entity.StatusRejected {
		// rejected -> pending: повторная отправка на модерацию после правок
		vehicle.Status = entity.StatusPending
		vehicle.RejectionReason = ""
		vehicle.History = append(vehicle.History, entity.HistoryEntry{
			AdminID:   principal.UserID,
			Action:    "resubmitted",
			CreatedAt: time.Now(),
		})
		if err := s.vehicleRepo.AppendHistory(ctx, id, vehicle.History[len(vehicle.History)-1]); err != nil {
			logger.Warn().Err(err).Str("vehicle_id", id).Msg("failed to append resubmit history entry")
		}
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}

	s.invalidateCache(ctx)
	s.publishVehicleEvent(ctx, "VEHICLE_UPDATED", vehicle)

	return vehicle, nil
}

// DeleteVehicle удаляет объявление с проверкой прав доступа
func (s *VehicleService) DeleteVehicle(ctx context.Context, principal entity.Principal, id string) error {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return ErrVehicleNotFound
		}
		return fmt.Errorf("failed to get vehicle: %w", err)
	}

	if vehicle.Seller.UserID != principal.UserID && !principal.IsAdmin() {
		return ErrNotOwner
	}

	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	s.invalidateCache(ctx)
	s.publishVehicleEvent(ctx, "VEHICLE_DELETED", vehicle)

	return nil
}

// loadApproved читает одобренные объявления из кеша, при промахе - из БД
func (s *VehicleService) loadApproved(ctx context.Context) ([]entity.Vehicle, error) {
	vehicles, err := s.cache.GetApproved(ctx)
	if err == nil {
		return vehicles, nil
	}

	vehicles, err = s.vehicleRepo.GetByStatus(ctx, entity.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to get approved vehicles: %w", err)
	}

	if err := s.cache.SetApproved(ctx, vehicles); err != nil {
		// Данные получены из БД, проблемы с кешем не критичны
		logger.Warn().Err(err).Msg("failed to cache approved listings")
	}

	return vehicles, nil
}

func (s *VehicleService) invalidateCache(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate listings cache")
	}
}

// convertPrice конвертирует цену через курсы, записанные worker'ом в Redis
// Конвертация: amount * (toRate / fromRate)
func (s *VehicleService) convertPrice(ctx context.Context, amount float64, from, to string) (float64, error) {
	fromRate, err := s.rates.GetRate(ctx, from)
	if err != nil {
		return 0, err
	}

	toRate, err := s.rates.GetRate(ctx, to)
	if err != nil {
		return 0, err
	}

	return amount * (toRate / fromRate), nil
}

// publishVehicleEvent отправляет событие жизненного цикла объявления в Kafka
// Объявление уже сохранено, проблемы с Kafka не критичны
func (s *VehicleService) publishVehicleEvent(ctx context.Context, eventType string, vehicle *entity.Vehicle) {
	event := entity.VehicleEvent{
		EventType: eventType,
		VehicleID: vehicle.ID.Hex(),
		SellerID:  vehicle.Seller.UserID,
		Brand:     vehicle.Brand,
		Model:     vehicle.Model,
		Price:     vehicle.Price,
		Currency:  vehicle.Currency,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal vehicle event")
		return
	}

	if err := s.producer.PublishMessage(ctx, event.VehicleID, data); err != nil {
		logger.Warn().Err(err).Str("event_type", eventType).Msg("failed to publish vehicle event")
	}
}

func applyUpdate(vehicle *entity.Vehicle, req *entity.UpdateVehicleRequest) {
	if req.Category != "" {
		vehicle.Category = req.Category
	}
	if req.Subcategory != "" {
		vehicle.Subcategory = req.Subcategory
	}
	if req.Brand != "" {
		vehicle.Brand = req.Brand
	}
	if req.Model != "" {
		vehicle.Model = req.Model
	}
	if req.Year > 0 {
		vehicle.Year = req.Year
	}
	if req.Price > 0 {
		vehicle.Price = req.Price
	}
	if req.Currency != "" {
		vehicle.Currency = req.Currency
	}
	if req.Condition != "" {
		vehicle.Condition = req.Condition
	}
	if req.Mileage > 0 {
		vehicle.Mileage = req.Mileage
	}
	if req.Transmission != "" {
		vehicle.Transmission = req.Transmission
	}
	if req.Fuel != "" {
		vehicle.Fuel = req.Fuel
	}
	if req.Description != "" {
		vehicle.Description = req.Description
	}
	if len(req.Images) > 0 {
		vehicle.Images = req.Images
	}
	if req.SellerPhone != "" {
		vehicle.Seller.Phone = req.SellerPhone
	}
	if req.PaymentProof != nil {
		vehicle.PaymentProof = req.PaymentProof
	}
}
