package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"motormarket/marketplace-service/internal/app/marketplace/entity"
	"motormarket/marketplace-service/internal/app/marketplace/infrastructure"
	"motormarket/pkg/metrics"
)

// AnalyticsService принимает события поведения пользователей и отправляет их в Kafka
// Хранение и агрегация выполняются воркером, сервис только валидирует и публикует
type AnalyticsService struct {
	producer infrastructure.MessagePublisher
}

// NewAnalyticsService создает новый сервис аналитики
func NewAnalyticsService(producer infrastructure.MessagePublisher) *AnalyticsService {
	return &AnalyticsService{producer: producer}
}

// Ingest публикует событие аналитики
// UserID может быть пустым для анонимных посетителей
func (s *AnalyticsService) Ingest(ctx context.Context, userID string, req *entity.AnalyticsEventRequest) (string, error) {
	event := entity.AnalyticsEvent{
		EventID:   uuid.NewString(),
		EventType: req.EventType,
		UserID:    userID,
		VehicleID: req.VehicleID,
		Metadata:  req.Metadata,
		Timestamp: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("failed to marshal analytics event: %w", err)
	}

	if err := s.producer.PublishMessage(ctx, event.EventID, payload); err != nil {
		return "", fmt.Errorf("failed to publish analytics event: %w", err)
	}

	metrics.AnalyticsEventsIngested.Inc()

	return event.EventID, nil
}
