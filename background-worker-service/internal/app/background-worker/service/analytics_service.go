package service

import (
	"context"
	"encoding/json"
	"fmt"

	"motormarket/background-worker-service/internal/app/background-worker/entity"
	"motormarket/background-worker-service/internal/app/background-worker/repository"
	"motormarket/pkg/logger"
	"motormarket/pkg/metrics"
)

// AnalyticsService сохраняет события аналитики из Kafka:
// сырое событие в MongoDB, агрегат за день в PostgreSQL
type AnalyticsService struct {
	eventRepo repository.AnalyticsEventRepository
	statsRepo repository.StatsRepository
}

// NewAnalyticsService создает сервис обработки аналитики
func NewAnalyticsService(
	eventRepo repository.AnalyticsEventRepository,
	statsRepo repository.StatsRepository,
) *AnalyticsService {
	return &AnalyticsService{
		eventRepo: eventRepo,
		statsRepo: statsRepo,
	}
}

// HandleMessage обрабатывает одно событие из топика analytics_events
func (s *AnalyticsService) HandleMessage(ctx context.Context, value []byte) error {
	var event entity.AnalyticsEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal analytics event: %w", err)
	}

	if event.EventType == "" {
		logger.Warn().Str("event_id", event.EventID).Msg("analytics event without event_type, skipping")
		return nil
	}

	if err := s.eventRepo.Insert(ctx, &event); err != nil {
		metrics.WorkerEventsProcessed.WithLabelValues(event.EventType, "failed").Inc()
		return fmt.Errorf("failed to store analytics event: %w", err)
	}

	// Ошибка агрегата не откатывает сохранённое событие:
	// daily_stats можно пересчитать из MongoDB
	if err := s.statsRepo.IncrementDailyStat(ctx, event.Timestamp, event.EventType); err != nil {
		logger.Warn().
			Err(err).
			Str("event_type", event.EventType).
			Msg("failed to increment daily stat")
	}

	metrics.WorkerEventsProcessed.WithLabelValues(event.EventType, "success").Inc()
	return nil
}
