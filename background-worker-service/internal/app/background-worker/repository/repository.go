package repository

import (
	"context"
	"time"

	"motormarket/background-worker-service/internal/app/background-worker/entity"
)

// ExchangeRateRepository интерфейс для работы с курсами валют в Redis
type ExchangeRateRepository interface {
	// Get получает курс валюты из Redis
	Get(ctx context.Context, currency string) (*entity.ExchangeRate, error)

	// Set сохраняет курс валюты в Redis с TTL
	Set(ctx context.Context, rate *entity.ExchangeRate) error

	// SetMultiple сохраняет несколько курсов валют батчем
	SetMultiple(ctx context.Context, rates []*entity.ExchangeRate) error

	// GetMultiple получает несколько курсов валют
	GetMultiple(ctx context.Context, currencies []string) (map[string]*entity.ExchangeRate, error)

	// Exists проверяет существование курса в Redis
	Exists(ctx context.Context, currency string) (bool, error)
}

// AnalyticsEventRepository интерфейс для сохранения сырых событий аналитики в MongoDB
type AnalyticsEventRepository interface {
	// Insert сохраняет событие в коллекцию analytics_events
	Insert(ctx context.Context, event *entity.AnalyticsEvent) error
}

// StatsRepository интерфейс для агрегатов аналитики в PostgreSQL
type StatsRepository interface {
	// IncrementDailyStat увеличивает счетчик события за день (upsert)
	IncrementDailyStat(ctx context.Context, date time.Time, eventType string) error

	// GetDailyStats возвращает агрегаты за день
	GetDailyStats(ctx context.Context, date time.Time) ([]entity.DailyStat, error)
}
