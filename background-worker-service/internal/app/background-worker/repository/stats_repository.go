package repository

import (
	"context"
	"fmt"
	"time"

	"motormarket/background-worker-service/internal/app/background-worker/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// statsRepository реализует StatsRepository для PostgreSQL через GORM
type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository создает новый репозиторий агрегатов аналитики
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

// IncrementDailyStat увеличивает счетчик события за день
// Upsert по уникальной паре (date, event_type)
func (r *statsRepository) IncrementDailyStat(ctx context.Context, date time.Time, eventType string) error {
	stat := entity.DailyStat{
		Date:      date.Truncate(24 * time.Hour),
		EventType: eventType,
		Count:     1,
	}

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}, {Name: "event_type"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"count": gorm.Expr("daily_stats.count + 1"),
		}),
	}).Create(&stat)

	if result.Error != nil {
		return fmt.Errorf("failed to increment daily stat: %w", result.Error)
	}

	return nil
}

// GetDailyStats возвращает агрегаты за день
func (r *statsRepository) GetDailyStats(ctx context.Context, date time.Time) ([]entity.DailyStat, error) {
	var stats []entity.DailyStat

	result := r.db.WithContext(ctx).
		Where("date = ?", date.Truncate(24*time.Hour)).
		Order("event_type").
		Find(&stats)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to get daily stats: %w", result.Error)
	}

	return stats, nil
}
