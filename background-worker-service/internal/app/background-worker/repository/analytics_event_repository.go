package repository

import (
	"context"
	"fmt"
	"time"

	"motormarket/background-worker-service/internal/app/background-worker/entity"
	"motormarket/pkg/logger"
	"motormarket/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const serviceName = "background-worker"

// analyticsEventRepository сохраняет сырые события аналитики в MongoDB
type analyticsEventRepository struct {
	collection *mongo.Collection
}

// NewAnalyticsEventRepository создает репозиторий событий аналитики
// Автоматически создает индексы по event_type и timestamp
func NewAnalyticsEventRepository(db *mongo.Database) AnalyticsEventRepository {
	collection := db.Collection("analytics_events")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "event_type", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("event_type_timestamp_idx"),
		},
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}},
			Options: options.Index().SetName("event_id_idx").SetUnique(true),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		// Индексы могут уже существовать - не прерываем работу
		logger.Warn().Err(err).Msg("failed to create analytics event indexes")
	}

	return &analyticsEventRepository{collection: collection}
}

// Insert сохраняет событие в коллекцию analytics_events
// Дубликат event_id считается уже обработанным событием
func (r *analyticsEventRepository) Insert(ctx context.Context, event *entity.AnalyticsEvent) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "analytics_events")
	defer timer.ObserveDuration()

	if _, err := r.collection.InsertOne(ctx, event); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			logger.Debug().Str("event_id", event.EventID).Msg("analytics event already stored")
			return nil
		}
		metrics.RecordDbError(serviceName, metrics.DbOpInsert)
		return fmt.Errorf("failed to insert analytics event: %w", err)
	}

	return nil
}
