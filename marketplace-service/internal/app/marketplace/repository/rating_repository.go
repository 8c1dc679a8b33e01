package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"motormarket/marketplace-service/internal/app/marketplace/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrRatingNotFound = errors.New("rating not found")
)

type ratingRepository struct {
	collection *mongo.Collection
}

// NewRatingRepository создает новый репозиторий оценок
// Уникальный составной индекс (user_id, vehicle_id) гарантирует не более
// одной оценки на пару даже при конкурентных запросах
func NewRatingRepository(db *mongo.Database) RatingRepository {
	collection := db.Collection("ratings")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "vehicle_id", Value: 1},
			},
			Options: options.Index().SetName("user_vehicle_idx").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "vehicle_id", Value: 1}},
			Options: options.Index().SetName("vehicle_id_idx"),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		fmt.Printf("Warning: failed to create rating indexes: %v\n", err)
	}

	return &ratingRepository{collection: collection}
}

// Upsert создает или обновляет оценку пары (user, vehicle)
// Дубликаты исключаются upsert-семантикой хранилища, без блокировок в приложении
func (r *ratingRepository) Upsert(ctx context.Context, rating *entity.Rating) error {
	now := time.Now()
	rating.UpdatedAt = now

	filter := bson.M{"user_id": rating.UserID, "vehicle_id": rating.VehicleID}
	update := bson.M{
		"$set": bson.M{
			"score":      rating.Score,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"user_id":    rating.UserID,
			"vehicle_id": rating.VehicleID,
			"created_at": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert rating: %w", err)
	}

	return nil
}

// GetByVehicle получает все оценки объявления
// Полная выборка: агрегат пересчитывается в service layer на каждой записи
func (r *ratingRepository) GetByVehicle(ctx context.Context, vehicleID string) ([]entity.Rating, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"vehicle_id": vehicleID})
	if err != nil {
		return nil, fmt.Errorf("failed to find ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var ratings []entity.Rating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, fmt.Errorf("failed to decode ratings: %w", err)
	}

	return ratings, nil
}

// GetByUserAndVehicle получает оценку пользователя для объявления
func (r *ratingRepository) GetByUserAndVehicle(ctx context.Context, userID, vehicleID string) (*entity.Rating, error) {
	filter := bson.M{"user_id": userID, "vehicle_id": vehicleID}

	var rating entity.Rating
	err := r.collection.FindOne(ctx, filter).Decode(&rating)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRatingNotFound
		}
		return nil, fmt.Errorf("failed to get rating: %w", err)
	}

	return &rating, nil
}
