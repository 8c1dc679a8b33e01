package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"motormarket/marketplace-service/internal/app/marketplace/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrFavoriteNotFound = errors.New("favorite not found")
)

type favoriteRepository struct {
	collection *mongo.Collection
}

// NewFavoriteRepository создает новый репозиторий закладок
// Уникальный составной индекс (user_id, vehicle_id) исключает дубликаты
// при конкурентных переключениях
func NewFavoriteRepository(db *mongo.Database) FavoriteRepository {
	collection := db.Collection("favorites")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "vehicle_id", Value: 1},
		},
		Options: options.Index().SetName("user_vehicle_idx").SetUnique(true),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		fmt.Printf("Warning: failed to create favorites index: %v\n", err)
	}

	return &favoriteRepository{collection: collection}
}

// Get получает закладку по паре (user, vehicle)
func (r *favoriteRepository) Get(ctx context.Context, userID, vehicleID string) (*entity.Favorite, error) {
	filter := bson.M{"user_id": userID, "vehicle_id": vehicleID}

	var favorite entity.Favorite
	err := r.collection.FindOne(ctx, filter).Decode(&favorite)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrFavoriteNotFound
		}
		return nil, fmt.Errorf("failed to get favorite: %w", err)
	}

	return &favorite, nil
}

// Create создает закладку
func (r *favoriteRepository) Create(ctx context.Context, favorite *entity.Favorite) error {
	favorite.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, favorite)
	if err != nil {
		return fmt.Errorf("failed to create favorite: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		favorite.ID = oid
	}

	return nil
}

// Delete удаляет закладку по паре (user, vehicle)
func (r *favoriteRepository) Delete(ctx context.Context, userID, vehicleID string) error {
	filter := bson.M{"user_id": userID, "vehicle_id": vehicleID}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrFavoriteNotFound
	}

	return nil
}

// ListByUser получает все закладки пользователя
func (r *favoriteRepository) ListByUser(ctx context.Context, userID string) ([]entity.Favorite, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find favorites: %w", err)
	}
	defer cursor.Close(ctx)

	var favorites []entity.Favorite
	if err := cursor.All(ctx, &favorites); err != nil {
		return nil, fmt.Errorf("failed to decode favorites: %w", err)
	}

	return favorites, nil
}
