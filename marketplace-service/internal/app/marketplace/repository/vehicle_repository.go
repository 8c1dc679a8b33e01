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
	// Стандартные ошибки репозитория для обработки в service layer
	ErrVehicleNotFound = errors.New("vehicle not found")
)

type vehicleRepository struct {
	collection *mongo.Collection
}

// NewVehicleRepository создает новый репозиторий объявлений
// Автоматически создает индексы по status и seller.user_id
func NewVehicleRepository(db *mongo.Database) VehicleRepository {
	collection := db.Collection("vehicles")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("status_idx"),
		},
		{
			Keys:    bson.D{{Key: "seller.user_id", Value: 1}},
			Options: options.Index().SetName("seller_user_id_idx"),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		// Логируем ошибку, но не прерываем работу - индексы могут уже существовать
		fmt.Printf("Warning: failed to create vehicle indexes: %v\n", err)
	}

	return &vehicleRepository{collection: collection}
}

// Create создает новое объявление в MongoDB
func (r *vehicleRepository) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, vehicle)
	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		vehicle.ID = oid
	}

	return nil
}

// GetByID получает объявление по ID
func (r *vehicleRepository) GetByID(ctx context.Context, id string) (*entity.Vehicle, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrVehicleNotFound
	}

	var vehicle entity.Vehicle
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&vehicle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return &vehicle, nil
}

// GetByIDs получает объявления по списку ID, сохраняя только найденные
func (r *vehicleRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Vehicle, error) {
	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objectIDs = append(objectIDs, oid)
	}

	if len(objectIDs) == 0 {
		return []entity.Vehicle{}, nil
	}

	return r.find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
}

// GetByStatus получает все объявления с данным статусом модерации
// Использует индекс status_idx, сортировка по created_at DESC
func (r *vehicleRepository) GetByStatus(ctx context.Context, status entity.VehicleStatus) ([]entity.Vehicle, error) {
	return r.find(ctx, bson.M{"status": status})
}

// GetBySeller получает все объявления продавца
func (r *vehicleRepository) GetBySeller(ctx context.Context, sellerID string) ([]entity.Vehicle, error) {
	return r.find(ctx, bson.M{"seller.user_id": sellerID})
}

// GetAll получает все объявления независимо от статуса (для админ-панели)
func (r *vehicleRepository) GetAll(ctx context.Context) ([]entity.Vehicle, error) {
	return r.find(ctx, bson.M{})
}

func (r *vehicleRepository) find(ctx context.Context, filter bson.M) ([]entity.Vehicle, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	var vehicles []entity.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, fmt.Errorf("failed to decode vehicles: %w", err)
	}

	return vehicles, nil
}

// Update обновляет редактируемые поля объявления
func (r *vehicleRepository) Update(ctx context.Context, vehicle *entity.Vehicle) error {
	vehicle.UpdatedAt = time.Now()

	update := bson.M{
		"$set": bson.M{
			"category":         vehicle.Category,
			"subcategory":      vehicle.Subcategory,
			"brand":            vehicle.Brand,
			"model":            vehicle.Model,
			"year":             vehicle.Year,
			"price":            vehicle.Price,
			"currency":         vehicle.Currency,
			"condition":        vehicle.Condition,
			"mileage":          vehicle.Mileage,
			"transmission":     vehicle.Transmission,
			"fuel":             vehicle.Fuel,
			"description":      vehicle.Description,
			"images":           vehicle.Images,
			"seller":           vehicle.Seller,
			"status":           vehicle.Status,
			"rejection_reason": vehicle.RejectionReason,
			"payment_proof":    vehicle.PaymentProof,
			"updated_at":       vehicle.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": vehicle.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrVehicleNotFound
	}

	return nil
}

// UpdateStatus меняет статус модерации и дописывает запись истории одним обновлением
func (r *vehicleRepository) UpdateStatus(ctx context.Context, id string, status entity.VehicleStatus, reason string, entry entity.HistoryEntry) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrVehicleNotFound
	}

	update := bson.M{
		"$set": bson.M{
			"status":           status,
			"rejection_reason": reason,
			"updated_at":       time.Now(),
		},
		"$push": bson.M{"history": entry},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update vehicle status: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrVehicleNotFound
	}

	return nil
}

// AppendHistory дописывает запись истории модерации, записи никогда не изменяются
func (r *vehicleRepository) AppendHistory(ctx context.Context, id string, entry entity.HistoryEntry) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrVehicleNotFound
	}

	update := bson.M{"$push": bson.M{"history": entry}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to append history entry: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrVehicleNotFound
	}

	return nil
}

// IncrementViews атомарно увеличивает счётчик просмотров ($inc)
func (r *vehicleRepository) IncrementViews(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrVehicleNotFound
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}

	return nil
}

// SetRatingAggregate сохраняет пересчитанный агрегат оценок на документе объявления
func (r *vehicleRepository) SetRatingAggregate(ctx context.Context, id string, avg float64, count int) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrVehicleNotFound
	}

	update := bson.M{
		"$set": bson.M{
			"rating_avg":   avg,
			"rating_count": count,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to set rating aggregate: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrVehicleNotFound
	}

	return nil
}

// SetFeatured устанавливает флаг featured
func (r *vehicleRepository) SetFeatured(ctx context.Context, id string, featured bool) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrVehicleNotFound
	}

	update := bson.M{
		"$set": bson.M{
			"featured":   featured,
			"updated_at": time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to set featured flag: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrVehicleNotFound
	}

	return nil
}

// Delete удаляет объявление из MongoDB
func (r *vehicleRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrVehicleNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrVehicleNotFound
	}

	return nil
}

// CountByStatus считает объявления с данным статусом
func (r *vehicleRepository) CountByStatus(ctx context.Context, status entity.VehicleStatus) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	return count, nil
}
