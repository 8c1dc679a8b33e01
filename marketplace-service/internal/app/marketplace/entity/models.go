package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VehicleStatus - статус модерации объявления
type VehicleStatus string

const (
	StatusPending  VehicleStatus = "pending"
	StatusApproved VehicleStatus = "approved"
	StatusRejected VehicleStatus = "rejected"
)

// CanTransition проверяет допустимость перехода статуса модерации
// Разрешены только: pending -> approved, pending -> rejected, rejected -> pending
func (s VehicleStatus) CanTransition(to VehicleStatus) bool {
	switch s {
	case StatusPending:
		return to == StatusApproved || to == StatusRejected
	case StatusRejected:
		return to == StatusPending
	default:
		return false
	}
}

// SellerContact - контактный блок продавца, встроенный в объявление
type SellerContact struct {
	Name   string `json:"name" bson:"name"`
	Email  string `json:"email" bson:"email"`
	Phone  string `json:"phone" bson:"phone"`
	UserID string `json:"user_id" bson:"user_id"` // UUID пользователя из Auth Service
}

// PaymentProof - ссылка на подтверждение оплаты публикации
type PaymentProof struct {
	URL       string `json:"url" bson:"url"`
	Bank      string `json:"bank" bson:"bank"`
	Reference string `json:"reference" bson:"reference"`
}

// HistoryEntry - запись истории модерации, append-only
type HistoryEntry struct {
	AdminID   string    `json:"admin_id" bson:"admin_id"`
	Action    string    `json:"action" bson:"action"` // approved, rejected, resubmitted, comment, featured
	Note      string    `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Vehicle - объявление о продаже транспортного средства
type Vehicle struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Category        string             `json:"category" bson:"category"`
	Subcategory     string             `json:"subcategory,omitempty" bson:"subcategory,omitempty"`
	Brand           string             `json:"brand" bson:"brand"`
	Model           string             `json:"model" bson:"model"`
	Year            int                `json:"year" bson:"year"`
	Price           float64            `json:"price" bson:"price"`
	Currency        string             `json:"currency" bson:"currency"`
	Condition       string             `json:"condition" bson:"condition"`       // new, used, salvage
	Mileage         int                `json:"mileage" bson:"mileage"`
	Transmission    string             `json:"transmission" bson:"transmission"` // manual, automatic
	Fuel            string             `json:"fuel" bson:"fuel"`                 // gasoline, diesel, hybrid, electric
	Description     string             `json:"description" bson:"description"`
	Images          []string           `json:"images" bson:"images"`
	Seller          SellerContact      `json:"seller" bson:"seller"`
	Status          VehicleStatus      `json:"status" bson:"status"`
	RejectionReason string             `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	Views           int64              `json:"views" bson:"views"`
	Featured        bool               `json:"featured" bson:"featured"`
	RatingAvg       float64            `json:"rating_avg" bson:"rating_avg"`
	RatingCount     int                `json:"rating_count" bson:"rating_count"`
	PaymentProof    *PaymentProof      `json:"payment_proof,omitempty" bson:"payment_proof,omitempty"`
	History         []HistoryEntry     `json:"history,omitempty" bson:"history,omitempty"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

// Favorite - закладка пользователя на объявление, уникальна по паре (user, vehicle)
type Favorite struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    string             `json:"user_id" bson:"user_id"`
	VehicleID string             `json:"vehicle_id" bson:"vehicle_id"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// Rating - оценка объявления пользователем, уникальна по паре (user, vehicle)
type Rating struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    string             `json:"user_id" bson:"user_id"`
	VehicleID string             `json:"vehicle_id" bson:"vehicle_id"`
	Score     int                `json:"score" bson:"score"` // 1..5
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// Principal - аутентифицированный пользователь, построенный один раз
// на границе запроса из JWT claims
type Principal struct {
	UserID string
	Email  string
	Name   string
	Role   string
}

// IsAdmin сообщает, обладает ли principal правами администратора
func (p Principal) IsAdmin() bool {
	return p.Role == "admin"
}

// VehicleEvent - событие жизненного цикла объявления для Kafka
type VehicleEvent struct {
	EventType string    `json:"event_type"` // VEHICLE_CREATED, VEHICLE_UPDATED, VEHICLE_DELETED
	VehicleID string    `json:"vehicle_id"`
	SellerID  string    `json:"seller_id"`
	Brand     string    `json:"brand"`
	Model     string    `json:"model"`
	Price     float64   `json:"price"`
	Currency  string    `json:"currency"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationEvent - событие для отправки уведомления продавцу
// Обрабатывается background worker'ом
type NotificationEvent struct {
	EventType   string    `json:"event_type"` // VEHICLE_APPROVED, VEHICLE_REJECTED
	VehicleID   string    `json:"vehicle_id"`
	SellerEmail string    `json:"seller_email"`
	SellerName  string    `json:"seller_name"`
	Brand       string    `json:"brand"`
	Model       string    `json:"model"`
	Reason      string    `json:"reason,omitempty"` // обязателен для VEHICLE_REJECTED
	Timestamp   time.Time `json:"timestamp"`
}

// AnalyticsEvent - событие аналитики, принимается от клиента и публикуется в Kafka
type AnalyticsEvent struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	VehicleID string            `json:"vehicle_id,omitempty"`
	UserID    string            `json:"user_id,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
