package entity

import (
	"time"
)

// Типы событий из топика notification_events
const (
	EventVehicleApproved = "VEHICLE_APPROVED"
	EventVehicleRejected = "VEHICLE_REJECTED"
	EventPasswordReset   = "PASSWORD_RESET"
)

// EventEnvelope - минимальная структура для определения типа события
// перед десериализацией в конкретную структуру
type EventEnvelope struct {
	EventType string `json:"event_type"`
}

// NotificationEvent - событие модерации объявления от marketplace-service
// Reason заполняется только для VEHICLE_REJECTED
type NotificationEvent struct {
	EventType   string    `json:"event_type"` // VEHICLE_APPROVED, VEHICLE_REJECTED
	VehicleID   string    `json:"vehicle_id"`
	SellerEmail string    `json:"seller_email"`
	SellerName  string    `json:"seller_name"`
	Brand       string    `json:"brand"`
	Model       string    `json:"model"`
	Reason      string    `json:"reason,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// PasswordResetEvent - событие сброса пароля от auth-service
type PasswordResetEvent struct {
	EventType  string    `json:"event_type"` // PASSWORD_RESET
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	ResetToken string    `json:"reset_token"`
	Timestamp  time.Time `json:"timestamp"`
}

// AnalyticsEvent - событие аналитики из топика analytics_events
// Сохраняется в MongoDB как есть
type AnalyticsEvent struct {
	EventID   string            `json:"event_id" bson:"event_id"`
	EventType string            `json:"event_type" bson:"event_type"`
	VehicleID string            `json:"vehicle_id,omitempty" bson:"vehicle_id,omitempty"`
	UserID    string            `json:"user_id,omitempty" bson:"user_id,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty" bson:"metadata,omitempty"`
	Timestamp time.Time         `json:"timestamp" bson:"timestamp"`
}

// DailyStat - агрегат аналитики за день по типу события
// Инкрементируется worker'ом на каждое обработанное событие
type DailyStat struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Date      time.Time `json:"date" gorm:"type:date;not null;uniqueIndex:idx_daily_stats_date_event"`
	EventType string    `json:"event_type" gorm:"type:varchar(100);not null;uniqueIndex:idx_daily_stats_date_event"`
	Count     int64     `json:"count" gorm:"not null;default:0"`
}

func (DailyStat) TableName() string {
	return "daily_stats"
}

// ExchangeRate - курс валюты относительно USD
type ExchangeRate struct {
	Currency  string    `json:"currency"`   // Код валюты (USD, HNL, EUR и т.д.)
	Rate      float64   `json:"rate"`       // Курс относительно базовой валюты (USD)
	UpdatedAt time.Time `json:"updated_at"` // Время последнего обновления
}

// ExchangeRatesResponse - ответ внешнего API курсов валют
type ExchangeRatesResponse struct {
	Base  string             `json:"base"`  // Базовая валюта (обычно USD)
	Date  string             `json:"date"`  // Дата курсов
	Rates map[string]float64 `json:"rates"` // Курсы валют: {"HNL": 24.75, "EUR": 0.93, ...}
}

const (
	// Формат ключа совпадает с тем, что читает marketplace-service
	RedisKeyPrefixRate = "exchange_rate:"
)

// Валюты, в которых отображаются цены объявлений
var SupportedCurrencies = []string{"USD", "HNL", "EUR", "MXN", "GTQ", "NIO"}

func GetRedisKeyForRate(currency string) string {
	return RedisKeyPrefixRate + currency
}
