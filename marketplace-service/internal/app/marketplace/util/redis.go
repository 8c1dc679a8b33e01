package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"motormarket/marketplace-service/internal/app/marketplace/entity"
	"motormarket/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	serviceName          = "marketplace-service"
	approvedListingsKey  = "listings:approved"
	exchangeRateKeyFmt   = "exchange_rate:%s"
	approvedListingsTTL  = 5 * time.Minute
)

// RedisClient оборачивает соединение с Redis для кеша списка объявлений
// и чтения курсов валют, записанных background worker'ом
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient создает и проверяет Redis клиент
func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// GetApproved получает закешированный список одобренных объявлений
func (r *RedisClient) GetApproved(ctx context.Context) ([]entity.Vehicle, error) {
	data, err := r.client.Get(ctx, approvedListingsKey).Result()
	if err != nil {
		if err == redis.Nil {
			metrics.RecordCacheMiss(serviceName, "listings")
			return nil, fmt.Errorf("approved listings not cached")
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get approved listings from cache: %w", err)
	}

	var vehicles []entity.Vehicle
	if err := json.Unmarshal([]byte(data), &vehicles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached listings: %w", err)
	}

	metrics.RecordCacheHit(serviceName, "listings")
	return vehicles, nil
}

// SetApproved кеширует список одобренных объявлений с TTL
func (r *RedisClient) SetApproved(ctx context.Context, vehicles []entity.Vehicle) error {
	data, err := json.Marshal(vehicles)
	if err != nil {
		return fmt.Errorf("failed to marshal listings: %w", err)
	}

	if err := r.client.Set(ctx, approvedListingsKey, data, approvedListingsTTL).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to cache approved listings: %w", err)
	}

	return nil
}

// Invalidate сбрасывает кеш списка объявлений
// Вызывается на каждой записи объявления и каждом решении модератора
func (r *RedisClient) Invalidate(ctx context.Context) error {
	if err := r.client.Del(ctx, approvedListingsKey).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
		return fmt.Errorf("failed to invalidate listings cache: %w", err)
	}

	return nil
}

// GetRate читает курс валюты, сохранённый worker'ом
// Формат значения совпадает с entity.ExchangeRate worker-сервиса
func (r *RedisClient) GetRate(ctx context.Context, currency string) (float64, error) {
	key := fmt.Sprintf(exchangeRateKeyFmt, currency)

	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, fmt.Errorf("exchange rate for %s not found", currency)
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return 0, fmt.Errorf("failed to get exchange rate: %w", err)
	}

	var rate struct {
		Currency string  `json:"currency"`
		Rate     float64 `json:"rate"`
	}
	if err := json.Unmarshal([]byte(data), &rate); err != nil {
		return 0, fmt.Errorf("failed to unmarshal exchange rate: %w", err)
	}

	return rate.Rate, nil
}
