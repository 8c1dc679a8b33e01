package service

import (
	"context"

	"motormarket/background-worker-service/internal/app/background-worker/entity"
)

// ExchangeRateServiceInterface определяет интерфейс для работы с курсами валют
type ExchangeRateServiceInterface interface {
	// FetchAndStoreRates получает курсы валют из внешнего API и сохраняет в Redis
	FetchAndStoreRates(ctx context.Context) error
	// GetRate получает курс валюты из Redis
	GetRate(ctx context.Context, currency string) (*entity.ExchangeRate, error)
	// ConvertCurrency конвертирует сумму из одной валюты в другую
	ConvertCurrency(ctx context.Context, amount float64, from, to string) (float64, float64, error)
	// EnsureRatesAvailable проверяет наличие курсов в Redis
	EnsureRatesAvailable(ctx context.Context) error
}

// ExchangeRateAPIClient определяет интерфейс для внешнего API курсов валют
type ExchangeRateAPIClient interface {
	// FetchRates получает курсы валют из внешнего API
	FetchRates(ctx context.Context) (map[string]float64, error)
}

// EventHandler обрабатывает одно сообщение из Kafka топика
type EventHandler interface {
	HandleMessage(ctx context.Context, value []byte) error
}
