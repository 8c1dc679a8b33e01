package service

import (
	"context"
	"fmt"
	"time"

	"motormarket/background-worker-service/internal/app/background-worker/entity"
	"motormarket/background-worker-service/internal/app/background-worker/repository"
	"motormarket/pkg/logger"
	"motormarket/pkg/metrics"
)

const serviceName = "background-worker"

// ExchangeRateService управляет получением и хранением курсов валют
type ExchangeRateService struct {
	rateRepo  repository.ExchangeRateRepository
	apiClient ExchangeRateAPIClient
}

// NewExchangeRateService создает новый сервис курсов валют
func NewExchangeRateService(
	rateRepo repository.ExchangeRateRepository,
	apiClient ExchangeRateAPIClient,
) *ExchangeRateService {
	return &ExchangeRateService{
		rateRepo:  rateRepo,
		apiClient: apiClient,
	}
}

// FetchAndStoreRates получает курсы валют из внешнего API и сохраняет в Redis
// Вызывается по cron расписанию. При недоступности API не возвращает ошибку:
// marketplace продолжит работать с кэшированными курсами
func (s *ExchangeRateService) FetchAndStoreRates(ctx context.Context) error {
	rates, err := s.apiClient.FetchRates(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to fetch rates from API, continuing with cached rates")
		metrics.WorkerExchangeRateUpdates.WithLabelValues("failed").Inc()
		return nil
	}

	exchangeRates := make([]*entity.ExchangeRate, 0, len(rates))
	now := time.Now()

	for currency, rate := range rates {
		exchangeRates = append(exchangeRates, &entity.ExchangeRate{
			Currency:  currency,
			Rate:      rate,
			UpdatedAt: now,
		})
	}

	if err := s.rateRepo.SetMultiple(ctx, exchangeRates); err != nil {
		metrics.WorkerExchangeRateUpdates.WithLabelValues("failed").Inc()
		return fmt.Errorf("failed to store rates in redis: %w", err)
	}

	metrics.WorkerExchangeRateUpdates.WithLabelValues("success").Inc()
	logger.Info().Int("count", len(exchangeRates)).Msg("exchange rates updated")
	return nil
}

// GetRate получает курс валюты из Redis
func (s *ExchangeRateService) GetRate(ctx context.Context, currency string) (*entity.ExchangeRate, error) {
	rate, err := s.rateRepo.Get(ctx, currency)
	if err != nil {
		return nil, fmt.Errorf("failed to get rate for %s: %w", currency, err)
	}

	// Курс старше двух часов означает что API давно недоступен
	age := time.Since(rate.UpdatedAt)
	if age > 2*time.Hour {
		logger.Warn().
			Str("currency", currency).
			Dur("age", age).
			Msg("using outdated exchange rate")
	}

	return rate, nil
}

// ConvertCurrency конвертирует сумму из одной валюты в другую
// Возвращает сконвертированную сумму и использованный курс
func (s *ExchangeRateService) ConvertCurrency(ctx context.Context, amount float64, fromCurrency, toCurrency string) (float64, float64, error) {
	if fromCurrency == toCurrency {
		return amount, 1.0, nil
	}

	rates, err := s.rateRepo.GetMultiple(ctx, []string{fromCurrency, toCurrency})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get rates for conversion: %w", err)
	}

	fromRate, ok := rates[fromCurrency]
	if !ok {
		return 0, 0, fmt.Errorf("rate for %s not found", fromCurrency)
	}

	toRate, ok := rates[toCurrency]
	if !ok {
		return 0, 0, fmt.Errorf("rate for %s not found", toCurrency)
	}

	// Курсы хранятся относительно USD: amount * (toRate / fromRate)
	exchangeRate := toRate.Rate / fromRate.Rate
	convertedAmount := amount * exchangeRate

	return convertedAmount, exchangeRate, nil
}

// EnsureRatesAvailable проверяет наличие курсов в Redis
// Если хотя бы одного курса нет, запрашивает все из API
func (s *ExchangeRateService) EnsureRatesAvailable(ctx context.Context) error {
	for _, currency := range entity.SupportedCurrencies {
		exists, err := s.rateRepo.Exists(ctx, currency)
		if err != nil {
			return fmt.Errorf("failed to check rate existence: %w", err)
		}

		if !exists {
			logger.Info().Str("currency", currency).Msg("rate not cached, fetching from API")
			return s.FetchAndStoreRates(ctx)
		}
	}

	return nil
}
