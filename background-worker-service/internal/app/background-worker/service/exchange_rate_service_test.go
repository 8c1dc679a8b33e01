package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"motormarket/background-worker-service/internal/app/background-worker/entity"
	"motormarket/background-worker-service/internal/app/background-worker/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// ===================== FetchAndStoreRates Tests =====================

func TestFetchAndStoreRates_Success(t *testing.T) {
	rateRepo := new(mocks.MockExchangeRateRepository)
	apiClient := new(mocks.MockExchangeRateAPIClient)

	service := NewExchangeRateService(rateRepo, apiClient)

	ctx := context.Background()

	apiRates := map[string]float64{
		"USD": 1.0,
		"EUR": 0.93,
		"HNL": 24.75,
	}

	apiClient.On("FetchRates", ctx).Return(apiRates, nil)
	rateRepo.On("SetMultiple", ctx, mock.AnythingOfType("[]*entity.ExchangeRate")).Return(nil)

	err := service.FetchAndStoreRates(ctx)

	assert.NoError(t, err)
	apiClient.AssertExpectations(t)
	rateRepo.AssertExpectations(t)
}

func TestFetchAndStoreRates_APIError_ContinuesWithCache(t *testing.T) {
	// API недоступен - worker продолжает работу с кэшированными курсами
	rateRepo := new(mocks.MockExchangeRateRepository)
	apiClient := new(mocks.MockExchangeRateAPIClient)

	service := NewExchangeRateService(rateRepo, apiClient)

	ctx := context.Background()

	apiClient.On("FetchRates", ctx).Return(nil, errors.New("api unavailable"))

	err := service.FetchAndStoreRates(ctx)

	assert.NoError(t, err) // Fallback на кэш, не ошибка
	apiClient.AssertExpectations(t)
	rateRepo.AssertNotCalled(t, "SetMultiple")
}

func TestFetchAndStoreRates_RedisError(t *testing.T) {
	rateRepo := new(mocks.MockExchangeRateRepository)
	apiClient := new(mocks.MockExchangeRateAPIClient)

	service := NewExchangeRateService(rateRepo, apiClient)

	ctx := context.Background()

	apiRates := map[string]float64{"USD": 1.0}

	apiClient.On("FetchRates", ctx).Return(apiRates, nil)
	rateRepo.On("SetMultiple", ctx, mock.Anything).Return(errors.New("redis error"))

	err := service.FetchAndStoreRates(ctx)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to store rates")
}

// ===================== GetRate Tests =====================

func TestGetRate_Success(t *testing.T) {
	rateRepo := new(mocks.MockExchangeRateRepository)
	apiClient := new(mocks.MockExchangeRateAPIClient)

	service := NewExchangeRateService(rateRepo, apiClient)

	ctx := context.Background()

	expectedRate := &entity.ExchangeRate{
		Currency:  "USD",
		Rate:      1.0,
		UpdatedAt: time.Now(),
	}

	rateRepo.On("Get", ctx, "USD").Return(expectedRate, nil)

	rate, err := service.GetRate(ctx, "USD")

	assert.NoError(t, err)
	assert.Equal(t, expectedRate.Currency, rate.Currency)
	assert.Equal(t, expectedRate.Rate, rate.Rate)
}

func TestGetRate_NotFound(t *testing.T) {
	rateRepo := new(mocks.MockExchangeRateRepository)
	apiClient := new(mocks.MockExchangeRateAPIClient)

	service := NewExchangeRateService(rateRepo, apiClient)

	ctx := context.Background()

	rateRepo.On("Get", ctx, "XYZ").Return(nil, errors.New("rate not found"))

	rate, err := service.GetRate(ctx, "XYZ")

	assert.Error(t, err)
	assert.Nil(t, rate)
}

// ===================== ConvertCurrency Tests =====================

func TestConvertCurrency_USDtoHNL(t *testing.T) {
	// Конвертация 15000 USD -> HNL при курсе USD=1, HNL=24.75
	rateRepo := new(mocks.MockExchangeRateRepository)
	apiClient := new(mocks.MockExchangeRateAPIClient)

	service := NewExchangeRateService(rateRepo, apiClient)

	ctx := context.Background()

	rates := map[string]*entity.ExchangeRate{
		"USD": {Currency: "USD", Rate: 1.0, UpdatedAt: time.Now()},
		"HNL": {Currency: "HNL", Rate: 24.75, UpdatedAt: time.Now()},
	}

	rateRepo.On("GetMultiple", ctx, []string{"USD", "HNL"}).Return(rates, nil)

	converted, exchangeRate, err := service.ConvertCurrency(ctx, 15000.0, "USD", "HNL")

	assert.NoError(t, err)
	assert.InDelta(t, 371250.0, converted, 0.01)
	assert.InDelta(t, 24.75, exchangeRate, 0.01)
}

func TestConvertCurrency_SameCurrency(t *testing.T) {
	rateRepo := new(mocks.MockExchangeRateRepository)
	apiClient := new(mocks.MockExchangeRateAPIClient)

	service := NewExchangeRateService(rateRepo, apiClient)

	ctx := context.Background()

	converted, exchangeRate, err := service.ConvertCurrency(ctx, 100.0, "USD", "USD")

	assert.NoError(t, err)
	assert.Equal(t, 100.0, converted)
	assert.Equal(t, 1.0, exchangeRate)
	rateRepo.AssertNotCalled(t, "GetMultiple")
}

func TestConvertCurrency_CrossRate(t *testing.T) {
	// Конвертация 100 EUR -> HNL при курсах EUR=0.93, HNL=24.75
	rateRepo := new(mocks.MockExchangeRateRepository)
	apiClient := new(mocks.MockExchangeRateAPIClient)

	service := NewExchangeRateService(rateRepo, apiClient)

	ctx := context.Background()

	rates := map[string]*entity.ExchangeRate{
		"EUR": {Currency: "EUR", Rate: 0.93, UpdatedAt: time.Now()},
		"HNL": {Currency: "HNL", Rate: 24.75, UpdatedAt: time.Now()},
	}

	rateRepo.On("GetMultiple", ctx, []string{"EUR", "HNL"}).Return(rates, nil)

	converted, exchangeRate, err := service.ConvertCurrency(ctx, 100.0, "EUR", "HNL")

	assert.NoError(t, err)
	expectedRate := 24.75 / 0.93
	assert.InDelta(t, 100.0*expectedRate, converted, 0.01)
	assert.InDelta(t, expectedRate, exchangeRate, 0.01)
}

func TestConvertCurrency_FromCurrencyNotFound(t *testing.T) {
	rateRepo := new(mocks.MockExchangeRateRepository)
	apiClient := new(mocks.MockExchangeRateAPIClient)

	service := NewExchangeRateService(rateRepo, apiClient)

	ctx := context.Background()

	rates := map[string]*entity.ExchangeRate{
		"HNL": {Currency: "HNL", Rate: 24.75, UpdatedAt: time.Now()},
		// USD отсутствует
	}

	rateRepo.On("GetMultiple", ctx, []string{"USD", "HNL"}).Return(rates, nil)

	_, _, err := service.ConvertCurrency(ctx, 100.0, "USD", "HNL")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "rate for USD not found")
}

func TestConvertCurrency_ToCurrencyNotFound(t *testing.T) {
	rateRepo := new(mocks.MockExchangeRateRepository)
	apiClient := new(mocks.MockExchangeRateAPIClient)

	service := NewExchangeRateService(rateRepo, apiClient)

	ctx := context.Background()

	rates := map[string]*entity.ExchangeRate{
		"USD": {Currency: "USD", Rate: 1.0, UpdatedAt: time.Now()},
		// HNL отсутствует
	}

	rateRepo.On("GetMultiple", ctx, []string{"USD", "HNL"}).Return(rates, nil)

	_, _, err := service.ConvertCurrency(ctx, 100.0, "USD", "HNL")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "rate for HNL not found")
}

func TestConvertCurrency_RepoError(t *testing.T) {
	rateRepo := new(mocks.MockExchangeRateRepository)
	apiClient := new(mocks.MockExchangeRateAPIClient)

	service := NewExchangeRateService(rateRepo, apiClient)

	ctx := context.Background()

	rateRepo.On("GetMultiple", ctx, []string{"USD", "HNL"}).Return(nil, errors.New("redis error"))

	_, _, err := service.ConvertCurrency(ctx, 100.0, "USD", "HNL")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get rates")
}

// ===================== EnsureRatesAvailable Tests =====================

func TestEnsureRatesAvailable_AllExist(t *testing.T) {
	rateRepo := new(mocks.MockExchangeRateRepository)
	apiClient := new(mocks.MockExchangeRateAPIClient)

	service := NewExchangeRateService(rateRepo, apiClient)

	ctx := context.Background()

	for _, currency := range entity.SupportedCurrencies {
		rateRepo.On("Exists", ctx, currency).Return(true, nil)
	}

	err := service.EnsureRatesAvailable(ctx)

	assert.NoError(t, err)
	apiClient.AssertNotCalled(t, "FetchRates")
}

func TestEnsureRatesAvailable_MissingRate_FetchesFromAPI(t *testing.T) {
	rateRepo := new(mocks.MockExchangeRateRepository)
	apiClient := new(mocks.MockExchangeRateAPIClient)

	service := NewExchangeRateService(rateRepo, apiClient)

	ctx := context.Background()

	// Первая валюта отсутствует
	rateRepo.On("Exists", ctx, entity.SupportedCurrencies[0]).Return(false, nil)

	apiRates := map[string]float64{"USD": 1.0, "HNL": 24.75}
	apiClient.On("FetchRates", ctx).Return(apiRates, nil)
	rateRepo.On("SetMultiple", ctx, mock.Anything).Return(nil)

	err := service.EnsureRatesAvailable(ctx)

	assert.NoError(t, err)
	apiClient.AssertExpectations(t)
}
