package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"motormarket/background-worker-service/internal/app/background-worker/entity"

	"github.com/stretchr/testify/assert"
)

// ===================== ExchangeRateAPIClient Tests =====================

func TestFetchRates_Success(t *testing.T) {
	expectedRates := map[string]float64{
		"USD": 1.0,
		"EUR": 0.93,
		"HNL": 24.75,
		"MXN": 17.05,
	}

	apiResponse := entity.ExchangeRatesResponse{
		Base:  "USD",
		Date:  "2025-06-10",
		Rates: expectedRates,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(apiResponse)
	}))
	defer server.Close()

	client := NewExchangeRateAPIClient(server.URL, 10)
	ctx := context.Background()

	rates, err := client.FetchRates(ctx)

	assert.NoError(t, err)
	assert.Equal(t, expectedRates, rates)
	assert.Equal(t, 1.0, rates["USD"])
	assert.Equal(t, 24.75, rates["HNL"])
}

func TestFetchRates_HTTPError_500(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := NewExchangeRateAPIClient(server.URL, 10)
	ctx := context.Background()

	rates, err := client.FetchRates(ctx)

	assert.Error(t, err)
	assert.Nil(t, rates)
	assert.Contains(t, err.Error(), "API returned status 500")
}

func TestFetchRates_HTTPError_404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("Not Found"))
	}))
	defer server.Close()

	client := NewExchangeRateAPIClient(server.URL, 10)
	ctx := context.Background()

	rates, err := client.FetchRates(ctx)

	assert.Error(t, err)
	assert.Nil(t, rates)
	assert.Contains(t, err.Error(), "API returned status 404")
}

func TestFetchRates_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("invalid json {{{"))
	}))
	defer server.Close()

	client := NewExchangeRateAPIClient(server.URL, 10)
	ctx := context.Background()

	rates, err := client.FetchRates(ctx)

	assert.Error(t, err)
	assert.Nil(t, rates)
	assert.Contains(t, err.Error(), "failed to unmarshal")
}

func TestFetchRates_EmptyResponse(t *testing.T) {
	apiResponse := entity.ExchangeRatesResponse{
		Base:  "USD",
		Date:  "2025-06-10",
		Rates: map[string]float64{},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(apiResponse)
	}))
	defer server.Close()

	client := NewExchangeRateAPIClient(server.URL, 10)
	ctx := context.Background()

	rates, err := client.FetchRates(ctx)

	assert.NoError(t, err)
	assert.NotNil(t, rates)
	assert.Empty(t, rates)
}

func TestFetchRates_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(5 * time.Second)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewExchangeRateAPIClient(server.URL, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rates, err := client.FetchRates(ctx)

	assert.Error(t, err)
	assert.Nil(t, rates)
}

func TestFetchRates_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(3 * time.Second)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewExchangeRateAPIClient(server.URL, 1)
	ctx := context.Background()

	rates, err := client.FetchRates(ctx)

	assert.Error(t, err)
	assert.Nil(t, rates)
	assert.Contains(t, err.Error(), "failed to execute request")
}

func TestFetchRates_ConnectionRefused(t *testing.T) {
	client := NewExchangeRateAPIClient("http://localhost:59999/rates", 1)
	ctx := context.Background()

	rates, err := client.FetchRates(ctx)

	assert.Error(t, err)
	assert.Nil(t, rates)
	assert.Contains(t, err.Error(), "failed to execute request")
}

func TestNewExchangeRateAPIClient(t *testing.T) {
	client := NewExchangeRateAPIClient("https://api.example.com/rates", 30)

	assert.NotNil(t, client)
	assert.Equal(t, "https://api.example.com/rates", client.apiURL)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}
