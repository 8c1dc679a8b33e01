//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"motormarket/marketplace-service/internal/app/marketplace/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// MarketplaceURL - адрес запущенного marketplace-service
	// AuthURL - адрес запущенного auth-service
	// Для E2E тестов сервисы должны быть запущены через docker-compose
	MarketplaceURL = "http://localhost:8080"
	AuthURL        = "http://localhost:8081"
)

type vehicleEnvelope struct {
	Success bool           `json:"success"`
	Data    entity.Vehicle `json:"data"`
}

type listEnvelope struct {
	Success bool                       `json:"success"`
	Data    entity.VehicleListResponse `json:"data"`
}

// registerAndLogin регистрирует пользователя в auth-service и возвращает access токен
func registerAndLogin(t *testing.T, client *http.Client, email, password, name string) string {
	t.Helper()

	payload, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	})

	resp, err := client.Post(AuthURL+"/auth/register", "application/json", bytes.NewBuffer(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var env struct {
		Data struct {
			Tokens struct {
				AccessToken string `json:"access_token"`
			} `json:"tokens"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.NotEmpty(t, env.Data.Tokens.AccessToken)

	return env.Data.Tokens.AccessToken
}

func doRequest(t *testing.T, client *http.Client, method, url string, payload interface{}, token string) *http.Response {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

// TestSellerListingFlow тестирует путь продавца через оба сервиса:
// 1. Регистрация продавца в auth-service
// 2. Создание объявления в marketplace-service
// 3. Объявление видно в "моих объявлениях" со статусом pending
// 4. Объявление отсутствует в публичном списке до одобрения
func TestSellerListingFlow(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	email := fmt.Sprintf("e2e-seller-%d@example.com", time.Now().UnixNano())

	// ==================== Step 1: Register seller ====================
	t.Log("Step 1: Registering seller in auth-service")

	token := registerAndLogin(t, client, email, "securepassword123", "E2E Seller")

	// ==================== Step 2: Create listing ====================
	t.Log("Step 2: Creating vehicle listing")

	resp := doRequest(t, client, http.MethodPost, MarketplaceURL+"/vehicles/", entity.CreateVehicleRequest{
		Category:     "cars",
		Brand:        "Toyota",
		Model:        "Corolla",
		Year:         2020,
		Price:        15000,
		Currency:     "USD",
		Condition:    "used",
		Mileage:      45000,
		Transmission: "automatic",
		Fuel:         "gasoline",
		Description:  "Vehiculo de prueba E2E en excelente estado.",
		SellerPhone:  "+504 9999-9999",
	}, token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created vehicleEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, entity.StatusPending, created.Data.Status)
	vehicleID := created.Data.ID.Hex()

	// ==================== Step 3: Visible in own listings ====================
	t.Log("Step 3: Checking listing appears in /vehicles/mine")

	resp = doRequest(t, client, http.MethodGet, MarketplaceURL+"/vehicles/mine", nil, token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var mine listEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&mine))

	found := false
	for _, v := range mine.Data.Vehicles {
		if v.ID.Hex() == vehicleID {
			found = true
			assert.Equal(t, entity.StatusPending, v.Status)
		}
	}
	assert.True(t, found, "created listing should appear in own listings")

	// ==================== Step 4: Hidden from public list ====================
	t.Log("Step 4: Checking pending listing is hidden from public list")

	resp = doRequest(t, client, http.MethodGet, MarketplaceURL+"/vehicles/?q=Corolla", nil, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var public listEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&public))
	for _, v := range public.Data.Vehicles {
		assert.NotEqual(t, vehicleID, v.ID.Hex(), "pending listing must not be public")
	}
}

// TestPublicBrowsingFlow проверяет публичные эндпоинты без аутентификации
func TestPublicBrowsingFlow(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	t.Log("Step 1: Checking marketplace health")

	resp, err := client.Get(MarketplaceURL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	t.Log("Step 2: Browsing public listings anonymously")

	resp, err = client.Get(MarketplaceURL + "/vehicles/?sort=price_asc&page=1&page_size=10")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page listEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
	assert.True(t, page.Success)

	t.Log("Step 3: Checking protected endpoint rejects anonymous access")

	resp, err = client.Get(MarketplaceURL + "/favorites/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
