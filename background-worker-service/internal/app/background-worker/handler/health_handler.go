package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"motormarket/background-worker-service/internal/app/background-worker/service"
	"motormarket/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// HealthCheckHandler проверяет зависимости worker'а:
// PostgreSQL, MongoDB, Redis и свежесть курсов валют
type HealthCheckHandler struct {
	db          *gorm.DB
	mongoClient *mongo.Client
	redisClient *redis.Client
	exchangeSvc service.ExchangeRateServiceInterface
}

func NewHealthCheckHandler(
	db *gorm.DB,
	mongoClient *mongo.Client,
	redisClient *redis.Client,
	exchangeSvc service.ExchangeRateServiceInterface,
) *HealthCheckHandler {
	return &HealthCheckHandler{
		db:          db,
		mongoClient: mongoClient,
		redisClient: redisClient,
		exchangeSvc: exchangeSvc,
	}
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}

func (h *HealthCheckHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	overallStatus := "healthy"

	if err := h.checkDatabase(ctx); err != nil {
		checks["database"] = "unhealthy: " + err.Error()
		overallStatus = "unhealthy"
	} else {
		checks["database"] = "healthy"
	}

	if err := h.mongoClient.Ping(ctx, nil); err != nil {
		checks["mongodb"] = "unhealthy: " + err.Error()
		overallStatus = "unhealthy"
	} else {
		checks["mongodb"] = "healthy"
	}

	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		checks["redis"] = "unhealthy: " + err.Error()
		overallStatus = "unhealthy"
	} else {
		checks["redis"] = "healthy"
	}

	// Отсутствие курсов не делает worker нездоровым:
	// fallback на кэш описан в checkExchangeRates
	if err := h.checkExchangeRates(ctx); err != nil {
		checks["exchange_rates"] = "warning: " + err.Error()
	} else {
		checks["exchange_rates"] = "healthy"
	}

	response := HealthResponse{
		Status:    overallStatus,
		Service:   "background-worker",
		Checks:    checks,
		Timestamp: time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")

	if overallStatus != "healthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	json.NewEncoder(w).Encode(response)
}

func (h *HealthCheckHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.checkDatabase(ctx); err != nil {
		http.Error(w, "database not ready", http.StatusServiceUnavailable)
		return
	}

	if err := h.mongoClient.Ping(ctx, nil); err != nil {
		http.Error(w, "mongodb not ready", http.StatusServiceUnavailable)
		return
	}

	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		http.Error(w, "redis not ready", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

func (h *HealthCheckHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("alive"))
}

func (h *HealthCheckHandler) checkDatabase(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (h *HealthCheckHandler) checkExchangeRates(ctx context.Context) error {
	rate, err := h.exchangeSvc.GetRate(ctx, "USD")
	if err != nil {
		return err
	}

	age := time.Since(rate.UpdatedAt)
	if age > 2*time.Hour {
		logger.Warn().Dur("age", age).Msg("exchange rate for USD is outdated")
	}

	return nil
}

func (h *HealthCheckHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.HealthCheck)
	mux.HandleFunc("/health/readiness", h.Readiness)
	mux.HandleFunc("/health/liveness", h.Liveness)
}
