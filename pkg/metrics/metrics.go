package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики (общие для всех сервисов)
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Labels: service, method, path, status
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
// Пример: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Database Метрики (PostgreSQL и MongoDB)
// =============================================================================

// DbQueryDuration - время выполнения запросов к хранилищу
var DbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "collection"},
)

// DbErrors - счётчик ошибок хранилища
var DbErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Total number of database errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Redis Метрики
// =============================================================================

// RedisCacheHits - попадания в кеш
var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

// RedisCacheMisses - промахи кеша
var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

// RedisErrors - ошибки Redis
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka Метрики
// =============================================================================

// KafkaMessagesProduced - отправленные сообщения
var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

// KafkaMessagesConsumed - полученные сообщения
var KafkaMessagesConsumed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_consumed_total",
		Help: "Total number of Kafka messages consumed",
	},
	[]string{"service", "topic", "group"},
)

// KafkaProduceDuration - время отправки сообщения
var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

// KafkaConsumeDuration - время обработки сообщения
var KafkaConsumeDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_consume_duration_seconds",
		Help:    "Duration of Kafka message processing",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	},
	[]string{"service", "topic"},
)

// KafkaErrors - ошибки Kafka
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"}, // operation: produce, consume
)

// =============================================================================
// Business Метрики (специфичные для Motormarket)
// =============================================================================

// --- Auth Service ---

// AuthRegistrations - регистрации пользователей
var AuthRegistrations = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "auth_registrations_total",
		Help: "Total number of user registrations",
	},
)

// AuthLogins - попытки входа
var AuthLogins = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "auth_logins_total",
		Help: "Total number of login attempts",
	},
	[]string{"status"}, // success, failed
)

// AuthPasswordResets - запросы на сброс пароля
var AuthPasswordResets = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "auth_password_resets_total",
		Help: "Total number of password reset operations",
	},
	[]string{"stage"}, // requested, confirmed
)

// --- Marketplace Service ---

// ListingsCreated - созданные объявления
var ListingsCreated = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "listings_created_total",
		Help: "Total number of vehicle listings created",
	},
)

// ListingsByStatus - объявления по статусам модерации
var ListingsByStatus = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "listings_by_status",
		Help: "Number of vehicle listings by moderation status",
	},
	[]string{"status"}, // pending, approved, rejected
)

// ModerationDecisions - решения модераторов
var ModerationDecisions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "moderation_decisions_total",
		Help: "Total number of moderation decisions",
	},
	[]string{"decision"}, // approved, rejected
)

// RatingsSubmitted - распределение оценок
var RatingsSubmitted = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "ratings_submitted",
		Help:    "Distribution of submitted vehicle ratings",
		Buckets: []float64{1, 2, 3, 4, 5},
	},
)

// FavoritesToggled - переключения избранного
var FavoritesToggled = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "favorites_toggled_total",
		Help: "Total number of favorite toggles",
	},
	[]string{"action"}, // added, removed
)

// AnalyticsEventsIngested - принятые аналитические события
var AnalyticsEventsIngested = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "analytics_events_ingested_total",
		Help: "Total number of analytics events accepted for publishing",
	},
)

// --- Background Worker ---

// WorkerExchangeRateUpdates - обновления курсов валют
var WorkerExchangeRateUpdates = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "worker_exchange_rate_updates_total",
		Help: "Total number of exchange rate updates",
	},
	[]string{"status"}, // success, failed
)

// WorkerEventsProcessed - обработанные события из Kafka
var WorkerEventsProcessed = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "worker_events_processed_total",
		Help: "Total number of events processed by worker",
	},
	[]string{"event_type", "status"}, // status: success, failed
)

// WorkerEmailsSent - отправленные уведомления
var WorkerEmailsSent = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "worker_emails_sent_total",
		Help: "Total number of notification emails sent",
	},
	[]string{"kind", "status"}, // kind: approved, rejected, password_reset
)
