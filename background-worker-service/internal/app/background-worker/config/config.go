package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config содержит все настройки background worker'а:
// PostgreSQL (агрегаты аналитики), MongoDB (сырые события),
// Redis (курсы валют), Kafka, SMTP и внешний API валют
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Mongo        MongoConfig
	Redis        RedisConfig
	Kafka        KafkaConfig
	SMTP         SMTPConfig
	Frontend     FrontendConfig
	ExchangeAPI  ExchangeAPIConfig
	CronSchedule CronScheduleConfig
}

// ServerConfig - настройки HTTP сервера health/metrics
type ServerConfig struct {
	Host string
	Port string
}

// DatabaseConfig - настройки подключения к PostgreSQL
// Используется для таблицы daily_stats
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// MongoConfig - настройки подключения к MongoDB
// Используется для коллекции analytics_events
type MongoConfig struct {
	URI      string
	Database string
}

// RedisConfig - настройки подключения к Redis
// Используется для хранения курсов валют с TTL
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration // TTL для курсов валют
}

// KafkaConfig - настройки Kafka для подписки на события
// NotificationTopic - письма продавцам и сброс пароля
// AnalyticsTopic - события поведения пользователей
type KafkaConfig struct {
	Brokers           []string
	NotificationTopic string
	AnalyticsTopic    string
	GroupID           string
	MinBytes          int
	MaxBytes          int
}

// SMTPConfig - настройки отправки почты
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// FrontendConfig - внешние URL, попадающие в письма
type FrontendConfig struct {
	PasswordResetURL string
}

// ExchangeAPIConfig - настройки внешнего API курсов валют
type ExchangeAPIConfig struct {
	URL     string
	Timeout int // Таймаут запроса в секундах
}

// CronScheduleConfig - расписание фоновых задач
type CronScheduleConfig struct {
	UpdateRates string // Расписание обновления курсов валют
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// TTL для курсов валют (по умолчанию 60 минут: запас к 30-минутному cron)
	ttlMinutes := getEnvInt("REDIS_RATES_TTL_MINUTES", 60)

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8082"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "analytics_stats"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "marketplace_analytics"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(ttlMinutes) * time.Minute,
		},
		Kafka: KafkaConfig{
			Brokers:           strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			NotificationTopic: getEnv("KAFKA_NOTIFICATION_TOPIC", "notification_events"),
			AnalyticsTopic:    getEnv("KAFKA_ANALYTICS_TOPIC", "analytics_events"),
			GroupID:           getEnv("KAFKA_GROUP_ID", "background-worker-group"),
			MinBytes:          getEnvInt("KAFKA_MIN_BYTES", 1),
			MaxBytes:          getEnvInt("KAFKA_MAX_BYTES", 10e6),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     getEnv("SMTP_PORT", "1025"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "no-reply@motormarket.local"),
		},
		Frontend: FrontendConfig{
			PasswordResetURL: getEnv("FRONTEND_PASSWORD_RESET_URL", "https://motormarket.hn/reset-password"),
		},
		ExchangeAPI: ExchangeAPIConfig{
			URL:     getEnv("EXCHANGE_API_URL", "https://api.exchangerate-api.com/v4/latest/USD"),
			Timeout: getEnvInt("EXCHANGE_API_TIMEOUT", 10),
		},
		CronSchedule: CronScheduleConfig{
			// По умолчанию обновляем курсы каждые 30 минут
			UpdateRates: getEnv("CRON_UPDATE_RATES", "@every 30m"),
		},
	}, nil
}

// DSN возвращает строку подключения к PostgreSQL в формате libpq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Address возвращает адрес Redis в формате host:port
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес HTTP сервера
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес SMTP сервера
func (c *SMTPConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
