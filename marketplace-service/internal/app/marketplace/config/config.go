package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config содержит все настройки приложения Marketplace Service
// Включает конфигурацию для HTTP сервера, MongoDB, Redis, Kafka, JWT и загрузок
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Redis   RedisConfig
	Kafka   KafkaConfig
	JWT     JWTConfig
	Uploads UploadsConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8080)
}

// MongoDBConfig - настройки подключения к MongoDB
// Хранит объявления, избранное и оценки
type MongoDBConfig struct {
	URI      string // Строка подключения MongoDB
	Database string // Имя базы данных
}

// RedisConfig - настройки подключения к Redis
// Кеш списка одобренных объявлений и чтение курсов валют воркера
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// KafkaConfig - настройки Kafka для отправки событий
// VehicleTopic - события жизненного цикла объявлений
// NotificationTopic - события модерации для email-уведомлений
// AnalyticsTopic - события поведения пользователей
type KafkaConfig struct {
	Brokers           []string
	VehicleTopic      string
	NotificationTopic string
	AnalyticsTopic    string
}

// JWTConfig - настройки для проверки JWT токенов
// Секрет должен совпадать с Auth Service
type JWTConfig struct {
	Secret string
}

// UploadsConfig - учетные данные файлового хостинга для подписи прямых загрузок
type UploadsConfig struct {
	APIKey    string
	APISecret string
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "marketplace_service"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers:           strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			VehicleTopic:      getEnv("KAFKA_VEHICLE_TOPIC", "vehicle_events"),
			NotificationTopic: getEnv("KAFKA_NOTIFICATION_TOPIC", "notification_events"),
			AnalyticsTopic:    getEnv("KAFKA_ANALYTICS_TOPIC", "analytics_events"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		},
		Uploads: UploadsConfig{
			APIKey:    getEnv("UPLOADS_API_KEY", ""),
			APISecret: getEnv("UPLOADS_API_SECRET", ""),
		},
	}, nil
}

// Address возвращает адрес сервера в формате host:port для HTTP сервера
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port для подключения
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
