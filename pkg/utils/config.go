package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Storage    StorageConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Mongo      MongoConfig
	Maps       MapsConfig
	Catalog    CatalogConfig
	Prediction PredictionConfig
	Booking    BookingConfig
	Admin      AdminConfig
	RateLimit  RateLimitConfig
	CORS       CORSConfig
	Events     EventsConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

// StorageConfig selects the document store: file, memory, postgres, redis or mongo.
type StorageConfig struct {
	Driver     string
	Dir        string
	QuotaBytes int64
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

type MapsConfig struct {
	APIKey  string
	BaseURL string
	Country string
	Timeout time.Duration
}

type CatalogConfig struct {
	Timeout         time.Duration
	MaxRetries      int
	RetryDelay      time.Duration
	DefaultRadiusKm float64
}

type PredictionConfig struct {
	URL     string
	Timeout time.Duration
}

type BookingConfig struct {
	FailOpen      bool
	RetentionDays int
}

type AdminConfig struct {
	KeyHash string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type EventsConfig struct {
	SQSQueueURL string
	AWSRegion   string
}

func setDefaults() {
	viper.SetDefault("APP_NAME", "smartpark")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")

	viper.SetDefault("STORAGE_DRIVER", "file")
	viper.SetDefault("STORAGE_DIR", "data/")
	viper.SetDefault("STORAGE_QUOTA_BYTES", 5*1024*1024)

	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_KEY_PREFIX", "smartpark:")

	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "smartpark")
	viper.SetDefault("MONGO_COLLECTION", "documents")

	viper.SetDefault("MAPS_BASE_URL", "https://maps.googleapis.com")
	viper.SetDefault("MAPS_COUNTRY", "in")
	viper.SetDefault("MAPS_TIMEOUT_SECONDS", 5)

	viper.SetDefault("CATALOG_TIMEOUT_SECONDS", 8)
	viper.SetDefault("CATALOG_MAX_RETRIES", 2)
	viper.SetDefault("CATALOG_RETRY_DELAY_MS", 1000)
	viper.SetDefault("CATALOG_DEFAULT_RADIUS_KM", 50)

	viper.SetDefault("PREDICTION_URL", "http://127.0.0.1:5000")
	viper.SetDefault("PREDICTION_TIMEOUT_SECONDS", 5)

	viper.SetDefault("BOOKING_FAIL_OPEN", true)
	viper.SetDefault("BOOKING_RETENTION_DAYS", 30)

	viper.SetDefault("RATE_LIMIT_RPS", 5)
	viper.SetDefault("RATE_LIMIT_BURST", 10)

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("AWS_REGION", "ap-south-1")
}

// LoadConfig reads .env when present, then lets the environment override it.
func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Storage: StorageConfig{
			Driver:     viper.GetString("STORAGE_DRIVER"),
			Dir:        viper.GetString("STORAGE_DIR"),
			QuotaBytes: viper.GetInt64("STORAGE_QUOTA_BYTES"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:      viper.GetString("REDIS_ADDR"),
			Password:  viper.GetString("REDIS_PASSWORD"),
			DB:        viper.GetInt("REDIS_DB"),
			KeyPrefix: viper.GetString("REDIS_KEY_PREFIX"),
		},
		Mongo: MongoConfig{
			URI:        viper.GetString("MONGO_URI"),
			Database:   viper.GetString("MONGO_DB"),
			Collection: viper.GetString("MONGO_COLLECTION"),
		},
		Maps: MapsConfig{
			APIKey:  viper.GetString("GOOGLE_MAPS_API_KEY"),
			BaseURL: viper.GetString("MAPS_BASE_URL"),
			Country: viper.GetString("MAPS_COUNTRY"),
			Timeout: time.Duration(viper.GetInt("MAPS_TIMEOUT_SECONDS")) * time.Second,
		},
		Catalog: CatalogConfig{
			Timeout:         time.Duration(viper.GetInt("CATALOG_TIMEOUT_SECONDS")) * time.Second,
			MaxRetries:      viper.GetInt("CATALOG_MAX_RETRIES"),
			RetryDelay:      time.Duration(viper.GetInt("CATALOG_RETRY_DELAY_MS")) * time.Millisecond,
			DefaultRadiusKm: viper.GetFloat64("CATALOG_DEFAULT_RADIUS_KM"),
		},
		Prediction: PredictionConfig{
			URL:     viper.GetString("PREDICTION_URL"),
			Timeout: time.Duration(viper.GetInt("PREDICTION_TIMEOUT_SECONDS")) * time.Second,
		},
		Booking: BookingConfig{
			FailOpen:      viper.GetBool("BOOKING_FAIL_OPEN"),
			RetentionDays: viper.GetInt("BOOKING_RETENTION_DAYS"),
		},
		Admin: AdminConfig{
			KeyHash: viper.GetString("ADMIN_KEY_HASH"),
		},
		RateLimit: RateLimitConfig{
			RPS:   viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst: viper.GetInt("RATE_LIMIT_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Events: EventsConfig{
			SQSQueueURL: viper.GetString("SQS_QUEUE_URL"),
			AWSRegion:   viper.GetString("AWS_REGION"),
		},
	}

	return config, nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
