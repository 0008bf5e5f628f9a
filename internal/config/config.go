package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/logger"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"

	insecureDefaultSecret = "change-me-himalayan-nest"
)

// Config holds all configuration for the service.
type Config struct {
	ServiceName string `mapstructure:"SERVICE_NAME"`
	HTTPPort    string `mapstructure:"HTTP_PORT"`

	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`
	ListingStore  string `mapstructure:"LISTING_STORE"`
	PostgresDSN   string `mapstructure:"POSTGRES_DSN"`

	RedisAddress  string        `mapstructure:"REDIS_ADDRESS"`
	RedisCacheTTL time.Duration `mapstructure:"REDIS_CACHE_TTL"`
	NATSURL       string        `mapstructure:"NATS_URL"`

	MinIOEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinIOAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinIOSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinIOBucket    string `mapstructure:"MINIO_BUCKET"`
	MinIOUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`
	MinIOPublicURL string `mapstructure:"MINIO_PUBLIC_URL"`
	StorageFolder  string `mapstructure:"STORAGE_FOLDER"`

	JWTSecret            string `mapstructure:"JWT_SECRET"`
	CORSAllowedOrigins   string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	MaxUploadMB          int64  `mapstructure:"MAX_UPLOAD_MB"`
	SubscriptionRequired bool   `mapstructure:"SUBSCRIPTION_REQUIRED"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPEmail    string `mapstructure:"SMTP_EMAIL"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`

	PrometheusMetricsPort  string `mapstructure:"PROMETHEUS_METRICS_PORT"`
	LogLevel               string `mapstructure:"LOG_LEVEL"`
	LogFormat              string `mapstructure:"LOG_FORMAT"`
	LogOutputFile          string `mapstructure:"LOG_OUTPUT_FILE"`
	OTExporterOTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVICE_NAME", "himalayan-nest-api")
	v.SetDefault("HTTP_PORT", "5000")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "himalayan_nest")
	v.SetDefault("LISTING_STORE", StoreMongo)
	v.SetDefault("POSTGRES_DSN", "")
	v.SetDefault("REDIS_ADDRESS", "localhost:6379")
	v.SetDefault("REDIS_CACHE_TTL", "10m")
	v.SetDefault("NATS_URL", "nats://localhost:4222")
	v.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	v.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	v.SetDefault("MINIO_BUCKET", "himalayan-nest")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("MINIO_PUBLIC_URL", "")
	v.SetDefault("STORAGE_FOLDER", "himalayan-nest/properties")
	v.SetDefault("JWT_SECRET", insecureDefaultSecret)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("MAX_UPLOAD_MB", 50)
	v.SetDefault("SUBSCRIPTION_REQUIRED", false)
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_EMAIL", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("PROMETHEUS_METRICS_PORT", "9095")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", logger.FormatJSON)
	v.SetDefault("LOG_OUTPUT_FILE", logger.OutputStdout)
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
}

// LoadConfig reads configuration from environment variables. The .env file,
// if any, is loaded by main before this is called.
func LoadConfig(appLogger *logger.Logger) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		appLogger.Error("Failed to unmarshal configuration", zap.Error(err))
		return nil, err
	}
	cfg.ListingStore = strings.ToLower(strings.TrimSpace(cfg.ListingStore))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == insecureDefaultSecret {
		appLogger.Warn("JWT_SECRET is set to its default insecure value. Set a strong secret in your environment.")
	}

	appLogger.Debug("Configuration loaded",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTPPort),
		zap.String("listing_store", cfg.ListingStore),
		zap.String("mongo_database", cfg.MongoDatabase),
		zap.String("redis_address", cfg.RedisAddress),
		zap.String("nats_url", cfg.NATSURL),
		zap.String("minio_endpoint", cfg.MinIOEndpoint),
		zap.String("minio_bucket", cfg.MinIOBucket),
		zap.Bool("subscription_required", cfg.SubscriptionRequired),
		zap.String("prometheus_port", cfg.PrometheusMetricsPort),
		zap.String("otel_endpoint", cfg.OTExporterOTLPEndpoint),
	)
	return &cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	switch c.ListingStore {
	case StoreMongo:
	case StorePostgres:
		if c.PostgresDSN == "" {
			errs = append(errs, errors.New("POSTGRES_DSN is required when LISTING_STORE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown LISTING_STORE %q", c.ListingStore))
	}
	if c.MongoURI == "" || c.MongoDatabase == "" {
		errs = append(errs, errors.New("MONGO_URI and MONGO_DATABASE are required"))
	}
	if c.MaxUploadMB <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_MB must be positive"))
	}
	if c.MinIOBucket == "" {
		errs = append(errs, errors.New("MINIO_BUCKET is required"))
	}
	return errors.Join(errs...)
}

// Logging returns the logger settings carried by LOG_LEVEL, LOG_FORMAT and
// LOG_OUTPUT_FILE.
func (c *Config) Logging() *logger.LoggerConfig {
	return &logger.LoggerConfig{Level: c.LogLevel, Format: c.LogFormat, OutputFile: c.LogOutputFile}
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
