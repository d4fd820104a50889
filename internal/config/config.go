package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the analytics service
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Redis    RedisConfig    `mapstructure:"redis"`
	NATS     NATSConfig     `mapstructure:"nats"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Sentry   SentryConfig   `mapstructure:"sentry"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Reports  ReportsConfig  `mapstructure:"reports"`
}

// AppConfig holds application configuration
type AppConfig struct {
	Name           string `mapstructure:"name"`
	Env            string `mapstructure:"env"`
	Port           string `mapstructure:"port"`
	AllowedOrigins string `mapstructure:"allowed_origins"`
}

// RedisConfig holds Redis cache configuration
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL string `mapstructure:"url"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// SentryConfig holds Sentry error tracking configuration
type SentryConfig struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
	Release     string `mapstructure:"release"`
}

// UpstreamConfig holds URLs for the Shopsy backend API
type UpstreamConfig struct {
	OrdersURL        string `mapstructure:"orders_url"`
	NotificationsURL string `mapstructure:"notifications_url"`
}

// ReportsConfig holds aggregation pipeline configuration
type ReportsConfig struct {
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Automatically load environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("") // No prefix, read exact variable names

	// Bind specific environment variables
	_ = v.BindEnv("app.name", "APP_NAME")
	_ = v.BindEnv("app.env", "APP_ENV")
	_ = v.BindEnv("app.port", "APP_PORT")
	_ = v.BindEnv("app.allowed_origins", "ALLOWED_ORIGINS")

	// Redis
	_ = v.BindEnv("redis.host", "REDIS_HOST")
	_ = v.BindEnv("redis.port", "REDIS_PORT")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("redis.db", "REDIS_DB")

	_ = v.BindEnv("nats.url", "NATS_URL")

	_ = v.BindEnv("jwt.secret", "JWT_SECRET")

	_ = v.BindEnv("sentry.dsn", "SENTRY_DSN")
	_ = v.BindEnv("sentry.environment", "APP_ENV")
	_ = v.BindEnv("sentry.release", "APP_VERSION")

	// Upstream services
	_ = v.BindEnv("upstream.orders_url", "SERVICE_ORDERS_URL")
	_ = v.BindEnv("upstream.notifications_url", "SERVICE_NOTIFICATIONS_URL")

	// Reports
	_ = v.BindEnv("reports.cache_ttl", "REPORT_CACHE_TTL")
	_ = v.BindEnv("reports.poll_interval", "REPORT_POLL_INTERVAL")

	// Set defaults
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "service-analytics")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8011")
	v.SetDefault("app.allowed_origins", "http://localhost:5173,http://localhost:3000")

	// Redis
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// NATS
	v.SetDefault("nats.url", "nats://localhost:4222")

	// Upstream
	v.SetDefault("upstream.orders_url", "http://localhost:5000")
	v.SetDefault("upstream.notifications_url", "http://localhost:5000")

	// Reports
	v.SetDefault("reports.cache_ttl", 10*time.Minute)
	v.SetDefault("reports.poll_interval", 5*time.Minute)

	// Sentry
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "development")
	v.SetDefault("sentry.release", "1.0.0")
}
