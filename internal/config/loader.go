package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "change-me-in-production"

// legacyAliases maps the variable names used by older deployments to the
// current keys.
var legacyAliases = map[string]string{
	"postgres_host":     "DB_HOST",
	"postgres_port":     "DB_PORT",
	"postgres_user":     "DB_USER",
	"postgres_password": "DB_PASSWORD",
	"postgres_db":       "DB_NAME",
}

// Load loads configuration from a .env file, config files and environment variables
func Load() (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyAliases {
		if err := v.BindEnv(key, strings.ToUpper(key), env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/jacare")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config

	// Server
	cfg.Server.Host = v.GetString("server_host")
	cfg.Server.Port = v.GetInt("server_port")
	cfg.Server.Env = v.GetString("server_env")
	cfg.Server.AllowOrigins = splitList(v.GetString("server_allow_origins"))

	// PostgreSQL
	cfg.Postgres.Host = v.GetString("postgres_host")
	cfg.Postgres.Port = v.GetInt("postgres_port")
	cfg.Postgres.User = v.GetString("postgres_user")
	cfg.Postgres.Password = v.GetString("postgres_password")
	cfg.Postgres.Database = v.GetString("postgres_db")
	cfg.Postgres.SSLMode = v.GetString("postgres_ssl_mode")
	cfg.Postgres.MaxConns = v.GetInt32("postgres_max_conns")
	cfg.Postgres.MinConns = v.GetInt32("postgres_min_conns")
	cfg.Postgres.AutoMigrate = v.GetBool("postgres_auto_migrate")

	// Redis
	cfg.Redis.Host = v.GetString("redis_host")
	cfg.Redis.Port = v.GetInt("redis_port")
	cfg.Redis.Password = v.GetString("redis_password")
	cfg.Redis.DB = v.GetInt("redis_db")

	// MinIO
	cfg.MinIO.Endpoint = v.GetString("minio_endpoint")
	cfg.MinIO.AccessKey = v.GetString("minio_access_key")
	cfg.MinIO.SecretKey = v.GetString("minio_secret_key")
	cfg.MinIO.UseSSL = v.GetBool("minio_use_ssl")
	cfg.MinIO.Bucket = v.GetString("minio_bucket")
	cfg.MinIO.URLExpiry = time.Duration(v.GetInt("minio_url_expiry_minutes")) * time.Minute

	// JWT
	cfg.JWT.Secret = v.GetString("jwt_secret")
	cfg.JWT.ExpiryHours = v.GetInt("jwt_expiry_hours")
	cfg.JWT.Expiry = time.Duration(cfg.JWT.ExpiryHours) * time.Hour
	cfg.JWT.Issuer = v.GetString("jwt_issuer")

	// Rate Limiting
	cfg.RateLimit.Enabled = v.GetBool("rate_limit_enabled")
	cfg.RateLimit.RequestsPerMinute = v.GetInt("rate_limit_requests_per_minute")

	// Worker
	cfg.Worker.Concurrency = v.GetInt("worker_concurrency")
	cfg.Worker.QueueCritical = v.GetString("worker_queue_critical")
	cfg.Worker.QueueDefault = v.GetString("worker_queue_default")
	cfg.Worker.QueueLow = v.GetString("worker_queue_low")
	cfg.Worker.StockScanCron = v.GetString("worker_stock_scan_cron")
	cfg.Worker.ExpenseScanCron = v.GetString("worker_expense_scan_cron")
	cfg.Worker.ExportRetention = v.GetInt("worker_export_retention")

	// Logging
	cfg.Log.Level = v.GetString("log_level")
	cfg.Log.Format = v.GetString("log_format")

	// Store
	cfg.Store.Name = v.GetString("store_name")
	cfg.Store.CNPJ = v.GetString("store_cnpj")
	cfg.Store.Address = v.GetString("store_address")
	cfg.Store.Phone = v.GetString("store_phone")

	// Cache
	cfg.Cache.TTL = v.GetDuration("cache_ttl")
	cfg.Cache.CartTTL = v.GetDuration("cache_cart_ttl")

	// Sentry
	cfg.Sentry.DSN = v.GetString("sentry_dsn")
	cfg.Sentry.TracesSampleRate = v.GetFloat64("sentry_traces_sample_rate")

	// Bootstrap
	cfg.Bootstrap.AdminUsername = v.GetString("bootstrap_admin_username")
	cfg.Bootstrap.AdminPassword = v.GetString("bootstrap_admin_password")

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", 7860)
	v.SetDefault("server_env", "development")
	v.SetDefault("server_allow_origins", "*")

	// PostgreSQL defaults
	v.SetDefault("postgres_host", "localhost")
	v.SetDefault("postgres_port", 5432)
	v.SetDefault("postgres_user", "jacare")
	v.SetDefault("postgres_password", "jacare")
	v.SetDefault("postgres_db", "jacare_erp")
	v.SetDefault("postgres_ssl_mode", "disable")
	v.SetDefault("postgres_max_conns", 20)
	v.SetDefault("postgres_min_conns", 2)
	v.SetDefault("postgres_auto_migrate", true)

	// Redis defaults
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", 6379)
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)

	// MinIO defaults
	v.SetDefault("minio_endpoint", "localhost:9000")
	v.SetDefault("minio_access_key", "jacare")
	v.SetDefault("minio_secret_key", "jacare123")
	v.SetDefault("minio_use_ssl", false)
	v.SetDefault("minio_bucket", "jacare-exports")
	v.SetDefault("minio_url_expiry_minutes", 60)

	// JWT defaults
	v.SetDefault("jwt_secret", defaultJWTSecret)
	v.SetDefault("jwt_expiry_hours", 12)
	v.SetDefault("jwt_issuer", "jacare-erp")

	// Rate limiting defaults
	v.SetDefault("rate_limit_enabled", true)
	v.SetDefault("rate_limit_requests_per_minute", 300)

	// Worker defaults
	v.SetDefault("worker_concurrency", 5)
	v.SetDefault("worker_queue_critical", "critical")
	v.SetDefault("worker_queue_default", "default")
	v.SetDefault("worker_queue_low", "low")
	v.SetDefault("worker_stock_scan_cron", "0 7 * * *")
	v.SetDefault("worker_expense_scan_cron", "30 7 * * *")
	v.SetDefault("worker_export_retention", 24)

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	// Store defaults
	v.SetDefault("store_name", "MOTO PEÇAS JACARÉ")
	v.SetDefault("store_cnpj", "")
	v.SetDefault("store_address", "")
	v.SetDefault("store_phone", "")

	// Cache defaults
	v.SetDefault("cache_ttl", "5m")
	v.SetDefault("cache_cart_ttl", "8h")

	// Sentry defaults
	v.SetDefault("sentry_dsn", "")
	v.SetDefault("sentry_traces_sample_rate", 0.0)

	// Bootstrap defaults
	v.SetDefault("bootstrap_admin_username", "admin")
	v.SetDefault("bootstrap_admin_password", "")
}

func validate(cfg *Config) error {
	if cfg.JWT.Secret == defaultJWTSecret && cfg.IsProduction() {
		return fmt.Errorf("JWT secret must be changed in production")
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}
	if cfg.JWT.Expiry <= 0 {
		return fmt.Errorf("jwt_expiry_hours must be positive")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
