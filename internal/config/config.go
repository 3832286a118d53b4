package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	MinIO     MinIOConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	Worker    WorkerConfig
	Log       LogConfig
	Store     StoreConfig
	Cache     CacheConfig
	Sentry    SentryConfig
	Bootstrap BootstrapConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Env  string `mapstructure:"env"`
	// AllowOrigins lists the browser origins accepted by CORS; "*" allows any
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// Addr returns the listen address
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// PostgresConfig holds PostgreSQL configuration
type PostgresConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	Database    string `mapstructure:"database"`
	SSLMode     string `mapstructure:"ssl_mode"`
	MaxConns    int32  `mapstructure:"max_conns"`
	MinConns    int32  `mapstructure:"min_conns"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// DSN returns the PostgreSQL connection string
func (c PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Database,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address
func (c RedisConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// MinIOConfig holds MinIO configuration
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
	Bucket    string `mapstructure:"bucket"`
	// URLExpiry is how long presigned export links stay valid
	URLExpiry time.Duration `mapstructure:"-"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	ExpiryHours int           `mapstructure:"expiry_hours"`
	Expiry      time.Duration `mapstructure:"-"`
	Issuer      string        `mapstructure:"issuer"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
}

// WorkerConfig holds background worker configuration
type WorkerConfig struct {
	Concurrency     int    `mapstructure:"concurrency"`
	QueueCritical   string `mapstructure:"queue_critical"`
	QueueDefault    string `mapstructure:"queue_default"`
	QueueLow        string `mapstructure:"queue_low"`
	StockScanCron   string `mapstructure:"stock_scan_cron"`
	ExpenseScanCron string `mapstructure:"expense_scan_cron"`
	ExportRetention int    `mapstructure:"export_retention"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StoreConfig holds the shop identity printed on quotes and receipts
type StoreConfig struct {
	Name    string `mapstructure:"name"`
	CNPJ    string `mapstructure:"cnpj"`
	Address string `mapstructure:"address"`
	Phone   string `mapstructure:"phone"`
}

// CacheConfig holds read cache configuration
type CacheConfig struct {
	TTL     time.Duration `mapstructure:"ttl"`
	CartTTL time.Duration `mapstructure:"cart_ttl"`
}

// SentryConfig holds error reporting configuration
type SentryConfig struct {
	DSN              string  `mapstructure:"dsn"`
	TracesSampleRate float64 `mapstructure:"traces_sample_rate"`
}

// Enabled reports whether a Sentry DSN is configured
func (c SentryConfig) Enabled() bool {
	return c.DSN != ""
}

// BootstrapConfig holds the first admin account created on an empty database
type BootstrapConfig struct {
	AdminUsername string `mapstructure:"admin_username"`
	AdminPassword string `mapstructure:"admin_password"`
}

// IsDevelopment returns true if running in development mode
func (c Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func (c Config) String() string {
	return fmt.Sprintf("env=%s addr=%s postgres=%s:%d/%s redis=%s",
		c.Server.Env, c.Server.Addr(), c.Postgres.Host, c.Postgres.Port, c.Postgres.Database, c.Redis.Addr())
}
