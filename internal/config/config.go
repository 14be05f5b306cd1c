package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Logger     LoggerConfig
	Auth       AuthConfig
	WayForPay  WayForPayConfig  `envPrefix:"WAYFORPAY_"`
	Shop       ShopConfig       `envPrefix:"SHOP_"`
	NovaPoshta NovaPoshtaConfig `envPrefix:"NOVAPOSHTA_"`
	Mail       MailConfig       `envPrefix:"SMTP_"`
	S3         S3Config         `envPrefix:"S3_"`
	PromoFile  string           `env:"PROMO_IMPORT_FILE"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port int    `env:"SERVER_PORT" envDefault:"8080"`
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string `env:"DB_HOST" envDefault:"localhost"`
	Port            int    `env:"DB_PORT" envDefault:"5432"`
	User            string `env:"DB_USER" envDefault:"postgres"`
	Password        string `env:"DB_PASSWORD"`
	Database        string `env:"DB_NAME" envDefault:"mattress_shop"`
	MaxConnections  int    `env:"DB_MAX_CONNECTIONS" envDefault:"25"`
	MinConnections  int    `env:"DB_MIN_CONNECTIONS" envDefault:"5"`
	MaxConnLifetime int    `env:"DB_MAX_CONN_LIFETIME" envDefault:"300"` // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"` // "json" or "console"
}

// AuthConfig holds authentication configuration for admin routes.
type AuthConfig struct {
	APIKey string `env:"API_KEY"`
}

// WayForPayConfig holds the payment gateway merchant credentials.
type WayForPayConfig struct {
	MerchantAccount string `env:"MERCHANT_ACCOUNT"`
	SecretKey       string `env:"SECRET_KEY"`
	DomainName      string `env:"DOMAIN" envDefault:"localhost"`
	ReturnURL       string `env:"RETURN_URL"`
	ServiceURL      string `env:"SERVICE_URL"`
	Currency        string `env:"CURRENCY" envDefault:"UAH"`
	Language        string `env:"LANGUAGE" envDefault:"UA"`
}

// ShopConfig holds storefront pricing settings.
type ShopConfig struct {
	DeliveryPrice int64 `env:"DELIVERY_PRICE" envDefault:"0"` // minor units
}

// NovaPoshtaConfig holds carrier API and lookup cache settings.
type NovaPoshtaConfig struct {
	APIKey    string        `env:"API_KEY"`
	BaseURL   string        `env:"BASE_URL" envDefault:"https://api.novaposhta.ua/v2.0/json/"`
	Timeout   time.Duration `env:"TIMEOUT" envDefault:"10s"`
	CacheSize int           `env:"CACHE_SIZE" envDefault:"1000"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"1h"`
}

// MailConfig holds SMTP settings. An empty Host disables outbound mail.
type MailConfig struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM" envDefault:"shop@localhost"`
}

// S3Config holds AWS S3 configuration for promo code import files.
type S3Config struct {
	Enabled bool   `env:"ENABLED" envDefault:"false"`
	Bucket  string `env:"BUCKET"`
	Region  string `env:"REGION" envDefault:"eu-central-1"`
	Prefix  string `env:"PREFIX" envDefault:"promo-codes/"` // Path prefix within bucket
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Database.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.Database.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.Database.MinConnections > c.Database.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	if c.Auth.APIKey == "" {
		return fmt.Errorf("API key is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.WayForPay.MerchantAccount == "" {
		return fmt.Errorf("WayForPay merchant account is required")
	}

	if c.WayForPay.SecretKey == "" {
		return fmt.Errorf("WayForPay secret key is required")
	}

	if c.WayForPay.Currency == "" {
		return fmt.Errorf("WayForPay currency is required")
	}

	if c.Shop.DeliveryPrice < 0 {
		return fmt.Errorf("delivery price cannot be negative")
	}

	if c.NovaPoshta.CacheSize < 1 {
		return fmt.Errorf("Nova Poshta cache size must be at least 1")
	}

	if c.NovaPoshta.CacheTTL <= 0 {
		return fmt.Errorf("Nova Poshta cache TTL must be positive")
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Address returns the SMTP server address.
func (c *MailConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
