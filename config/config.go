package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds all configuration for the payments service
type Config struct {
	Database DatabaseConfig
	Kafka    KafkaConfig
	Stripe   StripeConfig
	Logging  LoggingConfig
	Service  ServiceConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Brokers            []string
	NotificationsTopic string
}

// StripeConfig holds payment provider configuration.
//
// TenantWebhookSecrets maps a public-facing host to the signing secret of the
// webhook endpoint registered for that tenant. Hosts not present in the map
// fall back to WebhookSecret.
type StripeConfig struct {
	SecretKey            string
	WebhookSecret        string
	TenantWebhookSecrets map[string]string
	CheckoutSuccessURL   string
	CheckoutCancelURL    string
	PortalReturnURL      string
	RequestTimeout       time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	Name string
	Port string
}

// Result is fx.Out struct for providing config dependencies
type Result struct {
	fx.Out

	Config         *Config
	DatabaseConfig *DatabaseConfig
	KafkaConfig    *KafkaConfig
	StripeConfig   *StripeConfig
	LoggingConfig  *LoggingConfig
	ServiceConfig  *ServiceConfig
}

// Out returns fx-compatible config result
func Out() (Result, error) {
	cfg, err := Load()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Config:         cfg,
		DatabaseConfig: &cfg.Database,
		KafkaConfig:    &cfg.Kafka,
		StripeConfig:   &cfg.Stripe,
		LoggingConfig:  &cfg.Logging,
		ServiceConfig:  &cfg.Service,
	}, nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DATABASE_HOST", "localhost"),
			Port:     getEnv("DATABASE_PORT", "5432"),
			User:     getEnv("DATABASE_USER", "payments_user"),
			Password: getEnv("DATABASE_PASSWORD", "payments_pass"),
			DBName:   getEnv("DATABASE_NAME", "payments_db"),
			SSLMode:  getEnv("DATABASE_SSLMODE", "disable"),
		},
		Kafka: KafkaConfig{
			Brokers:            strings.Split(getEnv("KAFKA_BROKERS", "localhost:9093"), ","),
			NotificationsTopic: getEnv("KAFKA_NOTIFICATIONS_TOPIC", "notifications.events"),
		},
		Stripe: StripeConfig{
			SecretKey:            getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret:        getEnv("STRIPE_WEBHOOK_SECRET", ""),
			TenantWebhookSecrets: parseTenantSecrets(getEnv("STRIPE_TENANT_WEBHOOK_SECRETS", "")),
			CheckoutSuccessURL:   getEnv("STRIPE_CHECKOUT_SUCCESS_URL", "https://hoodfy.com/payments/success"),
			CheckoutCancelURL:    getEnv("STRIPE_CHECKOUT_CANCEL_URL", "https://hoodfy.com/payments/cancel"),
			PortalReturnURL:      getEnv("STRIPE_PORTAL_RETURN_URL", "https://hoodfy.com/settings/billing"),
			RequestTimeout:       getEnvDuration("STRIPE_REQUEST_TIMEOUT", 20*time.Second),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Service: ServiceConfig{
			Name: getEnv("SERVICE_NAME", "payments-service"),
			Port: getEnv("SERVICE_PORT", "8084"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("DATABASE_HOST is required")
	}

	if c.Database.User == "" {
		return fmt.Errorf("DATABASE_USER is required")
	}

	if c.Database.DBName == "" {
		return fmt.Errorf("DATABASE_NAME is required")
	}

	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required")
	}

	if c.Stripe.SecretKey == "" {
		return fmt.Errorf("STRIPE_SECRET_KEY is required")
	}

	if c.Stripe.WebhookSecret == "" {
		return fmt.Errorf("STRIPE_WEBHOOK_SECRET is required")
	}

	return nil
}

// GetDSN returns database connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// parseTenantSecrets parses "host1=whsec_a,host2=whsec_b" into a lookup table
func parseTenantSecrets(raw string) map[string]string {
	secrets := make(map[string]string)
	if raw == "" {
		return secrets
	}

	for _, pair := range strings.Split(raw, ",") {
		host, secret, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || host == "" || secret == "" {
			continue
		}
		secrets[strings.ToLower(host)] = secret
	}

	return secrets
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvDuration gets environment variable as duration with default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return d
}
