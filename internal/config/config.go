package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBDriver  string
	DBConn    string
	LogLevel  string
	JWTSecret string

	// SMTP settings for alert digests; an empty host disables mail.
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string

	// AMQP settings for alert events; an empty URL disables publishing.
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string

	// Cron specs used by the scheduler binary.
	RecurringSpec string
	BillsSpec     string
	DigestSpec    string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		DBDriver:  getEnv("DB_DRIVER", "postgres"),
		DBConn:    getEnv("DB_CONN", "host=localhost port=5432 user=test password=test dbname=money sslmode=disable"),
		LogLevel:  getEnv("LOG_LEVEL", "INFO"),
		JWTSecret: getEnv("JWT_SECRET", "change-this-secret"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", "no-reply@mymoney.local"),

		AMQPURL:        getEnv("AMQP_URL", ""),
		AMQPExchange:   getEnv("AMQP_EXCHANGE", "money"),
		AMQPRoutingKey: getEnv("AMQP_ROUTING_KEY", "alerts"),

		RecurringSpec: getEnv("SCHEDULER_RECURRING_SPEC", "@every 1h"),
		BillsSpec:     getEnv("SCHEDULER_BILLS_SPEC", "5 0 * * *"),
		DigestSpec:    getEnv("SCHEDULER_DIGEST_SPEC", "0 8 * * *"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DBConn == "" {
		return fmt.Errorf("DB_CONN is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.DBDriver != "postgres" && c.DBDriver != "sqlite" {
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.DBDriver)
	}
	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	if c.AMQPURL != "" {
		u, err := url.Parse(c.AMQPURL)
		if err != nil {
			return fmt.Errorf("invalid AMQP_URL: %w", err)
		}
		if u.Scheme != "amqp" && u.Scheme != "amqps" {
			return fmt.Errorf("invalid AMQP_URL scheme %q: must be amqp or amqps", u.Scheme)
		}
	}
	return nil
}

// MailEnabled reports whether SMTP delivery is configured.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
