package infra

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	// Database
	DatabaseURL string `env:"DATABASE_URL"`
	PGHost      string `env:"PGHOST" envDefault:"localhost"`
	PGPort      int    `env:"PGPORT" envDefault:"5432"`
	PGUser      string `env:"PGUSER" envDefault:"rachapay"`
	PGPassword  string `env:"PGPASSWORD" envDefault:"rachapay"`
	PGDatabase  string `env:"PGDATABASE" envDefault:"rachapay"`

	// Server
	APIPort int `env:"API_PORT" envDefault:"5051"`

	// Fee charged per owing record, in cents. Applied at read time, so a
	// change recomputes all historical debt totals.
	FeeCents int64 `env:"FEE_CENTS" envDefault:"500"`

	// Login gate
	JWTSecret    string `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	JWTExpiry    string `env:"JWT_EXPIRY" envDefault:"24h"`
	GateUser     string `env:"GATE_USER" envDefault:"admin"`
	GatePassword string `env:"GATE_PASSWORD"`

	// Kafka
	KafkaBrokers string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	KafkaEnabled bool   `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaTopic   string `env:"KAFKA_TOPIC" envDefault:"rachapay.events"`

	// CORS
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`

	// Dev
	AllowInsecureDefaults bool `env:"ALLOW_INSECURE_DEFAULTS" envDefault:"false"`
}

// LoadConfig parses environment variables into a Config struct.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks for insecure or nonsensical configuration that must not run
// in production. Set ALLOW_INSECURE_DEFAULTS=true to bypass (local dev only).
func (c *Config) Validate() error {
	if c.FeeCents <= 0 {
		return fmt.Errorf("FEE_CENTS must be positive, got %d", c.FeeCents)
	}
	if c.AllowInsecureDefaults {
		return nil
	}
	if c.JWTSecret == "change-me-in-production" {
		return fmt.Errorf("JWT_SECRET is set to the insecure default; set a strong secret or set ALLOW_INSECURE_DEFAULTS=true for local dev")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET is too short (%d chars); minimum 32 characters required", len(c.JWTSecret))
	}
	if c.GatePassword == "" {
		return fmt.Errorf("GATE_PASSWORD is empty; set a password or set ALLOW_INSECURE_DEFAULTS=true for local dev")
	}
	return nil
}

// DSN returns the PostgreSQL connection string, preferring DATABASE_URL if set.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase)
}
