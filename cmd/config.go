package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"storefront/internal/pkg/errs"

	"github.com/caarlos0/env/v11"
)

const (
	DocStoreMemory    = "memory"
	DocStorePostgres  = "postgres"
	DocStoreFirestore = "firestore"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"7860"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// DocStore selects the document store backend: memory, postgres or
	// firestore.
	DocStore string `env:"DOC_STORE" envDefault:"memory"`

	DBHost     string `env:"DB_HOST"     envDefault:"localhost"`
	DBPort     string `env:"DB_PORT"     envDefault:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBSslMode  string `env:"DB_SSLMODE"  envDefault:"disable"`

	FirestoreProjectID       string `env:"FIRESTORE_PROJECT_ID"`
	FirestoreCredentialsFile string `env:"FIRESTORE_CREDENTIALS_FILE"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	OwnerEmail    string `env:"OWNER_EMAIL"`
	OwnerPassword string `env:"OWNER_PASSWORD"`

	CartTTL           time.Duration `env:"CART_TTL"            envDefault:"720h"`
	CartSweepSchedule string        `env:"CART_SWEEP_SCHEDULE" envDefault:"@hourly"`

	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envDefault:"*" envSeparator:","`
}

// LoadConfig reads the configuration from the environment and validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.DocStore = strings.ToLower(strings.TrimSpace(cfg.DocStore))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var problems []error

	if c.JWTSecret == "" {
		problems = append(problems, errs.NewValueIsRequiredError("JWT_SECRET"))
	}
	if _, err := c.SlogLevel(); err != nil {
		problems = append(problems, err)
	}

	switch c.DocStore {
	case DocStoreMemory:
	case DocStorePostgres:
		if c.DBUser == "" {
			problems = append(problems, errs.NewValueIsRequiredError("DB_USER"))
		}
		if c.DBName == "" {
			problems = append(problems, errs.NewValueIsRequiredError("DB_NAME"))
		}
	case DocStoreFirestore:
		if c.FirestoreProjectID == "" {
			problems = append(problems, errs.NewValueIsRequiredError("FIRESTORE_PROJECT_ID"))
		}
	default:
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"DOC_STORE", fmt.Errorf("%q is not one of memory, postgres, firestore", c.DocStore)))
	}

	return errors.Join(problems...)
}

// PostgresDSN is the connection string for the postgres document store.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// SlogLevel parses LogLevel: debug, info, warn or error.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err)
	}
	return level, nil
}
