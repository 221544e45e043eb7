package cmd

import (
	"log/slog"
	"testing"
	"time"

	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "7860", cfg.HTTPPort)
	assert.Equal(t, DocStoreMemory, cfg.DocStore)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 720*time.Hour, cfg.CartTTL)
	assert.Equal(t, "@hourly", cfg.CartSweepSchedule)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DOC_STORE", " Postgres ")
	t.Setenv("DB_USER", "store")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "storefront")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example,https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DocStorePostgres, cfg.DocStore)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
	assert.Equal(t,
		"host=localhost port=5432 user=store password=pw dbname=storefront sslmode=disable",
		cfg.PostgresDSN())

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing jwt secret", env: map[string]string{}},
		{name: "unknown store", env: map[string]string{"JWT_SECRET": "s", "DOC_STORE": "mongo"}},
		{name: "postgres without credentials", env: map[string]string{"JWT_SECRET": "s", "DOC_STORE": "postgres"}},
		{name: "firestore without project", env: map[string]string{"JWT_SECRET": "s", "DOC_STORE": "firestore"}},
		{name: "bad log level", env: map[string]string{"JWT_SECRET": "s", "LOG_LEVEL": "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig()
			require.Error(t, err)
			assert.True(t, errs.IsValidation(err), err.Error())
		})
	}
}
