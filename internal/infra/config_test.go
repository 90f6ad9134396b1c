package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDSN(t *testing.T) {
	t.Run("assembled from parts", func(t *testing.T) {
		cfg := &Config{PGHost: "db", PGPort: 5433, PGUser: "u", PGPassword: "p", PGDatabase: "racha"}
		assert.Equal(t, "postgres://u:p@db:5433/racha?sslmode=disable", cfg.DSN())
	})

	t.Run("DATABASE_URL wins", func(t *testing.T) {
		cfg := &Config{DatabaseURL: "postgres://other/db", PGHost: "db"}
		assert.Equal(t, "postgres://other/db", cfg.DSN())
	})
}

func TestConfigValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			FeeCents:     500,
			JWTSecret:    "0123456789abcdef0123456789abcdef",
			GatePassword: "624266",
		}
	}

	t.Run("valid config", func(t *testing.T) {
		require.NoError(t, base().Validate())
	})

	t.Run("non-positive fee rejected even in dev", func(t *testing.T) {
		cfg := base()
		cfg.FeeCents = 0
		cfg.AllowInsecureDefaults = true
		require.Error(t, cfg.Validate())
	})

	t.Run("default jwt secret rejected", func(t *testing.T) {
		cfg := base()
		cfg.JWTSecret = "change-me-in-production"
		require.Error(t, cfg.Validate())
	})

	t.Run("short jwt secret rejected", func(t *testing.T) {
		cfg := base()
		cfg.JWTSecret = "short"
		require.Error(t, cfg.Validate())
	})

	t.Run("empty gate password rejected", func(t *testing.T) {
		cfg := base()
		cfg.GatePassword = ""
		require.Error(t, cfg.Validate())
	})

	t.Run("insecure defaults allowed when flagged", func(t *testing.T) {
		cfg := base()
		cfg.JWTSecret = "change-me-in-production"
		cfg.GatePassword = ""
		cfg.AllowInsecureDefaults = true
		require.NoError(t, cfg.Validate())
	})
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5051, cfg.APIPort)
	assert.Equal(t, int64(500), cfg.FeeCents)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, "rachapay.events", cfg.KafkaTopic)
}
