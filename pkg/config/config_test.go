package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.App.StoreDriver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.Equal(t, "America/Bogota", cfg.App.TimeZone)
	assert.Equal(t, cfg.App.TimeZone, cfg.DB.TimeZone)
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORE_DRIVER", "memory")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_RejectsUnknownDriver(t *testing.T) {
	cfg := &Config{
		App: AppConfig{StoreDriver: "mongo"},
		JWT: JWTConfig{Secret: "x", Expiration: 10},
	}
	assert.Error(t, cfg.Validate())
}

func TestValidate_SeedPair(t *testing.T) {
	cfg := &Config{
		App:  AppConfig{StoreDriver: "memory"},
		JWT:  JWTConfig{Secret: "x", Expiration: 10},
		Seed: SeedConfig{AdminEmail: "admin@optica.test"},
	}
	assert.Error(t, cfg.Validate())

	cfg.Seed.AdminPassword = "changeme123"
	assert.NoError(t, cfg.Validate())
}

func TestDSN_EscapesPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss/word", DBName: "optica", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%2Fword@db:5432/optica?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

func TestValidate_TimeZone(t *testing.T) {
	cfg := &Config{
		App: AppConfig{StoreDriver: "memory", TimeZone: "Marte/Olimpo"},
		JWT: JWTConfig{Secret: "x", Expiration: 10},
	}
	assert.Error(t, cfg.Validate())

	cfg.App.TimeZone = "America/Lima"
	assert.NoError(t, cfg.Validate())
}
