package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, 10000, cfg.Password.Iterations)
	assert.Equal(t, "invoicing-api", cfg.JWT.Issuer)
	assert.Equal(t, "invoicing-clients", cfg.JWT.Audience)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "admin", cfg.Seed.AdminUsername)
	assert.Empty(t, cfg.Seed.AdminPassword)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_AUDIENCE", "mobile")
	t.Setenv("PASSWORD_ITERATIONS", "20000")
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mobile", cfg.JWT.Audience)
	assert.Equal(t, 20000, cfg.Password.Iterations)
	assert.Equal(t, "memory", cfg.DB.Driver)
	assert.True(t, cfg.App.IsProduction())
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestDSN_EncodesPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "invoicing", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/invoicing?sslmode=disable", c.DSN())
}
