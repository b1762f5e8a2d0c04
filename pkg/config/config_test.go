package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsDelPool(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.DB.MaxConns)
	assert.Equal(t, 5, cfg.DB.MinConns)
	assert.Equal(t, 5*time.Second, cfg.DB.ConnectTimeout)
	assert.Equal(t, 60*time.Second, cfg.DB.MaxConnIdleTime)
	assert.True(t, cfg.DB.Migrate)
	assert.Equal(t, 24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, "catalog-api", cfg.JWT.Issuer)
}

func TestLoad_EnvSobrescribeDefaults(t *testing.T) {
	t.Setenv("DB_CONNECT_TIMEOUT_MS", "2500")
	t.Setenv("DB_MAX_CONNS", "10")
	t.Setenv("JWT_EXPIRATION_HOURS", "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2500*time.Millisecond, cfg.DB.ConnectTimeout)
	assert.Equal(t, 10, cfg.DB.MaxConns)
	assert.Equal(t, time.Hour, cfg.JWT.Expiration)
}

func TestDSN_EscapaCredenciales(t *testing.T) {
	c := DBConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "app",
		Password: "p@ss:word/1",
		DBName:   "catalog",
		SSLMode:  "disable",
	}
	dsn := c.DSN()
	assert.Contains(t, dsn, "p%40ss%3Aword%2F1")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestConnectionString_PrefiereDatabaseURL(t *testing.T) {
	c := DBConfig{
		DatabaseURL: "postgresql://u:p@db:5432/x?sslmode=require",
		Host:        "ignored",
	}
	assert.Equal(t, "postgresql://u:p@db:5432/x?sslmode=require", c.ConnectionString())
}
