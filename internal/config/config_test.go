package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "DB_DRIVER", "DB_PORT", "JWT_TTL_HOURS", "CACHE_TTL", "REDIS_ADDR", "AMQP_URL", "IS_PROD"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, "3306", cfg.DBPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 60*time.Second, cfg.CacheTTL)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.AMQPURL)
	assert.False(t, cfg.IsProd)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("JWT_TTL_HOURS", "2")
	t.Setenv("CACHE_TTL", "5")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IS_PROD", "true")
	cfg := LoadConfig()
	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 5*time.Second, cfg.CacheTTL)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.IsProd)
}

func TestLoadConfigIgnoresBadDurations(t *testing.T) {
	t.Setenv("JWT_TTL_HOURS", "soon")
	t.Setenv("CACHE_TTL", "-1")
	cfg := LoadConfig()
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 60*time.Second, cfg.CacheTTL)
}

func TestLoadConfigPostgresPort(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_PORT", "")
	cfg := LoadConfig()
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "5432", cfg.DBPort)
}
