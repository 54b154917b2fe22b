package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_ADDR", "127.0.0.1:8080")
	t.Setenv("SHUTDOWN_TIMEOUT", "1s")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "file::memory:?cache=shared")
	t.Setenv("FLASH_SECRET", "0123456789abcdef0123")
	t.Setenv("FLASH_STORE", "cookie")
	t.Setenv("GOMAXPROCS", "0")
}

func TestLoadFromEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FLASH_TTL", "90s")
	t.Setenv("DB_CONN_MAX_LIFETIME", "2m")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, time.Second, c.ShutdownTimeout)
	assert.Equal(t, 90*time.Second, c.FlashTTL)
	assert.Equal(t, 2*time.Minute, c.DBConnMaxLifetime)
	assert.Equal(t, 25, c.DBMaxOpenConns)
	assert.True(t, c.IsDevelopment())
	assert.Same(t, c, Get())
}

func TestLoadRejectsShortFlashSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FLASH_SECRET", "short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FlashSecret")
}

func TestLoadRequiresRedisAddrForRedisFlashStore(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FLASH_STORE", "redis")
	t.Setenv("REDIS_ADDR", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RedisAddr")

	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "redis", c.FlashStore)
}

func TestFlashSecretOnlyRequiredForCookieStore(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FLASH_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FlashSecret")

	t.Setenv("FLASH_STORE", "redis")
	t.Setenv("REDIS_ADDR", "127.0.0.1:6379")
	c, err := Load()
	require.NoError(t, err)
	assert.Empty(t, c.FlashSecret)
}

func TestRateLimitTrustProxy(t *testing.T) {
	setRequiredEnv(t)
	c, err := Load()
	require.NoError(t, err)
	assert.False(t, c.RateLimitTrustProxy)

	t.Setenv("RATE_LIMIT_TRUST_PROXY", "true")
	c, err = Load()
	require.NoError(t, err)
	assert.True(t, c.RateLimitTrustProxy)
}
