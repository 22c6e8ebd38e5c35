package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_SEED", "true")
	t.Setenv("DB_LOG_LEVEL", "silent")
	t.Setenv("CACHE_SETTINGS_TTL", "30s")

	cfg, err := Load("naraicoder")
	require.NoError(t, err)

	assert.Equal(t, "naraicoder", cfg.ServiceName)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.DB.Seed)
	assert.Equal(t, logger.Silent, cfg.DB.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.Cache.SettingsTTL)
	assert.Equal(t, "naraicoder", cfg.Metrics.Prefix)
	assert.Equal(t, "naraicoder", cfg.JWT.Issuer)
}

func TestLoadFallsBackOnMalformedValues(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "lots")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "soon")

	cfg, err := Load("naraicoder")
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.DB.MaxOpenConns)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
}

func TestValidateRejectsDefaultKeyInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SIGNING_KEY", DefaultSigningKey)

	_, err := Load("naraicoder")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SIGNING_KEY")
}

func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := Load("naraicoder")
	require.Error(t, err)
}

func TestGetDSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", c.GetDSN())
}
