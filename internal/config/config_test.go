package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ploychompoo03/management-market/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"JWT_SECRET":           "test-secret",
		"APP_ENV":              "",
		"PORT":                 "",
		"DATA_DIR":             "",
		"ACCESS_TOKEN_TTL":     "",
		"CORS_ALLOWED_ORIGINS": "",
		"LOG_FORMAT":           "",
		"LOW_STOCK_THRESHOLD":  "",
	})
	require.NoError(t, err)
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, "data", cfg.DataDir)
	require.Equal(t, 12*time.Hour, cfg.AccessTokenTTL)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, 10, cfg.LowStockThreshold)
	require.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	_, err := config.LoadForTests(map[string]string{"JWT_SECRET": ""})
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"JWT_SECRET":           "test-secret",
		"PORT":                 "9090",
		"DATA_DIR":             "/var/lib/pos",
		"ACCESS_TOKEN_TTL":     "30m",
		"CORS_ALLOWED_ORIGINS": "http://localhost:5173, http://localhost:4173",
		"LOW_STOCK_THRESHOLD":  "5",
	})
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddr())
	require.Equal(t, "/var/lib/pos", cfg.DataDir)
	require.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, []string{"http://localhost:5173", "http://localhost:4173"}, cfg.CORSAllowedOrigins)
	require.Equal(t, 5, cfg.LowStockThreshold)
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"JWT_SECRET":       "test-secret",
		"ACCESS_TOKEN_TTL": "not-a-duration",
	})
	require.NoError(t, err)
	require.Equal(t, 12*time.Hour, cfg.AccessTokenTTL)
}
