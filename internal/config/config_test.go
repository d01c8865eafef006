package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigRequiresDBUrl(t *testing.T) {
	t.Setenv("DB_URL", "")
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost:5432/mentorhub")
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "dev")
	t.Setenv("PLATFORM_ACCOUNT_ID", "")
	t.Setenv("PLATFORM_FEE_RATE", "")
	t.Setenv("SESSION_CANCEL_FEE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, int64(1), cfg.PlatformAccountID)
	require.InDelta(t, 0.10, cfg.PlatformFeeRate, 1e-9)
	require.InDelta(t, 300.0, cfg.SessionCancelFee, 1e-9)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost:5432/mentorhub")
	t.Setenv("PLATFORM_ACCOUNT_ID", "42")
	t.Setenv("PLATFORM_FEE_RATE", "0.15")
	t.Setenv("SESSION_CANCEL_FEE", "250")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, int64(42), cfg.PlatformAccountID)
	require.InDelta(t, 0.15, cfg.PlatformFeeRate, 1e-9)
	require.InDelta(t, 250.0, cfg.SessionCancelFee, 1e-9)
}

func TestGetEnvInt64IgnoresGarbage(t *testing.T) {
	t.Setenv("PLATFORM_ACCOUNT_ID", "not-a-number")
	require.Equal(t, int64(7), getEnvInt64("PLATFORM_ACCOUNT_ID", 7))
}
