package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func lookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(lookup(nil))
	require.NoError(t, err)
	require.Equal(t, DefaultGame(), cfg.Game)
	require.Equal(t, ".saves", cfg.SaveDir)
	require.Equal(t, BackendFile, cfg.SaveBackend)
	require.Equal(t, "pt_BR", cfg.Locale)
	require.Empty(t, cfg.GeminiAPIKey)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(lookup(map[string]string{
		"CASA_START_ROOM":      "porao",
		"CASA_INVENTORY_LIMIT": "3",
		"CASA_TIME_PER_CYCLE":  "4",
		"CASA_SAVE_BACKEND":    "sqlite",
		"GEMINI_API_KEY":       "key",
	}))
	require.NoError(t, err)
	require.Equal(t, Game{StartRoom: "porao", InventoryLimit: 3, TimePerCycle: 4, FearNightIncrease: 10}, cfg.Game)
	require.Equal(t, BackendSQLite, cfg.SaveBackend)
	require.Equal(t, "key", cfg.GeminiAPIKey)
}

func TestFromEnvInvalid(t *testing.T) {
	_, err := FromEnv(lookup(map[string]string{
		"CASA_INVENTORY_LIMIT": "many",
		"CASA_NIGHT_FEAR":      "-1",
		"CASA_SAVE_BACKEND":    "cloud",
	}))
	require.ErrorContains(t, err, "CASA_INVENTORY_LIMIT")
	require.ErrorContains(t, err, "CASA_NIGHT_FEAR")
	require.ErrorContains(t, err, "CASA_SAVE_BACKEND")
}
