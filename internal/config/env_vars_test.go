package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agrovision/portal/internal/config"
)

func TestGetPort(t *testing.T) {
	cfg := config.New()

	t.Run("default is prefixed with a colon", func(t *testing.T) {
		t.Setenv("PORT", "")
		require.Equal(t, ":8080", cfg.GetPort())
	})

	t.Run("bare port number gets a colon", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		require.Equal(t, ":9090", cfg.GetPort())
	})

	t.Run("already-prefixed value is kept as-is", func(t *testing.T) {
		t.Setenv("PORT", ":9090")
		require.Equal(t, ":9090", cfg.GetPort())
	})
}

func TestGetEnvDefaults(t *testing.T) {
	require.Equal(t, "fallback", config.GetEnv("DEFINITELY_UNSET_VAR", "fallback"))

	t.Setenv("DEFINITELY_SET_VAR", "value")
	require.Equal(t, "value", config.GetEnv("DEFINITELY_SET_VAR", "fallback"))
}
