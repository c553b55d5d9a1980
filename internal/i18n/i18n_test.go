package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agrovision/portal/internal/i18n"
)

func TestMatch(t *testing.T) {
	t.Run("stored preference wins over the header", func(t *testing.T) {
		require.Equal(t, "en", i18n.Match("en", "pt-BR,pt;q=0.9"))
		require.Equal(t, "pt", i18n.Match("pt", "en-US,en;q=0.9"))
	})

	t.Run("header is matched when nothing is stored", func(t *testing.T) {
		require.Equal(t, "en", i18n.Match("", "en-US,en;q=0.9"))
		require.Equal(t, "pt", i18n.Match("", "pt-BR,pt;q=0.9"))
	})

	t.Run("unsupported values fall back to portuguese", func(t *testing.T) {
		require.Equal(t, "pt", i18n.Match("", ""))
		require.Equal(t, "pt", i18n.Match("de", "de-DE"))
		require.Equal(t, "pt", i18n.Match("", "garbage header"))
	})
}

func TestT(t *testing.T) {
	t.Run("translates in the requested language", func(t *testing.T) {
		require.Equal(t, "Welcome", i18n.T("en", "welcome"))
		require.Equal(t, "Bem-vindo", i18n.T("pt", "welcome"))
	})

	t.Run("unknown language falls back to portuguese", func(t *testing.T) {
		require.Equal(t, "Bem-vindo", i18n.T("de", "welcome"))
	})

	t.Run("unknown key surfaces as itself", func(t *testing.T) {
		require.Equal(t, "no_such_key", i18n.T("en", "no_such_key"))
	})
}

func TestSupported(t *testing.T) {
	require.True(t, i18n.Supported("pt"))
	require.True(t, i18n.Supported("en"))
	require.False(t, i18n.Supported("de"))
	require.False(t, i18n.Supported(""))
}
