package branding_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agrovision/portal/branding"
	errs "github.com/agrovision/portal/internal/errors"
)

func TestInMemoryRepo(t *testing.T) {
	repo := branding.NewInMemoryRepo()

	t.Run("ships the built-in presets in order", func(t *testing.T) {
		orgs := repo.List()
		require.Len(t, orgs, 2)
		require.Equal(t, "Fricke", orgs[0].Name)
		require.Equal(t, "Balmer", orgs[1].Name)
	})

	t.Run("first preset is the default", func(t *testing.T) {
		require.Equal(t, "Fricke", repo.Default().Name)
		require.Equal(t, "/css/fricke.css", repo.Default().CSSFile)
	})

	t.Run("lookup by name", func(t *testing.T) {
		org, err := repo.Get("Balmer")
		require.NoError(t, err)
		require.Equal(t, "/css/balmer.css", org.CSSFile)
	})

	t.Run("unknown names are rejected", func(t *testing.T) {
		_, err := repo.Get("Unknown Co")
		require.ErrorIs(t, err, errs.ErrOrganizationUnknown)
	})
}
