package nav_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agrovision/portal/access"
	"github.com/agrovision/portal/nav"
)

func TestBuildGroupsBySectionInFirstOccurrenceOrder(t *testing.T) {
	objects := []access.Object{
		{Name: "daily-mail", Type: access.TypeMenu, Metadata: access.Metadata{
			"href": "/dashboard_email", "label": "Relatório diário", "section": "Relatórios",
		}},
		{Name: "export-button", Type: access.TypeButton, Metadata: access.Metadata{
			"href": "/export", "label": "Exportar",
		}},
		{Name: "settings", Type: access.TypeMenu, Metadata: access.Metadata{
			"href": "/settings", "label": "Configurações", "section": "Administração",
		}},
		{Name: "weekly-mail", Type: access.TypeMenu, Metadata: access.Metadata{
			"href": "/dashboard_email_weekly", "label": "Relatório semanal", "section": "Relatórios",
		}},
	}

	groups := nav.Build(objects)
	require.Len(t, groups, 2)

	require.Equal(t, "Relatórios", groups[0].Label)
	require.Equal(t, []nav.Item{
		{To: "/dashboard_email", Label: "Relatório diário"},
		{To: "/dashboard_email_weekly", Label: "Relatório semanal"},
	}, groups[0].Items)

	require.Equal(t, "Administração", groups[1].Label)
	require.Equal(t, []nav.Item{
		{To: "/settings", Label: "Configurações"},
	}, groups[1].Items)
}

func TestBuildFallbacks(t *testing.T) {
	t.Run("missing section lands in the default group", func(t *testing.T) {
		groups := nav.Build([]access.Object{
			{Name: "orphan", Type: access.TypeMenu, Metadata: access.Metadata{"href": "/orphan"}},
		})
		require.Len(t, groups, 1)
		require.Equal(t, nav.DefaultGroupLabel, groups[0].Label)
	})

	t.Run("missing href and label fall back", func(t *testing.T) {
		groups := nav.Build([]access.Object{
			{Name: "bare-entry", Type: access.TypeMenu},
		})
		require.Len(t, groups, 1)
		require.Equal(t, []nav.Item{{To: "#", Label: "bare-entry"}}, groups[0].Items)
	})

	t.Run("non-menu objects never surface", func(t *testing.T) {
		groups := nav.Build([]access.Object{
			{Name: "a-button", Type: access.TypeButton, Metadata: access.Metadata{"href": "/x"}},
			{Name: "a-tab", Type: access.TypeTab, Metadata: access.Metadata{"href": "/y"}},
		})
		require.Empty(t, groups)
	})

	t.Run("empty catalog builds an empty tree", func(t *testing.T) {
		require.Empty(t, nav.Build(nil))
	})
}
