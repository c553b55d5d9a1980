package access_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/agrovision/portal/access"
	"github.com/agrovision/portal/access/fetcherfakes"
)

func menuObject(name, href string) access.Object {
	return access.Object{
		Name: name,
		Type: access.TypeMenu,
		Metadata: access.Metadata{
			"href":  href,
			"label": name,
		},
	}
}

func TestCatalogHasAccess(t *testing.T) {
	fetcher := fetcherfakes.NewFakeFetcher()
	fetcher.Returns([]access.Object{
		menuObject("Relatório de E-mails Diário", "/dashboard_email"),
		{Name: "export-button", Type: access.TypeButton},
	}, nil)
	catalog := access.NewCatalog(fetcher)

	t.Run("denies everything before the first fetch", func(t *testing.T) {
		require.True(t, catalog.Loading())
		require.False(t, catalog.HasAccess("Relatório de E-mails Diário"))
		require.False(t, catalog.AllowsRoute("/dashboard_email"))
	})

	t.Run("grants by exact name match after fetch", func(t *testing.T) {
		require.NoError(t, catalog.Refresh(context.Background(), true))
		require.False(t, catalog.Loading())
		require.True(t, catalog.HasAccess("Relatório de E-mails Diário"))
		require.True(t, catalog.HasAccess("export-button"))
		require.False(t, catalog.HasAccess("relatório de e-mails diário")) // case-sensitive
		require.False(t, catalog.HasAccess("Relatório"))                   // no substring match
	})

	t.Run("routes match only MENU hrefs", func(t *testing.T) {
		require.True(t, catalog.AllowsRoute("/dashboard_email"))
		require.False(t, catalog.AllowsRoute("/somewhere_else"))
	})
}

func TestCatalogRefreshFailureFailsClosed(t *testing.T) {
	fetcher := fetcherfakes.NewFakeFetcher()
	fetcher.Returns([]access.Object{menuObject("home", "/home")}, nil)
	catalog := access.NewCatalog(fetcher)
	require.NoError(t, catalog.Refresh(context.Background(), true))
	require.True(t, catalog.HasAccess("home"))

	fetcher.Returns(nil, errors.New("backend down"))
	err := catalog.Refresh(context.Background(), true)
	require.Error(t, err)

	// The previous catalog must not linger after a failed refresh.
	require.False(t, catalog.HasAccess("home"))
	require.False(t, catalog.AllowsRoute("/home"))

	// A failed fetch leaves the catalog unloaded so a later refresh
	// retries instead of denying forever.
	require.True(t, catalog.Loading())
	fetcher.Returns([]access.Object{menuObject("home", "/home")}, nil)
	require.NoError(t, catalog.Refresh(context.Background(), true))
	require.True(t, catalog.HasAccess("home"))
	require.True(t, catalog.AllowsRoute("/home"))
}

func TestCatalogUnauthenticatedRefreshClears(t *testing.T) {
	fetcher := fetcherfakes.NewFakeFetcher()
	fetcher.Returns([]access.Object{menuObject("home", "/home")}, nil)
	catalog := access.NewCatalog(fetcher)
	require.NoError(t, catalog.Refresh(context.Background(), true))
	require.Equal(t, 1, fetcher.CallCount())

	require.NoError(t, catalog.Refresh(context.Background(), false))
	require.Equal(t, 1, fetcher.CallCount(), "no fetch for an unauthenticated refresh")
	require.False(t, catalog.HasAccess("home"))
}

func TestCatalogConcurrentRefresh(t *testing.T) {
	fetcher := fetcherfakes.NewFakeFetcher()
	fetcher.Returns([]access.Object{menuObject("home", "/home")}, nil)
	fetcher.Block()
	catalog := access.NewCatalog(fetcher)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = catalog.Refresh(context.Background(), true)
	}()

	require.Eventually(t, func() bool { return fetcher.CallCount() == 1 },
		time.Second, 5*time.Millisecond)

	// A second refresh while the first holds the fetch reports in-flight.
	require.ErrorIs(t, catalog.Refresh(context.Background(), true), access.ErrRefreshInFlight)
	require.True(t, catalog.Loading())

	fetcher.Unblock()
	wg.Wait()
	require.True(t, catalog.HasAccess("home"))
}

func TestCatalogClearDuringFetchDropsResponse(t *testing.T) {
	fetcher := fetcherfakes.NewFakeFetcher()
	fetcher.Returns([]access.Object{menuObject("home", "/home")}, nil)
	fetcher.Block()
	catalog := access.NewCatalog(fetcher)

	done := make(chan error, 1)
	go func() {
		done <- catalog.Refresh(context.Background(), true)
	}()

	require.Eventually(t, func() bool { return fetcher.CallCount() == 1 },
		time.Second, 5*time.Millisecond)

	// Logout lands while the fetch is parked.
	catalog.Clear()
	fetcher.Unblock()
	require.NoError(t, <-done)

	// The late response must not resurrect permissions.
	require.False(t, catalog.HasAccess("home"))
	require.Empty(t, catalog.Objects())
}
