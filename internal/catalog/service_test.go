package catalog

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/S41T4M4/fc-front/internal/api"
	"github.com/S41T4M4/fc-front/internal/stubserver"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	srv := httptest.NewServer(stubserver.New().Handler())
	t.Cleanup(srv.Close)
	return NewService(api.NewClient(srv.URL + "/api"))
}

func TestPlatforms(t *testing.T) {
	svc := newTestService(t)

	platforms, err := svc.Platforms(context.Background())
	require.NoError(t, err)
	require.Len(t, platforms, 5)
	assert.Equal(t, "PC", platforms[0].Name)
}

func TestPlatformByID(t *testing.T) {
	svc := newTestService(t)

	platform, ok, err := svc.PlatformByID(context.Background(), 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "PlayStation 5", platform.Name)

	_, ok, err = svc.PlatformByID(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPackagesByPlatform(t *testing.T) {
	svc := newTestService(t)

	packages, err := svc.PackagesByPlatform(context.Background(), 1)
	require.NoError(t, err)
	require.NotEmpty(t, packages)
	for _, pkg := range packages {
		assert.Equal(t, int64(1), pkg.PlatformID)
		assert.Equal(t, "PC", pkg.PlatformName)
		assert.Greater(t, pkg.Price, 0.0)
	}
}

func TestPackagesListsWholeCatalog(t *testing.T) {
	svc := newTestService(t)

	all, err := svc.Packages(context.Background())
	require.NoError(t, err)

	pc, err := svc.PackagesByPlatform(context.Background(), 1)
	require.NoError(t, err)
	assert.Greater(t, len(all), len(pc))
}
