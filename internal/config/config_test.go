package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/patent-dashboard/internal/domain"
)

const testMapboxToken = "pk.test-token"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8027", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "data/state_grouped.csv", cfg.DataFile)
	assert.Equal(t, "state", cfg.Dataset)
	assert.Equal(t, domain.StateSchema, cfg.Schema)
	assert.Equal(t, 10, cfg.TopN)
	assert.Empty(t, cfg.Author)
	assert.False(t, cfg.MapboxEnabled)
	assert.Empty(t, cfg.MapboxToken)
	assert.Equal(t, 5*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 1000, cfg.MapboxCacheSize)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("DATA_FILE", "data/msa_grouped.csv")
	t.Setenv("DATASET", "msa")
	t.Setenv("COUNT_COLUMN", "Patents")
	t.Setenv("TOP_N", "5")
	t.Setenv("DASHBOARD_AUTHOR", "Data Team")
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("MAPBOX_TIMEOUT", "10s")
	t.Setenv("MAPBOX_CACHE_SIZE", "500")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "data/msa_grouped.csv", cfg.DataFile)
	assert.Equal(t, "msa", cfg.Dataset)
	assert.Equal(t, domain.Schema{Name: "MSA", Count: "Patents", Latitude: "Latitude", Longitude: "Longitude"}, cfg.Schema)
	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, "Data Team", cfg.Author)
	assert.True(t, cfg.MapboxEnabled)
	assert.Equal(t, testMapboxToken, cfg.MapboxToken)
	assert.Equal(t, 10*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 500, cfg.MapboxCacheSize)
}

func TestLoad_IPv6Host(t *testing.T) {
	t.Setenv("HOST", "::1")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "[::1]:8027", cfg.HTTPAddr)
}

func TestLoad_InvalidPort(t *testing.T) {
	for _, port := range []string{"http", "0", "70000"} {
		t.Run(port, func(t *testing.T) {
			t.Setenv("PORT", port)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "PORT")
		})
	}
}

func TestLoad_InvalidDataset(t *testing.T) {
	t.Setenv("DATASET", "county")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATASET")
}

func TestLoad_HalfCoordinateColumns(t *testing.T) {
	t.Setenv("LAT_COLUMN", "Latitude")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "latitude and longitude")
}

func TestLoad_InvalidTopN(t *testing.T) {
	for _, v := range []string{"0", "-1", "ten"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("TOP_N", v)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "TOP_N")
		})
	}
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidMapboxTimeout(t *testing.T) {
	t.Setenv("MAPBOX_TIMEOUT", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAPBOX_TIMEOUT")
}

func TestLoad_MapboxEnabledWithoutToken(t *testing.T) {
	t.Setenv("MAPBOX_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAPBOX_TOKEN")
}

func TestLoad_MapboxExplicitlyDisabled(t *testing.T) {
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("MAPBOX_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.MapboxEnabled)
}
