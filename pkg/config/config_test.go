package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "fetch-rewards", cfg.App.Name)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "https://frontend-take-home-service.fetch.com", cfg.Catalog.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 10, cfg.Retry.MaxRateLimited)
	assert.Equal(t, time.Second, cfg.Retry.BaseDelay)
	assert.Equal(t, 25, cfg.Search.PageSize)
	assert.Equal(t, 10000, cfg.Geo.LocationSearchCap)
	assert.Equal(t, "data/local-storage.json", cfg.Storage.Path)
	assert.Equal(t, "127.0.0.1:8080", cfg.HTTP.Addr())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("RETRY_BASE_DELAY_MS", "250")
	v.Set("SEARCH_PAGE_SIZE", 50)
	v.Set("HTTP_PORT", "9090")
	v.Set("CATALOG_BASE_URL", "http://localhost:4000")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Retry.BaseDelay)
	assert.Equal(t, 50, cfg.Search.PageSize)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "http://localhost:4000", cfg.Catalog.BaseURL)
}

func TestFromViper_InvalidNumberFallsBackToDefault(t *testing.T) {
	v := viper.New()
	v.Set("RETRY_MAX_ATTEMPTS", "tres")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
}

func TestFromViper_Validation(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"page size cero", "SEARCH_PAGE_SIZE", 0},
		{"page size sobre el máximo del servidor", "SEARCH_PAGE_SIZE", 101},
		{"sin reintentos", "RETRY_MAX_ATTEMPTS", 0},
		{"cap geo excesivo", "GEO_LOCATION_SEARCH_CAP", 20000},
		{"base URL vacía", "CATALOG_BASE_URL", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.val)
			_, err := fromViper(v)
			assert.Error(t, err)
		})
	}
}
