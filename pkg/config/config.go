package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	Log     LogConfig
	Catalog CatalogConfig
	Retry   RetryConfig
	Search  SearchConfig
	Geo     GeoConfig
	Storage StorageConfig
	HTTP    HTTPConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// LogConfig nivel del logger (trace, debug, info, warn, error).
type LogConfig struct {
	Level string
}

// CatalogConfig servicio remoto de perros y ubicaciones.
type CatalogConfig struct {
	BaseURL string
	Timeout time.Duration
}

// RetryConfig política de reintentos del cliente HTTP.
type RetryConfig struct {
	MaxAttempts    int
	MaxRateLimited int
	BaseDelay      time.Duration
}

// SearchConfig tamaño de página de búsqueda.
type SearchConfig struct {
	PageSize int
}

// GeoConfig límite de ubicaciones pedidas al expandir un radio.
type GeoConfig struct {
	LocationSearchCap int
}

// StorageConfig archivo JSON local (favoritos y sesión).
type StorageConfig struct {
	Path string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, CATALOG_BASE_URL, RETRY_MAX_ATTEMPTS, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "fetch-rewards"),
		},
		Log: LogConfig{
			Level: getString(v, "LOG_LEVEL", "info"),
		},
		Catalog: CatalogConfig{
			BaseURL: getString(v, "CATALOG_BASE_URL", "https://frontend-take-home-service.fetch.com"),
			Timeout: getSeconds(v, "CATALOG_TIMEOUT_SECONDS", 15),
		},
		Retry: RetryConfig{
			MaxAttempts:    getInt(v, "RETRY_MAX_ATTEMPTS", 3),
			MaxRateLimited: getInt(v, "RETRY_MAX_RATE_LIMITED", 10),
			BaseDelay:      getMillis(v, "RETRY_BASE_DELAY_MS", 1000),
		},
		Search: SearchConfig{
			PageSize: getInt(v, "SEARCH_PAGE_SIZE", 25),
		},
		Geo: GeoConfig{
			LocationSearchCap: getInt(v, "GEO_LOCATION_SEARCH_CAP", 10000),
		},
		Storage: StorageConfig{
			Path: getString(v, "STORAGE_PATH", "data/local-storage.json"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("config: CATALOG_BASE_URL es obligatorio")
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("config: RETRY_MAX_ATTEMPTS debe ser >= 1 (recibido %d)", c.Retry.MaxAttempts)
	}
	if c.Retry.MaxRateLimited < 1 {
		return fmt.Errorf("config: RETRY_MAX_RATE_LIMITED debe ser >= 1 (recibido %d)", c.Retry.MaxRateLimited)
	}
	if c.Search.PageSize < 1 || c.Search.PageSize > 100 {
		return fmt.Errorf("config: SEARCH_PAGE_SIZE fuera de rango 1..100 (recibido %d)", c.Search.PageSize)
	}
	if c.Geo.LocationSearchCap < 1 || c.Geo.LocationSearchCap > 10000 {
		return fmt.Errorf("config: GEO_LOCATION_SEARCH_CAP fuera de rango 1..10000 (recibido %d)", c.Geo.LocationSearchCap)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("config: STORAGE_PATH es obligatorio")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getSeconds(v *viper.Viper, key string, def int) time.Duration {
	return time.Duration(getInt(v, key, def)) * time.Second
}

func getMillis(v *viper.Viper, key string, def int) time.Duration {
	return time.Duration(getInt(v, key, def)) * time.Millisecond
}
