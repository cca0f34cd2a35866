package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"carnes-boutique/repository"
)

// Config holds the settings read from the environment
type Config struct {
	Env               string
	Port              string
	BaseURL           string
	RedisURL          string
	CacheTTL          time.Duration
	PricingConfigPath string
	// Google Drive; empty credentials disable Drive imports and photos
	GoogleCredentialsPath string
	GoogleCredentialsJSON string
	PriceListFolderID     string
	PhotoFolderID         string
	ImageCacheDir         string
}

// LoadConfig reads the application configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Env:                   getenv("ENV", "development"),
		Port:                  strings.TrimPrefix(getenv("PORT", "8080"), ":"), // Render sets PORT without a colon
		RedisURL:              os.Getenv("REDIS_URL"),
		CacheTTL:              repository.DefaultCacheTTL,
		PricingConfigPath:     os.Getenv("PRICING_CONFIG_PATH"),
		GoogleCredentialsPath: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		GoogleCredentialsJSON: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON"),
		PriceListFolderID:     os.Getenv("PRICE_LIST_DRIVE_FOLDER_ID"),
		PhotoFolderID:         os.Getenv("PHOTO_DRIVE_FOLDER_ID"),
		ImageCacheDir:         os.Getenv("IMAGE_CACHE_DIR"),
	}

	if raw := os.Getenv("CATALOG_CACHE_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("invalid CATALOG_CACHE_TTL %q: expected a positive duration like 10m", raw)
		}
		cfg.CacheTTL = ttl
	}

	cfg.BaseURL = strings.TrimRight(getenv("BASE_URL", "http://localhost:"+cfg.Port), "/")
	return cfg, nil
}

// DriveEnabled reports whether Google Drive credentials are available
func (c *Config) DriveEnabled() bool {
	return c.GoogleCredentialsPath != "" || c.GoogleCredentialsJSON != ""
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
