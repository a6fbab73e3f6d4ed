package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName  string
	Port     string
	Env      string
	Debug    bool
	MediaUrl string

	// Catalog category cache tuning
	CategoryTTL        time.Duration
	CategorySweepEvery time.Duration
	// Add more fields as needed
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName:            os.Getenv("APP_NAME"),
			Port:               os.Getenv("PORT"),
			Env:                os.Getenv("APP_ENV"),
			Debug:              os.Getenv("DEBUG") == "true",
			MediaUrl:           os.Getenv("MEDIA_URL"),
			CategoryTTL:        envSeconds("CATEGORY_CACHE_TTL_SEC", 5*time.Minute),
			CategorySweepEvery: envSeconds("CATEGORY_CACHE_SWEEP_SEC", 10*time.Minute),
		}
	})
}

func envSeconds(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if sec, err := strconv.Atoi(v); err == nil && sec > 0 {
			return time.Duration(sec) * time.Second
		}
	}
	return def
}
