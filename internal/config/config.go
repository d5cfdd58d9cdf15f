package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the portal process.
type Config struct {
	Addr        string
	APIBaseURL  string
	StateDBPath string
	CSRFKey     []byte
	Env         string
}

// IsProduction reports whether the portal runs with production settings.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from a .env file (if present) and the
// environment. PORTAL_API_BASE is required; everything else has a
// development default.
func Load() (Config, error) {
	// Missing .env is fine; plain environment variables win anyway.
	_ = godotenv.Load()

	cfg := Config{
		Addr:        envOrDefault("PORTAL_ADDR", ":8080"),
		APIBaseURL:  os.Getenv("PORTAL_API_BASE"),
		StateDBPath: envOrDefault("PORTAL_STATE_DB", "portal.db"),
		Env:         envOrDefault("PORTAL_ENV", "development"),
	}

	if cfg.APIBaseURL == "" {
		return Config{}, errors.New("PORTAL_API_BASE is required (base URL of the order-management API)")
	}

	key, err := loadCSRFKey(cfg.Env)
	if err != nil {
		return Config{}, err
	}
	cfg.CSRFKey = key

	return cfg, nil
}

// loadCSRFKey reads the CSRF secret from PORTAL_CSRF_KEY (hex-encoded, 32
// bytes). In production the key MUST be set. In development a random key is
// generated per startup.
func loadCSRFKey(env string) ([]byte, error) {
	if keyHex := os.Getenv("PORTAL_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			return nil, errors.New("PORTAL_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key, nil
	}
	if env == "production" {
		return nil, errors.New("PORTAL_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate CSRF key: %w", err)
	}
	log.Println("WARNING: using random CSRF key (forms won't survive restart). Set PORTAL_CSRF_KEY for production.")
	return key, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
