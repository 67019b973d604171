// Package config loads the server configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"crypto/rand"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultAddr       = ":8080"
	defaultDBPath     = "atelier.db"
	defaultAdminEmail = "admin@localhost"
	defaultSessionTTL = 24 * time.Hour
)

// Config carries everything the server needs. It is built once in main
// and passed down explicitly; nothing in this package is global.
type Config struct {
	Addr          string
	DBPath        string
	AdminEmail    string
	AdminPassword string // bcrypt hash of ADMIN_PASSWORD
	SessionSecret []byte
	SessionTTL    time.Duration
	SecureCookies bool

	// DefaultPassword and EphemeralSecret flag insecure fallbacks so the
	// caller can log a warning; config itself does no logging.
	DefaultPassword bool
	EphemeralSecret bool
}

// Load reads the environment into a Config. A .env file in the working
// directory is loaded first if present.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Addr:          envOr("ADDR", defaultAddr),
		DBPath:        envOr("DB_PATH", defaultDBPath),
		AdminEmail:    envOr("ADMIN_EMAIL", defaultAdminEmail),
		SessionTTL:    defaultSessionTTL,
		SecureCookies: os.Getenv("SECURE_COOKIES") == "true",
	}

	pass := os.Getenv("ADMIN_PASSWORD")
	if pass == "" {
		pass = "password"
		cfg.DefaultPassword = true
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing admin password: %w", err)
	}
	cfg.AdminPassword = string(hash)

	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		cfg.SessionSecret = []byte(secret)
	} else {
		cfg.SessionSecret = randomSecret()
		cfg.EphemeralSecret = true
	}

	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("parsing SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = d
	}

	return cfg, nil
}

// CheckPassword reports whether the given password matches the
// configured admin hash.
func (c *Config) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.AdminPassword), []byte(password)) == nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func randomSecret() []byte {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}
