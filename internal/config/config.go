// Package config loads process configuration from the environment (with
// optional .env files for local development). Configured once at startup
// and read-only afterwards; nothing in here may be mutated by handlers.
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabasePath string
	Port         string
	JWTSecret    string
	CookieName   string
	CookieSecure bool
	CORSOrigins  []string

	// Purchase notification mail. Disabled unless SMTPHost is set.
	SMTP SMTPConfig
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	OwnerTo  string
}

func (c SMTPConfig) Enabled() bool { return c.Host != "" }

// LoadDotenv loads the nearest .env file, if any. Missing files are fine
// (prod configures through real env vars).
func LoadDotenv() {
	for _, p := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Overload(p)
			log.Println("[env] loaded", p)
			return
		}
	}
}

// Load reads the configuration. JWT_SECRET is the only hard requirement;
// everything else has a development default.
func Load() (Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return Config{}, fmt.Errorf("missing required env JWT_SECRET")
	}

	var origins []string
	for _, p := range strings.Split(envOr("CORS_ORIGIN", "http://localhost:3000"), ",") {
		if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
			origins = append(origins, o)
		}
	}

	smtpPort := 587
	if v := strings.TrimSpace(os.Getenv("SMTP_PORT")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 65535 {
			return Config{}, fmt.Errorf("invalid SMTP_PORT %q", v)
		}
		smtpPort = n
	}

	return Config{
		DatabasePath: envOr("DATABASE_PATH", "db.sqlite"),
		Port:         envOr("PORT", "3000"),
		JWTSecret:    secret,
		CookieName:   envOr("COOKIE_NAME", "meba_auth"),
		CookieSecure: os.Getenv("COOKIE_SECURE") == "true",
		CORSOrigins:  origins,
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     smtpPort,
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
			From:     envOr("SMTP_FROM", "tienda@mebawear.local"),
			OwnerTo:  os.Getenv("SHOP_OWNER_EMAIL"),
		},
	}, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
