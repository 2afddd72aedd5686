package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// defaultAllowedDomains applies when ALLOWED_EMAIL_DOMAINS is unset.
var defaultAllowedDomains = []string{"shopeemobile-external.com", "spxexpress.com"}

// AppConfig holds application settings loaded from the environment
type AppConfig struct {
	ServerPort     string
	AppName        string
	AppVersion     string
	AllowedDomains []string
	SessionTTL     time.Duration
	JWTSecret      string
	JWTExpHours    int64
}

// LoadAppConfig loads application configuration from environment variables
func LoadAppConfig() (*AppConfig, error) {
	cfg := &AppConfig{
		ServerPort: os.Getenv("SERVER_PORT"),
		AppName:    os.Getenv("APP_NAME"),
		AppVersion: os.Getenv("APP_VERSION"),
		JWTSecret:  os.Getenv("JWT_SECRET_KEY"),
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.AppName == "" {
		cfg.AppName = "Outbound Internal Tool"
	}
	if cfg.AppVersion == "" {
		cfg.AppVersion = "1.0.0"
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY not set in environment")
	}

	cfg.AllowedDomains = defaultAllowedDomains
	if raw := os.Getenv("ALLOWED_EMAIL_DOMAINS"); raw != "" {
		var domains []string
		for _, d := range strings.Split(raw, ",") {
			if d = strings.TrimSpace(d); d != "" {
				domains = append(domains, d)
			}
		}
		if len(domains) > 0 {
			cfg.AllowedDomains = domains
		}
	}

	ttlHours := int64(24)
	if raw := os.Getenv("SESSION_TTL_HOURS"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid SESSION_TTL_HOURS: %q", raw)
		}
		ttlHours = parsed
	}
	cfg.SessionTTL = time.Duration(ttlHours) * time.Hour

	cfg.JWTExpHours = 24
	if raw := os.Getenv("JWT_EXPIRATION_HOURS"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %q", raw)
		}
		cfg.JWTExpHours = parsed
	}

	return cfg, nil
}
