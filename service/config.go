package service

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/medpriceai/medprice-web/internal/auth"
)

type Config struct {
	Environment     string
	Port            string
	BaseURL         string
	DBPath          string
	ShutdownTimeout time.Duration

	Auth struct {
		// Provider is "supabase" or "clerk".
		Provider string
		CacheTTL time.Duration
		RedisURL string
	}

	Supabase struct {
		URL           string
		AnonKey       string
		JWTSecret     string
		AccessCookie  string
		RefreshCookie string
	}

	Clerk struct {
		SecretKey      string
		PublishableKey string
	}

	Stripe struct {
		SecretKey string
	}
}

// LoadConfig reads the environment, after loading an optional .env file.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8000"),
		DBPath:      getEnv("DB_PATH", "./data/medprice.db"),
	}

	var err error
	if config.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	// Auth
	config.Auth.Provider = strings.ToLower(getEnv("AUTH_PROVIDER", "supabase"))
	config.Auth.RedisURL = getEnv("REDIS_URL", "")
	if config.Auth.CacheTTL, err = getDuration("AUTH_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}

	// Supabase
	config.Supabase.URL = getEnv("SUPABASE_URL", "")
	config.Supabase.AnonKey = getEnv("SUPABASE_ANON_KEY", "")
	config.Supabase.JWTSecret = getEnv("SUPABASE_JWT_SECRET", "")
	config.Supabase.AccessCookie = getEnv("SUPABASE_ACCESS_COOKIE", auth.DefaultSupabaseAccessCookie)
	config.Supabase.RefreshCookie = getEnv("SUPABASE_REFRESH_COOKIE", auth.DefaultSupabaseRefreshCookie)

	// Clerk
	config.Clerk.SecretKey = getEnv("CLERK_SECRET_KEY", "")
	config.Clerk.PublishableKey = getEnv("CLERK_PUBLISHABLE_KEY", "")

	// Stripe
	config.Stripe.SecretKey = getEnv("STRIPE_SECRET_KEY", "")

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks that the selected auth provider has what it needs.
func (c *Config) Validate() error {
	switch c.Auth.Provider {
	case "supabase":
		if c.Supabase.JWTSecret == "" {
			return errors.New("SUPABASE_JWT_SECRET is required when AUTH_PROVIDER=supabase")
		}
		if c.Supabase.URL == "" || c.Supabase.AnonKey == "" {
			slog.Warn("SUPABASE_URL or SUPABASE_ANON_KEY not set, browser sign-in will not work")
		}
	case "clerk":
		if c.Clerk.SecretKey == "" {
			return errors.New("CLERK_SECRET_KEY is required when AUTH_PROVIDER=clerk")
		}
		if c.Clerk.PublishableKey == "" {
			return errors.New("CLERK_PUBLISHABLE_KEY is required when AUTH_PROVIDER=clerk")
		}
	default:
		return fmt.Errorf("%w: AUTH_PROVIDER=%q", auth.ErrUnknownProvider, c.Auth.Provider)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
