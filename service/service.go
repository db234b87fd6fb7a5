package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/medpriceai/medprice-web/internal/accounts"
	"github.com/medpriceai/medprice-web/internal/auth"
	"github.com/medpriceai/medprice-web/internal/billing"
	"github.com/medpriceai/medprice-web/internal/gate"
	"github.com/medpriceai/medprice-web/internal/handlers"
	"github.com/medpriceai/medprice-web/storage"
	"github.com/medpriceai/medprice-web/views"
)

const sessionPath = "/api/session"

type Service struct {
	storage  *storage.Storage
	config   *Config
	provider auth.Provider
	// cache is nil unless the provider keeps profiles between requests.
	cache     auth.Cache
	directory auth.Directory

	homeHandler      *handlers.HomeHandler
	authHandler      *handlers.AuthHandler
	dashboardHandler *handlers.DashboardHandler
	pricingHandler   *handlers.PricingHandler
	healthHandler    *handlers.HealthHandler
}

// New wires the configured auth provider, the account directory and the
// pricing catalog around store.
func New(store *storage.Storage, config *Config) (*Service, error) {
	var cache auth.Cache
	if config.Auth.Provider == "clerk" {
		var err error
		if cache, err = newProfileCache(config); err != nil {
			return nil, err
		}
	}

	provider, err := newProvider(config, cache)
	if err != nil {
		if cache != nil {
			cache.Close()
		}
		return nil, err
	}

	catalog := billing.NewCatalog(config.Stripe.SecretKey, billing.DefaultCacheTTL)
	return newService(store, config, provider, cache, catalog), nil
}

func newService(store *storage.Storage, config *Config, provider auth.Provider, cache auth.Cache, plans handlers.PlanSource) *Service {
	client := clientConfig(config, provider)

	return &Service{
		storage:   store,
		config:    config,
		provider:  provider,
		cache:     cache,
		directory: accounts.NewDirectory(store.Queries),

		homeHandler:      handlers.NewHomeHandler(gate.Options{Client: client, SiteURL: config.BaseURL}),
		authHandler:      handlers.NewAuthHandler(provider, client, config.BaseURL, config.IsProduction()),
		dashboardHandler: handlers.NewDashboardHandler(config.BaseURL),
		pricingHandler:   handlers.NewPricingHandler(plans, config.BaseURL),
		healthHandler:    handlers.NewHealthHandler(store, config.Environment, provider.Name()),
	}
}

// RegisterRoutes mounts every route. Pages go through the shell group, which
// resolves the session once per request before any handler runs.
func (s *Service) RegisterRoutes(e *echo.Echo) {
	// Static files and health check - no auth middleware
	e.Static("/public", "public")
	e.GET("/health", s.healthHandler.HandleHealth)

	shell := e.Group("")
	shell.Use(auth.Middleware(s.provider, s.directory))

	// Logout resolves the session first so the user's cached profile can be dropped
	shell.GET(handlers.LogoutPath, s.authHandler.HandleLogout)
	shell.POST(handlers.LogoutPath, s.authHandler.HandleLogout)

	shell.GET(gate.LandingPath, s.homeHandler.HandleHome)
	shell.GET(gate.PricingPath, s.pricingHandler.HandlePricing)
	shell.GET(gate.LoginPath, s.authHandler.HandleLogin)
	shell.GET(gate.SignupPath, s.authHandler.HandleSignUp)
	shell.GET(sessionPath, handlers.HandleSession)

	shell.GET(gate.DashboardPath, s.dashboardHandler.HandleDashboard,
		auth.RequireAuth(gate.LandingPath, gate.LoginPath))
}

// Close releases the profile cache. The storage is owned by the caller.
func (s *Service) Close() error {
	if s.cache != nil {
		return s.cache.Close()
	}
	return nil
}

func clientConfig(config *Config, provider auth.Provider) views.ClientConfig {
	return views.ClientConfig{
		Provider:            provider.Name(),
		ClerkPublishableKey: config.Clerk.PublishableKey,
		SupabaseURL:         config.Supabase.URL,
		SupabaseAnonKey:     config.Supabase.AnonKey,
		SessionURL:          sessionPath,
		AccessCookie:        config.Supabase.AccessCookie,
		RefreshCookie:       config.Supabase.RefreshCookie,
	}
}

// newProvider builds every provider that has credentials and selects the
// configured one.
func newProvider(config *Config, cache auth.Cache) (auth.Provider, error) {
	var available []auth.Provider

	if config.Supabase.JWTSecret != "" {
		p, err := auth.NewSupabaseProvider(auth.SupabaseConfig{
			JWTSecret:     config.Supabase.JWTSecret,
			AccessCookie:  config.Supabase.AccessCookie,
			RefreshCookie: config.Supabase.RefreshCookie,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create supabase provider: %w", err)
		}
		available = append(available, p)
	}

	if config.Clerk.SecretKey != "" {
		p, err := auth.NewClerkProvider(auth.ClerkConfig{
			SecretKey: config.Clerk.SecretKey,
			Cache:     cache,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create clerk provider: %w", err)
		}
		available = append(available, p)
	}

	provider, err := auth.NewRegistry(available...).Get(config.Auth.Provider)
	if err != nil {
		return nil, err
	}
	slog.Info("auth provider selected", "provider", provider.Name())
	return provider, nil
}

// newProfileCache prefers Redis when REDIS_URL is set so every instance
// shares one profile cache.
func newProfileCache(config *Config) (auth.Cache, error) {
	if config.Auth.RedisURL == "" {
		return auth.NewMemoryCache(config.Auth.CacheTTL), nil
	}

	cache, err := auth.NewRedisCache(config.Auth.RedisURL, config.Auth.CacheTTL)
	if err != nil {
		if errors.Is(err, auth.ErrCacheUnavailable) {
			slog.Warn("redis unavailable, using in-memory profile cache", "error", err)
			return auth.NewMemoryCache(config.Auth.CacheTTL), nil
		}
		return nil, fmt.Errorf("failed to create profile cache: %w", err)
	}
	return cache, nil
}
