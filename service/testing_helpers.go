package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/medpriceai/medprice-web/internal/auth"
	"github.com/medpriceai/medprice-web/internal/billing"
	"github.com/medpriceai/medprice-web/storage"
)

const testSessionCookie = "test_session"

// headerProvider resolves the session from the test_session cookie:
// "loading", "error", or a user id. Anything else is anonymous.
type headerProvider struct{}

func (headerProvider) Name() string { return "supabase" }

func (headerProvider) SessionCookies() []string { return []string{testSessionCookie} }

func (headerProvider) Resolve(_ context.Context, r *http.Request) (auth.Status, error) {
	cookie, err := r.Cookie(testSessionCookie)
	if err != nil || cookie.Value == "" {
		return auth.Status{}, nil
	}
	switch cookie.Value {
	case "loading":
		return auth.Status{Loading: true}, nil
	case "error":
		return auth.Status{}, errors.New("provider exploded")
	default:
		return auth.Status{User: &auth.User{
			ID:       cookie.Value,
			Email:    cookie.Value + "@example.com",
			FullName: "Test User",
		}}, nil
	}
}

// cachingHeaderProvider keeps resolved profiles in a cache the way the Clerk
// provider does.
type cachingHeaderProvider struct {
	headerProvider
	cache auth.Cache
}

func (p cachingHeaderProvider) Resolve(ctx context.Context, r *http.Request) (auth.Status, error) {
	status, err := p.headerProvider.Resolve(ctx, r)
	if status.User != nil {
		p.cache.Set(ctx, status.User)
	}
	return status, err
}

func (p cachingHeaderProvider) Forget(ctx context.Context, userID string) {
	p.cache.Delete(ctx, userID)
}

type staticPlans []billing.Plan

func (p staticPlans) Plans(context.Context) []billing.Plan { return p }

// setupTestService creates a service instance with an in-memory database for testing
func setupTestService(t *testing.T) *Service {
	t.Helper()
	return setupTestServiceWith(t, headerProvider{}, nil)
}

func setupTestServiceWith(t *testing.T, provider auth.Provider, cache auth.Cache) *Service {
	t.Helper()

	store, cleanup, err := storage.NewTestStorage()
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(cleanup)

	config := &Config{
		Environment: "test",
		Port:        "8080",
		BaseURL:     "http://localhost:8080",
	}
	config.Auth.Provider = "supabase"
	config.Supabase.AccessCookie = auth.DefaultSupabaseAccessCookie
	config.Supabase.RefreshCookie = auth.DefaultSupabaseRefreshCookie

	return newService(store, config, provider, cache, staticPlans(billing.DefaultPlans))
}

// setupTestEcho creates an Echo instance with routes registered
func setupTestEcho(t *testing.T) (*echo.Echo, *Service) {
	t.Helper()

	e := echo.New()
	svc := setupTestService(t)
	svc.RegisterRoutes(e)

	return e, svc
}

// withSession sets the cookie headerProvider reads.
func withSession(r *http.Request, value string) *http.Request {
	r.AddCookie(&http.Cookie{Name: testSessionCookie, Value: value})
	return r
}
