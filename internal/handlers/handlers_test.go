package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medpriceai/medprice-web/internal/auth"
	"github.com/medpriceai/medprice-web/internal/billing"
	"github.com/medpriceai/medprice-web/internal/gate"
	"github.com/medpriceai/medprice-web/views"
)

type stubProvider struct{}

func (stubProvider) Name() string { return "supabase" }
func (stubProvider) Resolve(context.Context, *http.Request) (auth.Status, error) {
	return auth.Status{}, nil
}
func (stubProvider) SessionCookies() []string {
	return []string{"sb-access-token", "sb-refresh-token"}
}

// cachingProvider keeps profiles in a MemoryCache like the Clerk provider does.
type cachingProvider struct {
	stubProvider
	cache *auth.MemoryCache
}

func (p cachingProvider) Forget(ctx context.Context, userID string) {
	p.cache.Delete(ctx, userID)
}

type stubPlans []billing.Plan

func (s stubPlans) Plans(context.Context) []billing.Plan { return s }

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

var (
	testClient = views.ClientConfig{Provider: "supabase", SessionURL: "/api/session"}
	testUser   = &auth.User{ID: "u1", Email: "ada@example.com", FullName: "Ada Lovelace"}
)

// TestHandleHome_Branches covers the three gate branches over HTTP
func TestHandleHome_Branches(t *testing.T) {
	h := NewHomeHandler(gate.Options{Client: testClient})

	t.Run("loading", func(t *testing.T) {
		c, rec := NewTestContext(http.MethodGet, "/")
		SetTestStatus(c, auth.Status{Loading: true})

		require.NoError(t, h.HandleHome(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Loading...")
		assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	})

	t.Run("signed in", func(t *testing.T) {
		c, rec := NewTestContext(http.MethodGet, "/")
		SetTestStatus(c, auth.Status{User: testUser})

		require.NoError(t, h.HandleHome(c))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, gate.DashboardPath, rec.Header().Get("Location"))
		assert.NotContains(t, rec.Body.String(), "data-cta")
	})

	t.Run("anonymous", func(t *testing.T) {
		c, rec := NewTestContext(http.MethodGet, "/")
		SetTestStatus(c, auth.Status{})

		require.NoError(t, h.HandleHome(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 4, strings.Count(rec.Body.String(), "data-cta="))
		assert.Equal(t, echoHTML, rec.Header().Get("Content-Type"))
	})
}

const echoHTML = "text/html; charset=UTF-8"

// TestHandleHome_NoMiddleware verifies the gate refuses to guess
func TestHandleHome_NoMiddleware(t *testing.T) {
	c, _ := NewTestContext(http.MethodGet, "/")
	err := NewHomeHandler(gate.Options{}).HandleHome(c)
	assert.ErrorIs(t, err, auth.ErrNoAuthContext)
}

func TestSanitizeReturnTo(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"", "", false},
		{"/dashboard", "/dashboard", true},
		{"/dashboard?tab=claims", "/dashboard?tab=claims", true},
		{"https://evil.test", "", false},
		{"//evil.test", "", false},
		{"/\\evil.test", "", false},
		{"dashboard", "", false},
		{"/auth/login", "", false},
		{"/auth", "", false},
		{"/authors", "/authors", true},
		{"/a\r\nSet-Cookie: x", "", false},
	}
	for _, tt := range tests {
		got, ok := sanitizeReturnTo(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

// TestHandleLogin_Anonymous renders the entry page with the sanitized target
func TestHandleLogin_Anonymous(t *testing.T) {
	h := NewAuthHandler(stubProvider{}, testClient, "", false)
	c, rec := NewTestContext(http.MethodGet, "/auth/login?redirect_url=%2Fpricing")
	SetTestStatus(c, auth.Status{})

	require.NoError(t, h.HandleLogin(c))
	body := rec.Body.String()
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, `data-flow="sign-in"`)
	assert.Regexp(t, `var redirectURL = "\\?/pricing"`, body)
	assert.Contains(t, body, `href="/auth/signup?redirect_url=%2Fpricing"`)
	assert.Contains(t, body, "noindex")
}

// TestHandleSignUp_RejectsForeignRedirect falls back to the dashboard
func TestHandleSignUp_RejectsForeignRedirect(t *testing.T) {
	h := NewAuthHandler(stubProvider{}, testClient, "", false)
	c, rec := NewTestContext(http.MethodGet, "/auth/signup?redirect_url=https%3A%2F%2Fevil.test")
	SetTestStatus(c, auth.Status{})

	require.NoError(t, h.HandleSignUp(c))
	body := rec.Body.String()
	assert.Contains(t, body, `data-flow="sign-up"`)
	assert.Regexp(t, `var redirectURL = "\\?/dashboard"`, body)
	assert.NotContains(t, body, "evil.test")
}

// TestHandleLogin_Authenticated skips the form for signed-in visitors
func TestHandleLogin_Authenticated(t *testing.T) {
	h := NewAuthHandler(stubProvider{}, testClient, "", false)
	c, rec := NewTestContext(http.MethodGet, "/auth/login?redirect_url=%2Fpricing")
	SetTestStatus(c, auth.Status{User: testUser})

	require.NoError(t, h.HandleLogin(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/pricing", rec.Header().Get("Location"))
}

// TestHandleLogout_ClearsCookies expires every provider cookie
func TestHandleLogout_ClearsCookies(t *testing.T) {
	h := NewAuthHandler(stubProvider{}, testClient, "", true)
	c, rec := NewTestContext(http.MethodGet, LogoutPath)
	SetTestStatus(c, auth.Status{User: testUser})

	require.NoError(t, h.HandleLogout(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, ck := range cookies {
		assert.Equal(t, -1, ck.MaxAge)
		assert.True(t, ck.Secure)
	}
}

// TestHandleLogout_ForgetsCachedProfile drops the signed-in user's profile only
func TestHandleLogout_ForgetsCachedProfile(t *testing.T) {
	cache := auth.NewMemoryCache(time.Minute)
	t.Cleanup(func() { _ = cache.Close() })
	ctx := context.Background()
	other := &auth.User{ID: "u2", Email: "grace@example.com"}
	cache.Set(ctx, testUser)
	cache.Set(ctx, other)

	h := NewAuthHandler(cachingProvider{cache: cache}, testClient, "", false)
	c, rec := NewTestContext(http.MethodPost, LogoutPath)
	SetTestStatus(c, auth.Status{User: testUser})

	require.NoError(t, h.HandleLogout(c))
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	_, ok := cache.Get(ctx, testUser.ID)
	assert.False(t, ok, "logged out profile should not stay cached")
	_, ok = cache.Get(ctx, other.ID)
	assert.True(t, ok)
}

// TestHandleDashboard_ShowsUser renders profile and account data
func TestHandleDashboard_ShowsUser(t *testing.T) {
	h := NewDashboardHandler("")
	c, rec := NewTestContext(http.MethodGet, gate.DashboardPath)
	u := *testUser
	u.MemberSince = time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)
	SetTestStatus(c, auth.Status{User: &u})

	require.NoError(t, h.HandleDashboard(c))
	body := rec.Body.String()
	assert.Contains(t, body, "Ada Lovelace")
	assert.Contains(t, body, "ada@example.com")
	assert.Contains(t, body, "Member since")
	assert.Contains(t, body, `href="/auth/logout"`)
}

// TestHandleDashboard_FallsBackToEmail uses the email when no name is known
func TestHandleDashboard_FallsBackToEmail(t *testing.T) {
	h := NewDashboardHandler("")
	c, rec := NewTestContext(http.MethodGet, gate.DashboardPath)
	SetTestStatus(c, auth.Status{User: &auth.User{ID: "u2", Email: "bob@example.com"}})

	require.NoError(t, h.HandleDashboard(c))
	assert.Contains(t, rec.Body.String(), "Welcome back, bob@example.com")
	assert.NotContains(t, rec.Body.String(), "Member since")
}

func TestHandleDashboard_Unguarded(t *testing.T) {
	c, _ := NewTestContext(http.MethodGet, gate.DashboardPath)
	SetTestStatus(c, auth.Status{})
	assert.ErrorIs(t, NewDashboardHandler("").HandleDashboard(c), auth.ErrNoAuthContext)
}

// TestHandlePricing_Plans lists every plan from the source
func TestHandlePricing_Plans(t *testing.T) {
	h := NewPricingHandler(stubPlans(billing.DefaultPlans), "")

	c, rec := NewTestContext(http.MethodGet, gate.PricingPath)
	SetTestStatus(c, auth.Status{})
	require.NoError(t, h.HandlePricing(c))

	body := rec.Body.String()
	assert.Equal(t, len(billing.DefaultPlans), strings.Count(body, "data-plan"))
	assert.Contains(t, body, "$49")
	assert.Contains(t, body, "Get Started")
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, echo.HeaderCookie, rec.Header().Get(echo.HeaderVary))

	c, rec = NewTestContext(http.MethodGet, gate.PricingPath)
	SetTestStatus(c, auth.Status{User: testUser})
	require.NoError(t, h.HandlePricing(c))
	assert.NotContains(t, rec.Body.String(), "Get Started")
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, echo.HeaderCookie, rec.Header().Get(echo.HeaderVary))
}

// TestHandleSession_JSON exposes the status for page scripts
func TestHandleSession_JSON(t *testing.T) {
	c, rec := NewTestContext(http.MethodGet, "/api/session")
	SetTestStatus(c, auth.Status{Loading: true})

	require.NoError(t, HandleSession(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, true, got["loading"])
	assert.Nil(t, got["user"])
}

func TestHandleHealth(t *testing.T) {
	c, rec := NewTestContext(http.MethodGet, "/health")
	require.NoError(t, NewHealthHandler(stubPinger{}, "test", "supabase").HandleHealth(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"ok"`)

	c, rec = NewTestContext(http.MethodGet, "/health")
	require.NoError(t, NewHealthHandler(stubPinger{err: errors.New("closed")}, "test", "supabase").HandleHealth(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"unavailable"`)
}
