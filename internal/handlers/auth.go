package handlers

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/medpriceai/medprice-web/internal/auth"
	"github.com/medpriceai/medprice-web/internal/gate"
	"github.com/medpriceai/medprice-web/views"
	"github.com/medpriceai/medprice-web/views/layout"
)

const LogoutPath = "/auth/logout"

// AuthHandler serves the sign-in, sign-up and logout routes. The provider's
// browser SDK does the actual credential exchange.
type AuthHandler struct {
	provider auth.Provider
	client   views.ClientConfig
	siteURL  string
	secure   bool
}

// NewAuthHandler creates a new auth handler. secure marks cleared cookies as
// HTTPS-only.
func NewAuthHandler(provider auth.Provider, client views.ClientConfig, siteURL string, secure bool) *AuthHandler {
	return &AuthHandler{
		provider: provider,
		client:   client,
		siteURL:  siteURL,
		secure:   secure,
	}
}

// HandleLogin renders the provider sign-in page
func (h *AuthHandler) HandleLogin(c echo.Context) error {
	return h.renderEntry(c, false)
}

// HandleSignUp renders the provider sign-up page
func (h *AuthHandler) HandleSignUp(c echo.Context) error {
	return h.renderEntry(c, true)
}

func (h *AuthHandler) renderEntry(c echo.Context, signUp bool) error {
	redirectURL := returnTo(c)

	if auth.IsAuthenticated(c) {
		return c.Redirect(http.StatusSeeOther, redirectURL)
	}

	path, title, alternate := gate.LoginPath, "Login", gate.SignupPath
	if signUp {
		path, title, alternate = gate.SignupPath, "Sign Up", gate.LoginPath
	}
	if redirectURL != gate.DashboardPath {
		alternate += "?redirect_url=" + url.QueryEscape(redirectURL)
	}

	slog.Debug("rendering auth entry", "flow", title, "redirect_url", redirectURL)

	page := views.EntryPage{
		Meta:         layout.NewPageMeta(h.siteURL, path).WithTitle(title).Private(),
		Client:       h.client,
		RedirectURL:  redirectURL,
		AlternateURL: alternate,
	}

	noStore(c)
	if signUp {
		return Render(c, views.SignUp(page))
	}
	return Render(c, views.SignIn(page))
}

// HandleLogout clears the provider's session cookies, drops the cached profile
// of the signed-in user and returns to the landing page.
func (h *AuthHandler) HandleLogout(c echo.Context) error {
	if user, ok := auth.CurrentUser(c); ok {
		auth.Forget(c.Request().Context(), h.provider, user.ID)
		slog.Info("user logged out", "user_id", user.ID, "provider", h.provider.Name())
	}
	auth.ClearSessionCookies(c, h.provider, h.secure)
	noStore(c)
	return c.Redirect(http.StatusSeeOther, gate.LandingPath)
}
