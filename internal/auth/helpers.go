package auth

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// IsAuthenticated checks if the current request carries a settled, signed-in user
func IsAuthenticated(c echo.Context) bool {
	status, err := StatusFrom(c).AuthStatus()
	return err == nil && status.Authenticated()
}

// CurrentUser retrieves the authenticated user from context
func CurrentUser(c echo.Context) (*User, bool) {
	status, err := StatusFrom(c).AuthStatus()
	if err != nil || !status.Authenticated() {
		return nil, false
	}
	return status.User, true
}

// RequireAuth guards routes that only make sense with a signed-in user.
// While the provider is still settling the session the visitor is sent to
// landingPath, which knows how to wait; anonymous visitors go to loginPath with
// the original path attached as redirect_url.
func RequireAuth(landingPath, loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			status, err := StatusFrom(c).AuthStatus()
			if err != nil {
				return err
			}

			if status.Loading {
				return c.Redirect(http.StatusFound, landingPath)
			}

			if status.User == nil {
				target := loginPath + "?redirect_url=" + url.QueryEscape(c.Request().URL.RequestURI())
				return c.Redirect(http.StatusFound, target)
			}

			return next(c)
		}
	}
}
