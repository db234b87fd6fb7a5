package handlers

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medpriceai/medprice-web/internal/gate"
)

// sanitizeReturnTo accepts only same-site absolute paths outside the auth flow.
func sanitizeReturnTo(path string) (string, bool) {
	if path == "" {
		return "", false
	}

	if strings.ContainsAny(path, "\r\n\\") {
		return "", false
	}

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") || strings.HasPrefix(path, "//") {
		return "", false
	}

	if !strings.HasPrefix(path, "/") {
		return "", false
	}

	base := path
	if idx := strings.IndexAny(path, "?#"); idx != -1 {
		base = path[:idx]
	}

	if base == "/auth" || strings.HasPrefix(base, "/auth/") {
		return "", false
	}

	return path, true
}

// returnTo reads redirect_url from the query, falling back to the dashboard.
func returnTo(c echo.Context) string {
	if path, ok := sanitizeReturnTo(c.QueryParam("redirect_url")); ok {
		return path
	}
	return gate.DashboardPath
}
