package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Directory records authenticated users locally and decorates them with
// account data (AccountID, MemberSince).
type Directory interface {
	Touch(ctx context.Context, provider string, u *User) (*User, error)
}

// Middleware resolves the request's session once through provider and stores
// the resulting Status under StatusKey for every handler below it.
// It allows unauthenticated requests through; provider failures are logged
// and settle as "no session". dir may be nil.
func Middleware(provider Provider, dir Directory) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			path := req.URL.Path

			status, err := provider.Resolve(req.Context(), req)
			if err != nil {
				slog.Warn("auth provider failed, continuing unauthenticated",
					"provider", provider.Name(),
					"path", path,
					"error", err)
				status = Status{}
			}

			if status.Loading {
				// A half-settled session never exposes a user.
				status.User = nil
				slog.Debug("session pending", "provider", provider.Name(), "path", path)
			}

			if status.User != nil && dir != nil {
				synced, err := dir.Touch(req.Context(), provider.Name(), status.User)
				if err != nil {
					slog.Error("failed to sync user to directory", "error", err, "user_id", status.User.ID)
				} else {
					status.User = synced
				}
			}

			if status.User != nil {
				slog.Debug("user authenticated", "path", path, "user_id", status.User.ID)
			}

			c.Set(StatusKey, status)
			return next(c)
		}
	}
}

// ClearSessionCookies expires every cookie the provider keeps session state in.
func ClearSessionCookies(c echo.Context, provider Provider, secure bool) {
	for _, name := range provider.SessionCookies() {
		c.SetCookie(&http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
