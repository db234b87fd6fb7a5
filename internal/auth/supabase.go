package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	jwt "github.com/golang-jwt/jwt/v5"
)

const (
	DefaultSupabaseAccessCookie  = "sb-access-token"
	DefaultSupabaseRefreshCookie = "sb-refresh-token"

	supabaseAudience = "authenticated"
)

// SupabaseConfig configures SupabaseProvider.
type SupabaseConfig struct {
	JWTSecret     string
	AccessCookie  string
	RefreshCookie string
}

// SupabaseProvider verifies Supabase access tokens locally with the project's
// JWT secret. Refreshing an expired token is left to the browser client; until
// it does, the session is reported as loading.
type SupabaseProvider struct {
	secret        []byte
	accessCookie  string
	refreshCookie string
}

// supabaseClaims describes the access token payload issued by Supabase Auth.
type supabaseClaims struct {
	Email        string `json:"email"`
	Role         string `json:"role"`
	UserMetadata struct {
		FullName  string `json:"full_name"`
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
	} `json:"user_metadata"`
	jwt.RegisteredClaims
}

// NewSupabaseProvider builds a provider. The JWT secret is required.
func NewSupabaseProvider(cfg SupabaseConfig) (*SupabaseProvider, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("supabase: jwt secret is required")
	}
	if cfg.AccessCookie == "" {
		cfg.AccessCookie = DefaultSupabaseAccessCookie
	}
	if cfg.RefreshCookie == "" {
		cfg.RefreshCookie = DefaultSupabaseRefreshCookie
	}
	return &SupabaseProvider{
		secret:        []byte(cfg.JWTSecret),
		accessCookie:  cfg.AccessCookie,
		refreshCookie: cfg.RefreshCookie,
	}, nil
}

func (p *SupabaseProvider) Name() string { return "supabase" }

func (p *SupabaseProvider) SessionCookies() []string {
	return []string{p.accessCookie, p.refreshCookie}
}

// Resolve never returns an error: every token problem is a fact about the
// session, not a provider failure.
func (p *SupabaseProvider) Resolve(_ context.Context, r *http.Request) (Status, error) {
	hasRefresh := cookieValue(r, p.refreshCookie) != ""

	token := bearerToken(r)
	if token == "" {
		token = cookieValue(r, p.accessCookie)
	}

	if token == "" {
		if hasRefresh {
			// The client dropped its access token but can still mint a new one.
			return Status{Loading: true}, nil
		}
		return Status{}, nil
	}

	claims, err := p.parse(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) && hasRefresh {
			slog.Debug("supabase access token expired, waiting for client refresh")
			return Status{Loading: true}, nil
		}
		slog.Debug("supabase access token rejected", "error", err)
		return Status{}, nil
	}

	if claims.Subject == "" || claims.Role == "anon" {
		return Status{}, nil
	}

	fullName := claims.UserMetadata.FullName
	if fullName == "" {
		fullName = claims.UserMetadata.Name
	}

	return Status{
		User: &User{
			ID:       claims.Subject,
			Email:    claims.Email,
			FullName: buildFullName(fullName, "", "", claims.Email),
			ImageURL: claims.UserMetadata.AvatarURL,
		},
	}, nil
}

func (p *SupabaseProvider) parse(token string) (*supabaseClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &supabaseClaims{}, func(t *jwt.Token) (interface{}, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(supabaseAudience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*supabaseClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("supabase: invalid token claims")
	}
	return claims, nil
}
