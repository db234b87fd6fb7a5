package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnknownProvider is returned by the registry for names it does not hold.
var ErrUnknownProvider = errors.New("auth: unknown provider")

// Provider resolves the session carried by a request. Implementations report
// facts only: they never create sessions or refresh tokens.
type Provider interface {
	// Name returns the provider identifier (e.g. "supabase", "clerk").
	Name() string

	// Resolve returns the session status for r. A returned error means the
	// provider itself failed; callers treat that as "no session".
	Resolve(ctx context.Context, r *http.Request) (Status, error)

	// SessionCookies lists the cookies that hold provider session state, so
	// logout can clear them.
	SessionCookies() []string
}

// Forgetter is implemented by providers that keep user profiles between
// requests.
type Forgetter interface {
	Forget(ctx context.Context, userID string)
}

// Forget drops anything p keeps for userID. Providers without a profile cache
// are left alone.
func Forget(ctx context.Context, p Provider, userID string) {
	if f, ok := p.(Forgetter); ok {
		f.Forget(ctx, userID)
	}
}

// Registry holds the configured providers and allows lookup by name.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry registers the given providers by name. Later duplicates win.
func NewRegistry(list ...Provider) *Registry {
	m := make(map[string]Provider, len(list))
	for _, p := range list {
		m[strings.ToLower(p.Name())] = p
	}
	return &Registry{providers: m}
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return p, nil
}

// bearerToken extracts a token from the Authorization header, if any.
func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// cookieValue returns the named cookie's value or "".
func cookieValue(r *http.Request, name string) string {
	if name == "" {
		return ""
	}
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
