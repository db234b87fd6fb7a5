package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	clerkjwt "github.com/clerk/clerk-sdk-go/v2/jwt"
	"github.com/clerk/clerk-sdk-go/v2/user"
	josejwt "github.com/go-jose/go-jose/v3/jwt"
)

const (
	clerkSessionCookie   = "__session"
	clerkClientUATCookie = "__client_uat"

	clerkClockSkew = 5 * time.Second
)

// ErrSessionTokenInvalid marks a session token that is malformed, expired or
// not yet valid. Clerk JS replaces such a token on its next load, so it is not
// a provider failure.
var ErrSessionTokenInvalid = errors.New("clerk: session token invalid")

// ClerkConfig configures ClerkProvider.
type ClerkConfig struct {
	SecretKey string
	Cache     Cache
}

// ClerkProvider verifies Clerk session JWTs with the Clerk SDK and loads the
// user profile from the Clerk API, caching it between requests.
type ClerkProvider struct {
	cache   Cache
	verify  func(ctx context.Context, token string) (*clerk.SessionClaims, error)
	getUser func(ctx context.Context, id string) (*clerk.User, error)
}

// NewClerkProvider configures the Clerk SDK's default backend with the secret
// key and returns a provider.
func NewClerkProvider(cfg ClerkConfig) (*ClerkProvider, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("clerk: secret key is required")
	}
	clerk.SetKey(cfg.SecretKey)

	cache := cfg.Cache
	if cache == nil {
		cache = NewMemoryCache(defaultCacheTTL)
	}

	return &ClerkProvider{
		cache: cache,
		verify: func(ctx context.Context, token string) (*clerk.SessionClaims, error) {
			if err := checkSessionToken(token, time.Now()); err != nil {
				return nil, err
			}
			return clerkjwt.Verify(ctx, &clerkjwt.VerifyParams{Token: token})
		},
		getUser: user.Get,
	}, nil
}

func (p *ClerkProvider) Name() string { return "clerk" }

func (p *ClerkProvider) SessionCookies() []string {
	return []string{clerkSessionCookie, "__clerk_db_jwt", clerkClientUATCookie, "__client"}
}

// Resolve reports Loading when the browser holds a signed-in Clerk client
// (__client_uat > 0) but no usable session token yet; Clerk JS refreshes the
// short-lived __session cookie on its next load. Verification failures other
// than ErrSessionTokenInvalid are returned as errors.
func (p *ClerkProvider) Resolve(ctx context.Context, r *http.Request) (Status, error) {
	uat := cookieValue(r, clerkClientUATCookie)
	signedInClient := uat != "" && uat != "0"

	token := extractSessionToken(r)
	if token == "" {
		if signedInClient {
			return Status{Loading: true}, nil
		}
		return Status{}, nil
	}

	claims, err := p.verify(ctx, token)
	if errors.Is(err, ErrSessionTokenInvalid) {
		slog.Debug("clerk session token rejected", "error", err, "signed_in_client", signedInClient)
		if signedInClient {
			return Status{Loading: true}, nil
		}
		return Status{}, nil
	}
	if err != nil {
		return Status{}, fmt.Errorf("failed to verify clerk session: %w", err)
	}
	if claims == nil || claims.Subject == "" {
		return Status{}, nil
	}

	u, err := p.lookupUser(ctx, claims.Subject)
	if err != nil {
		return Status{}, err
	}
	return Status{User: u}, nil
}

// Forget drops the cached profile so the next session for userID is loaded
// from the Clerk API again.
func (p *ClerkProvider) Forget(ctx context.Context, userID string) {
	p.cache.Delete(ctx, userID)
}

// lookupUser fetches a user by ID from the Clerk API (with caching)
func (p *ClerkProvider) lookupUser(ctx context.Context, userID string) (*User, error) {
	if cached, ok := p.cache.Get(ctx, userID); ok {
		return cached, nil
	}

	clerkUser, err := p.getUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch clerk user: %w", err)
	}

	u := mapClerkUser(clerkUser)
	p.cache.Set(ctx, u)
	return u, nil
}

// checkSessionToken parses the token without verifying its signature and
// checks its time claims, so that a stale cookie is told apart from a
// verification the provider could not complete.
func checkSessionToken(token string, now time.Time) error {
	parsed, err := josejwt.ParseSigned(token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSessionTokenInvalid, err)
	}

	var claims josejwt.Claims
	if err := parsed.UnsafeClaimsWithoutVerification(&claims); err != nil {
		return fmt.Errorf("%w: %w", ErrSessionTokenInvalid, err)
	}
	if err := claims.ValidateWithLeeway(josejwt.Expected{Time: now}, clerkClockSkew); err != nil {
		return fmt.Errorf("%w: %w", ErrSessionTokenInvalid, err)
	}
	return nil
}

// mapClerkUser converts a Clerk user to the identity reference handlers see.
func mapClerkUser(cu *clerk.User) *User {
	email := primaryEmail(cu)
	return &User{
		ID:       cu.ID,
		Email:    email,
		FullName: buildFullName(stringValue(cu.FirstName), stringValue(cu.LastName), stringValue(cu.Username), email),
		ImageURL: stringValue(cu.ImageURL),
	}
}

func primaryEmail(cu *clerk.User) string {
	if len(cu.EmailAddresses) == 0 {
		return ""
	}

	primaryID := stringValue(cu.PrimaryEmailAddressID)
	for _, email := range cu.EmailAddresses {
		if email.ID == primaryID {
			return email.EmailAddress
		}
	}

	// Fallback to first email
	return cu.EmailAddresses[0].EmailAddress
}

// extractSessionToken gets the token from the Clerk-Session header, a bearer
// Authorization header or the __session cookie, in that order.
func extractSessionToken(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get("Clerk-Session")); token != "" {
		return token
	}
	if token := bearerToken(r); token != "" {
		return token
	}
	return cookieValue(r, clerkSessionCookie)
}
