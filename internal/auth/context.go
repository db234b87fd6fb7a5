package auth

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"
)

// StatusKey is the echo context key the session middleware stores the Status under.
const StatusKey = "auth_status"

// ErrNoAuthContext is returned when a handler asks for the auth status on a
// route that is not wrapped by Middleware.
var ErrNoAuthContext = errors.New("auth: status requested outside the auth middleware")

// Status is the session state resolved for one request.
// User is nil when no authenticated session exists. Loading is true while the
// provider cannot yet tell whether the session is valid.
type Status struct {
	User    *User `json:"user"`
	Loading bool  `json:"loading"`
}

// Authenticated reports whether the status carries a settled, signed-in user.
func (s Status) Authenticated() bool {
	return !s.Loading && s.User != nil
}

// User is the identity reference exposed to handlers and templates.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	ImageURL    string    `json:"image_url,omitempty"`
	AccountID   string    `json:"account_id,omitempty"`
	MemberSince time.Time `json:"member_since,omitzero"`
}

// HasImage reports whether the provider supplied an avatar.
func (u *User) HasImage() bool {
	return u != nil && u.ImageURL != ""
}

// RequestStatus exposes the current request's Status as a read-only capability.
type RequestStatus struct {
	c echo.Context
}

// StatusFrom returns a reader bound to c. The status itself is looked up on
// every AuthStatus call so a reader never caches a stale snapshot.
func StatusFrom(c echo.Context) RequestStatus {
	return RequestStatus{c: c}
}

// AuthStatus returns the Status stored by Middleware, or ErrNoAuthContext when
// the middleware never ran for this request.
func (r RequestStatus) AuthStatus() (Status, error) {
	if r.c == nil {
		return Status{}, ErrNoAuthContext
	}
	status, ok := r.c.Get(StatusKey).(Status)
	if !ok {
		return Status{}, ErrNoAuthContext
	}
	return status, nil
}

// buildFullName picks the best display name available.
func buildFullName(firstName, lastName, username, email string) string {
	if firstName != "" && lastName != "" {
		return firstName + " " + lastName
	}
	if firstName != "" {
		return firstName
	}
	if lastName != "" {
		return lastName
	}
	if username != "" {
		return username
	}
	if email != "" {
		return email
	}
	return "User"
}

// stringValue safely converts a *string to string
func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
