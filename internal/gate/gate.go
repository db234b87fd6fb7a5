// Package gate decides what the landing page shows for a session: a loading
// view while the provider settles, a redirect for signed-in users, or the
// public marketing page.
package gate

import (
	"errors"

	"github.com/a-h/templ"
	"github.com/medpriceai/medprice-web/internal/auth"
	"github.com/medpriceai/medprice-web/views"
)

const (
	LandingPath   = "/"
	DashboardPath = "/dashboard"
	LoginPath     = "/auth/login"
	SignupPath    = "/auth/signup"
	PricingPath   = "/pricing"
)

// ErrNoNavigator is returned by New when no Navigator is supplied.
var ErrNoNavigator = errors.New("gate: navigator is required")

// State is the branch the gate selected on its last render.
type State int

const (
	// Unknown is the state before the first render.
	Unknown State = iota
	Loading
	Redirecting
	Public
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Redirecting:
		return "redirecting"
	case Public:
		return "public"
	default:
		return "unknown"
	}
}

// StatusReader is the read-only view of the session the gate renders from.
type StatusReader interface {
	AuthStatus() (auth.Status, error)
}

// Navigator moves the visitor to another path. Calling GoTo repeatedly with
// the same path must have the same effect as calling it once.
type Navigator interface {
	GoTo(path string)
}

type Options struct {
	// Client configures the browser SDK the loading view waits on.
	Client views.ClientConfig
	// SiteURL is used for the canonical link of the public page.
	SiteURL string
}

type Gate struct {
	status StatusReader
	nav    Navigator
	opts   Options
	state  State
}

// New builds a gate over status and nav. A nil status means the auth
// middleware is not mounted, which is a wiring error rather than an
// anonymous visitor.
func New(status StatusReader, nav Navigator, opts Options) (*Gate, error) {
	if status == nil {
		return nil, auth.ErrNoAuthContext
	}
	if nav == nil {
		return nil, ErrNoNavigator
	}
	return &Gate{status: status, nav: nav, opts: opts}, nil
}

// Decide maps a status to its branch. Loading wins over a present user.
func Decide(s auth.Status) State {
	switch {
	case s.Loading:
		return Loading
	case s.User != nil:
		return Redirecting
	default:
		return Public
	}
}

// Render reads the current status and returns the view for it. The
// Redirecting branch returns a nil component; navigation to the dashboard is
// requested only when the gate enters that state, so re-rendering an
// unchanged signed-in status does not navigate again.
func (g *Gate) Render() (templ.Component, error) {
	status, err := g.status.AuthStatus()
	if err != nil {
		return nil, err
	}

	prev := g.state
	g.state = Decide(status)

	switch g.state {
	case Loading:
		return g.loadingPage(), nil
	case Redirecting:
		if prev != Redirecting {
			g.nav.GoTo(DashboardPath)
		}
		return nil, nil
	default:
		return g.landingPage(), nil
	}
}

// State returns the branch selected by the most recent Render.
func (g *Gate) State() State {
	return g.state
}
