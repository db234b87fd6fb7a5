package views

import (
	"github.com/a-h/templ"
	"github.com/medpriceai/medprice-web/views/layout"
)

// Link is a call-to-action anchor. CTA names the destination for styling and
// for tests ("login", "signup", "pricing").
type Link struct {
	Label   string
	Href    string
	CTA     string
	Primary bool
}

// Feature is a static marketing card.
type Feature struct {
	Icon  string
	Title string
	Body  string
}

// Hero is the headline block of the landing page.
type Hero struct {
	Title   string
	Lead    string
	Actions []Link
}

// LandingPage is the public marketing page shown to visitors without a session.
type LandingPage struct {
	Meta     layout.PageMeta
	Brand    string
	Nav      []Link
	Hero     Hero
	Features []Feature
}

// LoadingPage is shown while the auth provider is still settling the session.
type LoadingPage struct {
	Meta   layout.PageMeta
	Client ClientConfig
	// RetryAfterSeconds drives the no-script fallback refresh.
	RetryAfterSeconds int
}

// Loading renders a full-screen spinner that waits for the session to settle.
func Loading(p LoadingPage) templ.Component {
	if p.RetryAfterSeconds <= 0 {
		p.RetryAfterSeconds = 2
	}
	return page("loading", p)
}

// Landing renders the public marketing page.
func Landing(p LandingPage) templ.Component {
	return page("landing", p)
}
