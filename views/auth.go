package views

import (
	"github.com/a-h/templ"
	"github.com/medpriceai/medprice-web/views/layout"
)

// EntryPage mounts the provider's sign-in or sign-up widget.
type EntryPage struct {
	Meta   layout.PageMeta
	Client ClientConfig
	// SignUp selects the sign-up flow instead of sign-in.
	SignUp bool
	// RedirectURL is where the browser goes once the provider signs the user in.
	RedirectURL string
	// AlternateURL links to the other flow (sign-up from sign-in and back).
	AlternateURL string
}

// SignIn renders the provider sign-in page.
func SignIn(p EntryPage) templ.Component {
	p.SignUp = false
	return page("entry", p)
}

// SignUp renders the provider sign-up page.
func SignUp(p EntryPage) templ.Component {
	p.SignUp = true
	return page("entry", p)
}
