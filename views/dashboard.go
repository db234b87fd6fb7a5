package views

import (
	"time"

	"github.com/a-h/templ"
	"github.com/medpriceai/medprice-web/views/layout"
)

// DashboardPage is the authenticated landing destination.
type DashboardPage struct {
	Meta        layout.PageMeta
	Name        string
	Email       string
	ImageURL    string
	MemberSince time.Time
	LogoutURL   string
	PricingURL  string
}

func Dashboard(p DashboardPage) templ.Component {
	return page("dashboard", p)
}
