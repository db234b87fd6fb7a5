package views

import (
	"github.com/a-h/templ"
	"github.com/medpriceai/medprice-web/views/layout"
)

// PlanCard is one column of the pricing table.
type PlanCard struct {
	Name        string
	Description string
	Amount      int64
	Currency    string
	Interval    string
	// ContactSales replaces the price with a "Contact us" label.
	ContactSales bool
	Featured     bool
}

type PricingPage struct {
	Meta       layout.PageMeta
	Plans      []PlanCard
	SignupURL  string
	SignedIn   bool
	ContactURL string
}

func Pricing(p PricingPage) templ.Component {
	return page("pricing", p)
}
