package handlers

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/medpriceai/medprice-web/internal/auth"
	"github.com/medpriceai/medprice-web/internal/billing"
	"github.com/medpriceai/medprice-web/internal/gate"
	"github.com/medpriceai/medprice-web/views"
	"github.com/medpriceai/medprice-web/views/layout"
)

const salesContactURL = "mailto:sales@medprice.ai"

// PlanSource supplies the plans shown on the pricing page.
type PlanSource interface {
	Plans(ctx context.Context) []billing.Plan
}

type PricingHandler struct {
	plans   PlanSource
	siteURL string
}

func NewPricingHandler(plans PlanSource, siteURL string) *PricingHandler {
	return &PricingHandler{plans: plans, siteURL: siteURL}
}

func (h *PricingHandler) HandlePricing(c echo.Context) error {
	plans := h.plans.Plans(c.Request().Context())

	cards := make([]views.PlanCard, 0, len(plans))
	for _, p := range plans {
		cards = append(cards, views.PlanCard{
			Name:         p.Name,
			Description:  p.Description,
			Amount:       p.Amount,
			Currency:     p.Currency,
			Interval:     p.Interval,
			ContactSales: p.ContactSales,
			Featured:     p.Featured,
		})
	}

	// The call to action depends on the session cookie.
	noStore(c)
	signedIn := auth.IsAuthenticated(c)

	return Render(c, views.Pricing(views.PricingPage{
		Meta:       layout.NewPageMeta(h.siteURL, gate.PricingPath).WithTitle("Pricing"),
		Plans:      cards,
		SignupURL:  gate.SignupPath,
		SignedIn:   signedIn,
		ContactURL: salesContactURL,
	}))
}
