package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/medpriceai/medprice-web/internal/auth"
	"github.com/medpriceai/medprice-web/internal/gate"
	"github.com/medpriceai/medprice-web/views"
	"github.com/medpriceai/medprice-web/views/layout"
)

type DashboardHandler struct {
	siteURL string
}

func NewDashboardHandler(siteURL string) *DashboardHandler {
	return &DashboardHandler{siteURL: siteURL}
}

// HandleDashboard renders the signed-in home. It must sit behind auth.RequireAuth.
func (h *DashboardHandler) HandleDashboard(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return auth.ErrNoAuthContext
	}

	name := user.FullName
	if name == "" {
		name = user.Email
	}

	noStore(c)
	return Render(c, views.Dashboard(views.DashboardPage{
		Meta:        layout.NewPageMeta(h.siteURL, gate.DashboardPath).WithTitle("Dashboard").Private(),
		Name:        name,
		Email:       user.Email,
		ImageURL:    user.ImageURL,
		MemberSince: user.MemberSince,
		LogoutURL:   LogoutPath,
		PricingURL:  gate.PricingPath,
	}))
}
