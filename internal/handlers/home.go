package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medpriceai/medprice-web/internal/auth"
	"github.com/medpriceai/medprice-web/internal/gate"
)

// HomeHandler serves the landing page through a per-request gate.
type HomeHandler struct {
	opts gate.Options
}

func NewHomeHandler(opts gate.Options) *HomeHandler {
	return &HomeHandler{opts: opts}
}

// HandleHome shows the loading view, the marketing page, or redirects a
// signed-in visitor to the dashboard.
func (h *HomeHandler) HandleHome(c echo.Context) error {
	nav := &gate.Redirect{}
	g, err := gate.New(auth.StatusFrom(c), nav, h.opts)
	if err != nil {
		return err
	}

	view, err := g.Render()
	if err != nil {
		return err
	}

	noStore(c)
	if target := nav.Target(); target != "" {
		return c.Redirect(http.StatusSeeOther, target)
	}
	return Render(c, view)
}
