package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medpriceai/medprice-web/internal/auth"
)

// HandleSession reports the request's session as {loading, user} for page
// scripts waiting on the provider.
func HandleSession(c echo.Context) error {
	status, err := auth.StatusFrom(c).AuthStatus()
	if err != nil {
		return err
	}
	noStore(c)
	return c.JSON(http.StatusOK, status)
}
