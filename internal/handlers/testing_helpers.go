package handlers

import (
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/medpriceai/medprice-web/internal/auth"
)

// NewTestContext creates a new Echo context for testing
func NewTestContext(method, path string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// SetTestStatus stores status in the Echo context the way auth.Middleware does.
func SetTestStatus(c echo.Context, status auth.Status) {
	c.Set(auth.StatusKey, status)
}
