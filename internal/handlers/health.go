package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is anything whose liveness the health check reports.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db          Pinger
	environment string
	provider    string
}

func NewHealthHandler(db Pinger, environment, provider string) *HealthHandler {
	return &HealthHandler{db: db, environment: environment, provider: provider}
}

func (h *HealthHandler) HandleHealth(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	code, dbStatus := http.StatusOK, "ok"
	if err := h.db.Ping(ctx); err != nil {
		slog.Error("health check: database ping failed", "error", err)
		code, dbStatus = http.StatusServiceUnavailable, "unavailable"
	}

	return c.JSON(code, map[string]string{
		"status":      http.StatusText(code),
		"environment": h.environment,
		"provider":    h.provider,
		"database":    dbStatus,
	})
}
