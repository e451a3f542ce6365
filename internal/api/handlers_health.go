// handlers_health.go - Health check handler
package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HandleHealth reports server liveness, version, and uptime.
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": h.version,
		"uptime":  time.Since(h.startedAt).Round(time.Second).String(),
	})
}
