// routes.go - Route registration
package api

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes registers all API routes with the Echo instance.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	apiGroup := e.Group("/api")

	apiGroup.GET("/health", h.HandleHealth)

	// The endpoint the form component submits to.
	apiGroup.POST("/process-schema", h.HandleProcessSchema)

	// Schema file management
	apiGroup.GET("/schemas/recent", h.HandleRecentSchemas)
	apiGroup.GET("/schemas/:id", h.HandleGetSchema)
	apiGroup.DELETE("/schemas/:id", h.HandleDeleteSchema)

	// Query corrections and result export
	apiGroup.POST("/suggest", h.HandleSuggest)
	apiGroup.POST("/export", h.HandleExport)

	// Processing history
	apiGroup.GET("/history", h.HandleHistory)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
