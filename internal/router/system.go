package router

import (
	"github.com/labstack/echo/v4"

	"github.com/raceboard/backend/internal/apidoc"
	"github.com/raceboard/backend/internal/handler"
	"github.com/raceboard/backend/internal/middleware"
)

// registerSystemRoutes registers the endpoints outside the versioned API.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares, docs *apidoc.Registry) {
	r.GET("/status", h.Health.CheckHealth)
	r.GET("/metrics", m.Metrics.Handler())
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/openapi.json", h.OpenAPI.ServeOpenAPIDocument(docs))
}
