package handler

import (
	"embed"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/raceboard/backend/internal/apidoc"
	"github.com/raceboard/backend/internal/server"
)

//go:embed static/openapi.html
var staticFS embed.FS

// OpenAPIHandler serves the API document and its UI page.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIUI serves the docs page. It is not cached so document
// updates show up immediately.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	page, err := staticFS.ReadFile("static/openapi.html")
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.HTMLBlob(http.StatusOK, page)
}

// ServeOpenAPIDocument serves the document collected by docs.
func (h *OpenAPIHandler) ServeOpenAPIDocument(docs *apidoc.Registry) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := docs.MarshalJSON()
		if err != nil {
			return fmt.Errorf("failed to render OpenAPI document: %w", err)
		}

		c.Response().Header().Set("Cache-Control", "no-cache")
		return c.JSONBlob(http.StatusOK, body)
	}
}
