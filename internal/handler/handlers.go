// Package handler is the HTTP layer between the router and the services.
// Handlers receive bound and validated request dtos, call a service and
// project the result into response dtos.
package handler

import (
	"github.com/raceboard/backend/internal/server"
	"github.com/raceboard/backend/internal/service"
)

// Handlers groups every HTTP handler.
type Handlers struct {
	Health          *HealthHandler
	OpenAPI         *OpenAPIHandler
	Auth            *AuthHandler
	DriverDocuments *DriverDocumentHandler
	Catalog         *CatalogHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:          NewHealthHandler(s),
		OpenAPI:         NewOpenAPIHandler(s),
		Auth:            NewAuthHandler(s, services.Auth),
		DriverDocuments: NewDriverDocumentHandler(s, services.DriverDocuments),
		Catalog:         NewCatalogHandler(s, services.Catalog),
	}
}
