package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/raceboard/backend/internal/dto"
	"github.com/raceboard/backend/internal/middleware"
	"github.com/raceboard/backend/internal/model"
	"github.com/raceboard/backend/internal/server"
)

// CatalogService is implemented by *service.CatalogService.
type CatalogService interface {
	DriverRecords(ctx context.Context, driverID int64, filter model.DriverRecordFilter) ([]model.DriverRecord, error)
	LocationConfigs(ctx context.Context, raceType *model.RaceType) ([]model.LocationConfig, error)
	ClassifierTypes(ctx context.Context) ([]model.ClassifierType, error)
	OrganizerEventYears(ctx context.Context, profile model.ProfileData) ([]model.OrganizerEventYears, error)
}

// CatalogHandler serves the read-only listings. Translated fields are
// resolved to the language of the request.
type CatalogHandler struct {
	Handler
	catalog CatalogService
}

func NewCatalogHandler(s *server.Server, catalog CatalogService) *CatalogHandler {
	return &CatalogHandler{
		Handler: NewHandler(s),
		catalog: catalog,
	}
}

func (h *CatalogHandler) DriverRecords(c echo.Context, req *dto.GetDriverRecordsRequest) ([]dto.DriverRecordResponse, error) {
	records, err := h.catalog.DriverRecords(c.Request().Context(), req.DriverID, req.Filter())
	if err != nil {
		return nil, err
	}
	return dto.NewDriverRecordsResponse(records, middleware.GetLocale(c)), nil
}

func (h *CatalogHandler) LocationConfigs(c echo.Context, req *dto.GetLocationConfigsRequest) ([]dto.LocationConfigResponse, error) {
	configs, err := h.catalog.LocationConfigs(c.Request().Context(), req.RaceType)
	if err != nil {
		return nil, err
	}
	return dto.NewLocationConfigsResponse(configs, middleware.GetLocale(c)), nil
}

func (h *CatalogHandler) ClassifierTypes(c echo.Context, _ *dto.EmptyRequest) ([]dto.ClassifierTypeResponse, error) {
	types, err := h.catalog.ClassifierTypes(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return dto.NewClassifierTypesResponse(types), nil
}

func (h *CatalogHandler) OrganizerEventYears(c echo.Context, _ *dto.EmptyRequest) ([]dto.OrganizerEventYearsResponse, error) {
	profile, err := requireProfile(c)
	if err != nil {
		return nil, err
	}

	groups, err := h.catalog.OrganizerEventYears(c.Request().Context(), profile)
	if err != nil {
		return nil, err
	}
	return dto.NewOrganizerEventYearsResponse(groups), nil
}
