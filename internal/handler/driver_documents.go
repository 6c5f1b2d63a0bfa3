package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/raceboard/backend/internal/dto"
	"github.com/raceboard/backend/internal/model"
	"github.com/raceboard/backend/internal/server"
)

// DriverDocumentService is implemented by *service.DriverDocumentService.
type DriverDocumentService interface {
	Add(ctx context.Context, profile model.ProfileData, doc model.DriverDocument) (*model.DriverDocument, error)
	List(ctx context.Context, profile model.ProfileData, driverID int64, filter model.DriverDocumentFilter) ([]model.DriverDocument, error)
	Get(ctx context.Context, profile model.ProfileData, driverID int64, documentID string) (*model.DriverDocument, error)
	Update(ctx context.Context, profile model.ProfileData, driverID int64, documentID string, patch model.DriverDocumentPatch) (*model.DriverDocument, error)
	Delete(ctx context.Context, profile model.ProfileData, driverID int64, documentID string) error
}

type DriverDocumentHandler struct {
	Handler
	documents DriverDocumentService
}

func NewDriverDocumentHandler(s *server.Server, documents DriverDocumentService) *DriverDocumentHandler {
	return &DriverDocumentHandler{
		Handler:   NewHandler(s),
		documents: documents,
	}
}

func (h *DriverDocumentHandler) Add(c echo.Context, req *dto.AddDriverDocumentRequest) (dto.DriverDocumentResponse, error) {
	profile, err := requireProfile(c)
	if err != nil {
		return dto.DriverDocumentResponse{}, err
	}

	doc, err := h.documents.Add(c.Request().Context(), profile, req.ToModel())
	if err != nil {
		return dto.DriverDocumentResponse{}, err
	}
	return dto.NewDriverDocumentResponse(doc), nil
}

func (h *DriverDocumentHandler) List(c echo.Context, req *dto.GetDriverDocumentsRequest) ([]dto.DriverDocumentResponse, error) {
	profile, err := requireProfile(c)
	if err != nil {
		return nil, err
	}

	docs, err := h.documents.List(c.Request().Context(), profile, req.DriverID, req.Filter())
	if err != nil {
		return nil, err
	}
	return dto.NewDriverDocumentsResponse(docs), nil
}

func (h *DriverDocumentHandler) Get(c echo.Context, req *dto.DriverDocumentPath) (dto.DriverDocumentResponse, error) {
	profile, err := requireProfile(c)
	if err != nil {
		return dto.DriverDocumentResponse{}, err
	}

	doc, err := h.documents.Get(c.Request().Context(), profile, req.DriverID, req.DocumentID)
	if err != nil {
		return dto.DriverDocumentResponse{}, err
	}
	return dto.NewDriverDocumentResponse(doc), nil
}

func (h *DriverDocumentHandler) Update(c echo.Context, req *dto.UpdateDriverDocumentRequest) (dto.DriverDocumentResponse, error) {
	profile, err := requireProfile(c)
	if err != nil {
		return dto.DriverDocumentResponse{}, err
	}

	doc, err := h.documents.Update(c.Request().Context(), profile, req.DriverID, req.DocumentID, req.Patch())
	if err != nil {
		return dto.DriverDocumentResponse{}, err
	}
	return dto.NewDriverDocumentResponse(doc), nil
}

func (h *DriverDocumentHandler) Delete(c echo.Context, req *dto.DriverDocumentPath) (dto.CommonMessageResponse, error) {
	profile, err := requireProfile(c)
	if err != nil {
		return dto.CommonMessageResponse{}, err
	}

	if err := h.documents.Delete(c.Request().Context(), profile, req.DriverID, req.DocumentID); err != nil {
		return dto.CommonMessageResponse{}, err
	}
	return dto.CommonMessageResponse{Message: "Document deleted"}, nil
}
