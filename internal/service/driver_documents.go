package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/raceboard/backend/internal/errs"
	"github.com/raceboard/backend/internal/model"
)

type DriverDocumentStore interface {
	GetDriverOwner(ctx context.Context, driverID int64) (int64, error)
	Create(ctx context.Context, doc *model.DriverDocument) (*model.DriverDocument, error)
	Get(ctx context.Context, driverID int64, documentID string) (*model.DriverDocument, error)
	List(ctx context.Context, driverID int64, filter model.DriverDocumentFilter) ([]model.DriverDocument, error)
	Update(ctx context.Context, driverID int64, documentID string, patch model.DriverDocumentPatch) (*model.DriverDocument, error)
	Delete(ctx context.Context, driverID int64, documentID string) error
}

var errNotDocumentOwner = errs.NewForbiddenError("You can only manage documents of your own driver profile", true)

// DriverDocumentService manages the documents of a driver profile. Every
// operation requires the caller to own the profile.
type DriverDocumentService struct {
	store DriverDocumentStore
}

func NewDriverDocumentService(store DriverDocumentStore) *DriverDocumentService {
	return &DriverDocumentService{store: store}
}

// authorize fails with 403 unless profile owns driverID. Unknown drivers
// are reported the same way.
func (s *DriverDocumentService) authorize(ctx context.Context, profile model.ProfileData, driverID int64) error {
	ownerID, err := s.store.GetDriverOwner(ctx, driverID)
	if errors.Is(err, pgx.ErrNoRows) {
		return errNotDocumentOwner
	}
	if err != nil {
		return err
	}
	if ownerID != profile.UserID {
		return errNotDocumentOwner
	}
	return nil
}

func (s *DriverDocumentService) Add(ctx context.Context, profile model.ProfileData, doc model.DriverDocument) (*model.DriverDocument, error) {
	if err := s.authorize(ctx, profile, doc.DriverID); err != nil {
		return nil, err
	}
	return s.store.Create(ctx, &doc)
}

func (s *DriverDocumentService) List(ctx context.Context, profile model.ProfileData, driverID int64, filter model.DriverDocumentFilter) ([]model.DriverDocument, error) {
	if err := s.authorize(ctx, profile, driverID); err != nil {
		return nil, err
	}
	return s.store.List(ctx, driverID, filter)
}

func (s *DriverDocumentService) Get(ctx context.Context, profile model.ProfileData, driverID int64, documentID string) (*model.DriverDocument, error) {
	if err := s.authorize(ctx, profile, driverID); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, driverID, documentID)
}

func (s *DriverDocumentService) Update(ctx context.Context, profile model.ProfileData, driverID int64, documentID string, patch model.DriverDocumentPatch) (*model.DriverDocument, error) {
	if err := s.authorize(ctx, profile, driverID); err != nil {
		return nil, err
	}
	return s.store.Update(ctx, driverID, documentID, patch)
}

func (s *DriverDocumentService) Delete(ctx context.Context, profile model.ProfileData, driverID int64, documentID string) error {
	if err := s.authorize(ctx, profile, driverID); err != nil {
		return err
	}
	return s.store.Delete(ctx, driverID, documentID)
}
