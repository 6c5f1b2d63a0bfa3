package service

import (
	"context"

	"github.com/raceboard/backend/internal/model"
)

type DriverRecordStore interface {
	List(ctx context.Context, driverID int64, filter model.DriverRecordFilter) ([]model.DriverRecord, error)
}

type LocationConfigStore interface {
	List(ctx context.Context, raceType *model.RaceType) ([]model.LocationConfig, error)
}

type ClassifierStore interface {
	ListTypes(ctx context.Context) ([]model.ClassifierType, error)
}

type EventStore interface {
	OrganizerYears(ctx context.Context, organizerID int64) ([]model.OrganizerEventYears, error)
}

// CatalogService serves the read-only listings: driver records, location
// configs, classifiers and organizer event years.
type CatalogService struct {
	records     DriverRecordStore
	locations   LocationConfigStore
	classifiers ClassifierStore
	events      EventStore
}

func NewCatalogService(records DriverRecordStore, locations LocationConfigStore, classifiers ClassifierStore, events EventStore) *CatalogService {
	return &CatalogService{
		records:     records,
		locations:   locations,
		classifiers: classifiers,
		events:      events,
	}
}

func (s *CatalogService) DriverRecords(ctx context.Context, driverID int64, filter model.DriverRecordFilter) ([]model.DriverRecord, error) {
	return s.records.List(ctx, driverID, filter)
}

func (s *CatalogService) LocationConfigs(ctx context.Context, raceType *model.RaceType) ([]model.LocationConfig, error) {
	return s.locations.List(ctx, raceType)
}

func (s *CatalogService) ClassifierTypes(ctx context.Context) ([]model.ClassifierType, error) {
	return s.classifiers.ListTypes(ctx)
}

// OrganizerEventYears lists the years the calling organizer held events in,
// per race type.
func (s *CatalogService) OrganizerEventYears(ctx context.Context, profile model.ProfileData) ([]model.OrganizerEventYears, error) {
	return s.events.OrganizerYears(ctx, profile.UserID)
}
