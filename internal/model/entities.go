package model

import (
	"time"

	"github.com/raceboard/backend/internal/lib/i18n"
)

// User is an application account as stored in the users table.
type User struct {
	ID           int64      `db:"id"`
	Login        string     `db:"login"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	FirstName    string     `db:"first_name"`
	LastName     string     `db:"last_name"`
	Role         AppRole    `db:"role"`
	Status       UserStatus `db:"status"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

// DriverDocument is a document uploaded by a driver.
// OwnerUserID is joined from drivers for the ownership check and is never exposed.
type DriverDocument struct {
	ID           string       `db:"id"`
	DriverID     int64        `db:"driver_id"`
	OwnerUserID  int64        `db:"owner_user_id"`
	DocumentType DocumentType `db:"c_document_type"`
	Number       string       `db:"number"`
	IssuedAt     *time.Time   `db:"issued_at"`
	ExpiresAt    *time.Time   `db:"expires_at"`
	File         []byte       `db:"file"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

// DriverDocumentFilter narrows a document listing.
type DriverDocumentFilter struct {
	DocumentType *DocumentType
}

// DriverDocumentPatch carries the optional fields of a document update.
// Nil fields are left untouched.
type DriverDocumentPatch struct {
	DocumentType *DocumentType
	Number       *string
	IssuedAt     *time.Time
	ExpiresAt    *time.Time
	File         []byte
}

// DriverRecord is a best lap of a driver at a location config.
type DriverRecord struct {
	RaceType           RaceType          `db:"c_race_type"`
	VehicleID          int64             `db:"vehicle_id"`
	VehicleName        string            `db:"vehicle_name"`
	LocationID         int64             `db:"location_id"`
	LocationName       i18n.Translations `db:"location_name"`
	LocationConfigID   int64             `db:"location_config_id"`
	LocationConfigName i18n.Translations `db:"location_config_name"`
	TiresID            *int64            `db:"tires_id"`
	TiresName          *string           `db:"tires_name"`
	RoadCondition      int               `db:"c_road_condition"`
	LapTime            *string           `db:"lap_time"`
	EventID            int64             `db:"event_id"`
}

// DriverRecordFilter narrows a record listing.
type DriverRecordFilter struct {
	RaceType *RaceType
	Year     int
}

// LocationConfig is a track layout of a location.
type LocationConfig struct {
	ID          int64             `db:"id"`
	LocationID  int64             `db:"location_id"`
	RaceType    RaceType          `db:"c_race_type"`
	Name        i18n.Translations `db:"name"`
	Image       []byte            `db:"image"`
	Description i18n.Translations `db:"description"`
	Length      float64           `db:"length"`
	Difficulty  int               `db:"difficulty"`
	CreatedBy   *int64            `db:"created_by"`
	CreatedAt   time.Time         `db:"created_at"`
}

// ClassifierType is one entry of the classifier dictionary.
type ClassifierType struct {
	Type        int    `db:"type"`
	Name        string `db:"name"`
	Description string `db:"description"`
}

// OrganizerEventYears groups the years in which an organizer held events
// of one race type.
type OrganizerEventYears struct {
	RaceType RaceType `db:"c_race_type"`
	Years    []int    `db:"years"`
}
