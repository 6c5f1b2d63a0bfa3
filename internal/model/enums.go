// Package model holds the internal shapes that flow between the
// repository, service and handler layers.
//
// These are never serialized directly to clients. Handlers project them
// into the whitelisted response types of the dto package.
package model

// RaceType is the closed set of race disciplines (`c_race_type`).
type RaceType int

const (
	RaceTypeTimeAttack RaceType = 1
	RaceTypeDrag       RaceType = 2
)

// RaceTypes lists every valid RaceType in code order.
func RaceTypes() []RaceType {
	return []RaceType{RaceTypeTimeAttack, RaceTypeDrag}
}

func (r RaceType) String() string {
	switch r {
	case RaceTypeTimeAttack:
		return "Time attack"
	case RaceTypeDrag:
		return "Drag"
	default:
		return "Unknown"
	}
}

// DocumentType is the closed set of driver document kinds (`c_document_type`).
type DocumentType int

const (
	DocumentTypeLicense            DocumentType = 1
	DocumentTypeMedicalCertificate DocumentType = 2
	DocumentTypeInsurance          DocumentType = 3
)

// DocumentTypes lists every valid DocumentType in code order.
func DocumentTypes() []DocumentType {
	return []DocumentType{DocumentTypeLicense, DocumentTypeMedicalCertificate, DocumentTypeInsurance}
}

func (d DocumentType) String() string {
	switch d {
	case DocumentTypeLicense:
		return "Driving license"
	case DocumentTypeMedicalCertificate:
		return "Medical certificate"
	case DocumentTypeInsurance:
		return "Insurance"
	default:
		return "Unknown"
	}
}

// AppRole is the role carried by an authenticated session.
type AppRole string

const (
	AppRoleUser      AppRole = "user"
	AppRoleDriver    AppRole = "driver"
	AppRoleOrganizer AppRole = "organizer"
	AppRoleAdmin     AppRole = "admin"
)

// Valid reports whether r is one of the known roles.
func (r AppRole) Valid() bool {
	switch r {
	case AppRoleUser, AppRoleDriver, AppRoleOrganizer, AppRoleAdmin:
		return true
	}
	return false
}

// UserStatus tracks account activation.
type UserStatus string

const (
	UserStatusPending UserStatus = "pending"
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)
