package dto

import (
	"time"

	"github.com/raceboard/backend/internal/model"
	"github.com/raceboard/backend/internal/validation"
)

// DriverDocumentPath identifies one document of a driver.
type DriverDocumentPath struct {
	DriverID   int64  `param:"driver_id" json:"-" validate:"required,min=1" doc:"Driver id"`
	DocumentID string `param:"document_id" json:"-" validate:"required,uuid" doc:"Document id"`
}

func (r *DriverDocumentPath) Validate() error {
	return validation.Validate(r)
}

type AddDriverDocumentRequest struct {
	DriverID     int64              `param:"driver_id" json:"-" validate:"required,min=1" doc:"Driver id"`
	DocumentType model.DocumentType `json:"c_document_type" validate:"required,document_type" doc:"Document type"`
	Number       string             `json:"number" validate:"required,max=64" doc:"Document number"`
	IssuedAt     *string            `json:"issued_at" validate:"omitempty,datetime=2006-01-02" doc:"Issue date (YYYY-MM-DD)"`
	ExpiresAt    *string            `json:"expires_at" validate:"omitempty,datetime=2006-01-02" doc:"Expiry date (YYYY-MM-DD)"`
	File         string             `json:"file" validate:"required,base64" doc:"Scanned document, base64"`
}

func (r *AddDriverDocumentRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	return validateDateRange(r.IssuedAt, r.ExpiresAt)
}

// ToModel converts the request. It must only be called after Validate succeeded.
func (r *AddDriverDocumentRequest) ToModel() model.DriverDocument {
	issuedAt, _ := ParseDate(r.IssuedAt)
	expiresAt, _ := ParseDate(r.ExpiresAt)
	file, _ := DecodeBinary(r.File)

	return model.DriverDocument{
		DriverID:     r.DriverID,
		DocumentType: r.DocumentType,
		Number:       r.Number,
		IssuedAt:     issuedAt,
		ExpiresAt:    expiresAt,
		File:         file,
	}
}

type GetDriverDocumentsRequest struct {
	DriverID     int64               `param:"driver_id" json:"-" validate:"required,min=1" doc:"Driver id"`
	DocumentType *model.DocumentType `query:"c_document_type" json:"-" validate:"omitempty,document_type" doc:"Document type"`
}

func (r *GetDriverDocumentsRequest) Validate() error {
	return validation.Validate(r)
}

func (r *GetDriverDocumentsRequest) Filter() model.DriverDocumentFilter {
	return model.DriverDocumentFilter{DocumentType: r.DocumentType}
}

type UpdateDriverDocumentRequest struct {
	DriverDocumentPath
	DocumentType *model.DocumentType `json:"c_document_type" validate:"omitempty,document_type" doc:"Document type"`
	Number       *string             `json:"number" validate:"omitempty,min=1,max=64" doc:"Document number"`
	IssuedAt     *string             `json:"issued_at" validate:"omitempty,datetime=2006-01-02" doc:"Issue date (YYYY-MM-DD)"`
	ExpiresAt    *string             `json:"expires_at" validate:"omitempty,datetime=2006-01-02" doc:"Expiry date (YYYY-MM-DD)"`
	File         *string             `json:"file" validate:"omitempty,base64" doc:"Scanned document, base64"`
}

func (r *UpdateDriverDocumentRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}

	if r.DocumentType == nil && r.Number == nil && r.IssuedAt == nil && r.ExpiresAt == nil && r.File == nil {
		return validation.CustomValidationErrors{{Field: "body", Message: "at least one field must be provided"}}
	}

	return validateDateRange(r.IssuedAt, r.ExpiresAt)
}

// Patch converts the request. It must only be called after Validate succeeded.
func (r *UpdateDriverDocumentRequest) Patch() model.DriverDocumentPatch {
	issuedAt, _ := ParseDate(r.IssuedAt)
	expiresAt, _ := ParseDate(r.ExpiresAt)

	patch := model.DriverDocumentPatch{
		DocumentType: r.DocumentType,
		Number:       r.Number,
		IssuedAt:     issuedAt,
		ExpiresAt:    expiresAt,
	}
	if r.File != nil {
		patch.File, _ = DecodeBinary(*r.File)
	}
	return patch
}

func validateDateRange(issuedAt, expiresAt *string) error {
	if issuedAt == nil || expiresAt == nil {
		return nil
	}

	issued, errIssued := ParseDate(issuedAt)
	expires, errExpires := ParseDate(expiresAt)
	if errIssued != nil || errExpires != nil {
		return nil
	}

	if !expires.After(*issued) {
		return validation.CustomValidationErrors{{Field: "expires_at", Message: "must be after issued_at"}}
	}
	return nil
}

// DriverDocumentResponse is the public view of a document.
type DriverDocumentResponse struct {
	ID           string             `json:"id" doc:"Document id"`
	DriverID     int64              `json:"driver_id" doc:"Driver id"`
	DocumentType model.DocumentType `json:"c_document_type" doc:"Document type"`
	Number       string             `json:"number" doc:"Document number"`
	IssuedAt     *string            `json:"issued_at" doc:"Issue date (YYYY-MM-DD)"`
	ExpiresAt    *string            `json:"expires_at" doc:"Expiry date (YYYY-MM-DD)"`
	File         string             `json:"file" doc:"Scanned document, base64"`
	CreatedAt    time.Time          `json:"created_at" doc:"Creation time"`
	UpdatedAt    time.Time          `json:"updated_at" doc:"Last update time"`
}

func NewDriverDocumentResponse(d *model.DriverDocument) DriverDocumentResponse {
	return DriverDocumentResponse{
		ID:           d.ID,
		DriverID:     d.DriverID,
		DocumentType: d.DocumentType,
		Number:       d.Number,
		IssuedAt:     FormatDate(d.IssuedAt),
		ExpiresAt:    FormatDate(d.ExpiresAt),
		File:         EncodeBinary(d.File),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func NewDriverDocumentsResponse(docs []model.DriverDocument) []DriverDocumentResponse {
	res := make([]DriverDocumentResponse, 0, len(docs))
	for i := range docs {
		res = append(res, NewDriverDocumentResponse(&docs[i]))
	}
	return res
}
