package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/raceboard/backend/internal/model"
	"github.com/raceboard/backend/internal/sqlerr"
)

const driverDocumentTable = "driver_documents"

// driverDocumentSelect joins the owning user so callers can check ownership.
const driverDocumentSelect = `
	SELECT doc.id::text AS id, doc.driver_id, d.user_id AS owner_user_id, doc.c_document_type,
		doc.number, doc.issued_at, doc.expires_at, doc.file, doc.created_at, doc.updated_at
	FROM driver_documents doc
	JOIN drivers d ON d.id = doc.driver_id`

type DriverDocumentRepository struct {
	db DBTX
}

func NewDriverDocumentRepository(db DBTX) *DriverDocumentRepository {
	return &DriverDocumentRepository{db: db}
}

// GetDriverOwner returns the user id owning driver profile driverID.
func (r *DriverDocumentRepository) GetDriverOwner(ctx context.Context, driverID int64) (int64, error) {
	var userID int64
	err := r.db.QueryRow(ctx, `SELECT user_id FROM drivers WHERE id = $1`, driverID).Scan(&userID)
	if err != nil {
		return 0, sqlerr.WithTable("drivers", err)
	}
	return userID, nil
}

func (r *DriverDocumentRepository) Create(ctx context.Context, doc *model.DriverDocument) (*model.DriverDocument, error) {
	var id string
	err := r.db.QueryRow(ctx, `
		INSERT INTO driver_documents (driver_id, c_document_type, number, issued_at, expires_at, file)
		VALUES (@driver_id, @c_document_type, @number, @issued_at, @expires_at, @file)
		RETURNING id::text`,
		pgx.NamedArgs{
			"driver_id":       doc.DriverID,
			"c_document_type": doc.DocumentType,
			"number":          doc.Number,
			"issued_at":       doc.IssuedAt,
			"expires_at":      doc.ExpiresAt,
			"file":            doc.File,
		},
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, doc.DriverID, id)
}

func (r *DriverDocumentRepository) Get(ctx context.Context, driverID int64, documentID string) (*model.DriverDocument, error) {
	rows, err := r.db.Query(ctx, driverDocumentSelect+`
		WHERE doc.driver_id = $1 AND doc.id = $2::uuid`, driverID, documentID)
	if err != nil {
		return nil, err
	}

	doc, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.DriverDocument])
	if err != nil {
		return nil, sqlerr.WithTable(driverDocumentTable, err)
	}
	return &doc, nil
}

func (r *DriverDocumentRepository) List(ctx context.Context, driverID int64, filter model.DriverDocumentFilter) ([]model.DriverDocument, error) {
	rows, err := r.db.Query(ctx, driverDocumentSelect+`
		WHERE doc.driver_id = @driver_id
			AND (@c_document_type::smallint IS NULL OR doc.c_document_type = @c_document_type::smallint)
		ORDER BY doc.created_at DESC`,
		pgx.NamedArgs{
			"driver_id":       driverID,
			"c_document_type": filter.DocumentType,
		},
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[model.DriverDocument])
}

// Update applies the non-nil fields of patch.
func (r *DriverDocumentRepository) Update(ctx context.Context, driverID int64, documentID string, patch model.DriverDocumentPatch) (*model.DriverDocument, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE driver_documents SET
			c_document_type = COALESCE(@c_document_type::smallint, c_document_type),
			number = COALESCE(@number::text, number),
			issued_at = COALESCE(@issued_at::date, issued_at),
			expires_at = COALESCE(@expires_at::date, expires_at),
			file = COALESCE(@file::bytea, file),
			updated_at = now()
		WHERE driver_id = @driver_id AND id = @id::uuid`,
		pgx.NamedArgs{
			"driver_id":       driverID,
			"id":              documentID,
			"c_document_type": patch.DocumentType,
			"number":          patch.Number,
			"issued_at":       patch.IssuedAt,
			"expires_at":      patch.ExpiresAt,
			"file":            patch.File,
		},
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, sqlerr.WithTable(driverDocumentTable, pgx.ErrNoRows)
	}
	return r.Get(ctx, driverID, documentID)
}

func (r *DriverDocumentRepository) Delete(ctx context.Context, driverID int64, documentID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM driver_documents WHERE driver_id = $1 AND id = $2::uuid`, driverID, documentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return sqlerr.WithTable(driverDocumentTable, pgx.ErrNoRows)
	}
	return nil
}
