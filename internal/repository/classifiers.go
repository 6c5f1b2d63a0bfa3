package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/raceboard/backend/internal/model"
)

type ClassifierRepository struct {
	db DBTX
}

func NewClassifierRepository(db DBTX) *ClassifierRepository {
	return &ClassifierRepository{db: db}
}

func (r *ClassifierRepository) ListTypes(ctx context.Context) ([]model.ClassifierType, error) {
	rows, err := r.db.Query(ctx, `SELECT type, name, description FROM classifier_types ORDER BY type`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[model.ClassifierType])
}
