package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/raceboard/backend/internal/model"
)

type LocationConfigRepository struct {
	db DBTX
}

func NewLocationConfigRepository(db DBTX) *LocationConfigRepository {
	return &LocationConfigRepository{db: db}
}

// List returns location configs, optionally of a single race type.
func (r *LocationConfigRepository) List(ctx context.Context, raceType *model.RaceType) ([]model.LocationConfig, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, location_id, c_race_type, name, image, description,
			length::float8 AS length, difficulty, created_by, created_at
		FROM location_configs
		WHERE $1::smallint IS NULL OR c_race_type = $1::smallint
		ORDER BY location_id, id`, raceType)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[model.LocationConfig])
}
