package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/raceboard/backend/internal/model"
)

type DriverRecordRepository struct {
	db DBTX
}

func NewDriverRecordRepository(db DBTX) *DriverRecordRepository {
	return &DriverRecordRepository{db: db}
}

// List returns the best lap of the driver per race type, location config
// and vehicle for events held in filter.Year. Laps are compared on their
// zero-padded form, the same form the API returns.
func (r *DriverRecordRepository) List(ctx context.Context, driverID int64, filter model.DriverRecordFilter) ([]model.DriverRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT ON (e.c_race_type, lc.id, v.id)
			e.c_race_type,
			v.id AS vehicle_id,
			v.name AS vehicle_name,
			l.id AS location_id,
			l.name AS location_name,
			lc.id AS location_config_id,
			lc.name AS location_config_name,
			rec.tires_id,
			t.name AS tires_name,
			rec.c_road_condition,
			rec.lap_time,
			rec.event_id
		FROM driver_records rec
		JOIN events e ON e.id = rec.event_id
		JOIN vehicles v ON v.id = rec.vehicle_id
		JOIN location_configs lc ON lc.id = e.location_config_id
		JOIN locations l ON l.id = lc.location_id
		LEFT JOIN tires t ON t.id = rec.tires_id
		WHERE rec.driver_id = @driver_id
			AND EXTRACT(YEAR FROM e.starts_at)::int = @year
			AND (@c_race_type::smallint IS NULL OR e.c_race_type = @c_race_type::smallint)
		ORDER BY e.c_race_type, lc.id, v.id, rpad(rec.lap_time, 9, '0') NULLS LAST`,
		pgx.NamedArgs{
			"driver_id":   driverID,
			"year":        filter.Year,
			"c_race_type": filter.RaceType,
		},
	)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[model.DriverRecord])
}
