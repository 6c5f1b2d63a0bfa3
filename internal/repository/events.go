package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/raceboard/backend/internal/model"
)

type EventRepository struct {
	db DBTX
}

func NewEventRepository(db DBTX) *EventRepository {
	return &EventRepository{db: db}
}

// OrganizerYears groups the distinct years of an organizer's events by
// race type, newest year first.
func (r *EventRepository) OrganizerYears(ctx context.Context, organizerID int64) ([]model.OrganizerEventYears, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c_race_type,
			array_agg(DISTINCT EXTRACT(YEAR FROM starts_at)::int ORDER BY EXTRACT(YEAR FROM starts_at)::int DESC) AS years
		FROM events
		WHERE organizer_id = $1
		GROUP BY c_race_type
		ORDER BY c_race_type`, organizerID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[model.OrganizerEventYears])
}
