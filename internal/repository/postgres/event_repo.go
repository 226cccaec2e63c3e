package postgres

import (
	"context"
	"database/sql"
	"errors"

	"conferencehall/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func (r *eventRepository) GetBySlugs(ctx context.Context, teamSlug, eventSlug string) (*domain.Event, error) {
	query := `
		SELECT e.id, e.team_id, e.name, e.slug, e.type, e.created_at, e.updated_at
		FROM events e
		JOIN teams t ON t.id = e.team_id
		WHERE t.slug = $1 AND e.slug = $2
	`
	e := &domain.Event{}
	var eventType string
	err := r.DB.QueryRowContext(ctx, query, teamSlug, eventSlug).Scan(
		&e.ID, &e.TeamID, &e.Name, &e.Slug, &eventType, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	e.Type = domain.EventType(eventType)
	return e, nil
}
