package postgres

import (
	"context"
	"database/sql"

	"eventrsvp/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = `id, name, description, starts_at, created_at, updated_at`

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{Tags: []*domain.Tag{}}
	var descNull sql.NullString
	var startsNull sql.NullTime
	if err := row.Scan(&e.ID, &e.Name, &descNull, &startsNull, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	if descNull.Valid {
		e.Description = &descNull.String
	}
	if startsNull.Valid {
		e.StartsAt = &startsNull.Time
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, description, starts_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var desc sql.NullString
	if e.Description != nil {
		desc = sql.NullString{String: *e.Description, Valid: true}
	}
	var starts sql.NullTime
	if e.StartsAt != nil {
		starts = sql.NullTime{Time: *e.StartsAt, Valid: true}
	}
	return r.DB.QueryRowContext(ctx, query, e.Name, desc, starts, e.CreatedAt, e.UpdatedAt).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err)
	}
	return e, nil
}

// List returns one page of events ordered by id together with the total count.
func (r *eventRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + eventColumns + ` FROM events ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, params.Limit(), params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

func (r *eventRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
