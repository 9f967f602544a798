package postgres

import (
	"context"
	"database/sql"
	"time"

	"eventrsvp/internal/domain"
)

type rsvpRepository struct {
	DB *sql.DB
}

// NewRSVPRepository returns a domain.RSVPRepository implemented with Postgres.
func NewRSVPRepository(db *sql.DB) domain.RSVPRepository {
	return &rsvpRepository{DB: db}
}

const rsvpColumns = `id, event_id, user_id, status, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRSVP(row rowScanner) (*domain.RSVP, error) {
	rsvp := &domain.RSVP{}
	var status string
	if err := row.Scan(&rsvp.ID, &rsvp.EventID, &rsvp.UserID, &status, &rsvp.CreatedAt, &rsvp.UpdatedAt); err != nil {
		return nil, err
	}
	rsvp.Status = domain.RSVPStatus(status)
	return rsvp, nil
}

func (r *rsvpRepository) Create(ctx context.Context, rsvp *domain.RSVP) error {
	query := `
		INSERT INTO rsvps (event_id, user_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, query, rsvp.EventID, rsvp.UserID, string(rsvp.Status), rsvp.CreatedAt, rsvp.UpdatedAt).
			Scan(&rsvp.ID)
	})
	return translateError(err)
}

func (r *rsvpRepository) GetByID(ctx context.Context, id int64) (*domain.RSVP, error) {
	query := `SELECT ` + rsvpColumns + ` FROM rsvps WHERE id = $1`
	rsvp, err := scanRSVP(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err)
	}
	return rsvp, nil
}

func (r *rsvpRepository) GetByEventAndUser(ctx context.Context, eventID, userID int64) (*domain.RSVP, error) {
	query := `SELECT ` + rsvpColumns + ` FROM rsvps WHERE event_id = $1 AND user_id = $2`
	rsvp, err := scanRSVP(r.DB.QueryRowContext(ctx, query, eventID, userID))
	if err != nil {
		return nil, translateError(err)
	}
	return rsvp, nil
}

func (r *rsvpRepository) UpdateStatus(ctx context.Context, id int64, status domain.RSVPStatus, updatedAt time.Time) (*domain.RSVP, error) {
	query := `
		UPDATE rsvps SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING ` + rsvpColumns
	var updated *domain.RSVP
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		var err error
		updated, err = scanRSVP(tx.QueryRowContext(ctx, query, string(status), updatedAt, id))
		return err
	})
	if err != nil {
		return nil, translateError(err)
	}
	return updated, nil
}

func (r *rsvpRepository) ListByEventID(ctx context.Context, eventID int64) ([]*domain.RSVP, error) {
	return r.list(ctx, `SELECT `+rsvpColumns+` FROM rsvps WHERE event_id = $1 ORDER BY id`, eventID)
}

func (r *rsvpRepository) ListByUserID(ctx context.Context, userID int64) ([]*domain.RSVP, error) {
	return r.list(ctx, `SELECT `+rsvpColumns+` FROM rsvps WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
}

func (r *rsvpRepository) list(ctx context.Context, query string, arg int64) ([]*domain.RSVP, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rsvps := make([]*domain.RSVP, 0)
	for rows.Next() {
		rsvp, err := scanRSVP(rows)
		if err != nil {
			return nil, err
		}
		rsvps = append(rsvps, rsvp)
	}
	return rsvps, rows.Err()
}
