package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventrsvp/internal/domain"
)

type tagRepository struct {
	DB *sql.DB
}

// NewTagRepository returns a domain.TagRepository implemented with Postgres.
func NewTagRepository(db *sql.DB) domain.TagRepository {
	return &tagRepository{DB: db}
}

func (r *tagRepository) EnsureTagForEvent(ctx context.Context, eventID int64, tagName string) (*domain.Tag, error) {
	tag := &domain.Tag{Name: tagName}
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `SELECT id FROM tags WHERE name = $1`, tagName).Scan(&tag.ID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if errors.Is(err, sql.ErrNoRows) {
			// a concurrent insert of the same name resolves to the existing row
			if err := tx.QueryRowContext(ctx,
				`INSERT INTO tags (name) VALUES ($1) ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id`,
				tagName,
			).Scan(&tag.ID); err != nil {
				return err
			}
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO event_tags (event_id, tag_id) VALUES ($1, $2) ON CONFLICT (event_id, tag_id) DO NOTHING`,
			eventID, tag.ID)
		return err
	})
	if err != nil {
		return nil, translateError(err)
	}
	return tag, nil
}

func (r *tagRepository) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	var tag domain.Tag
	err := r.DB.QueryRowContext(ctx, `SELECT id, name FROM tags WHERE id = $1`, id).Scan(&tag.ID, &tag.Name)
	if err != nil {
		return nil, translateError(err)
	}
	return &tag, nil
}

func (r *tagRepository) ListByEventID(ctx context.Context, eventID int64) ([]*domain.Tag, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT t.id, t.name FROM tags t
		 JOIN event_tags et ON et.tag_id = t.id
		 WHERE et.event_id = $1
		 ORDER BY t.name`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]*domain.Tag, 0)
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		tags = append(tags, &tag)
	}
	return tags, rows.Err()
}

func (r *tagRepository) LinkEvent(ctx context.Context, eventID, tagID int64) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO event_tags (event_id, tag_id) VALUES ($1, $2) ON CONFLICT (event_id, tag_id) DO NOTHING`,
		eventID, tagID)
	return translateError(err)
}

func (r *tagRepository) UnlinkEvent(ctx context.Context, eventID, tagID int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM event_tags WHERE event_id = $1 AND tag_id = $2`, eventID, tagID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *tagRepository) CountEvents(ctx context.Context, tagID int64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_tags WHERE tag_id = $1`, tagID).Scan(&n)
	return n, err
}

func (r *tagRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
