package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"eventrsvp/internal/domain"
)

// Postgres SQLSTATE codes the repositories translate.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// withTx runs fn in a transaction. Any error from fn rolls back; otherwise the
// transaction is committed.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// translateError maps driver errors onto domain sentinels: missing rows and
// foreign key violations become ErrNotFound, unique violations ErrConflict.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var perr *pq.Error
	if errors.As(err, &perr) {
		switch perr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%w: %s", domain.ErrConflict, perr.Constraint)
		case pqForeignKeyViolation:
			return fmt.Errorf("%w: %s", domain.ErrNotFound, perr.Constraint)
		}
	}
	return err
}
