package content

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrContentNotFound = errors.New("content not found")

// Repository defines content data access
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Content, error)
	SoftDelete(ctx context.Context, id uuid.UUID, reason string, now time.Time) error

	// WithTx returns a repository running against the given transaction, so
	// removals can join the report's own atomic unit.
	WithTx(tx *sqlx.Tx) Repository
}

type repository struct {
	q sqlx.ExtContext
}

// NewRepository creates new content repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{q: db}
}

func (r *repository) WithTx(tx *sqlx.Tx) Repository {
	return &repository{q: tx}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Content, error) {
	query := `SELECT * FROM contents WHERE id = $1`
	var c Content
	err := sqlx.GetContext(ctx, r.q, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// SoftDelete marks the content removed. Idempotent: removing content that is
// already removed is a no-op; only a missing row is an error.
func (r *repository) SoftDelete(ctx context.Context, id uuid.UUID, reason string, now time.Time) error {
	query := `
		UPDATE contents
		SET is_deleted = TRUE, deleted_reason = $1, deleted_at = $2
		WHERE id = $3 AND is_deleted = FALSE
	`
	result, err := r.q.ExecContext(ctx, query, reason, now, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		var exists bool
		if err := sqlx.GetContext(ctx, r.q, &exists, `SELECT EXISTS(SELECT 1 FROM contents WHERE id = $1)`, id); err != nil {
			return err
		}
		if !exists {
			return ErrContentNotFound
		}
		// Already soft-deleted: no-op by design of the sanction contract.
	}
	return nil
}
