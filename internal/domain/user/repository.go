package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrUserNotFound = errors.New("user not found")

// Repository defines user sanction data access
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	IncrementWarnings(ctx context.Context, id uuid.UUID, now time.Time) error
	ApplyTemporaryBan(ctx context.Context, id uuid.UUID, now, until time.Time) error
	ApplyPermanentBan(ctx context.Context, id uuid.UUID, now time.Time) error

	// WithTx returns a repository running against the given transaction, so
	// sanctions can join the report's own atomic unit.
	WithTx(tx *sqlx.Tx) Repository
}

type repository struct {
	q sqlx.ExtContext
}

// NewRepository creates new user repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{q: db}
}

func (r *repository) WithTx(tx *sqlx.Tx) Repository {
	return &repository{q: tx}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `SELECT * FROM users WHERE id = $1`
	var u User
	err := sqlx.GetContext(ctx, r.q, &u, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// IncrementWarnings bumps the warning counter in a single statement so
// concurrent warnings for the same user never lose an increment.
func (r *repository) IncrementWarnings(ctx context.Context, id uuid.UUID, now time.Time) error {
	query := `
		UPDATE users
		SET warning_count = warning_count + 1, last_warned_at = $1, updated_at = $1
		WHERE id = $2
	`
	result, err := r.q.ExecContext(ctx, query, now, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

// ApplyTemporaryBan sets the ban window starting from now. Re-applying while
// already temporarily banned resets the window, it never stacks. A permanent
// ban supersedes: the guard makes this a no-op for permanently banned users.
func (r *repository) ApplyTemporaryBan(ctx context.Context, id uuid.UUID, now, until time.Time) error {
	query := `
		UPDATE users
		SET banned_at = $1, banned_until = $2, updated_at = $1
		WHERE id = $3 AND is_permanent_ban = FALSE
	`
	result, err := r.q.ExecContext(ctx, query, now, until, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Either the user does not exist or is permanently banned; the
		// latter is the expected no-op.
		return r.requireExists(ctx, id)
	}
	return nil
}

// ApplyPermanentBan marks the user permanently banned. Idempotent.
func (r *repository) ApplyPermanentBan(ctx context.Context, id uuid.UUID, now time.Time) error {
	query := `
		UPDATE users
		SET is_permanent_ban = TRUE, banned_at = $1, banned_until = NULL, updated_at = $1
		WHERE id = $2
	`
	result, err := r.q.ExecContext(ctx, query, now, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *repository) requireExists(ctx context.Context, id uuid.UUID) error {
	var exists bool
	err := sqlx.GetContext(ctx, r.q, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}
