package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines report data access. The engine depends only on this
// interface; the postgres implementation below is one choice of store.
type Repository interface {
	CreateReport(ctx context.Context, report *Report) error
	GetReportByID(ctx context.Context, id uuid.UUID) (*Report, error)
	ListReports(ctx context.Context, filter *ListFilter) ([]*Report, error)
	CountReports(ctx context.Context, filter *ListFilter) (int, error)
	ListReportsByReporter(ctx context.Context, reporterID uuid.UUID) ([]*Report, error)
	ListOverdue(ctx context.Context, now time.Time) ([]*Report, error)

	// StartReview claims a pending report for a moderator. The update is
	// conditional on the report still being pending; exactly one claim wins.
	StartReview(ctx context.Context, reportID, moderatorID uuid.UUID, now time.Time) error

	// Resolve writes the audit record, the terminal status transition and the
	// sanction in one transaction. The update is conditional on the report
	// still being open; a lost race returns ErrConcurrentModification and
	// writes nothing. A sanction failure rolls the whole decision back, so
	// the report stays open and the moderator can retry.
	Resolve(ctx context.Context, report *Report, action *ModerationAction, sanction func(tx *sqlx.Tx) error) error

	ListActions(ctx context.Context, reportID uuid.UUID) ([]*ModerationAction, error)
	Stats(ctx context.Context, now time.Time) (*Stats, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new report repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateReport(ctx context.Context, report *Report) error {
	query := `
		INSERT INTO reports (
			id, reporter_id, reported_user_id, reported_content_id, reported_content_type,
			category, reason, description, status, priority,
			created_at, updated_at, response_deadline
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
	`
	_, err := r.db.ExecContext(ctx, query,
		report.ID,
		report.ReporterID,
		report.ReportedUserID,
		report.ReportedContentID,
		report.ReportedContentType,
		report.Category,
		report.Reason,
		report.Description,
		report.Status,
		report.Priority,
		report.CreatedAt,
		report.UpdatedAt,
		report.ResponseDeadline,
	)
	return err
}

func (r *repository) GetReportByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	query := `SELECT * FROM reports WHERE id = $1`
	var report Report
	err := r.db.GetContext(ctx, &report, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *repository) ListReports(ctx context.Context, filter *ListFilter) ([]*Report, error) {
	query := `SELECT * FROM reports WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter != nil {
		if filter.Status != "" {
			query += fmt.Sprintf(` AND status = $%d`, argPos)
			args = append(args, filter.Status)
			argPos++
		}
		if filter.Priority != "" {
			query += fmt.Sprintf(` AND priority = $%d`, argPos)
			args = append(args, filter.Priority)
			argPos++
		}
		if filter.Category != "" {
			query += fmt.Sprintf(` AND category = $%d`, argPos)
			args = append(args, filter.Category)
			argPos++
		}
	}

	query += ` ORDER BY created_at DESC`

	if filter != nil && filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, argPos)
		args = append(args, filter.Limit)
		argPos++
		if filter.Offset > 0 {
			query += fmt.Sprintf(` OFFSET $%d`, argPos)
			args = append(args, filter.Offset)
		}
	} else {
		query += ` LIMIT 50`
	}

	var reports []*Report
	err := r.db.SelectContext(ctx, &reports, query, args...)
	return reports, err
}

func (r *repository) CountReports(ctx context.Context, filter *ListFilter) (int, error) {
	query := `SELECT COUNT(*) FROM reports WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter != nil {
		if filter.Status != "" {
			query += fmt.Sprintf(` AND status = $%d`, argPos)
			args = append(args, filter.Status)
			argPos++
		}
		if filter.Priority != "" {
			query += fmt.Sprintf(` AND priority = $%d`, argPos)
			args = append(args, filter.Priority)
			argPos++
		}
		if filter.Category != "" {
			query += fmt.Sprintf(` AND category = $%d`, argPos)
			args = append(args, filter.Category)
			argPos++
		}
	}

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	return count, err
}

func (r *repository) ListReportsByReporter(ctx context.Context, reporterID uuid.UUID) ([]*Report, error) {
	query := `
		SELECT * FROM reports
		WHERE reporter_id = $1
		ORDER BY created_at DESC
	`
	var reports []*Report
	err := r.db.SelectContext(ctx, &reports, query, reporterID)
	return reports, err
}

func (r *repository) ListOverdue(ctx context.Context, now time.Time) ([]*Report, error) {
	query := `
		SELECT * FROM reports
		WHERE status IN ('pending', 'reviewing') AND response_deadline < $1
		ORDER BY response_deadline ASC
	`
	var reports []*Report
	err := r.db.SelectContext(ctx, &reports, query, now)
	return reports, err
}

func (r *repository) StartReview(ctx context.Context, reportID, moderatorID uuid.UUID, now time.Time) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE reports
		SET status = 'reviewing', assigned_moderator = $1, updated_at = $2
		WHERE id = $3 AND status = 'pending'
	`, moderatorID, now, reportID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		rep, err := r.GetReportByID(ctx, reportID)
		if err != nil {
			return err
		}
		if rep == nil {
			return ErrReportNotFound
		}
		if rep.Status.Terminal() {
			return ErrAlreadyResolved
		}
		return ErrConcurrentModification
	}
	return nil
}

func (r *repository) Resolve(ctx context.Context, report *Report, action *ModerationAction, sanction func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO moderation_actions (id, report_id, moderator_id, action, reason, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		action.ID,
		action.ReportID,
		action.ModeratorID,
		action.Action,
		action.Reason,
		action.Details,
		action.CreatedAt,
	)
	if err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE reports
		SET status = $1, reviewed_at = $2, assigned_moderator = $3,
		    action_taken = $4, resolution = $5, updated_at = $6
		WHERE id = $7 AND status IN ('pending', 'reviewing')
	`,
		report.Status,
		report.ReviewedAt,
		report.AssignedModerator,
		report.ActionTaken,
		report.Resolution,
		report.UpdatedAt,
		report.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Another moderator already closed the report; rolling back also
		// discards the audit record so the trail stays 1:1 with outcomes.
		return ErrConcurrentModification
	}

	if sanction != nil {
		if err := sanction(tx); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *repository) ListActions(ctx context.Context, reportID uuid.UUID) ([]*ModerationAction, error) {
	query := `
		SELECT * FROM moderation_actions
		WHERE report_id = $1
		ORDER BY created_at ASC
	`
	var actions []*ModerationAction
	err := r.db.SelectContext(ctx, &actions, query, reportID)
	return actions, err
}

func (r *repository) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	query := `
		SELECT
			COUNT(*) AS total_reports,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending_reports,
			COUNT(*) FILTER (WHERE status IN ('resolved', 'dismissed')) AS resolved_reports,
			COUNT(*) FILTER (WHERE reviewed_at IS NOT NULL AND reviewed_at <= response_deadline) AS reports_within_sla,
			COUNT(*) FILTER (WHERE status IN ('pending', 'reviewing') AND response_deadline < $1) AS overdue_count,
			COALESCE(AVG(EXTRACT(EPOCH FROM (reviewed_at - created_at)) / 3600.0) FILTER (WHERE reviewed_at IS NOT NULL), 0) AS avg_response_hours
		FROM reports
	`
	var stats Stats
	err := r.db.GetContext(ctx, &stats, query, now)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
