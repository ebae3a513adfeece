package notification

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Kind represents what a notification is about
type Kind string

const (
	KindUrgentReport   Kind = "urgent_report"
	KindOverdueReport  Kind = "overdue_report"
	KindReportOutcome  Kind = "report_outcome"
	KindSanctionNotice Kind = "sanction_notice"
)

// Notification is a stored alert. A null user ID means the alert addresses
// the moderator group rather than a single user.
type Notification struct {
	ID        uuid.UUID     `db:"id" json:"id"`
	UserID    uuid.NullUUID `db:"user_id" json:"user_id,omitempty"`
	ReportID  uuid.NullUUID `db:"report_id" json:"report_id,omitempty"`
	Kind      Kind          `db:"kind" json:"kind"`
	Title     string        `db:"title" json:"title"`
	Body      string        `db:"body" json:"body"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	ReadAt    sql.NullTime  `db:"read_at" json:"read_at,omitempty"`
}
