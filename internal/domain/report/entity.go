package report

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a report
type Status string

const (
	StatusPending   Status = "pending"
	StatusReviewing Status = "reviewing"
	StatusResolved  Status = "resolved"
	StatusDismissed Status = "dismissed"
)

// Terminal reports whether the status is an end state.
func (s Status) Terminal() bool {
	return s == StatusResolved || s == StatusDismissed
}

// transitions is the closed transition table. Every mutation entry point
// consults it; there is no path out of a terminal state.
var transitions = map[Status][]Status{
	StatusPending:   {StatusReviewing, StatusResolved, StatusDismissed},
	StatusReviewing: {StatusResolved, StatusDismissed},
}

// CanTransition reports whether a report may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Priority represents triage order. It is computed once at creation and
// immutable thereafter.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Category represents what the reporter is flagging
type Category string

const (
	CategorySpam                 Category = "spam"
	CategoryHarassment           Category = "harassment"
	CategoryHateSpeech           Category = "hate_speech"
	CategoryViolence             Category = "violence"
	CategoryInappropriateContent Category = "inappropriate_content"
	CategoryPrivacyViolation     Category = "privacy_violation"
	CategoryOther                Category = "other"
)

// ContentType represents the kind of entity being reported
type ContentType string

const (
	ContentTypePost    ContentType = "post"
	ContentTypeComment ContentType = "comment"
	ContentTypeUser    ContentType = "user"
	ContentTypeMessage ContentType = "message"
)

// ActionType represents a moderator's decision on a report
type ActionType string

const (
	ActionWarning        ActionType = "warning"
	ActionContentRemoval ActionType = "content_removal"
	ActionTemporaryBan   ActionType = "temporary_ban"
	ActionPermanentBan   ActionType = "permanent_ban"
	ActionDismiss        ActionType = "dismiss"
)

// Valid reports whether the action is a known decision.
func (a ActionType) Valid() bool {
	switch a {
	case ActionWarning, ActionContentRemoval, ActionTemporaryBan, ActionPermanentBan, ActionDismiss:
		return true
	}
	return false
}

// TerminalStatus returns the end state the action moves a report into.
// Dismiss is the one action whose terminal state differs.
func (a ActionType) TerminalStatus() Status {
	if a == ActionDismiss {
		return StatusDismissed
	}
	return StatusResolved
}

// Report represents a user flagging content or another user for review
type Report struct {
	ID                  uuid.UUID      `db:"id" json:"id"`
	ReporterID          uuid.UUID      `db:"reporter_id" json:"reporter_id"`
	ReportedUserID      uuid.NullUUID  `db:"reported_user_id" json:"reported_user_id,omitempty"`
	ReportedContentID   uuid.UUID      `db:"reported_content_id" json:"reported_content_id"`
	ReportedContentType ContentType    `db:"reported_content_type" json:"reported_content_type"`
	Category            Category       `db:"category" json:"category"`
	Reason              string         `db:"reason" json:"reason"`
	Description         string         `db:"description" json:"description,omitempty"`
	Status              Status         `db:"status" json:"status"`
	Priority            Priority       `db:"priority" json:"priority"`
	AssignedModerator   uuid.NullUUID  `db:"assigned_moderator" json:"assigned_moderator,omitempty"`
	Resolution          sql.NullString `db:"resolution" json:"resolution,omitempty"`
	ActionTaken         sql.NullString `db:"action_taken" json:"action_taken,omitempty"`
	CreatedAt           time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at" json:"updated_at"`
	ReviewedAt          sql.NullTime   `db:"reviewed_at" json:"reviewed_at,omitempty"`
	ResponseDeadline    time.Time      `db:"response_deadline" json:"response_deadline"`
}

// Overdue reports whether the report has blown its response deadline while
// still awaiting review. Derived, never stored, so it cannot drift from the
// real deadline.
func (r *Report) Overdue(now time.Time) bool {
	return !r.Status.Terminal() && now.After(r.ResponseDeadline)
}

// ModerationAction is the immutable audit record of a decision taken on a
// report. Exactly one is written per terminal transition; rows are never
// updated or deleted.
type ModerationAction struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	ReportID    uuid.UUID  `db:"report_id" json:"report_id"`
	ModeratorID uuid.UUID  `db:"moderator_id" json:"moderator_id"`
	Action      ActionType `db:"action" json:"action"`
	Reason      string     `db:"reason" json:"reason"`
	Details     string     `db:"details" json:"details,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}
