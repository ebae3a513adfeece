package report

import "github.com/google/uuid"

// SubmitReportRequest represents a request to report content or a user
type SubmitReportRequest struct {
	ReportedContentID   uuid.UUID  `json:"reported_content_id" validate:"required"`
	ReportedContentType string     `json:"reported_content_type" validate:"required,content_type"`
	ReportedUserID      *uuid.UUID `json:"reported_user_id,omitempty"`
	Category            string     `json:"category" validate:"required,report_category"`
	Reason              string     `json:"reason" validate:"required,max=200"`
	Description         string     `json:"description,omitempty" validate:"max=2000"`
}

// ProcessReportRequest represents a moderator's decision on a report
type ProcessReportRequest struct {
	Action  string `json:"action" validate:"required,moderation_action"`
	Reason  string `json:"reason" validate:"required,max=500"`
	Details string `json:"details,omitempty" validate:"max=2000"`
}

// ListFilter filters report queries. Zero values mean "any".
type ListFilter struct {
	Status   Status   `json:"status,omitempty"`
	Priority Priority `json:"priority,omitempty"`
	Category Category `json:"category,omitempty"`
	Limit    int      `json:"limit,omitempty"`
	Offset   int      `json:"offset,omitempty"`
}

// ReportDetail is a report together with its audit trail
type ReportDetail struct {
	*Report
	Actions []*ModerationAction `json:"actions"`
}

// Stats is the aggregate moderation dashboard view
type Stats struct {
	TotalReports             int     `db:"total_reports" json:"total_reports"`
	PendingReports           int     `db:"pending_reports" json:"pending_reports"`
	ResolvedReports          int     `db:"resolved_reports" json:"resolved_reports"`
	ReportsWithinSLA         int     `db:"reports_within_sla" json:"reports_within_24h"`
	OverdueCount             int     `db:"overdue_count" json:"overdue_count"`
	AverageResponseTimeHours float64 `db:"avg_response_hours" json:"average_response_time_hours"`
}
