package report

import (
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusPending, StatusReviewing, true},
		{StatusPending, StatusResolved, true},
		{StatusPending, StatusDismissed, true},
		{StatusReviewing, StatusResolved, true},
		{StatusReviewing, StatusDismissed, true},

		// No path backwards or out of a terminal state.
		{StatusReviewing, StatusPending, false},
		{StatusResolved, StatusPending, false},
		{StatusResolved, StatusReviewing, false},
		{StatusResolved, StatusDismissed, false},
		{StatusDismissed, StatusPending, false},
		{StatusDismissed, StatusResolved, false},
		{StatusPending, StatusPending, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusPending, false},
		{StatusReviewing, false},
		{StatusResolved, true},
		{StatusDismissed, true},
	}

	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("%s.Terminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestActionTerminalStatus(t *testing.T) {
	tests := []struct {
		action ActionType
		want   Status
	}{
		{ActionDismiss, StatusDismissed},
		{ActionWarning, StatusResolved},
		{ActionContentRemoval, StatusResolved},
		{ActionTemporaryBan, StatusResolved},
		{ActionPermanentBan, StatusResolved},
	}

	for _, tt := range tests {
		if got := tt.action.TerminalStatus(); got != tt.want {
			t.Errorf("%s.TerminalStatus() = %s, want %s", tt.action, got, tt.want)
		}
	}
}

func TestActionValid(t *testing.T) {
	valid := []ActionType{ActionWarning, ActionContentRemoval, ActionTemporaryBan, ActionPermanentBan, ActionDismiss}
	for _, a := range valid {
		if !a.Valid() {
			t.Errorf("%s.Valid() = false, want true", a)
		}
	}

	invalid := []ActionType{"", "ban", "delete", "WARNING"}
	for _, a := range invalid {
		if a.Valid() {
			t.Errorf("%q.Valid() = true, want false", a)
		}
	}
}

func TestReportOverdue(t *testing.T) {
	now := time.Now()
	deadline := now.Add(-time.Hour)

	tests := []struct {
		name   string
		status Status
		want   bool
	}{
		{"pending past deadline", StatusPending, true},
		{"reviewing past deadline", StatusReviewing, true},
		{"resolved past deadline", StatusResolved, false},
		{"dismissed past deadline", StatusDismissed, false},
	}

	for _, tt := range tests {
		r := &Report{Status: tt.status, ResponseDeadline: deadline}
		if got := r.Overdue(now); got != tt.want {
			t.Errorf("%s: Overdue = %v, want %v", tt.name, got, tt.want)
		}
	}

	// Exactly at the deadline is not yet overdue.
	r := &Report{Status: StatusPending, ResponseDeadline: now}
	if r.Overdue(now) {
		t.Error("report at its deadline should not be overdue")
	}
}
