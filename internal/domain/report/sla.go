package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SLAMonitor periodically sweeps for reports that blew their response
// deadline while still open and escalates them through the notifier. The
// sweep is read-only: overdue is derived from the deadline, never stored,
// and report state is never mutated here.
type SLAMonitor struct {
	repo     Repository
	notifier Notifier
	interval time.Duration
}

// NewSLAMonitor creates an SLA monitor
func NewSLAMonitor(repo Repository, notifier Notifier, interval time.Duration) *SLAMonitor {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &SLAMonitor{repo: repo, notifier: notifier, interval: interval}
}

// Start runs the sweep loop until ctx is cancelled
func (m *SLAMonitor) Start(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", m.interval).Msg("SLA monitor started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("SLA monitor stopped")
			return
		case <-ticker.C:
			if _, err := m.Sweep(ctx); err != nil {
				log.Error().Err(err).Msg("SLA sweep failed")
			}
		}
	}
}

// Sweep finds overdue reports and raises an escalation per report.
// Notification failures are logged and swallowed; the sweep result only
// reflects what was found.
func (m *SLAMonitor) Sweep(ctx context.Context) ([]uuid.UUID, error) {
	overdue, err := m.repo.ListOverdue(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(overdue))
	for _, rep := range overdue {
		ids = append(ids, rep.ID)
		if m.notifier == nil {
			continue
		}
		if err := m.notifier.NotifyOverdue(ctx, rep.ID); err != nil {
			log.Warn().Err(err).Str("report_id", rep.ID.String()).Msg("overdue escalation failed")
		}
	}

	if len(ids) > 0 {
		log.Info().Int("count", len(ids)).Msg("overdue reports escalated")
	}
	return ids, nil
}
