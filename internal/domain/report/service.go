package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/schoolhub/schoolhub-api/internal/domain/content"
	"github.com/schoolhub/schoolhub-api/internal/domain/filter"
	"github.com/schoolhub/schoolhub-api/internal/domain/user"
)

// Notifier is the engine's outbound alert channel. Every call is
// best-effort: the service logs failures and never propagates them.
type Notifier interface {
	NotifyModerators(ctx context.Context, reportID uuid.UUID, category, priority string) error
	NotifyOutcome(ctx context.Context, userID, reportID uuid.UUID, action string) error
	NotifySanction(ctx context.Context, userID, reportID uuid.UUID, action string) error
	NotifyOverdue(ctx context.Context, reportID uuid.UUID) error
}

// RateLimiter guards report submission frequency per reporter. A non-nil
// error means the limiter itself is unavailable; the service then ignores
// the boolean and admits the submission, so a limiter outage never blocks
// abuse reporting.
type RateLimiter interface {
	Allow(ctx context.Context, reporterID string) (bool, error)
}

// Config holds the engine's policy knobs. Zero values fall back to the
// legal defaults: a 24h response window and a 7 day temporary ban.
type Config struct {
	SLAWindow       time.Duration
	TempBanDuration time.Duration
}

func (c Config) withDefaults() Config {
	if c.SLAWindow <= 0 {
		c.SLAWindow = 24 * time.Hour
	}
	if c.TempBanDuration <= 0 {
		c.TempBanDuration = 7 * 24 * time.Hour
	}
	return c
}

// Service handles the report lifecycle: intake, moderation decisions,
// queries and stats.
type Service struct {
	repo       Repository
	users      user.Repository
	contents   content.Repository
	classifier *filter.Classifier
	limiter    RateLimiter
	notifier   Notifier
	cfg        Config
}

// NewService creates report service. limiter and notifier may be nil in
// tests; a nil limiter always allows.
func NewService(repo Repository, users user.Repository, contents content.Repository, classifier *filter.Classifier, limiter RateLimiter, notifier Notifier, cfg Config) *Service {
	if classifier == nil {
		classifier = filter.NewClassifier(nil, filter.TierModerate)
	}
	return &Service{
		repo:       repo,
		users:      users,
		contents:   contents,
		classifier: classifier,
		limiter:    limiter,
		notifier:   notifier,
		cfg:        cfg.withDefaults(),
	}
}

// Submit validates and files a new report. The reporter's free text is run
// through the classifier and only the filtered form is stored: reports about
// abuse are sanitized, never rejected. Urgent reports alert moderators
// before returning.
func (s *Service) Submit(ctx context.Context, reporterID uuid.UUID, req *SubmitReportRequest) (*Report, error) {
	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, reporterID.String())
		switch {
		case err != nil:
			// Fail open: a limiter outage must not block abuse reporting.
			log.Warn().Err(err).Str("reporter_id", reporterID.String()).Msg("rate limiter unavailable")
		case !allowed:
			return nil, ErrRateLimited
		}
	}

	reasonDecision := s.classifier.Classify(req.Reason)
	descDecision := s.classifier.Classify(req.Description)

	now := time.Now()
	rep := &Report{
		ID:                  uuid.New(),
		ReporterID:          reporterID,
		ReportedContentID:   req.ReportedContentID,
		ReportedContentType: ContentType(req.ReportedContentType),
		Category:            Category(req.Category),
		Reason:              reasonDecision.FilteredText,
		Description:         descDecision.FilteredText,
		Status:              StatusPending,
		Priority:            ComputePriority(Category(req.Category), descDecision.FilteredText, s.classifier.HighPriorityKeywords()),
		CreatedAt:           now,
		UpdatedAt:           now,
		ResponseDeadline:    now.Add(s.cfg.SLAWindow),
	}
	if req.ReportedUserID != nil {
		rep.ReportedUserID = uuid.NullUUID{UUID: *req.ReportedUserID, Valid: true}
	}

	if err := s.repo.CreateReport(ctx, rep); err != nil {
		return nil, err
	}

	if rep.Priority == PriorityUrgent && s.notifier != nil {
		if err := s.notifier.NotifyModerators(ctx, rep.ID, string(rep.Category), string(rep.Priority)); err != nil {
			log.Warn().Err(err).Str("report_id", rep.ID.String()).Msg("urgent report alert failed")
		}
	}

	return rep, nil
}

// StartReview claims a pending report for a moderator, moving it to
// reviewing. A report claimed by another moderator, or already closed,
// cannot be claimed again.
func (s *Service) StartReview(ctx context.Context, reportID, moderatorID uuid.UUID) error {
	return s.repo.StartReview(ctx, reportID, moderatorID, time.Now())
}

// Process applies a moderator's decision: the status transition, the audit
// record and the sanction commit or roll back as one unit, so a sanction
// failure leaves the report open for retry instead of stranding it closed
// with no sanction applied. Exactly one of two racing moderators wins; the
// loser gets ErrConcurrentModification and no second audit record is written.
func (s *Service) Process(ctx context.Context, reportID, moderatorID uuid.UUID, req *ProcessReportRequest) error {
	action := ActionType(req.Action)
	if !action.Valid() {
		return ErrInvalidAction
	}

	rep, err := s.repo.GetReportByID(ctx, reportID)
	if err != nil {
		return err
	}
	if rep == nil {
		return ErrReportNotFound
	}
	if rep.Status.Terminal() {
		return ErrAlreadyResolved
	}

	// Check sanction applicability before touching any state.
	switch action {
	case ActionWarning, ActionTemporaryBan, ActionPermanentBan:
		if !rep.ReportedUserID.Valid {
			return ErrNoReportedUser
		}
	case ActionContentRemoval:
		if rep.ReportedContentType == ContentTypeUser {
			return ErrNotRemovable
		}
	}

	newStatus := action.TerminalStatus()
	if !CanTransition(rep.Status, newStatus) {
		return ErrAlreadyResolved
	}

	now := time.Now()
	act := &ModerationAction{
		ID:          uuid.New(),
		ReportID:    rep.ID,
		ModeratorID: moderatorID,
		Action:      action,
		Reason:      req.Reason,
		Details:     req.Details,
		CreatedAt:   now,
	}

	rep.Status = newStatus
	rep.ReviewedAt = sql.NullTime{Time: now, Valid: true}
	rep.AssignedModerator = uuid.NullUUID{UUID: moderatorID, Valid: true}
	rep.ActionTaken = sql.NullString{String: string(action), Valid: true}
	rep.Resolution = sql.NullString{String: req.Reason, Valid: true}
	rep.UpdatedAt = now

	err = s.repo.Resolve(ctx, rep, act, func(tx *sqlx.Tx) error {
		return s.executeSanction(ctx, tx, rep, action, req.Reason, now)
	})
	if err != nil {
		return fmt.Errorf("resolve report %s with %s: %w", rep.ID, action, err)
	}

	s.notifyOutcome(ctx, rep, action)
	return nil
}

// executeSanction applies the concrete enforcement inside the resolution
// transaction, via tx-scoped repositories. All tables live in one database,
// so the sanction shares the audit record's commit.
func (s *Service) executeSanction(ctx context.Context, tx *sqlx.Tx, rep *Report, action ActionType, reason string, now time.Time) error {
	switch action {
	case ActionWarning:
		return s.users.WithTx(tx).IncrementWarnings(ctx, rep.ReportedUserID.UUID, now)
	case ActionContentRemoval:
		return s.contents.WithTx(tx).SoftDelete(ctx, rep.ReportedContentID, reason, now)
	case ActionTemporaryBan:
		return s.users.WithTx(tx).ApplyTemporaryBan(ctx, rep.ReportedUserID.UUID, now, now.Add(s.cfg.TempBanDuration))
	case ActionPermanentBan:
		return s.users.WithTx(tx).ApplyPermanentBan(ctx, rep.ReportedUserID.UUID, now)
	case ActionDismiss:
		// No sanction; the audit record is the only side effect.
		return nil
	}
	return ErrInvalidAction
}

func (s *Service) notifyOutcome(ctx context.Context, rep *Report, action ActionType) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyOutcome(ctx, rep.ReporterID, rep.ID, string(action)); err != nil {
		log.Warn().Err(err).Str("report_id", rep.ID.String()).Msg("outcome notification failed")
	}
	if rep.ReportedUserID.Valid && action != ActionDismiss {
		if err := s.notifier.NotifySanction(ctx, rep.ReportedUserID.UUID, rep.ID, string(action)); err != nil {
			log.Warn().Err(err).Str("report_id", rep.ID.String()).Msg("sanction notification failed")
		}
	}
}

// Get returns a report with its audit trail
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ReportDetail, error) {
	rep, err := s.repo.GetReportByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, ErrReportNotFound
	}

	actions, err := s.repo.ListActions(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ReportDetail{Report: rep, Actions: actions}, nil
}

// List returns reports matching the filter, newest first
func (s *Service) List(ctx context.Context, f *ListFilter) ([]*Report, error) {
	return s.repo.ListReports(ctx, f)
}

// Count returns the number of reports matching the filter
func (s *Service) Count(ctx context.Context, f *ListFilter) (int, error) {
	return s.repo.CountReports(ctx, f)
}

// ListMine returns reports created by the given reporter
func (s *Service) ListMine(ctx context.Context, reporterID uuid.UUID) ([]*Report, error) {
	return s.repo.ListReportsByReporter(ctx, reporterID)
}

// ListOverdue returns open reports past their response deadline
func (s *Service) ListOverdue(ctx context.Context) ([]*Report, error) {
	return s.repo.ListOverdue(ctx, time.Now())
}

// GetStats returns the aggregate moderation dashboard view
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	return s.repo.Stats(ctx, time.Now())
}
