package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Channel is the redis pub/sub channel the delivery workers subscribe to.
const Channel = "moderation:notifications"

// Service persists notifications and publishes them for realtime delivery.
// It implements the report engine's Notifier port. Delivery is fire and
// forget: a failed publish is logged, the stored row remains the source of
// truth.
type Service struct {
	repo  Repository
	redis *redis.Client
}

// NewService creates notification service. redis may be nil; publishing is
// then skipped and only the row is stored.
func NewService(repo Repository, redisClient *redis.Client) *Service {
	return &Service{repo: repo, redis: redisClient}
}

// NotifyModerators alerts the moderator group about an urgent report
func (s *Service) NotifyModerators(ctx context.Context, reportID uuid.UUID, category, priority string) error {
	return s.send(ctx, &Notification{
		ID:        uuid.New(),
		ReportID:  uuid.NullUUID{UUID: reportID, Valid: true},
		Kind:      KindUrgentReport,
		Title:     "Urgent report needs review",
		Body:      fmt.Sprintf("A %s priority report in category %s is waiting for review", priority, category),
		CreatedAt: time.Now(),
	})
}

// NotifyOutcome tells the reporter their report was handled
func (s *Service) NotifyOutcome(ctx context.Context, userID, reportID uuid.UUID, action string) error {
	return s.send(ctx, &Notification{
		ID:        uuid.New(),
		UserID:    uuid.NullUUID{UUID: userID, Valid: true},
		ReportID:  uuid.NullUUID{UUID: reportID, Valid: true},
		Kind:      KindReportOutcome,
		Title:     "Your report has been reviewed",
		Body:      fmt.Sprintf("A moderator reviewed your report (action: %s)", action),
		CreatedAt: time.Now(),
	})
}

// NotifySanction tells a sanctioned user what was applied to their account
func (s *Service) NotifySanction(ctx context.Context, userID, reportID uuid.UUID, action string) error {
	return s.send(ctx, &Notification{
		ID:        uuid.New(),
		UserID:    uuid.NullUUID{UUID: userID, Valid: true},
		ReportID:  uuid.NullUUID{UUID: reportID, Valid: true},
		Kind:      KindSanctionNotice,
		Title:     "A moderation action was applied to your account",
		Body:      fmt.Sprintf("Action taken: %s. Contact support if you believe this is a mistake", action),
		CreatedAt: time.Now(),
	})
}

// NotifyOverdue escalates a report that blew its response deadline
func (s *Service) NotifyOverdue(ctx context.Context, reportID uuid.UUID) error {
	return s.send(ctx, &Notification{
		ID:        uuid.New(),
		ReportID:  uuid.NullUUID{UUID: reportID, Valid: true},
		Kind:      KindOverdueReport,
		Title:     "Report past response deadline",
		Body:      "A report exceeded its 24h response window and needs immediate attention",
		CreatedAt: time.Now(),
	})
}

func (s *Service) send(ctx context.Context, n *Notification) error {
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	if s.redis == nil {
		return nil
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	if err := s.redis.Publish(ctx, Channel, payload).Err(); err != nil {
		// Row is stored; delivery workers will pick it up on reconnect.
		log.Warn().Err(err).Str("kind", string(n.Kind)).Msg("notification publish failed")
	}
	return nil
}
