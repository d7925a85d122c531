package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/inspectra/inspection-management/internal/actionplan"
	"github.com/inspectra/inspection-management/internal/core/events"
)

type EventPublisherAPI interface {
	Publish(ctx context.Context, event events.Event) error
}

// OverdueScanner periodically finds unresolved action plans past their due
// date and publishes actionplan.overdue for each, so notification consumers
// can react without polling the database themselves.
type OverdueScanner struct {
	repo     actionplan.RepositoryAPI
	eventBus EventPublisherAPI
	interval time.Duration
	logger   *slog.Logger
}

func NewOverdueScanner(repo actionplan.RepositoryAPI, eventBus EventPublisherAPI, interval time.Duration, logger *slog.Logger) *OverdueScanner {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &OverdueScanner{
		repo:     repo,
		eventBus: eventBus,
		interval: interval,
		logger:   logger,
	}
}

// Run scans immediately, then once per interval until ctx is cancelled.
func (s *OverdueScanner) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Scan(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Scan(ctx)
		}
	}
}

// Scan runs a single pass. Errors are logged, not returned; the next tick
// retries anyway.
func (s *OverdueScanner) Scan(ctx context.Context) {
	now := time.Now()
	plans, err := s.repo.GetOpenPastDue(now)
	if err != nil {
		s.logger.Error("overdue scan failed", "error", err)
		return
	}
	if len(plans) == 0 {
		s.logger.Debug("overdue scan found nothing")
		return
	}

	for _, plan := range plans {
		event := events.NewActionPlanOverdueEvent(plan.ID, plan.OrgID, plan.AssigneeID, plan.DueDate)
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish overdue event", "error", err, "action_plan_id", plan.ID)
		}
	}

	s.logger.Info("overdue scan complete", "overdue_plans", len(plans))
}
