package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"pickdrop/internal/core/application/usecases/commands"
)

// DefaultDraftExpirySchedule runs the expiry sweep at the start of every hour.
const DefaultDraftExpirySchedule = "0 0 * * * *"

// DraftExpirer is satisfied by commands.ExpireStaleDraftsCommandHandler.
type DraftExpirer interface {
	Handle(ctx context.Context, cmd commands.ExpireStaleDraftsCommand) (int, error)
}

// DraftExpiryConfig controls which drafts count as abandoned and how many are
// expired per run.
type DraftExpiryConfig struct {
	Schedule string
	MaxAge   time.Duration
	Batch    int
}

// DraftExpiryJob cancels and archives drafts that were not touched for MaxAge.
type DraftExpiryJob struct {
	handler DraftExpirer
	cfg     DraftExpiryConfig
	now     func() time.Time
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewDraftExpiryJob(handler DraftExpirer, cfg DraftExpiryConfig, logger *slog.Logger) *DraftExpiryJob {
	if cfg.Schedule == "" {
		cfg.Schedule = DefaultDraftExpirySchedule
	}
	return &DraftExpiryJob{
		handler: handler,
		cfg:     cfg,
		now:     time.Now,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "draft_expiry_job"),
	}
}

// Start schedules the sweep.
func (j *DraftExpiryJob) Start() error {
	_, err := j.cron.AddFunc(j.cfg.Schedule, func() {
		ctx := context.Background()
		if _, err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Draft expiry job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Draft expiry job started",
		"schedule", j.cfg.Schedule, "max_age", j.cfg.MaxAge.String())
	return nil
}

// Run performs a single sweep and returns how many drafts were expired.
func (j *DraftExpiryJob) Run(ctx context.Context) (int, error) {
	cmd, err := commands.NewExpireStaleDraftsCommand(j.now().Add(-j.cfg.MaxAge), j.cfg.Batch)
	if err != nil {
		return 0, err
	}

	expired, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		j.logger.InfoContext(ctx, "expired stale drafts", "count", expired)
	}
	return expired, nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *DraftExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Draft expiry job stopped")
}
