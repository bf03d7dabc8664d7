package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/loombook/internal/config"
	"github.com/mamadbah2/loombook/internal/domain/derive"
	"github.com/mamadbah2/loombook/internal/domain/models"
)

const jobTimeout = 2 * time.Minute

// AlertSource provides the ledger snapshot and the current day.
type AlertSource interface {
	Snapshot(ctx context.Context) (models.Snapshot, error)
	Today() models.Date
}

// DigestSender delivers the alert list.
type DigestSender interface {
	SendDigest(ctx context.Context, today models.Date, alerts []models.Alert) (bool, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron     *cron.Cron
	schedule string
	source   AlertSource
	sender   DigestSender
	logger   *zap.Logger
}

// NewScheduler creates a scheduler that fires in the configured timezone.
func NewScheduler(cfg config.AlertsConfig, source AlertSource, sender DigestSender, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}

	// Standard 5-field cron: min, hour, dom, month, dow.
	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:     c,
		schedule: cfg.CronSchedule,
		source:   source,
		sender:   sender,
		logger:   logger,
	}, nil
}

// Start registers the alert digest job and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("alert_schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.sendAlertDigest); err != nil {
		return fmt.Errorf("schedule alert digest %q: %w", s.schedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sendAlertDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.RunAlertDigest(ctx); err != nil {
		s.logger.Error("failed to send alert digest", zap.Error(err))
	}
}

// RunAlertDigest derives today's alerts and hands them to the sender.
func (s *Scheduler) RunAlertDigest(ctx context.Context) error {
	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	today := s.source.Today()
	alerts := derive.Alerts(snap, today)

	sent, err := s.sender.SendDigest(ctx, today, alerts)
	if err != nil {
		return err
	}
	s.logger.Info("alert digest run finished", zap.Int("alerts", len(alerts)), zap.Bool("sent", sent))
	return nil
}
