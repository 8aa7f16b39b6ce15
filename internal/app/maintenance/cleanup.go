package maintenance

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/jlbernardo/barangaylink/internal/services"
	"github.com/jlbernardo/barangaylink/pkg/logger"
)

const (
	defaultActivityRetentionDays     = 365
	defaultNotificationRetentionDays = 90
	defaultSchedule                  = "@daily"
)

// Cleaner runs background retention sweeps: pruning old activity-log rows and
// removing read notifications past their retention window.
type Cleaner struct {
	activity      *services.ActivityService
	notifications *services.NotificationService
	cron          *cron.Cron
	log           *zap.Logger

	schedule              string
	activityRetention     int
	notificationRetention int
}

// Option customises the Cleaner.
type Option func(*Cleaner)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(cleaner *Cleaner) {
		if c != nil {
			cleaner.cron = c
		}
	}
}

// WithSchedule overrides the cron specification for the retention sweep.
func WithSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.schedule = spec
		}
	}
}

// WithActivityRetentionDays adjusts how long activity logs are retained.
func WithActivityRetentionDays(days int) Option {
	return func(cleaner *Cleaner) {
		if days > 0 {
			cleaner.activityRetention = days
		}
	}
}

// WithNotificationRetentionDays adjusts how long read notifications are retained.
func WithNotificationRetentionDays(days int) Option {
	return func(cleaner *Cleaner) {
		if days > 0 {
			cleaner.notificationRetention = days
		}
	}
}

// NewCleaner constructs a Cleaner with sensible defaults. A nil dependency
// results in the corresponding sweep being skipped.
func NewCleaner(activity *services.ActivityService, notifications *services.NotificationService, opts ...Option) *Cleaner {
	cleaner := &Cleaner{
		activity:              activity,
		notifications:         notifications,
		schedule:              defaultSchedule,
		activityRetention:     defaultActivityRetentionDays,
		notificationRetention: defaultNotificationRetentionDays,
		log:                   logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(cleaner)
	}

	if cleaner.cron == nil {
		cleaner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return cleaner
}

// Start registers the retention sweep with the cron scheduler and launches it.
func (c *Cleaner) Start() error {
	if c.activity == nil && c.notifications == nil {
		return nil
	}

	if _, err := c.cron.AddFunc(c.schedule, func() {
		if err := c.RunOnce(context.Background()); err != nil {
			c.log.Warn("retention sweep failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	c.cron.Start()
	return nil
}

// Stop halts the underlying scheduler, waiting for any running jobs to complete.
func (c *Cleaner) Stop() context.Context {
	if c.cron == nil {
		return context.Background()
	}
	return c.cron.Stop()
}

// RunOnce executes all configured sweeps sequentially. Primarily used in tests
// and during graceful shutdown.
func (c *Cleaner) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var errs error

	if c.activity != nil && c.activityRetention > 0 {
		removed, err := c.activity.CleanupOlderThan(ctx, c.activityRetention)
		if err != nil {
			errs = multierr.Append(errs, err)
		} else if removed > 0 {
			c.log.Info("pruned activity logs", zap.Int64("removed", removed))
		}
	}

	if c.notifications != nil && c.notificationRetention > 0 {
		removed, err := c.notifications.CleanupRead(ctx, c.notificationRetention)
		if err != nil {
			errs = multierr.Append(errs, err)
		} else if removed > 0 {
			c.log.Info("pruned read notifications", zap.Int64("removed", removed))
		}
	}

	return errs
}
