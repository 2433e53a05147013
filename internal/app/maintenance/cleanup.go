package maintenance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vigilohq/vigilo/internal/models"
	"github.com/vigilohq/vigilo/internal/services"
	"github.com/vigilohq/vigilo/pkg/logger"
)

const (
	defaultAuditRetentionDays = 90
	defaultShiftSpec          = "@hourly"
	defaultAuditSpec          = "@daily"
	defaultSubscriptionSpec   = "@daily"
)

// Cleaner coordinates background maintenance tasks: closing stale open shifts,
// pruning old audit logs, and suspending tenants with lapsed subscriptions.
type Cleaner struct {
	db         *gorm.DB
	attendance *services.AttendanceService
	audit      *services.AuditService
	cron       *cron.Cron
	now        func() time.Time
	log        *zap.Logger
	enabled    bool
	retention  int

	shiftSchedule        string
	auditSchedule        string
	subscriptionSchedule string
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

// WithNow overrides the clock used for scheduling and cleanup comparisons.
func WithNow(now func() time.Time) Option {
	return func(cleaner *Cleaner) {
		if now != nil {
			cleaner.now = now
		}
	}
}

// WithAuditRetentionDays adjusts how long audit logs are retained before cleanup.
func WithAuditRetentionDays(days int) Option {
	return func(cleaner *Cleaner) {
		if days > 0 {
			cleaner.retention = days
		}
	}
}

// WithShiftSchedule overrides the cron specification for the stale shift sweep.
func WithShiftSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.shiftSchedule = spec
		}
	}
}

// WithAuditSchedule overrides the cron specification for audit retention enforcement.
func WithAuditSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.auditSchedule = spec
		}
	}
}

// WithSubscriptionSchedule overrides the cron specification for the subscription sweep.
func WithSubscriptionSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.subscriptionSchedule = spec
		}
	}
}

// NewCleaner constructs a Cleaner with sensible defaults. Any nil dependency results in
// the corresponding cleanup job being skipped.
func NewCleaner(db *gorm.DB, attendance *services.AttendanceService, audit *services.AuditService, opts ...Option) *Cleaner {
	cleaner := &Cleaner{
		db:                   db,
		attendance:           attendance,
		audit:                audit,
		now:                  time.Now,
		retention:            defaultAuditRetentionDays,
		shiftSchedule:        defaultShiftSpec,
		auditSchedule:        defaultAuditSpec,
		subscriptionSchedule: defaultSubscriptionSpec,
		log:                  logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(cleaner)
	}

	if cleaner.cron == nil {
		cleaner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	cleaner.enabled = cleaner.attendance != nil || cleaner.audit != nil || cleaner.db != nil

	return cleaner
}

// Start registers cleanup jobs with the cron scheduler and launches it if at least one cleanup is enabled.
func (c *Cleaner) Start() error {
	if !c.enabled {
		return nil
	}

	if c.attendance != nil {
		if _, err := c.cron.AddFunc(c.shiftSchedule, func() {
			ctx := context.Background()
			if _, err := c.attendance.AutoCloseStale(ctx); err != nil {
				c.log.Warn("stale shift sweep failed", zap.Error(err))
			}
		}); err != nil {
			return err
		}
	}

	if c.audit != nil && c.retention > 0 {
		if _, err := c.cron.AddFunc(c.auditSchedule, func() {
			ctx := context.Background()
			if _, err := c.audit.CleanupOlderThan(ctx, c.retention); err != nil {
				c.log.Warn("audit cleanup failed", zap.Error(err))
			}
		}); err != nil {
			return err
		}
	}

	if c.db != nil {
		if _, err := c.cron.AddFunc(c.subscriptionSchedule, func() {
			ctx := context.Background()
			if _, err := SuspendLapsedTenants(ctx, c.db, c.now()); err != nil {
				c.log.Warn("subscription sweep failed", zap.Error(err))
			}
		}); err != nil {
			return err
		}
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

// RunOnce executes all configured cleanup routines sequentially. Primarily used in tests
// and during graceful shutdown.
func (c *Cleaner) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var errs error

	if c.attendance != nil {
		if _, err := c.attendance.AutoCloseStale(ctx); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	if c.audit != nil && c.retention > 0 {
		if _, err := c.audit.CleanupOlderThan(ctx, c.retention); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	if c.db != nil {
		if _, err := SuspendLapsedTenants(ctx, c.db, c.now()); err != nil {
			errs = multierr.Append(errs, err)
		}
	}

	return errs
}

// SuspendLapsedTenants deactivates tenants whose subscription window has closed.
func SuspendLapsedTenants(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	if db == nil {
		return 0, errors.New("suspend lapsed tenants: db is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	result := db.WithContext(ctx).
		Model(&models.Tenant{}).
		Where("is_active = ? AND subscription_end < ?", true, now).
		Update("is_active", false)
	if result.Error != nil {
		return 0, fmt.Errorf("suspend lapsed tenants: %w", result.Error)
	}

	return result.RowsAffected, nil
}
