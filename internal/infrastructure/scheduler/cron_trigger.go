package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OfficeLister provides the offices whose ledgers are maintained
type OfficeLister interface {
	FindAllIDs(ctx context.Context) ([]uuid.UUID, error)
}

// CronTriggerConfig holds the daily run time
type CronTriggerConfig struct {
	DailyHour     int
	DailyMinute   int
	CheckInterval time.Duration
}

// CronTrigger submits the daily ledger jobs for every office once a day
type CronTrigger struct {
	config    CronTriggerConfig
	scheduler *Scheduler
	offices   OfficeLister
	logger    *zap.Logger
	now       func() time.Time

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

// NewCronTrigger creates a new cron trigger
func NewCronTrigger(cfg CronTriggerConfig, scheduler *Scheduler, offices OfficeLister, logger *zap.Logger) *CronTrigger {
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CronTrigger{
		config:    cfg,
		scheduler: scheduler,
		offices:   offices,
		logger:    logger,
		now:       time.Now,
	}
}

// Start starts the cron trigger
func (c *CronTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = true
	ctx, c.cancel = context.WithCancel(ctx)
	c.mu.Unlock()

	c.wg.Add(1)
	go c.runLoop(ctx)

	c.logger.Info("Cron trigger started",
		zap.Int("daily_hour", c.config.DailyHour),
		zap.Int("daily_minute", c.config.DailyMinute),
		zap.Duration("check_interval", c.config.CheckInterval),
	)
	return nil
}

// Stop stops the cron trigger
func (c *CronTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.cancel()
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Cron trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *CronTrigger) runLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.checkAndTrigger(ctx)
		}
	}
}

// checkAndTrigger fires at most once per calendar day, on the first check at
// or after the configured time
func (c *CronTrigger) checkAndTrigger(ctx context.Context) bool {
	now := c.now()
	currentDate := now.Format("2006-01-02")

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastRunDate == currentDate {
		return false
	}
	runAt := time.Date(now.Year(), now.Month(), now.Day(), c.config.DailyHour, c.config.DailyMinute, 0, 0, now.Location())
	if now.Before(runAt) {
		return false
	}
	c.lastRunDate = currentDate

	c.logger.Info("Triggering daily ledger jobs", zap.String("date", currentDate))
	c.RunNow(ctx, now)
	return true
}

// RunNow schedules the ledger jobs for every office as of the given time
func (c *CronTrigger) RunNow(ctx context.Context, asOf time.Time) int {
	officeIDs, err := c.offices.FindAllIDs(ctx)
	if err != nil {
		c.logger.Error("Failed to list offices for ledger jobs", zap.Error(err))
		return 0
	}

	scheduled := 0
	for _, officeID := range officeIDs {
		if err := c.scheduler.ScheduleDaily(officeID, asOf); err != nil {
			c.logger.Error("Failed to schedule ledger jobs for office",
				zap.String("office_id", officeID.String()),
				zap.Error(err),
			)
			continue
		}
		scheduled++
	}

	c.logger.Info("Scheduled ledger jobs",
		zap.Int("office_count", len(officeIDs)),
		zap.Int("scheduled", scheduled),
	)
	return scheduled
}
