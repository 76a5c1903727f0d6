package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/abdelhalimemara/debrah-exp-v5.8/internal/infrastructure/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JobStatus represents the status of a scheduled job
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// JobType names one piece of daily ledger maintenance
type JobType string

const (
	JobTypeMarkOverdue       JobType = "MARK_OVERDUE"
	JobTypeRentDueReminders  JobType = "RENT_DUE_REMINDERS"
	JobTypeRecurringFinances JobType = "RECURRING_FINANCES"
)

// AllJobTypes returns the jobs run for every office each day, in run order
func AllJobTypes() []JobType {
	return []JobType{
		JobTypeMarkOverdue,
		JobTypeRentDueReminders,
		JobTypeRecurringFinances,
	}
}

// Job is one ledger job for one office
type Job struct {
	ID          uuid.UUID
	OfficeID    uuid.UUID
	Type        JobType
	AsOf        time.Time
	Status      JobStatus
	Error       string
	Affected    int
	StartedAt   *time.Time
	CompletedAt *time.Time
	RetryCount  int
	MaxRetries  int
}

// NewJob creates a new job instance
func NewJob(officeID uuid.UUID, jobType JobType, asOf time.Time, maxRetries int) *Job {
	return &Job{
		ID:         uuid.New(),
		OfficeID:   officeID,
		Type:       jobType,
		AsOf:       asOf,
		Status:     JobStatusPending,
		MaxRetries: maxRetries,
	}
}

// Start marks the job as running
func (j *Job) Start() {
	now := time.Now()
	j.Status = JobStatusRunning
	j.StartedAt = &now
	j.Error = ""
}

// Complete marks the job as successful
func (j *Job) Complete(affected int) {
	now := time.Now()
	j.Status = JobStatusSuccess
	j.CompletedAt = &now
	j.Affected = affected
}

// Fail marks the job as failed
func (j *Job) Fail(err string) {
	now := time.Now()
	j.Status = JobStatusFailed
	j.CompletedAt = &now
	j.Error = err
}

// ShouldRetry returns true if the job should be retried
func (j *Job) ShouldRetry() bool {
	return j.Status == JobStatusFailed && j.RetryCount < j.MaxRetries
}

// ScheduleRetry puts a failed job back to pending
func (j *Job) ScheduleRetry() {
	j.RetryCount++
	j.Status = JobStatusPending
	j.Error = ""
}

// JobExecutor runs a job and reports how many records it changed
type JobExecutor interface {
	Execute(ctx context.Context, job *Job) (int, error)
}

// JobObserver is told about every finished job attempt
type JobObserver interface {
	ObserveJob(jobType string, status string, duration time.Duration)
}

// Scheduler runs ledger jobs on a fixed pool of workers
type Scheduler struct {
	config   config.SchedulerConfig
	executor JobExecutor
	observer JobObserver
	logger   *zap.Logger

	jobs      chan *Job
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cfg config.SchedulerConfig, executor JobExecutor, logger *zap.Logger) (*Scheduler, error) {
	if cfg.MaxConcurrentJobs <= 0 || cfg.JobTimeout <= 0 || cfg.RetryAttempts < 0 {
		return nil, fmt.Errorf("%w: workers=%d timeout=%s retries=%d",
			ErrInvalidConfig, cfg.MaxConcurrentJobs, cfg.JobTimeout, cfg.RetryAttempts)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		config:   cfg,
		executor: executor,
		logger:   logger,
		jobs:     make(chan *Job, 100),
	}, nil
}

// WithObserver attaches a job observer
func (s *Scheduler) WithObserver(observer JobObserver) *Scheduler {
	s.observer = observer
	return s
}

// Start starts the scheduler
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return nil
	}
	s.isRunning = true
	s.ctx, s.cancel = context.WithCancel(ctx)

	for i := 0; i < s.config.MaxConcurrentJobs; i++ {
		s.wg.Add(1)
		go s.worker(s.ctx, i)
	}

	s.logger.Info("Ledger scheduler started",
		zap.Int("workers", s.config.MaxConcurrentJobs),
		zap.Duration("job_timeout", s.config.JobTimeout),
	)
	return nil
}

// Stop cancels running jobs and waits for the workers to exit
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.cancel()
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Ledger scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Ledger scheduler stop timed out")
		return ctx.Err()
	}
}

// SubmitJob queues a job for execution
func (s *Scheduler) SubmitJob(job *Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isRunning {
		return ErrSchedulerNotRunning
	}

	select {
	case s.jobs <- job:
		s.logger.Debug("Job submitted",
			zap.String("job_id", job.ID.String()),
			zap.String("job_type", string(job.Type)),
			zap.String("office_id", job.OfficeID.String()),
		)
		return nil
	default:
		return ErrJobQueueFull
	}
}

// ScheduleDaily queues every ledger job for an office
func (s *Scheduler) ScheduleDaily(officeID uuid.UUID, asOf time.Time) error {
	for _, jobType := range AllJobTypes() {
		if err := s.SubmitJob(NewJob(officeID, jobType, asOf, s.config.RetryAttempts)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scheduler) worker(ctx context.Context, workerID int) {
	defer s.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case job := <-s.jobs:
			s.processJob(ctx, job, workerID)
		}
	}
}

func (s *Scheduler) processJob(ctx context.Context, job *Job, workerID int) {
	job.Start()
	fields := []zap.Field{
		zap.Int("worker_id", workerID),
		zap.String("job_id", job.ID.String()),
		zap.String("job_type", string(job.Type)),
		zap.String("office_id", job.OfficeID.String()),
	}

	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	started := time.Now()
	affected, err := s.executor.Execute(jobCtx, job)
	elapsed := time.Since(started)

	if err != nil {
		job.Fail(err.Error())
		s.observe(job, elapsed)
		s.logger.Error("Job failed", append(fields, zap.Error(err))...)

		if job.ShouldRetry() && ctx.Err() == nil {
			job.ScheduleRetry()
			s.logger.Info("Job scheduled for retry",
				zap.String("job_id", job.ID.String()),
				zap.Int("retry_count", job.RetryCount),
				zap.Int("max_retries", job.MaxRetries),
			)
			time.AfterFunc(s.config.RetryDelay, func() {
				if err := s.SubmitJob(job); err != nil {
					s.logger.Warn("Failed to re-queue job for retry",
						zap.String("job_id", job.ID.String()),
						zap.Error(err),
					)
				}
			})
		}
		return
	}

	job.Complete(affected)
	s.observe(job, elapsed)
	s.logger.Info("Job completed", append(fields, zap.Int("affected", affected))...)
}

func (s *Scheduler) observe(job *Job, elapsed time.Duration) {
	if s.observer != nil {
		s.observer.ObserveJob(string(job.Type), string(job.Status), elapsed)
	}
}
