package scheduler

import "errors"

var (
	// ErrSchedulerNotRunning is returned when a ledger job is submitted after Stop
	ErrSchedulerNotRunning = errors.New("scheduler: not running")

	// ErrJobQueueFull is returned when pending ledger jobs exceed the queue size
	ErrJobQueueFull = errors.New("scheduler: job queue is full")

	// ErrUnknownJobType is returned for job types the ledger executor does not run
	ErrUnknownJobType = errors.New("scheduler: unknown job type")

	// ErrInvalidConfig is returned when worker count, queue size or timeouts are unusable
	ErrInvalidConfig = errors.New("scheduler: invalid configuration")
)
