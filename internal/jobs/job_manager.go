package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// Job is a scheduled task the manager starts and stops.
type Job interface {
	Name() string
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs    []Job
	started []Job
	logger  *zap.Logger
}

// NewJobManager creates a job manager for the given jobs, started in order.
func NewJobManager(logger *zap.Logger, jobs ...Job) *JobManager {
	return &JobManager{jobs: jobs, logger: logger}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	for _, job := range jm.jobs {
		if err := job.Start(); err != nil {
			// Stop already started jobs if this one fails
			jm.StopAll()
			return fmt.Errorf("failed to start %s: %w", job.Name(), err)
		}
		jm.started = append(jm.started, job)
	}

	jm.logger.Info("jobs started", zap.Int("count", len(jm.started)))
	return nil
}

// StopAll stops the started jobs gracefully, last started first.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].Stop()
	}
	jm.started = nil
}
