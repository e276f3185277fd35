package jobs

import (
	"context"
	"sync"
	"time"

	"deliverus/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ServiceTimeRecomputer is the command handler the job drives.
type ServiceTimeRecomputer interface {
	Handle(ctx context.Context, cmd commands.RecomputeServiceTimesCommand) (int, error)
}

// ServiceTimeJob runs RecomputeServiceTimesCommand on a cron schedule. Runs
// never overlap; a run that finds the previous one still going is skipped.
type ServiceTimeJob struct {
	schedule string
	handler  ServiceTimeRecomputer
	timeout  time.Duration
	cron     *cron.Cron
	logger   *zap.Logger

	mu      sync.Mutex
	running bool
}

// NewServiceTimeJob creates the job. Each run is bounded by timeout when it
// is positive.
func NewServiceTimeJob(schedule string, handler ServiceTimeRecomputer, timeout time.Duration, logger *zap.Logger) *ServiceTimeJob {
	return &ServiceTimeJob{
		schedule: schedule,
		handler:  handler,
		timeout:  timeout,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(zap.String("component", "service_time_job")),
	}
}

func (j *ServiceTimeJob) Name() string {
	return "service time job"
}

func (j *ServiceTimeJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("service time job started", zap.String("schedule", j.schedule))
	return nil
}

// Run performs one recomputation.
func (j *ServiceTimeJob) Run() {
	j.mu.Lock()
	if j.running {
		j.mu.Unlock()
		j.logger.Warn("previous service time run still in progress, skipping")
		return
	}
	j.running = true
	j.mu.Unlock()

	defer func() {
		j.mu.Lock()
		j.running = false
		j.mu.Unlock()
	}()

	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	updated, err := j.handler.Handle(ctx, commands.NewRecomputeServiceTimesCommand())
	if err != nil {
		j.logger.Error("service time job failed", zap.Int("updated", updated), zap.Error(err))
		return
	}
	j.logger.Debug("service time job finished", zap.Int("updated", updated))
}

// Stop waits for a running recomputation to finish.
func (j *ServiceTimeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("service time job stopped")
}
