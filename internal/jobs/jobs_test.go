package jobs_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"deliverus/internal/core/application/usecases/commands"
	"deliverus/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockRecomputer struct{ mock.Mock }

func (m *MockRecomputer) Handle(ctx context.Context, cmd commands.RecomputeServiceTimesCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

// blockingRecomputer holds every run until release is closed.
type blockingRecomputer struct {
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (b *blockingRecomputer) Handle(context.Context, commands.RecomputeServiceTimesCommand) (int, error) {
	b.calls.Add(1)
	b.entered <- struct{}{}
	<-b.release
	return 0, nil
}

type fakeJob struct {
	name     string
	startErr error
	log      *[]string
}

func (f *fakeJob) Name() string { return f.name }

func (f *fakeJob) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	*f.log = append(*f.log, "start "+f.name)
	return nil
}

func (f *fakeJob) Stop() { *f.log = append(*f.log, "stop "+f.name) }

func TestServiceTimeJob_Run(t *testing.T) {
	handler := &MockRecomputer{}
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RecomputeServiceTimesCommand) bool {
		return cmd.Validate() == nil
	})).Return(3, nil).Once()
	handler.On("Handle", mock.Anything, mock.Anything).Return(1, errors.New("restaurant 2: boom")).Once()

	job := jobs.NewServiceTimeJob("0 0 * * * *", handler, time.Second, zap.NewNop())
	job.Run()
	job.Run()

	handler.AssertExpectations(t)
}

func TestServiceTimeJob_RunsDoNotOverlap(t *testing.T) {
	handler := &blockingRecomputer{entered: make(chan struct{}, 1), release: make(chan struct{})}
	job := jobs.NewServiceTimeJob("0 0 * * * *", handler, 0, zap.NewNop())

	done := make(chan struct{})
	go func() {
		job.Run()
		close(done)
	}()
	<-handler.entered

	job.Run()
	close(handler.release)
	<-done

	assert.Equal(t, int32(1), handler.calls.Load())
}

func TestServiceTimeJob_StartRejectsBadSchedule(t *testing.T) {
	job := jobs.NewServiceTimeJob("every now and then", &MockRecomputer{}, 0, zap.NewNop())

	require.Error(t, job.Start())
}

func TestServiceTimeJob_StartStop(t *testing.T) {
	job := jobs.NewServiceTimeJob("0 0 0 1 1 *", &MockRecomputer{}, 0, zap.NewNop())

	require.NoError(t, job.Start())
	job.Stop()
}

func TestJobManager(t *testing.T) {
	t.Run("starts in order and stops in reverse", func(t *testing.T) {
		var log []string
		manager := jobs.NewJobManager(zap.NewNop(), &fakeJob{name: "a", log: &log}, &fakeJob{name: "b", log: &log})

		require.NoError(t, manager.StartAll())
		manager.StopAll()

		assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, log)
	})

	t.Run("failed start stops started jobs", func(t *testing.T) {
		var log []string
		manager := jobs.NewJobManager(zap.NewNop(),
			&fakeJob{name: "a", log: &log},
			&fakeJob{name: "b", log: &log, startErr: errors.New("bad schedule")})

		err := manager.StartAll()

		require.ErrorContains(t, err, "failed to start b")
		assert.Equal(t, []string{"start a", "stop a"}, log)
	})
}
