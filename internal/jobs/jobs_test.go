package jobs_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/jobs"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

type MockAutoDeliverer struct{ mock.Mock }

func (m *MockAutoDeliverer) Handle(ctx context.Context, cmd commands.AutoDeliverCommand) (commands.SweepResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.SweepResult), args.Error(1)
}

type fakeJob struct {
	startErr error
	started  bool
	stopped  bool
}

func (j *fakeJob) Start() error {
	if j.startErr != nil {
		return j.startErr
	}
	j.started = true
	return nil
}

func (j *fakeJob) Stop() { j.stopped = true }

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func TestFulfillmentClockJob_RunOnceUsesClock(t *testing.T) {
	handler := new(MockAutoDeliverer)
	want := commands.SweepResult{Scanned: 2, Updated: 1, Delivered: 3}
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.AutoDeliverCommand) bool {
		return cmd.Now().Equal(now)
	})).Return(want, nil).Once()

	job := jobs.NewFulfillmentClockJob(handler, fixedClock(now), "@every 1m", testLogger())

	got, err := job.RunOnce(t.Context())
	require.NoError(t, err)
	assert.Equal(t, want, got)
	handler.AssertExpectations(t)
}

func TestFulfillmentClockJob_RunOnceReturnsHandlerError(t *testing.T) {
	handler := new(MockAutoDeliverer)
	handler.On("Handle", mock.Anything, mock.Anything).
		Return(commands.SweepResult{}, errors.New("database is down")).Once()

	job := jobs.NewFulfillmentClockJob(handler, fixedClock(now), "@every 1m", testLogger())

	_, err := job.RunOnce(t.Context())
	require.EqualError(t, err, "database is down")
}

func TestFulfillmentClockJob_StartRejectsBadSchedule(t *testing.T) {
	job := jobs.NewFulfillmentClockJob(new(MockAutoDeliverer), fixedClock(now), "every minute", testLogger())
	require.Error(t, job.Start())
}

func TestFulfillmentClockJob_StartStop(t *testing.T) {
	job := jobs.NewFulfillmentClockJob(new(MockAutoDeliverer), fixedClock(now), "@every 1h", testLogger())
	require.NoError(t, job.Start())
	job.Stop()
	job.Stop()
}

func TestJobManager_StartAllStopAll(t *testing.T) {
	clockJob := jobs.NewFulfillmentClockJob(new(MockAutoDeliverer), fixedClock(now), "@every 1h", testLogger())
	jm := jobs.NewJobManager(clockJob, testLogger())
	extra := &fakeJob{}
	jm.Register("extra", extra)

	require.NoError(t, jm.StartAll())
	assert.True(t, extra.started)

	jm.StopAll()
	assert.True(t, extra.stopped)
}

func TestJobManager_StartFailureStopsStartedJobs(t *testing.T) {
	clockJob := jobs.NewFulfillmentClockJob(new(MockAutoDeliverer), fixedClock(now), "@every 1h", testLogger())
	jm := jobs.NewJobManager(clockJob, testLogger())
	first := &fakeJob{}
	broken := &fakeJob{startErr: errors.New("boom")}
	jm.Register("first", first)
	jm.Register("broken", broken)

	err := jm.StartAll()
	require.ErrorContains(t, err, "failed to start broken job")
	assert.True(t, first.stopped)
	assert.False(t, broken.stopped)
}
