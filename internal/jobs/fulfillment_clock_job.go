package jobs

import (
	"context"
	"sync"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/ports"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// AutoDeliverer runs one auto-deliver sweep.
type AutoDeliverer interface {
	Handle(ctx context.Context, cmd commands.AutoDeliverCommand) (commands.SweepResult, error)
}

// FulfillmentClockJob runs the auto-deliver sweep on a cron schedule. A tick that
// fires while the previous sweep is still running is skipped.
type FulfillmentClockJob struct {
	handler  AutoDeliverer
	clock    ports.Clock
	schedule string
	cron     *cron.Cron
	logger   *logrus.Entry

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

func NewFulfillmentClockJob(
	handler AutoDeliverer,
	clock ports.Clock,
	schedule string,
	logger *logrus.Entry,
) *FulfillmentClockJob {
	logger = logger.WithField("component", "fulfillment_clock_job")
	ctx, cancel := context.WithCancel(context.Background())
	return &FulfillmentClockJob{
		handler:  handler,
		clock:    clock,
		schedule: schedule,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger}))),
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start schedules the sweep. It fails when the schedule cannot be parsed.
func (j *FulfillmentClockJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		if _, err := j.RunOnce(j.ctx); err != nil && j.ctx.Err() == nil {
			j.logger.WithError(err).Error("Fulfillment clock sweep failed")
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.WithField("schedule", j.schedule).Info("Fulfillment clock job started")
	return nil
}

// RunOnce runs a single sweep at the clock's current time.
func (j *FulfillmentClockJob) RunOnce(ctx context.Context) (commands.SweepResult, error) {
	cmd, err := commands.NewAutoDeliverCommand(j.clock.Now())
	if err != nil {
		return commands.SweepResult{}, err
	}
	return j.handler.Handle(ctx, cmd)
}

// Stop cancels a running sweep and waits for it to return.
func (j *FulfillmentClockJob) Stop() {
	j.once.Do(func() {
		j.cancel()
		<-j.cron.Stop().Done()
		j.logger.Info("Fulfillment clock job stopped")
	})
}

// cronLogger routes cron's own messages to logrus.
type cronLogger struct {
	entry *logrus.Entry
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.entry.WithFields(fields(keysAndValues)).Debug(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.entry.WithError(err).WithFields(fields(keysAndValues)).Error(msg)
}

func fields(keysAndValues []any) logrus.Fields {
	f := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			f[key] = keysAndValues[i+1]
		}
	}
	return f
}
