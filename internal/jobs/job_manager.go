package jobs

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	jobs    []namedJob
	started []namedJob
	logger  *logrus.Entry
}

type namedJob struct {
	name string
	job  Job
}

// NewJobManager creates a job manager running the fulfillment clock.
func NewJobManager(fulfillmentClock *FulfillmentClockJob, logger *logrus.Entry) *JobManager {
	jm := &JobManager{logger: logger.WithField("component", "job_manager")}
	jm.Register("fulfillment clock", fulfillmentClock)
	return jm
}

// Register adds a job to be started by StartAll.
func (jm *JobManager) Register(name string, job Job) {
	jm.jobs = append(jm.jobs, namedJob{name: name, job: job})
}

// StartAll starts all scheduled jobs in registration order.
// If one fails, the jobs already started are stopped again.
func (jm *JobManager) StartAll() error {
	for _, j := range jm.jobs {
		if err := j.job.Start(); err != nil {
			jm.StopAll()
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
		jm.started = append(jm.started, j)
	}
	return nil
}

// StopAll stops the started jobs in reverse order.
func (jm *JobManager) StopAll() {
	for i := len(jm.started) - 1; i >= 0; i-- {
		jm.started[i].job.Stop()
		jm.logger.WithField("job", jm.started[i].name).Debug("job stopped")
	}
	jm.started = nil
}
