package jobs

import (
	"fmt"
)

// JobManager coordinates the escrow's background jobs.
type JobManager struct {
	transferDispatchJob *TransferDispatchJob
}

func NewJobManager(transferDispatchJob *TransferDispatchJob) *JobManager {
	return &JobManager{
		transferDispatchJob: transferDispatchJob,
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.transferDispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start transfer dispatch job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.transferDispatchJob.Stop()
}
