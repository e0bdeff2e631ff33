package jobs

import (
	"context"
	"log/slog"
	"sync"

	"escrow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DispatchSchedule is the fallback cadence of the dispatch job: every five seconds.
const DispatchSchedule = "*/5 * * * * *"

type DispatchTransfersHandler interface {
	Handle(ctx context.Context, cmd commands.DispatchTransfersCommand) (commands.DispatchResult, error)
}

// DispatchObserver is told how many transfers a run failed to hand over.
type DispatchObserver interface {
	DispatchFailed(n int)
}

// TransferDispatchJob hands pending transfers to the value transfer service.
// It runs on a schedule and whenever a wake-up arrives, one run at a time.
type TransferDispatchJob struct {
	handler   DispatchTransfersHandler
	batchSize int
	wakeups   <-chan struct{}
	observer  DispatchObserver
	cron      *cron.Cron
	logger    *slog.Logger

	runMu sync.Mutex
	wg    sync.WaitGroup

	// ctx is handed to every run and cancelled by Stop.
	ctx      context.Context
	cancel   context.CancelFunc
	stopOnce sync.Once
}

// NewTransferDispatchJob creates the job. wakeups may be nil, in which case
// the job only runs on its schedule.
func NewTransferDispatchJob(
	handler DispatchTransfersHandler,
	batchSize int,
	wakeups <-chan struct{},
	observer DispatchObserver,
	logger *slog.Logger,
) *TransferDispatchJob {
	ctx, cancel := context.WithCancel(context.Background())
	return &TransferDispatchJob{
		handler:   handler,
		batchSize: batchSize,
		wakeups:   wakeups,
		observer:  observer,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "transfer_dispatch_job"),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start schedules the job and begins listening for wake-ups.
func (j *TransferDispatchJob) Start() error {
	if _, err := commands.NewDispatchTransfersCommand(j.batchSize); err != nil {
		return err
	}

	_, err := j.cron.AddFunc(DispatchSchedule, func() {
		j.Run(j.ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()

	j.wg.Add(1)
	go j.listen()

	j.logger.InfoContext(context.Background(), "Transfer dispatch job started",
		"schedule", DispatchSchedule,
		"batch_size", j.batchSize,
	)
	return nil
}

// Stop stops scheduling new runs, cancels the running one and waits for it
// to return. Calling Stop again is a no-op.
func (j *TransferDispatchJob) Stop() {
	j.stopOnce.Do(func() {
		j.cancel()
		<-j.cron.Stop().Done()
		j.wg.Wait()
		j.logger.InfoContext(context.Background(), "Transfer dispatch job stopped")
	})
}

// Run dispatches one batch. Failed transfers stay pending for the next run.
func (j *TransferDispatchJob) Run(ctx context.Context) {
	j.runMu.Lock()
	defer j.runMu.Unlock()

	cmd, err := commands.NewDispatchTransfersCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Transfer dispatch job misconfigured", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Transfer dispatch job failed", "error", err)
		return
	}

	for _, failed := range result.Failed {
		j.logger.WarnContext(ctx, "Transfer not accepted, will retry",
			"transfer_id", failed.TransferID.String(),
			"error", failed.Err,
		)
	}
	if len(result.Failed) > 0 {
		j.observer.DispatchFailed(len(result.Failed))
	}
	if result.Dispatched > 0 {
		j.logger.InfoContext(ctx, "Transfers dispatched", "count", result.Dispatched)
	}
}

func (j *TransferDispatchJob) listen() {
	defer j.wg.Done()

	for {
		select {
		case <-j.ctx.Done():
			return
		case _, ok := <-j.wakeups:
			if !ok {
				return
			}
			j.Run(j.ctx)
		}
	}
}
