// Package jobs provides the escrow's background tasks.
//
// TransferDispatchJob drains the transfer outbox: every transfer a pay or
// refund call recorded is handed to the value transfer service after the
// call has returned. The job runs every five seconds via
// github.com/robfig/cron/v3 and immediately whenever the database notifies
// that a new transfer was committed.
//
// # Usage
//
//	job := jobs.NewTransferDispatchJob(handler, 50, listener.Wakeups(), metrics, logger)
//	jobManager := jobs.NewJobManager(job)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A transfer the service does not accept stays pending and is retried on the
// next run, so delivery is at least once. Receivers deduplicate by transfer ID.
package jobs
