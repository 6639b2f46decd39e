// Package jobs provides the scheduled background tasks of the cafe delivery
// service, built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
//  1. PendingDispatchJob - every 10 seconds, assigns the nearest idle driver
//     to orders that are ACCEPTED or READY and still have no driver
//  2. OutboxRelayJob - every 2 seconds, publishes outbox messages to Kafka
//  3. LocationPruneJob - hourly, removes driver location records older than
//     the retention window, keeping each driver's latest record
//
// # Usage
//
//	jobManager := jobs.NewJobManager(DispatchHandler, RelayHandler, PruneHandler, jobs.Config{...}, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Runs never overlap: a tick that fires while the previous run is still
// busy is skipped. Expected outcomes (nothing pending, no idle driver) are
// logged at debug level; anything else is logged as an error and counted in
// cafedelivery_operation_errors_total.
package jobs
