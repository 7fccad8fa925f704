// Package jobs provides scheduled background tasks built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
//  1. DraftExpiryJob cancels drafts left untouched before confirmation and moves them
//     to the archive with the reason "expired".
//  2. CatalogRefreshJob reloads the relay point catalog from its directory.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewDraftExpiryJob(expireHandler, jobs.DraftExpiryConfig{MaxAge: 72 * time.Hour, Batch: 100}, logger),
//		jobs.NewCatalogRefreshJob(directory, catalog, "", logger),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules use the six field cron syntax with seconds. Both Run methods can also be
// called directly, which is what the tests do.
package jobs
