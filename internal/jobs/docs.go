// Package jobs provides scheduled background tasks for the storefront.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and run command handlers
// from the application layer.
//
// # Available Jobs
//
// 1. CartExpiryJob - deletes carts whose updated_at is older than CART_TTL,
// on the CART_SWEEP_SCHEDULE schedule (default "@hourly")
//
// # Usage
//
//	jobManager := jobs.NewJobManager(expireCartsHandler, jobs.CartExpiryConfig{
//		Schedule: "@hourly",
//		TTL:      30 * 24 * time.Hour,
//	}, storeMetrics, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed sweep is logged and retried on the next tick. Carts touched
// between the scan and the delete survive the sweep.
package jobs
