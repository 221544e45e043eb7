package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/metrics"
)

// CartExpiryConfig schedules the cart sweep.
type CartExpiryConfig struct {
	Schedule string
	TTL      time.Duration
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	cartExpiryJob *CartExpiryJob
}

func NewJobManager(
	expireCartsHandler commands.ExpireCartsCommandHandler,
	cartExpiry CartExpiryConfig,
	storeMetrics *metrics.StoreMetrics,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		cartExpiryJob: NewCartExpiryJob(expireCartsHandler, cartExpiry.Schedule, cartExpiry.TTL, storeMetrics, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.cartExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start cart expiry job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.cartExpiryJob.Stop()
}
