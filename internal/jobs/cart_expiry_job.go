package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/metrics"

	"github.com/robfig/cron/v3"
)

// CartExpiryJob removes carts left untouched for longer than the TTL.
type CartExpiryJob struct {
	handler  commands.ExpireCartsCommandHandler
	schedule string
	ttl      time.Duration
	metrics  *metrics.StoreMetrics
	cron     *cron.Cron
	logger   *slog.Logger
	now      func() time.Time
}

// NewCartExpiryJob uses the standard five-field cron spec or a descriptor
// such as "@hourly".
func NewCartExpiryJob(
	handler commands.ExpireCartsCommandHandler,
	schedule string,
	ttl time.Duration,
	storeMetrics *metrics.StoreMetrics,
	logger *slog.Logger,
) *CartExpiryJob {
	return &CartExpiryJob{
		handler:  handler,
		schedule: schedule,
		ttl:      ttl,
		metrics:  storeMetrics,
		cron:     cron.New(),
		logger:   logger.With("component", "cart_expiry_job"),
		now:      time.Now,
	}
}

func (j *CartExpiryJob) Start() error {
	if j.ttl <= 0 {
		return fmt.Errorf("cart ttl must be positive, got %s", j.ttl)
	}

	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.RunOnce(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Cart expiry job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Cart expiry job started",
		"schedule", j.schedule, "ttl", j.ttl.String())
	return nil
}

// RunOnce performs a single sweep and returns the number of carts removed.
func (j *CartExpiryJob) RunOnce(ctx context.Context) (int, error) {
	cmd, err := commands.NewExpireCartsCommand(j.now().Add(-j.ttl))
	if err != nil {
		return 0, err
	}

	removed, err := j.handler.Handle(ctx, cmd)
	j.metrics.RecordCartsExpired(removed)
	if err != nil {
		return removed, err
	}
	if removed > 0 {
		j.logger.InfoContext(ctx, "Expired carts removed", "count", removed, "cutoff", cmd.Cutoff())
	}
	return removed, nil
}

// Stop waits for a running sweep to finish.
func (j *CartExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Cart expiry job stopped")
}
