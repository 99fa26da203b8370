package cleanup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	listingsvc "github.com/ivankudzin/svcmarket/internal/services/listings"
)

type listingExpirer interface {
	ExpireActiveBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context, keys ...string) error
}

// Job sweeps active listings whose paid lifetime ran out and flips them to
// expired. Runs once at startup and then on a fixed interval.
type Job struct {
	listings listingExpirer
	cache    cacheInvalidator
	now      func() time.Time
	logger   *zap.Logger
}

func NewListingExpiryJob(listings listingExpirer, cache cacheInvalidator, logger *zap.Logger) *Job {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		listings: listings,
		cache:    cache,
		now:      time.Now,
		logger:   logger,
	}
}

func (j *Job) Run(ctx context.Context) error {
	if j.listings == nil {
		return nil
	}

	expired, err := j.listings.ExpireActiveBefore(ctx, j.now().UTC())
	if err != nil {
		return fmt.Errorf("expire stale listings: %w", err)
	}
	if expired == 0 {
		return nil
	}

	if j.cache != nil {
		if err := j.cache.Invalidate(ctx, listingsvc.ActiveCacheKey); err != nil {
			j.logger.Warn("invalidate listings cache after expiry sweep", zap.Error(err))
		}
	}

	j.logger.Info("listing expiry sweep completed", zap.Int64("expired", expired))
	return nil
}

// RunLoop runs the sweep immediately and then every interval until the
// context is cancelled.
func (j *Job) RunLoop(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Hour
	}

	if err := j.Run(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				return err
			}
		}
	}
}
