package auctionsweep

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper ends every Live auction whose window has passed.
type Sweeper interface {
	SweepExpired(ctx context.Context) (int, error)
}

// Run sweeps once at boot and then every interval, so auctions close even
// when Redis keyspace notifications are unavailable.
func Run(ctx context.Context, svc Sweeper, interval time.Duration) {
	tk := time.NewTicker(interval)
	go func() {
		defer tk.Stop()
		sweepOnce(ctx, svc)
		for {
			select {
			case <-ctx.Done():
				return
			case <-tk.C:
				sweepOnce(ctx, svc)
			}
		}
	}()
}

func sweepOnce(ctx context.Context, svc Sweeper) {
	n, err := svc.SweepExpired(ctx)
	if err != nil {
		if ctx.Err() == nil {
			zap.L().Error("auction_sweep_failed", zap.Error(err))
		}
		return
	}
	if n > 0 {
		zap.L().Info("auction_sweep", zap.Int("closed", n))
	}
}
