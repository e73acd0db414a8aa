package auctionwatcher

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"paintingauction/internal/redis/expiry"
)

// Closer ends an auction whose window has passed.
type Closer interface {
	CloseExpired(ctx context.Context, id int64) (bool, error)
}

// Run listens to key-expiry events and closes the matching auctions.
// Run must be started once at service boot.
func Run(ctx context.Context, rdb *redis.Client, svc Closer) {
	if err := rdb.ConfigSet(ctx, "notify-keyspace-events", "Ex").Err(); err != nil {
		// Managed Redis often forbids CONFIG; the sweeper still closes auctions.
		zap.L().Warn("auction_watcher_config", zap.Error(err))
	}
	ps := rdb.PSubscribe(ctx, "__keyevent@*__:expired")
	defer ps.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ps.Channel():
			if !ok {
				return
			}
			handleExpired(ctx, svc, m.Payload)
		}
	}
}

func handleExpired(ctx context.Context, svc Closer, key string) {
	id, ok := expiry.ParseKey(key)
	if !ok {
		return
	}
	closed, err := svc.CloseExpired(ctx, id)
	if err != nil {
		zap.L().Error("auction_close_failed", zap.Int64("auction_id", id), zap.Error(err))
		return
	}
	if closed {
		zap.L().Info("auction_closed_on_timer", zap.Int64("auction_id", id))
	}
}
