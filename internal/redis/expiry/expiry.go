package expiry

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix marks the timer keys whose expiry closes an auction.
const KeyPrefix = "auc_t:"

func Key(auctionID int64) string {
	return KeyPrefix + strconv.FormatInt(auctionID, 10)
}

// ParseKey extracts the auction id from an expired timer key.
func ParseKey(key string) (int64, bool) {
	if !strings.HasPrefix(key, KeyPrefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(key, KeyPrefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Timers arms and disarms per-auction expiry keys.
type Timers interface {
	Arm(ctx context.Context, auctionID int64, endsAt time.Time) error
	Disarm(ctx context.Context, auctionID int64) error
}

type redisTimers struct {
	rdc *redis.Client
	now func() time.Time
}

func NewRedisTimers(rdc *redis.Client) Timers {
	return &redisTimers{rdc: rdc, now: time.Now}
}

// Arm sets the timer key to expire at endsAt. A past endsAt yields a one
// second timer so the watcher still closes the auction.
func (t *redisTimers) Arm(ctx context.Context, auctionID int64, endsAt time.Time) error {
	ttl := endsAt.Sub(t.now())
	if ttl < time.Second {
		ttl = time.Second
	}
	return t.rdc.Set(ctx, Key(auctionID), 1, ttl.Round(time.Second)).Err()
}

func (t *redisTimers) Disarm(ctx context.Context, auctionID int64) error {
	return t.rdc.Del(ctx, Key(auctionID)).Err()
}

// Nop ignores timers; the periodic sweep still closes auctions.
type Nop struct{}

func (Nop) Arm(context.Context, int64, time.Time) error { return nil }
func (Nop) Disarm(context.Context, int64) error         { return nil }
