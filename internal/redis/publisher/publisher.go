package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// Event kinds published on an auction channel.
const (
	EventBidPlaced    = "bid_placed"
	EventBidDeleted   = "bid_deleted"
	EventAuctionEnded = "auction_ended"
)

const eventVersion = 1

// Event is the payload published on "auc:<auctionID>:events".
type Event struct {
	Version    int              `json:"version"`
	Event      string           `json:"event"`
	AuctionID  int64            `json:"auctionId"`
	PaintingID int64            `json:"paintingId,omitempty"`
	BidID      int64            `json:"bidId,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	BidderName string           `json:"bidderName,omitempty"`
	At         time.Time        `json:"at"`
}

// Publisher announces auction events to live feed subscribers.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// Channel returns the pub/sub channel of an auction.
func Channel(auctionID int64) string {
	return fmt.Sprintf("auc:%d:events", auctionID)
}

type redisPublisher struct {
	rdc *redis.Client
}

func NewRedisPublisher(rdc *redis.Client) Publisher {
	return &redisPublisher{rdc: rdc}
}

func (p *redisPublisher) Publish(ctx context.Context, evt Event) error {
	evt.Version = eventVersion
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.rdc.Publish(ctx, Channel(evt.AuctionID), string(payload)).Err()
}

// Nop drops every event. Used when no feed is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
