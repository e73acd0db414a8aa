package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"paintingauction/internal/redis/publisher"
)

// Feed attaches the hub to the event stream of an auction while at least one
// client watches it. Subscribe returns once the stream is live, or when ctx
// is done.
type Feed interface {
	Subscribe(ctx context.Context, auctionID int64)
	Unsubscribe(auctionID int64)
}

// subscriptionManager guarantees exactly one Redis subscription per auction
// channel no matter how many websocket clients join the same room.
type subscriptionManager struct {
	rdb  *redis.Client
	hub  *Hub
	mu   sync.Mutex
	subs map[int64]*subEntry
}

type subEntry struct {
	refCnt int
	cancel context.CancelFunc
	ready  chan struct{} // closed once Redis confirmed the subscription
}

func NewRedisFeed(rdb *redis.Client, hub *Hub) Feed {
	return &subscriptionManager{
		rdb:  rdb,
		hub:  hub,
		subs: make(map[int64]*subEntry),
	}
}

// Subscribe ensures the process listens on the auction's channel; later calls
// for the same auction only increment the ref counter.
func (sm *subscriptionManager) Subscribe(waitCtx context.Context, auctionID int64) {
	sm.mu.Lock()
	if e, ok := sm.subs[auctionID]; ok {
		e.refCnt++
		sm.mu.Unlock()
		select {
		case <-e.ready:
		case <-waitCtx.Done():
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &subEntry{refCnt: 1, cancel: cancel, ready: make(chan struct{})}
	sm.subs[auctionID] = e
	sm.mu.Unlock()

	ps := sm.rdb.Subscribe(ctx, publisher.Channel(auctionID))
	// go-redis resubscribes on reconnect, so a failed confirmation only
	// widens the window in which events can be missed.
	if _, err := ps.Receive(waitCtx); err != nil {
		zap.L().Warn("ws_subscribe_unconfirmed", zap.Int64("auction_id", auctionID), zap.Error(err))
	}
	close(e.ready)

	go func() {
		defer ps.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-ps.Channel():
				if !ok {
					return
				}
				wrapped, err := wrapRedisEvent(m.Payload)
				if err != nil {
					zap.L().Warn("ws_wrap_event_failed", zap.Int64("auction_id", auctionID), zap.Error(err))
					continue
				}
				sm.hub.Broadcast(auctionID, wrapped)
			}
		}
	}()
}

// Unsubscribe decrements the ref counter and tears the subscription down when
// the last client leaves the room.
func (sm *subscriptionManager) Unsubscribe(auctionID int64) {
	sm.mu.Lock()
	e, ok := sm.subs[auctionID]
	if !ok {
		sm.mu.Unlock()
		return
	}
	e.refCnt--
	if e.refCnt > 0 {
		sm.mu.Unlock()
		return
	}
	delete(sm.subs, auctionID)
	sm.mu.Unlock()

	e.cancel()
}

// wrapRedisEvent turns
//
//	{"version":1,"event":"bid_placed","amount":1500.01,…}
//
// into
//
//	{"event":"auctions/bid_placed","body":{"version":1,"amount":1500.01,…}}
func wrapRedisEvent(payload string) ([]byte, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, err
	}

	var evt string
	_ = json.Unmarshal(raw["event"], &evt)
	if evt == "" {
		evt = "unknown"
	}
	delete(raw, "event")

	body, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: "auctions/" + evt, Body: body})
}
