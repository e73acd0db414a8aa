package ws

import (
	"sync"

	"go.uber.org/zap"
)

// Hub keeps one room per watched auction. Empty rooms are dropped so ended
// auctions do not pin memory.
type Hub struct {
	mu    sync.Mutex
	rooms map[int64]*room
}

func NewHub() *Hub { return &Hub{rooms: map[int64]*room{}} }

// Broadcast is called by the Redis feed.
func (h *Hub) Broadcast(auctionID int64, msg []byte) {
	r := h.lookup(auctionID)
	if r == nil {
		return
	}
	for _, c := range r.broadcast(msg) {
		zap.L().Debug("ws_drop_watcher", zap.Int64("auction_id", auctionID))
		h.Leave(auctionID, c)
	}
}

func (h *Hub) Join(auctionID int64, c *clientConn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[auctionID]
	if !ok {
		r = newRoom()
		h.rooms[auctionID] = r
	}
	r.join(c)
}

func (h *Hub) Leave(auctionID int64, c *clientConn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[auctionID]
	if !ok {
		return
	}
	if r.leave(c) == 0 {
		delete(h.rooms, auctionID)
	}
}

// Size reports how many clients watch an auction.
func (h *Hub) Size(auctionID int64) int {
	if r := h.lookup(auctionID); r != nil {
		return r.size()
	}
	return 0
}

func (h *Hub) lookup(auctionID int64) *room {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rooms[auctionID]
}
