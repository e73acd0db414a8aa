package ws

import (
	"sync"

	"github.com/gorilla/websocket"
)

// room is the set of feed watchers of one auction.
type room struct {
	mu       sync.RWMutex
	watchers map[*clientConn]struct{}
}

func newRoom() *room { return &room{watchers: map[*clientConn]struct{}{}} }

func (r *room) join(c *clientConn) {
	r.mu.Lock()
	r.watchers[c] = struct{}{}
	r.mu.Unlock()
}

// leave drops c and reports how many watchers remain.
func (r *room) leave(c *clientConn) int {
	r.mu.Lock()
	delete(r.watchers, c)
	left := len(r.watchers)
	r.mu.Unlock()

	c.close()
	return left
}

func (r *room) size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.watchers)
}

// broadcast writes msg to every watcher and returns the ones whose write
// failed. Writes run outside the lock.
func (r *room) broadcast(msg []byte) []*clientConn {
	r.mu.RLock()
	targets := make([]*clientConn, 0, len(r.watchers))
	for c := range r.watchers {
		targets = append(targets, c)
	}
	r.mu.RUnlock()

	var dead []*clientConn
	for _, c := range targets {
		if err := c.write(websocket.TextMessage, msg); err != nil {
			dead = append(dead, c)
		}
	}
	return dead
}
