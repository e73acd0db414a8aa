package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// clientConn is one feed watcher. gorilla allows a single concurrent writer,
// so data frames go through mu; control frames are exempt.
//
// A held connection queues broadcasts instead of writing them; release sends
// the first frame and then the queue, so nothing published while the join
// snapshot is read can overtake or miss it.
type clientConn struct {
	rawConn   *websocket.Conn
	mu        sync.Mutex
	closeOnce sync.Once

	holding bool
	held    [][]byte
}

func newClientConn(raw *websocket.Conn) *clientConn {
	return &clientConn{rawConn: raw}
}

func (c *clientConn) hold() {
	c.mu.Lock()
	c.holding = true
	c.mu.Unlock()
}

// release writes first, flushes the queued frames and ends the hold.
func (c *clientConn) release(first any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	held := c.held
	c.holding, c.held = false, nil

	_ = c.rawConn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.rawConn.WriteJSON(first); err != nil {
		return err
	}
	for _, msg := range held {
		_ = c.rawConn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.rawConn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return err
		}
	}
	return nil
}

func (c *clientConn) write(mt int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.holding {
		c.held = append(c.held, data)
		return nil
	}
	_ = c.rawConn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.rawConn.WriteMessage(mt, data)
}

func (c *clientConn) writeJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_ = c.rawConn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.rawConn.WriteJSON(v)
}

func (c *clientConn) ping() error {
	return c.rawConn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (c *clientConn) close() {
	c.closeOnce.Do(func() { _ = c.rawConn.Close() })
}
