// Package playertest provides an in-memory player.Connection for tests.
package playertest

import (
	"encoding/json"
	"io"
	"net"
	"sync"

	"github.com/gorilla/websocket"
)

// Conn is an in-memory player.Connection. Messages pushed with Push are
// returned by ReadMessage; messages written by the server are recorded.
type Conn struct {
	in     chan []byte
	closed chan struct{}
	once   sync.Once

	mu      sync.Mutex
	written [][]byte
}

func NewConn() *Conn {
	return &Conn{
		in:     make(chan []byte, 16),
		closed: make(chan struct{}),
	}
}

// Push queues a client message.
func (c *Conn) Push(v any) {
	data, ok := v.([]byte)
	if !ok {
		var err error
		if data, err = json.Marshal(v); err != nil {
			panic(err)
		}
	}
	c.in <- data
}

// Hangup makes the next read fail as if the client went away.
func (c *Conn) Hangup() {
	close(c.in)
}

func (c *Conn) ReadMessage() (int, []byte, error) {
	select {
	case msg, ok := <-c.in:
		if !ok {
			return 0, nil, io.EOF
		}
		return websocket.TextMessage, msg, nil
	case <-c.closed:
		return 0, nil, net.ErrClosed
	}
}

func (c *Conn) WriteMessage(messageType int, data []byte) error {
	select {
	case <-c.closed:
		return net.ErrClosed
	default:
	}
	if messageType != websocket.TextMessage {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.written = append(c.written, data)
	return nil
}

func (c *Conn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

// Closed reports whether Close was called.
func (c *Conn) Closed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

// Written returns a copy of the text messages written so far.
func (c *Conn) Written() [][]byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]byte, len(c.written))
	copy(out, c.written)
	return out
}
