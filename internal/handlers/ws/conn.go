package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// conn adapts a gorilla websocket to a registry connection.
// Writes are serialized since gorilla allows one concurrent writer.
type conn struct {
	id           string
	ws           *websocket.Conn
	writeTimeout time.Duration

	mu sync.Mutex
}

func newConn(id string, ws *websocket.Conn, writeTimeout time.Duration) *conn {
	return &conn{
		id:           id,
		ws:           ws,
		writeTimeout: writeTimeout,
	}
}

// ID returns the connection id
func (c *conn) ID() string {
	return c.id
}

// Send writes one text frame
func (c *conn) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, payload)
}

// Close closes the underlying socket, which also ends the read loop
func (c *conn) Close() error {
	return c.ws.Close()
}
