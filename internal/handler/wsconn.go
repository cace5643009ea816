package handler

import (
	"fmt"
	"net"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait bounds a single frame write.
	writeWait = 10 * time.Second

	// pongWait is how long the read side waits for traffic (including
	// pongs) before giving up. Must exceed the core's ping interval.
	pongWait = 60 * time.Second

	// maxMessageSize caps one inbound frame in bytes.
	maxMessageSize = 8192
)

// wsConn adapts a gorilla WebSocket connection to the relay's text-frame
// stream. Gorilla makes every write error permanent for the connection, so
// write failures are wrapped as net.ErrClosed for the core to recognize.
type wsConn struct {
	conn *websocket.Conn
}

// newWSConn configures read limits and the pong-driven read deadline and
// wraps the connection.
func newWSConn(conn *websocket.Conn) *wsConn {
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	return &wsConn{conn: conn}
}

// ReadText blocks for the next text frame. Non-text frames are skipped.
func (c *wsConn) ReadText() (string, error) {
	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			return "", fmt.Errorf("websocket read: %w", err)
		}

		if msgType != websocket.TextMessage {
			continue
		}

		return string(data), nil
	}
}

// WriteText writes one text frame within the write deadline.
func (c *wsConn) WriteText(text string) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))

	if err := c.conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		return fmt.Errorf("websocket write: %v: %w", err, net.ErrClosed)
	}

	return nil
}

// Ping sends a WebSocket ping control frame.
func (c *wsConn) Ping() error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))

	if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
		return fmt.Errorf("websocket ping: %v: %w", err, net.ErrClosed)
	}

	return nil
}

// Close tears down the underlying connection.
func (c *wsConn) Close() error {
	return c.conn.Close()
}
