package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/matchpoint-gg/matchpoint/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong before the connection is
	// considered dead
	pongWait = 60 * time.Second

	// Ping interval; must be shorter than pongWait
	pingPeriod = 54 * time.Second

	// Maximum inbound message size
	maxMessageSize = 4096

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// Client is one live connection. The read pump translates inbound
// events into gateway dispatches; the write pump drains the send
// buffer and keeps the connection alive with pings.
type Client struct {
	id      model.ConnectionID
	gateway *Gateway
	conn    *websocket.Conn
	send    chan []byte

	closeOnce sync.Once
}

func newClient(gateway *Gateway, conn *websocket.Conn, id model.ConnectionID) *Client {
	return &Client{
		id:      id,
		gateway: gateway,
		conn:    conn,
		send:    make(chan []byte, sendBufferSize),
	}
}

// ID returns the server-assigned connection identifier
func (c *Client) ID() model.ConnectionID {
	return c.id
}

// closeSend closes the send channel exactly once
func (c *Client) closeSend() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// readPump reads inbound events until the connection drops, then runs
// disconnect cleanup. Cleanup runs exactly once per connection, whether
// the close was graceful or abrupt and whether or not the connection
// ever joined a room.
func (c *Client) readPump() {
	defer func() {
		c.gateway.disconnect(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.gateway.logger.Warn("websocket read error",
					slog.String("connection_id", string(c.id)),
					slog.Any("error", err))
			}
			return
		}
		if messageType == websocket.TextMessage {
			c.gateway.dispatch(c, message)
		}
	}
}

// writePump writes queued messages and periodic pings to the peer
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Gateway closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
