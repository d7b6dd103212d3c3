package transport

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/keeprush/arena/internal/room"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// sendBuffer is how many outbound frames a slow client may lag before
	// frames are dropped. Snapshots are full state, so drops are harmless.
	sendBuffer = 32

	maxMessageSize = 4096
)

// client is one websocket connection. The read pump runs on the caller's
// goroutine, the write pump on its own; the send channel is the only link.
type client struct {
	playerID string
	name     string
	conn     *websocket.Conn
	send     chan []byte
	done     chan struct{}
}

func newClient(playerID, name string, conn *websocket.Conn) *client {
	return &client{
		playerID: playerID,
		name:     name,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		done:     make(chan struct{}),
	}
}

// enqueue hands a frame to the write pump without ever blocking the
// caller; a full buffer drops the frame.
func (c *client) enqueue(frame []byte) {
	select {
	case c.send <- frame:
	default:
	}
}

func (c *client) close() {
	select {
	case <-c.done:
	default:
		close(c.done)
	}
}

// readPump decodes envelopes into room messages until the connection
// drops. Malformed frames are skipped, not fatal.
func (c *client) readPump(h *Hub) {
	defer c.conn.Close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("websocket read error", "player", c.playerID, "error", err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			slog.Warn("malformed envelope", "player", c.playerID, "error", err)
			continue
		}

		var m room.Message
		if len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, &m); err != nil {
				slog.Warn("malformed payload", "player", c.playerID, "type", env.Type, "error", err)
				continue
			}
		}
		m.Name = env.Type
		m.PlayerID = c.playerID
		h.room.PostMessage(m)
	}
}

// writePump flushes the send channel and keeps the connection alive with
// pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case frame := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
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
