// Package transport is the websocket boundary: it upgrades connections,
// decodes envelope messages into room messages and fans room broadcasts
// out to connected clients. The simulation core never sees a socket.
package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/keeprush/arena/internal/model"
	"github.com/keeprush/arena/internal/room"
)

// Envelope is the wire frame: a message type plus a raw payload.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub tracks connected clients and bridges them to the room. It implements
// room.Sink; the room is attached after construction because each needs
// the other.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*client
	room    *room.Room
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[string]*client)}
}

// SetRoom attaches the room the hub feeds. Must be called before serving.
func (h *Hub) SetRoom(r *room.Room) {
	h.room = r
}

// HandleWS upgrades an HTTP request and runs the connection until it
// drops. The player name comes from the "name" query parameter.
func (h *Hub) HandleWS(w http.ResponseWriter, req *http.Request) {
	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	name := req.URL.Query().Get("name")
	if name == "" {
		name = "Player"
	}

	c := newClient(model.NewID(), name, conn)
	h.register(c)
	go c.writePump()

	h.room.PostJoin(c.playerID, c.name)
	c.readPump(h) // blocks until the connection drops

	h.unregister(c)
	h.room.PostLeave(c.playerID)
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.playerID] = c
	slog.Info("client connected", "player", c.playerID, "name", c.name)
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c.playerID] == c {
		delete(h.clients, c.playerID)
	}
	c.close()
	slog.Info("client disconnected", "player", c.playerID)
}

// Broadcast sends an enveloped payload to every connected client.
// Implements room.Sink.
func (h *Hub) Broadcast(msgType string, data any) {
	frame, err := encode(msgType, data)
	if err != nil {
		slog.Error("broadcast encode failed", "type", msgType, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		c.enqueue(frame)
	}
}

// Send delivers an enveloped payload to one client. Implements room.Sink.
func (h *Hub) Send(playerID, msgType string, data any) {
	frame, err := encode(msgType, data)
	if err != nil {
		slog.Error("send encode failed", "type", msgType, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[playerID]; ok {
		c.enqueue(frame)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func encode(msgType string, data any) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: msgType, Data: payload})
}
