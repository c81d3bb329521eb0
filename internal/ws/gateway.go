// Package ws is the connection gateway: it owns one websocket per
// client, translates inbound events into room registry operations, and
// fans registry state changes back out as broadcasts.
package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/matchpoint-gg/matchpoint/internal/model"
	"github.com/matchpoint-gg/matchpoint/internal/registry"
)

// Gateway accepts websocket connections and dispatches their events
// against the shared room registry. Room broadcast groups are derived
// from registry state on every send; the gateway keeps no parallel
// membership table that could drift.
type Gateway struct {
	registry *registry.Registry
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[model.ConnectionID]*Client
}

// NewGateway creates a gateway over the given registry
func NewGateway(reg *registry.Registry, logger *slog.Logger) *Gateway {
	return &Gateway{
		registry: reg,
		logger:   logger.With(slog.String("component", "gateway")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// Room access control is out of scope; any origin may connect
				return true
			},
		},
		clients: make(map[model.ConnectionID]*Client),
	}
}

// ServeWS upgrades an HTTP request to a websocket connection and
// registers it. The new connection receives the current lobby snapshot
// before any of its own events are processed.
func (g *Gateway) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := newClient(g, conn, model.ConnectionID(uuid.NewString()))

	g.mu.Lock()
	g.clients[client.id] = client
	g.mu.Unlock()

	g.logger.Info("player connected", slog.String("connection_id", string(client.id)))

	go client.writePump()

	// Snapshot goes to this connection only
	g.sendTo(client, NewRoomListEvent(g.registry.Snapshot()))

	client.readPump()
}

// ClientCount returns the number of live connections
func (g *Gateway) ClientCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.clients)
}

// dispatch routes one inbound event. Malformed payloads are dropped
// and logged; they never mutate state or produce a broadcast.
func (g *Gateway) dispatch(c *Client, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		g.logger.Warn("dropping malformed event",
			slog.String("connection_id", string(c.id)),
			slog.Any("error", err))
		return
	}

	switch env.Type {
	case EventCreateRoom:
		g.handleCreateRoom(c, env)
	case EventJoinRoom:
		g.handleJoinRoom(c, env)
	case EventSendMessage:
		g.handleSendMessage(c, env)
	default:
		g.logger.Warn("dropping unknown event",
			slog.String("connection_id", string(c.id)),
			slog.String("event_type", env.Type))
	}
}

func (g *Gateway) handleCreateRoom(c *Client, env Envelope) {
	if env.RoomID == "" || env.PlayerID == "" || env.PlayerName == "" {
		g.logger.Warn("dropping invalid create_room event",
			slog.String("connection_id", string(c.id)))
		return
	}

	created := g.registry.Create(model.RoomID(env.RoomID), model.Participant{
		ConnectionID: c.id,
		PlayerID:     model.PlayerID(env.PlayerID),
		PlayerName:   env.PlayerName,
	})
	if !created {
		// Existing room is left untouched, and nobody is notified
		return
	}

	g.logger.Info("room created",
		slog.String("room_id", env.RoomID),
		slog.String("player_name", env.PlayerName))

	g.broadcastAll(NewRoomListEvent(g.registry.Snapshot()))
}

func (g *Gateway) handleJoinRoom(c *Client, env Envelope) {
	if env.RoomID == "" || env.PlayerID == "" || env.PlayerName == "" {
		g.logger.Warn("dropping invalid join_room event",
			slog.String("connection_id", string(c.id)))
		return
	}

	roomID := model.RoomID(env.RoomID)
	players, err := g.registry.Join(roomID, model.Participant{
		ConnectionID: c.id,
		PlayerID:     model.PlayerID(env.PlayerID),
		PlayerName:   env.PlayerName,
	})

	switch err {
	case nil:
	case model.ErrRoomNotFound:
		g.logger.Info("join rejected: room not found", slog.String("room_id", env.RoomID))
		g.sendTo(c, RoomNotFoundEvent{Type: EventRoomNotFound, RoomID: roomID})
		return
	case model.ErrRoomFull:
		g.logger.Info("join rejected: room full", slog.String("room_id", env.RoomID))
		g.sendTo(c, RoomFullEvent{Type: EventRoomFull, RoomID: roomID})
		return
	default:
		g.logger.Error("join failed", slog.String("room_id", env.RoomID), slog.Any("error", err))
		return
	}

	g.logger.Info("player joined room",
		slog.String("room_id", env.RoomID),
		slog.String("player_name", env.PlayerName))

	g.broadcastRoom(roomID, PlayerJoinedEvent{
		Type:    EventPlayerJoined,
		RoomID:  roomID,
		Players: players,
	})
	g.broadcastAll(NewRoomListEvent(g.registry.Snapshot()))
}

func (g *Gateway) handleSendMessage(c *Client, env Envelope) {
	if env.RoomID == "" || env.PlayerID == "" || env.PlayerName == "" || env.Message == "" {
		g.logger.Warn("dropping invalid send_message event",
			slog.String("connection_id", string(c.id)))
		return
	}

	// Chat stays scoped to the room's group, sender included
	g.broadcastRoom(model.RoomID(env.RoomID), ReceiveMessageEvent{
		Type:       EventReceiveMessage,
		RoomID:     model.RoomID(env.RoomID),
		PlayerID:   model.PlayerID(env.PlayerID),
		PlayerName: env.PlayerName,
		Message:    env.Message,
	})
}

// disconnect runs cleanup for a dropped connection: the client leaves
// the table, its registry participation is reclaimed, and remaining
// connections get a fresh snapshot if a room changed. Safe to call for
// connections that never joined a room.
func (g *Gateway) disconnect(c *Client) {
	g.mu.Lock()
	current, ok := g.clients[c.id]
	if ok && current == c {
		delete(g.clients, c.id)
		// Closed under the write lock so no broadcast can race the close
		c.closeSend()
	} else {
		ok = false
	}
	g.mu.Unlock()

	if !ok {
		return
	}

	roomAffected := g.registry.Remove(c.id)

	g.logger.Info("player disconnected",
		slog.String("connection_id", string(c.id)),
		slog.Bool("room_affected", roomAffected))

	if roomAffected {
		g.broadcastAll(NewRoomListEvent(g.registry.Snapshot()))
	}
}

// sendTo delivers an event to a single connection
func (g *Gateway) sendTo(c *Client, event any) {
	message, err := json.Marshal(event)
	if err != nil {
		g.logger.Error("failed to encode event", slog.Any("error", err))
		return
	}

	g.mu.RLock()
	if current, ok := g.clients[c.id]; ok && current == c {
		g.deliver(c, message)
	}
	g.mu.RUnlock()
}

// broadcastAll delivers an event to every live connection
func (g *Gateway) broadcastAll(event any) {
	message, err := json.Marshal(event)
	if err != nil {
		g.logger.Error("failed to encode event", slog.Any("error", err))
		return
	}

	g.mu.RLock()
	for _, client := range g.clients {
		g.deliver(client, message)
	}
	g.mu.RUnlock()
}

// broadcastRoom delivers an event to every connection the registry
// currently places in the room. An unknown room has no group, so the
// broadcast is a no-op.
func (g *Gateway) broadcastRoom(roomID model.RoomID, event any) {
	message, err := json.Marshal(event)
	if err != nil {
		g.logger.Error("failed to encode event", slog.Any("error", err))
		return
	}

	connIDs := g.registry.Connections(roomID)

	g.mu.RLock()
	for _, connID := range connIDs {
		if client, ok := g.clients[connID]; ok {
			g.deliver(client, message)
		}
	}
	g.mu.RUnlock()
}

// deliver queues a message without blocking; a client that cannot keep
// up loses messages rather than stalling the broadcast path. Callers
// must hold g.mu so delivery cannot race the channel close in
// disconnect.
func (g *Gateway) deliver(c *Client, message []byte) {
	select {
	case c.send <- message:
	default:
		g.logger.Warn("dropping message: client buffer full",
			slog.String("connection_id", string(c.id)))
	}
}
