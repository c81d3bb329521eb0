package ws

import (
	"encoding/json"

	"github.com/matchpoint-gg/matchpoint/internal/model"
	"github.com/matchpoint-gg/matchpoint/internal/registry"
)

// Inbound event types
const (
	EventCreateRoom  = "create_room"
	EventJoinRoom    = "join_room"
	EventSendMessage = "send_message"
)

// Outbound event types
const (
	EventRoomList       = "room_list"
	EventPlayerJoined   = "player_joined"
	EventReceiveMessage = "receive_message"
	EventRoomFull       = "room_full"
	EventRoomNotFound   = "room_not_found"
)

// Envelope is the inbound wire format. Every client event carries a
// type tag plus the fields that event needs; unused fields are empty.
type Envelope struct {
	Type       string `json:"type"`
	RoomID     string `json:"roomId"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Message    string `json:"message"`
}

// RoomEntry is one room in a lobby snapshot. On the wire it is a
// two-element [roomId, {players: [...]}] pair, the shape lobby clients
// already consume.
type RoomEntry struct {
	ID      model.RoomID
	Players []model.Participant
}

type roomEntryBody struct {
	Players []model.Participant `json:"players"`
}

// MarshalJSON encodes the entry as ["roomId", {"players": [...]}]
func (e RoomEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{string(e.ID), roomEntryBody{Players: e.Players}})
}

// UnmarshalJSON decodes the ["roomId", {"players": [...]}] pair form
func (e *RoomEntry) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) > 0 {
		var id string
		if err := json.Unmarshal(parts[0], &id); err != nil {
			return err
		}
		e.ID = model.RoomID(id)
	}
	if len(parts) > 1 {
		var body roomEntryBody
		if err := json.Unmarshal(parts[1], &body); err != nil {
			return err
		}
		e.Players = body.Players
	}
	return nil
}

// RoomListEvent is the full registry snapshot broadcast for lobby display
type RoomListEvent struct {
	Type  string      `json:"type"`
	Rooms []RoomEntry `json:"rooms"`
}

// NewRoomListEvent builds a room_list event from a registry snapshot
func NewRoomListEvent(snapshot []registry.RoomSnapshot) RoomListEvent {
	rooms := make([]RoomEntry, len(snapshot))
	for i, room := range snapshot {
		rooms[i] = RoomEntry{ID: room.ID, Players: room.Participants}
	}
	return RoomListEvent{Type: EventRoomList, Rooms: rooms}
}

// PlayerJoinedEvent tells a room's group its updated participant list
type PlayerJoinedEvent struct {
	Type    string              `json:"type"`
	RoomID  model.RoomID        `json:"roomId"`
	Players []model.Participant `json:"players"`
}

// ReceiveMessageEvent carries one chat message to a room's group
type ReceiveMessageEvent struct {
	Type       string         `json:"type"`
	RoomID     model.RoomID   `json:"roomId"`
	PlayerID   model.PlayerID `json:"playerId"`
	PlayerName string         `json:"playerName"`
	Message    string         `json:"message"`
}

// RoomFullEvent rejects a join against a room at capacity
type RoomFullEvent struct {
	Type   string       `json:"type"`
	RoomID model.RoomID `json:"roomId"`
}

// RoomNotFoundEvent rejects a join against an unknown room
type RoomNotFoundEvent struct {
	Type   string       `json:"type"`
	RoomID model.RoomID `json:"roomId"`
}
