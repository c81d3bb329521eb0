// Package registry holds the in-memory room state shared by all live
// connections. It is a pure data structure: no network I/O, no timers.
package registry

import (
	"sync"

	"github.com/matchpoint-gg/matchpoint/internal/model"
)

// RoomSnapshot is one room's state as exposed to broadcast consumers
type RoomSnapshot struct {
	ID           model.RoomID
	Participants []model.Participant
}

// Registry maps room IDs to rooms. Every mutation takes the single
// mutex for the full read-modify-write, so two concurrent joins cannot
// both observe a one-participant room and overfill it.
type Registry struct {
	mu    sync.Mutex
	rooms map[model.RoomID]*model.Room
	order []model.RoomID
}

// New creates an empty Registry
func New() *Registry {
	return &Registry{
		rooms: make(map[model.RoomID]*model.Room),
	}
}

// Create inserts a new room containing only the given participant.
// Creating a room that already exists is a silent no-op: the existing
// room is left untouched and Create reports false.
func (r *Registry) Create(roomID model.RoomID, p model.Participant) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[roomID]; ok {
		return false
	}

	r.rooms[roomID] = &model.Room{
		ID:           roomID,
		Participants: []model.Participant{p},
	}
	r.order = append(r.order, roomID)
	return true
}

// Join appends the participant to an existing room and returns the
// updated participant list. Returns model.ErrRoomNotFound if the room
// does not exist and model.ErrRoomFull if it already has two
// participants; a failed join never mutates the room.
func (r *Registry) Join(roomID model.RoomID, p model.Participant) ([]model.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	if room.IsFull() {
		return nil, model.ErrRoomFull
	}

	room.Participants = append(room.Participants, p)
	return copyParticipants(room.Participants), nil
}

// Remove deletes any participant with the given connection ID. A room
// left empty is deleted outright rather than kept around. Removing an
// unknown connection is a no-op; Remove reports whether a room was
// affected. A connection belongs to at most one room, so at most one
// room changes per call.
func (r *Registry) Remove(connID model.ConnectionID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for roomID, room := range r.rooms {
		for i, p := range room.Participants {
			if p.ConnectionID != connID {
				continue
			}
			room.Participants = append(room.Participants[:i], room.Participants[i+1:]...)
			if len(room.Participants) == 0 {
				delete(r.rooms, roomID)
				r.dropFromOrder(roomID)
			}
			return true
		}
	}
	return false
}

// Participants returns the participant list of a room, or nil if the
// room does not exist
func (r *Registry) Participants(roomID model.RoomID) []model.Participant {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return nil
	}
	return copyParticipants(room.Participants)
}

// Connections returns the connection IDs subscribed to a room's
// broadcasts. Group membership is derived from registry state; there
// is no separate subscription table to drift out of sync.
func (r *Registry) Connections(roomID model.RoomID) []model.ConnectionID {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return nil
	}
	conns := make([]model.ConnectionID, 0, len(room.Participants))
	for _, p := range room.Participants {
		conns = append(conns, p.ConnectionID)
	}
	return conns
}

// Snapshot returns every room in insertion order, for lobby broadcast
func (r *Registry) Snapshot() []RoomSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make([]RoomSnapshot, 0, len(r.rooms))
	for _, roomID := range r.order {
		room, ok := r.rooms[roomID]
		if !ok {
			continue
		}
		snapshot = append(snapshot, RoomSnapshot{
			ID:           roomID,
			Participants: copyParticipants(room.Participants),
		})
	}
	return snapshot
}

func (r *Registry) dropFromOrder(roomID model.RoomID) {
	for i, id := range r.order {
		if id == roomID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

func copyParticipants(ps []model.Participant) []model.Participant {
	out := make([]model.Participant, len(ps))
	copy(out, ps)
	return out
}
