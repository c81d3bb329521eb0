package model

// RoomID is the caller-supplied identifier of a room
type RoomID string

// ConnectionID is the server-assigned identifier of one live connection
type ConnectionID string

// RoomCapacity is the maximum number of participants in a room
const RoomCapacity = 2

// Participant is one connection's membership record inside a room
type Participant struct {
	ConnectionID ConnectionID `json:"-"`
	PlayerID     PlayerID     `json:"playerId"`
	PlayerName   string       `json:"playerName"`
}

// Room pairs up to two participants for chat and match play.
// It lives only in gateway process memory and is never persisted.
type Room struct {
	ID           RoomID
	Participants []Participant
}

// IsFull reports whether the room is at capacity
func (r *Room) IsFull() bool {
	return len(r.Participants) >= RoomCapacity
}

// HasConnection reports whether the given connection is a participant
func (r *Room) HasConnection(connID ConnectionID) bool {
	for _, p := range r.Participants {
		if p.ConnectionID == connID {
			return true
		}
	}
	return false
}
