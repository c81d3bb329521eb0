package model

// PlayerID uniquely identifies a player across the system
type PlayerID string

// DefaultRating is the rating assumed for a player with no stored record.
// Reading a missing player yields this default; it is never written back
// on its own.
const DefaultRating = 1200

// PlayerRecord is a player's persistent skill and counter state.
// Only the settlement engine writes these fields.
type PlayerRecord struct {
	Username     string `json:"username"`
	EloRating    int    `json:"eloRating"`
	Wins         int    `json:"wins"`
	TotalMatches int    `json:"total_matches"`
}

// NewDefaultPlayerRecord returns the record assumed for an unknown player
func NewDefaultPlayerRecord() *PlayerRecord {
	return &PlayerRecord{
		EloRating:    DefaultRating,
		Wins:         0,
		TotalMatches: 0,
	}
}
