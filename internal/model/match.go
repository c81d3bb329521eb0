package model

import "time"

// MatchID uniquely identifies a settled match
type MatchID string

// MatchSubmission is one player's side of a finished match as reported
// by the caller
type MatchSubmission struct {
	PlayerID PlayerID
	Goals    int
	Passes   int
	Shots    int
	IsWinner bool
}

// MatchStat is the persisted per-player stat line for one match
type MatchStat struct {
	Goals    int  `json:"goals"`
	Passes   int  `json:"passes"`
	Shots    int  `json:"shots"`
	IsWinner bool `json:"isWinner"`
}

// MatchRecord is the persisted match itself. Date is assigned by the
// store at commit time, not by the caller.
type MatchRecord struct {
	Date time.Time `json:"date"`
}

// PlayerUpdate is the post-settlement state of one player
type PlayerUpdate struct {
	PlayerID PlayerID
	Record   PlayerRecord
}

// StatUpdate is one player's stat line keyed under a match
type StatUpdate struct {
	PlayerID PlayerID
	Stat     MatchStat
}

// MatchCommit is the full set of writes produced by settling one match.
// The store must apply all of it atomically: both player records, the
// match record, and both stat lines land together or not at all.
type MatchCommit struct {
	MatchID MatchID
	Players [2]PlayerUpdate
	Stats   [2]StatUpdate
}
