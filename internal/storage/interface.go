package storage

import (
	"context"

	"github.com/matchpoint-gg/matchpoint/internal/model"
)

// Storage defines the interface for data persistence.
//
// The settlement engine depends on CommitMatch applying every write in
// the commit as one atomic operation; a backend that cannot do that
// cannot back this interface.
type Storage interface {
	// Player operations
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.PlayerRecord, error)
	SavePlayer(ctx context.Context, id model.PlayerID, record *model.PlayerRecord) error
	ListPlayers(ctx context.Context) (map[model.PlayerID]*model.PlayerRecord, error)

	// Match operations
	GetMatch(ctx context.Context, id model.MatchID) (*model.MatchRecord, error)
	GetMatchStats(ctx context.Context, matchID model.MatchID) (map[model.PlayerID]*model.MatchStat, error)
	GetPlayerStat(ctx context.Context, matchID model.MatchID, playerID model.PlayerID) (*model.MatchStat, error)
	MatchesForPlayer(ctx context.Context, playerID model.PlayerID) ([]model.MatchID, error)

	// CommitMatch applies the full set of settlement writes atomically.
	// The match record's date is assigned by the store at commit time.
	CommitMatch(ctx context.Context, commit *model.MatchCommit) error
}
