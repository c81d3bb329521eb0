package memory

import (
	"context"
	"sync"

	"github.com/matchpoint-gg/matchpoint/internal/dependencies/clock"
	"github.com/matchpoint-gg/matchpoint/internal/model"
	"github.com/matchpoint-gg/matchpoint/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu    sync.RWMutex
	clock clock.Clock

	players       map[model.PlayerID]*model.PlayerRecord
	matches       map[model.MatchID]*model.MatchRecord
	stats         map[statKey]*model.MatchStat
	matchPlayers  map[model.MatchID][]model.PlayerID
	playerMatches map[model.PlayerID][]model.MatchID
}

type statKey struct {
	matchID  model.MatchID
	playerID model.PlayerID
}

// New creates a new in-memory storage instance
func New(clk clock.Clock) *Storage {
	return &Storage{
		clock:         clk,
		players:       make(map[model.PlayerID]*model.PlayerRecord),
		matches:       make(map[model.MatchID]*model.MatchRecord),
		stats:         make(map[statKey]*model.MatchStat),
		matchPlayers:  make(map[model.MatchID][]model.PlayerID),
		playerMatches: make(map[model.PlayerID][]model.MatchID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.PlayerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	cp := *record
	return &cp, nil
}

func (s *Storage) SavePlayer(ctx context.Context, id model.PlayerID, record *model.PlayerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *record
	s.players[id] = &cp
	return nil
}

func (s *Storage) ListPlayers(ctx context.Context) (map[model.PlayerID]*model.PlayerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[model.PlayerID]*model.PlayerRecord, len(s.players))
	for id, record := range s.players {
		cp := *record
		out[id] = &cp
	}
	return out, nil
}

// Match operations

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.matches[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	cp := *record
	return &cp, nil
}

func (s *Storage) GetMatchStats(ctx context.Context, matchID model.MatchID) (map[model.PlayerID]*model.MatchStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerIDs, ok := s.matchPlayers[matchID]
	if !ok {
		return nil, model.ErrStatNotFound
	}
	out := make(map[model.PlayerID]*model.MatchStat, len(playerIDs))
	for _, pid := range playerIDs {
		if stat, ok := s.stats[statKey{matchID: matchID, playerID: pid}]; ok {
			cp := *stat
			out[pid] = &cp
		}
	}
	return out, nil
}

func (s *Storage) GetPlayerStat(ctx context.Context, matchID model.MatchID, playerID model.PlayerID) (*model.MatchStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stat, ok := s.stats[statKey{matchID: matchID, playerID: playerID}]
	if !ok {
		return nil, model.ErrStatNotFound
	}
	cp := *stat
	return &cp, nil
}

func (s *Storage) MatchesForPlayer(ctx context.Context, playerID model.PlayerID) ([]model.MatchID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.playerMatches[playerID]
	out := make([]model.MatchID, len(ids))
	copy(out, ids)
	return out, nil
}

// CommitMatch applies all settlement writes under one lock acquisition,
// so a reader never observes a half-committed match.
func (s *Storage) CommitMatch(ctx context.Context, commit *model.MatchCommit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.matches[commit.MatchID] = &model.MatchRecord{Date: s.clock.Now()}

	for _, pu := range commit.Players {
		cp := pu.Record
		s.players[pu.PlayerID] = &cp
	}

	for _, su := range commit.Stats {
		cp := su.Stat
		s.stats[statKey{matchID: commit.MatchID, playerID: su.PlayerID}] = &cp
		s.matchPlayers[commit.MatchID] = append(s.matchPlayers[commit.MatchID], su.PlayerID)
		s.playerMatches[su.PlayerID] = append(s.playerMatches[su.PlayerID], commit.MatchID)
	}

	return nil
}
