package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/matchpoint-gg/matchpoint/internal/dependencies/mocks"
	"github.com/matchpoint-gg/matchpoint/internal/model"
)

type StorageSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	s.storage = New(s.clock)
	s.ctx = context.Background()
}

func (s *StorageSuite) commit(matchID model.MatchID, p1, p2 model.PlayerID) {
	commit := &model.MatchCommit{
		MatchID: matchID,
		Players: [2]model.PlayerUpdate{
			{PlayerID: p1, Record: model.PlayerRecord{Username: "Alice", EloRating: 1216, Wins: 1, TotalMatches: 1}},
			{PlayerID: p2, Record: model.PlayerRecord{Username: "Bob", EloRating: 1184, Wins: 0, TotalMatches: 1}},
		},
		Stats: [2]model.StatUpdate{
			{PlayerID: p1, Stat: model.MatchStat{Goals: 3, Passes: 10, Shots: 5, IsWinner: true}},
			{PlayerID: p2, Stat: model.MatchStat{Goals: 1, Passes: 8, Shots: 4, IsWinner: false}},
		},
	}
	s.Require().NoError(s.storage.CommitMatch(s.ctx, commit))
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	record := &model.PlayerRecord{Username: "Alice", EloRating: 1300, Wins: 4, TotalMatches: 7}

	err := s.storage.SavePlayer(s.ctx, "player-1", record)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(record, retrieved)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGetPlayerReturnsCopy() {
	_ = s.storage.SavePlayer(s.ctx, "player-1", &model.PlayerRecord{Username: "Alice"})

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	retrieved.Username = "Mallory"

	again, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal("Alice", again.Username)
}

func (s *StorageSuite) TestListPlayers() {
	_ = s.storage.SavePlayer(s.ctx, "player-1", &model.PlayerRecord{Username: "Alice"})
	_ = s.storage.SavePlayer(s.ctx, "player-2", &model.PlayerRecord{Username: "Bob"})

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(players, 2)
	s.Equal("Alice", players["player-1"].Username)
	s.Equal("Bob", players["player-2"].Username)
}

func (s *StorageSuite) TestListPlayersEmpty() {
	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Empty(players)
}

// Match tests

func (s *StorageSuite) TestCommitMatchWritesEverything() {
	s.commit("match-1", "player-1", "player-2")

	match, err := s.storage.GetMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	s.Equal(s.clock.CurrentTime, match.Date)

	p1, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(1216, p1.EloRating)

	stat, err := s.storage.GetPlayerStat(s.ctx, "match-1", "player-1")
	s.Require().NoError(err)
	s.Equal(3, stat.Goals)
	s.True(stat.IsWinner)

	matches, err := s.storage.MatchesForPlayer(s.ctx, "player-2")
	s.Require().NoError(err)
	s.Equal([]model.MatchID{"match-1"}, matches)
}

func (s *StorageSuite) TestCommitMatchDateFromClock() {
	s.commit("match-1", "player-1", "player-2")
	s.clock.Advance(time.Hour)
	s.commit("match-2", "player-1", "player-2")

	first, err := s.storage.GetMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	second, err := s.storage.GetMatch(s.ctx, "match-2")
	s.Require().NoError(err)
	s.Equal(time.Hour, second.Date.Sub(first.Date))
}

func (s *StorageSuite) TestGetMatchNotFound() {
	_, err := s.storage.GetMatch(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *StorageSuite) TestGetMatchStats() {
	s.commit("match-1", "player-1", "player-2")

	statLines, err := s.storage.GetMatchStats(s.ctx, "match-1")
	s.Require().NoError(err)
	s.Len(statLines, 2)
	s.True(statLines["player-1"].IsWinner)
	s.False(statLines["player-2"].IsWinner)
}

func (s *StorageSuite) TestGetMatchStatsNotFound() {
	_, err := s.storage.GetMatchStats(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrStatNotFound)
}

func (s *StorageSuite) TestGetPlayerStatNotFound() {
	s.commit("match-1", "player-1", "player-2")

	_, err := s.storage.GetPlayerStat(s.ctx, "match-1", "player-3")
	s.ErrorIs(err, model.ErrStatNotFound)
}

func (s *StorageSuite) TestMatchesForPlayerAccumulates() {
	s.commit("match-1", "player-1", "player-2")
	s.commit("match-2", "player-1", "player-3")

	matches, err := s.storage.MatchesForPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal([]model.MatchID{"match-1", "match-2"}, matches)
}

func (s *StorageSuite) TestMatchesForPlayerUnknown() {
	matches, err := s.storage.MatchesForPlayer(s.ctx, "nonexistent")
	s.Require().NoError(err)
	s.Empty(matches)
}
