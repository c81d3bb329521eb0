// Package stats serves read-only queries over settled match data:
// per-player aggregates, per-match stat lines, recent matches, and
// leaderboard rankings. It never writes.
package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/matchpoint-gg/matchpoint/internal/model"
	"github.com/matchpoint-gg/matchpoint/internal/storage"
)

// PlayerStats is a player's profile with lifetime aggregates
type PlayerStats struct {
	Username     string
	EloRating    int
	Wins         int
	TotalMatches int
	TotalGoals   int
	TotalPasses  int
	TotalShots   int
}

// RecentMatch is one entry in a player's match history
type RecentMatch struct {
	MatchID      model.MatchID
	OpponentName string
	Date         time.Time
	IsWinner     bool
}

// RankingEntry is one row of a leaderboard
type RankingEntry struct {
	PlayerID     model.PlayerID
	Username     string
	EloRating    int
	Wins         int
	TotalMatches int
	WinRate      string

	// numeric win rate kept for sorting; the string form is the wire format
	rate float64
}

// RankingOrder selects the leaderboard sort key
type RankingOrder string

const (
	RankByElo     RankingOrder = "elo"
	RankByWins    RankingOrder = "wins"
	RankByWinrate RankingOrder = "winrate"
)

// Service answers stat queries from storage
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a stats service
func New(store storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		logger:  logger.With(slog.String("component", "stats")),
	}
}

// PlayerStats returns a player's profile with goals/passes/shots summed
// over every stat line they appear in
func (s *Service) PlayerStats(ctx context.Context, playerID model.PlayerID) (*PlayerStats, error) {
	record, err := s.storage.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	matchIDs, err := s.storage.MatchesForPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	out := &PlayerStats{
		Username:     record.Username,
		EloRating:    record.EloRating,
		Wins:         record.Wins,
		TotalMatches: len(matchIDs),
	}

	for _, matchID := range matchIDs {
		stat, err := s.storage.GetPlayerStat(ctx, matchID, playerID)
		if err != nil {
			if errors.Is(err, model.ErrStatNotFound) {
				continue
			}
			return nil, err
		}
		out.TotalGoals += stat.Goals
		out.TotalPasses += stat.Passes
		out.TotalShots += stat.Shots
	}

	return out, nil
}

// MatchStatLine returns one player's stat line for one match
func (s *Service) MatchStatLine(ctx context.Context, playerID model.PlayerID, matchID model.MatchID) (*model.MatchStat, error) {
	return s.storage.GetPlayerStat(ctx, matchID, playerID)
}

// RecentMatches returns the matches a player has appeared in, most
// recent first. Opponent names come from the opponent's stored record;
// an opponent with no record is reported as unknown.
func (s *Service) RecentMatches(ctx context.Context, playerID model.PlayerID) ([]RecentMatch, error) {
	matchIDs, err := s.storage.MatchesForPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if len(matchIDs) == 0 {
		return nil, model.ErrStatNotFound
	}

	matches := make([]RecentMatch, 0, len(matchIDs))
	for _, matchID := range matchIDs {
		record, err := s.storage.GetMatch(ctx, matchID)
		if err != nil {
			if errors.Is(err, model.ErrMatchNotFound) {
				continue
			}
			return nil, err
		}

		statLines, err := s.storage.GetMatchStats(ctx, matchID)
		if err != nil {
			if errors.Is(err, model.ErrStatNotFound) {
				continue
			}
			return nil, err
		}

		own, ok := statLines[playerID]
		if !ok {
			continue
		}

		matches = append(matches, RecentMatch{
			MatchID:      matchID,
			OpponentName: s.opponentName(ctx, statLines, playerID),
			Date:         record.Date,
			IsWinner:     own.IsWinner,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Date.After(matches[j].Date)
	})

	return matches, nil
}

// Rankings returns every player ordered by the requested key,
// descending. Wins and match counts are recomputed from stat lines so
// the leaderboard reflects exactly the recorded matches.
func (s *Service) Rankings(ctx context.Context, order RankingOrder) ([]RankingEntry, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]RankingEntry, 0, len(players))
	for playerID, record := range players {
		matchIDs, err := s.storage.MatchesForPlayer(ctx, playerID)
		if err != nil {
			return nil, err
		}

		wins := 0
		total := 0
		for _, matchID := range matchIDs {
			stat, err := s.storage.GetPlayerStat(ctx, matchID, playerID)
			if err != nil {
				if errors.Is(err, model.ErrStatNotFound) {
					continue
				}
				return nil, err
			}
			total++
			if stat.IsWinner {
				wins++
			}
		}

		entries = append(entries, RankingEntry{
			PlayerID:     playerID,
			Username:     record.Username,
			EloRating:    record.EloRating,
			Wins:         wins,
			TotalMatches: total,
			WinRate:      winRate(wins, total),
			rate:         rate(wins, total),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		switch order {
		case RankByWins:
			return entries[i].Wins > entries[j].Wins
		case RankByWinrate:
			return entries[i].rate > entries[j].rate
		default:
			return entries[i].EloRating > entries[j].EloRating
		}
	})

	return entries, nil
}

func (s *Service) opponentName(ctx context.Context, statLines map[model.PlayerID]*model.MatchStat, playerID model.PlayerID) string {
	for pid := range statLines {
		if pid == playerID {
			continue
		}
		record, err := s.storage.GetPlayer(ctx, pid)
		if err != nil || record.Username == "" {
			return "Unknown Opponent"
		}
		return record.Username
	}
	return "Unknown Opponent"
}

// winRate formats wins/total as a percentage with two decimals,
// matching the wire format clients already parse
func winRate(wins, total int) string {
	return fmt.Sprintf("%.2f", rate(wins, total))
}

func rate(wins, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(wins) / float64(total) * 100
}
