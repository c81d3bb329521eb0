package response

import (
	"time"

	"github.com/matchpoint-gg/matchpoint/internal/model"
	"github.com/matchpoint-gg/matchpoint/internal/services/settlement"
	"github.com/matchpoint-gg/matchpoint/internal/services/stats"
)

// SubmitMatch is the response for a settled match
type SubmitMatch struct {
	Success          bool   `json:"success"`
	MatchID          string `json:"matchId"`
	Player1NewRating int    `json:"player1NewRating"`
	Player2NewRating int    `json:"player2NewRating"`
}

// SubmitMatchFromResult converts a settlement result
func SubmitMatchFromResult(r *settlement.Result) SubmitMatch {
	return SubmitMatch{
		Success:          true,
		MatchID:          string(r.MatchID),
		Player1NewRating: r.Player1NewRating,
		Player2NewRating: r.Player2NewRating,
	}
}

// PlayerStats is a player profile with lifetime aggregates
type PlayerStats struct {
	Username     string `json:"username"`
	EloRating    int    `json:"eloRating"`
	Wins         int    `json:"wins"`
	TotalMatches int    `json:"total_matches"`
	TotalGoals   int    `json:"totalGoals"`
	TotalPasses  int    `json:"totalPasses"`
	TotalShots   int    `json:"totalShots"`
}

// PlayerStatsFromModel converts stats.PlayerStats
func PlayerStatsFromModel(s *stats.PlayerStats) PlayerStats {
	return PlayerStats{
		Username:     s.Username,
		EloRating:    s.EloRating,
		Wins:         s.Wins,
		TotalMatches: s.TotalMatches,
		TotalGoals:   s.TotalGoals,
		TotalPasses:  s.TotalPasses,
		TotalShots:   s.TotalShots,
	}
}

// RecentMatch is one entry in a player's match history
type RecentMatch struct {
	MatchID      string    `json:"matchId"`
	OpponentName string    `json:"opponentName"`
	Date         time.Time `json:"date"`
	IsWinner     bool      `json:"isWinner"`
}

// RecentMatchesFromModel converts a slice of stats.RecentMatch
func RecentMatchesFromModel(matches []stats.RecentMatch) []RecentMatch {
	out := make([]RecentMatch, len(matches))
	for i, m := range matches {
		out[i] = RecentMatch{
			MatchID:      string(m.MatchID),
			OpponentName: m.OpponentName,
			Date:         m.Date,
			IsWinner:     m.IsWinner,
		}
	}
	return out
}

// MatchStat is a player's full stat line for one match
type MatchStat struct {
	MatchID  string `json:"matchId"`
	Goals    int    `json:"goals"`
	Passes   int    `json:"passes"`
	Shots    int    `json:"shots"`
	IsWinner bool   `json:"isWinner"`
}

// MatchStatFromModel converts a model.MatchStat
func MatchStatFromModel(matchID model.MatchID, s *model.MatchStat) MatchStat {
	return MatchStat{
		MatchID:  string(matchID),
		Goals:    s.Goals,
		Passes:   s.Passes,
		Shots:    s.Shots,
		IsWinner: s.IsWinner,
	}
}

// PlayerMatchStat is the stat line shape served under the players API.
// It carries the ids and omits the win flag.
type PlayerMatchStat struct {
	PlayerID string `json:"playerId"`
	MatchID  string `json:"matchId"`
	Goals    int    `json:"goals"`
	Passes   int    `json:"passes"`
	Shots    int    `json:"shots"`
}

// PlayerMatchStatFromModel converts a model.MatchStat
func PlayerMatchStatFromModel(playerID model.PlayerID, matchID model.MatchID, s *model.MatchStat) PlayerMatchStat {
	return PlayerMatchStat{
		PlayerID: string(playerID),
		MatchID:  string(matchID),
		Goals:    s.Goals,
		Passes:   s.Passes,
		Shots:    s.Shots,
	}
}

// Ranking is one leaderboard row
type Ranking struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	EloRating    int    `json:"eloRating"`
	Wins         int    `json:"wins"`
	TotalMatches int    `json:"total_matches"`
	WinRate      string `json:"winRate"`
}

// RankingsFromModel converts a slice of stats.RankingEntry
func RankingsFromModel(entries []stats.RankingEntry) []Ranking {
	out := make([]Ranking, len(entries))
	for i, e := range entries {
		out[i] = Ranking{
			ID:           string(e.PlayerID),
			Username:     e.Username,
			EloRating:    e.EloRating,
			Wins:         e.Wins,
			TotalMatches: e.TotalMatches,
			WinRate:      e.WinRate,
		}
	}
	return out
}
