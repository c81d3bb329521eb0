package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case SubmitResult:
		o.printSubmitResult(v)
	case PlayerStats:
		o.printPlayerStats(v)
	case []RecentMatch:
		o.printRecentMatches(v)
	case MatchStat:
		o.printMatchStat(v)
	case PlayerMatchStat:
		o.printPlayerMatchStat(v)
	case []Ranking:
		o.printRankings(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// SubmitResult response type (matches API)
type SubmitResult struct {
	Success          bool   `json:"success"`
	MatchID          string `json:"matchId"`
	Player1NewRating int    `json:"player1NewRating"`
	Player2NewRating int    `json:"player2NewRating"`
}

// PlayerStats response type
type PlayerStats struct {
	Username     string `json:"username"`
	EloRating    int    `json:"eloRating"`
	Wins         int    `json:"wins"`
	TotalMatches int    `json:"total_matches"`
	TotalGoals   int    `json:"totalGoals"`
	TotalPasses  int    `json:"totalPasses"`
	TotalShots   int    `json:"totalShots"`
}

// RecentMatch response type
type RecentMatch struct {
	MatchID      string    `json:"matchId"`
	OpponentName string    `json:"opponentName"`
	Date         time.Time `json:"date"`
	IsWinner     bool      `json:"isWinner"`
}

// MatchStat response type
type MatchStat struct {
	MatchID  string `json:"matchId"`
	Goals    int    `json:"goals"`
	Passes   int    `json:"passes"`
	Shots    int    `json:"shots"`
	IsWinner bool   `json:"isWinner"`
}

// PlayerMatchStat response type
type PlayerMatchStat struct {
	PlayerID string `json:"playerId"`
	MatchID  string `json:"matchId"`
	Goals    int    `json:"goals"`
	Passes   int    `json:"passes"`
	Shots    int    `json:"shots"`
}

// Ranking response type
type Ranking struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	EloRating    int    `json:"eloRating"`
	Wins         int    `json:"wins"`
	TotalMatches int    `json:"total_matches"`
	WinRate      string `json:"winRate"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printSubmitResult(r SubmitResult) {
	fmt.Printf("Match: %s\n", r.MatchID)
	fmt.Printf("Player 1 new rating: %d\n", r.Player1NewRating)
	fmt.Printf("Player 2 new rating: %d\n", r.Player2NewRating)
}

func (o *Output) printPlayerStats(p PlayerStats) {
	fmt.Printf("Player: %s\n", p.Username)
	fmt.Printf("Elo: %d\n", p.EloRating)
	fmt.Printf("Wins: %d / %d matches\n", p.Wins, p.TotalMatches)
	fmt.Printf("Goals: %d  Passes: %d  Shots: %d\n", p.TotalGoals, p.TotalPasses, p.TotalShots)
}

func (o *Output) printRecentMatches(matches []RecentMatch) {
	if len(matches) == 0 {
		fmt.Println("No matches found")
		return
	}

	fmt.Printf("Matches (%d):\n", len(matches))
	for _, m := range matches {
		result := "L"
		if m.IsWinner {
			result = "W"
		}
		fmt.Printf("  [%s] %s vs %s (%s)\n", result, m.Date.Format("2006-01-02 15:04"), m.OpponentName, m.MatchID)
	}
}

func (o *Output) printMatchStat(s MatchStat) {
	result := "loss"
	if s.IsWinner {
		result = "win"
	}
	fmt.Printf("Match: %s (%s)\n", s.MatchID, result)
	fmt.Printf("Goals: %d  Passes: %d  Shots: %d\n", s.Goals, s.Passes, s.Shots)
}

func (o *Output) printPlayerMatchStat(s PlayerMatchStat) {
	fmt.Printf("Player: %s\n", s.PlayerID)
	fmt.Printf("Match: %s\n", s.MatchID)
	fmt.Printf("Goals: %d  Passes: %d  Shots: %d\n", s.Goals, s.Passes, s.Shots)
}

func (o *Output) printRankings(rankings []Ranking) {
	if len(rankings) == 0 {
		fmt.Println("No players found")
		return
	}

	fmt.Printf("Rankings (%d):\n", len(rankings))
	for i, r := range rankings {
		fmt.Printf("  %d. %s - elo %d, %d/%d wins (%s%%)\n",
			i+1, r.Username, r.EloRating, r.Wins, r.TotalMatches, r.WinRate)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
