package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match submission and history commands",
	}

	cmd.AddCommand(newMatchSubmitCmd())
	cmd.AddCommand(newMatchRecentCmd())
	cmd.AddCommand(newMatchStatsCmd())

	return cmd
}

type playerSubmission struct {
	ID       string `json:"id"`
	Goals    int    `json:"goals"`
	Passes   int    `json:"passes"`
	Shots    int    `json:"shots"`
	IsWinner bool   `json:"isWinner"`
}

type submitMatchRequest struct {
	Player1 playerSubmission `json:"player1"`
	Player2 playerSubmission `json:"player2"`
}

func newMatchSubmitCmd() *cobra.Command {
	var (
		p1, p2                     string
		winner                     string
		p1Goals, p1Passes, p1Shots int
		p2Goals, p2Passes, p2Shots int
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a finished match for settlement",
		RunE: func(cmd *cobra.Command, args []string) error {
			if winner != p1 && winner != p2 {
				return fmt.Errorf("--winner must be one of the two player ids")
			}

			req := submitMatchRequest{
				Player1: playerSubmission{
					ID:       p1,
					Goals:    p1Goals,
					Passes:   p1Passes,
					Shots:    p1Shots,
					IsWinner: winner == p1,
				},
				Player2: playerSubmission{
					ID:       p2,
					Goals:    p2Goals,
					Passes:   p2Passes,
					Shots:    p2Shots,
					IsWinner: winner == p2,
				},
			}
			var result SubmitResult

			if err := client.Post("/api/matches/submit", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&p1, "player1", "", "First player id (required)")
	cmd.Flags().StringVar(&p2, "player2", "", "Second player id (required)")
	cmd.Flags().StringVar(&winner, "winner", "", "Winning player id (required)")
	cmd.Flags().IntVar(&p1Goals, "player1-goals", 0, "First player goals")
	cmd.Flags().IntVar(&p1Passes, "player1-passes", 0, "First player passes")
	cmd.Flags().IntVar(&p1Shots, "player1-shots", 0, "First player shots")
	cmd.Flags().IntVar(&p2Goals, "player2-goals", 0, "Second player goals")
	cmd.Flags().IntVar(&p2Passes, "player2-passes", 0, "Second player passes")
	cmd.Flags().IntVar(&p2Shots, "player2-shots", 0, "Second player shots")
	_ = cmd.MarkFlagRequired("player1")
	_ = cmd.MarkFlagRequired("player2")
	_ = cmd.MarkFlagRequired("winner")

	return cmd
}

func newMatchRecentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recent <playerId>",
		Short: "List a player's recent matches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []RecentMatch

			if err := client.Get("/api/matches/recentMatches/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <playerId> <matchId>",
		Short: "Show a player's stat line for one match",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MatchStat

			if err := client.Get("/api/matches/playerStats/"+args[0]+"/"+args[1], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
