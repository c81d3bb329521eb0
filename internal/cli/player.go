package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player stats and rankings commands",
	}

	cmd.AddCommand(newPlayerStatsCmd())
	cmd.AddCommand(newPlayerMatchCmd())
	cmd.AddCommand(newPlayerRankingsCmd())

	return cmd
}

func newPlayerStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <playerId>",
		Short: "Show a player's profile and lifetime aggregates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlayerStats

			if err := client.Get("/api/players/playerStat/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <playerId> <matchId>",
		Short: "Show a player's stat line for one match",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlayerMatchStat

			if err := client.Get("/api/players/playerStat/"+args[0]+"/match/"+args[1], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerRankingsCmd() *cobra.Command {
	var by string

	cmd := &cobra.Command{
		Use:   "rankings",
		Short: "Show the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			switch by {
			case "elo":
				path = "/api/players/rankingsByElo"
			case "wins":
				path = "/api/players/rankingsByWins"
			case "winrate":
				path = "/api/players/rankingsByWinrate"
			default:
				return fmt.Errorf("--by must be one of: elo, wins, winrate")
			}

			var result []Ranking
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&by, "by", "elo", "Ranking order: elo, wins, winrate")

	return cmd
}
