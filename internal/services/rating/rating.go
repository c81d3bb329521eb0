// Package rating implements the Elo rating update used to settle matches.
package rating

import "math"

// KFactor controls how far a single match can move a rating
const KFactor = 32

// Outcome is a match result from one player's perspective
type Outcome float64

const (
	Loss Outcome = 0
	Win  Outcome = 1
)

// ExpectedScore returns the probability of the self player winning
// against the opponent under the Elo model.
func ExpectedScore(selfRating, opponentRating int) float64 {
	return 1 / (1 + math.Pow(10, float64(opponentRating-selfRating)/400))
}

// NewRating computes a player's updated rating from both players'
// pre-match ratings and the actual outcome. Deterministic and total
// over all finite inputs; draws are not representable.
func NewRating(selfRating, opponentRating int, actual Outcome) int {
	expected := ExpectedScore(selfRating, opponentRating)
	return int(math.Round(float64(selfRating) + KFactor*(float64(actual)-expected)))
}

// OutcomeFromWin resolves a win flag into an Outcome
func OutcomeFromWin(won bool) Outcome {
	if won {
		return Win
	}
	return Loss
}
