// Package settlement converts submitted match outcomes into updated
// persistent ratings and stored match records.
package settlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/matchpoint-gg/matchpoint/internal/dependencies/random"
	"github.com/matchpoint-gg/matchpoint/internal/model"
	"github.com/matchpoint-gg/matchpoint/internal/services/rating"
	"github.com/matchpoint-gg/matchpoint/internal/storage"
)

const (
	// MatchIDLength is the length of generated match identifiers
	MatchIDLength = 20
	// MatchIDAlphabet is the characters used in match identifiers
	MatchIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Engine settles finished matches: it reads both players' current
// ratings, computes new ones, and commits the whole outcome in one
// atomic store write. Concurrent submissions touching the same players
// are not serialized against each other; last committed wins.
type Engine struct {
	storage storage.Storage
	random  random.Random
	logger  *slog.Logger
}

// Result is the outcome of a settled match
type Result struct {
	MatchID          model.MatchID
	Player1NewRating int
	Player2NewRating int
}

// NewEngine creates a settlement engine
func NewEngine(store storage.Storage, rnd random.Random, logger *slog.Logger) *Engine {
	return &Engine{
		storage: store,
		random:  rnd,
		logger:  logger.With(slog.String("component", "settlement")),
	}
}

// SubmitMatch settles one match between two players. Validation
// failures reject the submission before any read; store failures leave
// pre-match state untouched because the commit is a single atomic
// write.
func (e *Engine) SubmitMatch(ctx context.Context, p1, p2 model.MatchSubmission) (*Result, error) {
	if p1.PlayerID == "" || p2.PlayerID == "" {
		return nil, fmt.Errorf("%w: both submissions must carry a player id", model.ErrInvalidSubmission)
	}

	record1, err := e.loadPlayer(ctx, p1.PlayerID)
	if err != nil {
		return nil, err
	}
	record2, err := e.loadPlayer(ctx, p2.PlayerID)
	if err != nil {
		return nil, err
	}

	// Both new ratings come from the ratings as they were before either
	// update; neither side sees the other's freshly computed rating.
	player1Won := p1.IsWinner
	newElo1 := rating.NewRating(record1.EloRating, record2.EloRating, rating.OutcomeFromWin(player1Won))
	newElo2 := rating.NewRating(record2.EloRating, record1.EloRating, rating.OutcomeFromWin(!player1Won))

	update1 := *record1
	update1.EloRating = newElo1
	update1.TotalMatches++
	if player1Won {
		update1.Wins++
	}

	update2 := *record2
	update2.EloRating = newElo2
	update2.TotalMatches++
	if !player1Won {
		update2.Wins++
	}

	matchID := model.MatchID(e.random.String(MatchIDLength, MatchIDAlphabet))

	commit := &model.MatchCommit{
		MatchID: matchID,
		Players: [2]model.PlayerUpdate{
			{PlayerID: p1.PlayerID, Record: update1},
			{PlayerID: p2.PlayerID, Record: update2},
		},
		Stats: [2]model.StatUpdate{
			{PlayerID: p1.PlayerID, Stat: statFromSubmission(p1)},
			{PlayerID: p2.PlayerID, Stat: statFromSubmission(p2)},
		},
	}

	if err := e.storage.CommitMatch(ctx, commit); err != nil {
		return nil, err
	}

	e.logger.Info("match settled",
		slog.String("match_id", string(matchID)),
		slog.String("player1", string(p1.PlayerID)),
		slog.String("player2", string(p2.PlayerID)),
		slog.Int("player1_rating", newElo1),
		slog.Int("player2_rating", newElo2),
	)

	return &Result{
		MatchID:          matchID,
		Player1NewRating: newElo1,
		Player2NewRating: newElo2,
	}, nil
}

// loadPlayer reads a player record, substituting the documented
// default for an unknown player. The default is a read-side rule only;
// nothing is written until the commit.
func (e *Engine) loadPlayer(ctx context.Context, id model.PlayerID) (*model.PlayerRecord, error) {
	record, err := e.storage.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return model.NewDefaultPlayerRecord(), nil
		}
		return nil, err
	}
	return record, nil
}

func statFromSubmission(sub model.MatchSubmission) model.MatchStat {
	return model.MatchStat{
		Goals:    sub.Goals,
		Passes:   sub.Passes,
		Shots:    sub.Shots,
		IsWinner: sub.IsWinner,
	}
}
