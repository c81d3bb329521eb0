package redis

import (
	"github.com/matchpoint-gg/matchpoint/internal/model"
)

// Key layout mirrors the players/{id}, matches/{id},
// matchStats/{matchId}/{playerId} store shape, plus index sets so the
// query side can enumerate without KEYS scans.

const keyPrefix = "matchpoint:"

// allPlayersKey is the set of every known player ID
const allPlayersKey = keyPrefix + "players"

func playerKey(id model.PlayerID) string {
	return keyPrefix + "players:" + string(id)
}

func matchKey(id model.MatchID) string {
	return keyPrefix + "matches:" + string(id)
}

func statKey(matchID model.MatchID, playerID model.PlayerID) string {
	return keyPrefix + "matchstats:" + string(matchID) + ":" + string(playerID)
}

// statIndexKey is the set of player IDs with a stat line for a match
func statIndexKey(matchID model.MatchID) string {
	return keyPrefix + "matchstats:" + string(matchID) + ":players"
}

// playerMatchesKey is the list of match IDs a player has appeared in,
// in commit order
func playerMatchesKey(playerID model.PlayerID) string {
	return keyPrefix + "players:" + string(playerID) + ":matches"
}
