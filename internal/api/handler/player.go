package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/matchpoint-gg/matchpoint/internal/api/response"
	"github.com/matchpoint-gg/matchpoint/internal/model"
	"github.com/matchpoint-gg/matchpoint/internal/services/stats"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	statsService *stats.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(statsService *stats.Service) *PlayerHandler {
	return &PlayerHandler{statsService: statsService}
}

// PlayerStat handles GET /api/players/playerStat/{playerId}
func (h *PlayerHandler) PlayerStat(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["playerId"])

	playerStats, err := h.statsService.PlayerStats(r.Context(), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerStatsFromModel(playerStats))
}

// PlayerStatByMatch handles GET /api/players/playerStat/{playerId}/match/{matchId}
func (h *PlayerHandler) PlayerStatByMatch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	playerID := model.PlayerID(vars["playerId"])
	matchID := model.MatchID(vars["matchId"])

	stat, err := h.statsService.MatchStatLine(r.Context(), playerID, matchID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerMatchStatFromModel(playerID, matchID, stat))
}

// RankingsByElo handles GET /api/players/rankingsByElo
func (h *PlayerHandler) RankingsByElo(w http.ResponseWriter, r *http.Request) {
	h.rankings(w, r, stats.RankByElo)
}

// RankingsByWins handles GET /api/players/rankingsByWins
func (h *PlayerHandler) RankingsByWins(w http.ResponseWriter, r *http.Request) {
	h.rankings(w, r, stats.RankByWins)
}

// RankingsByWinrate handles GET /api/players/rankingsByWinrate
func (h *PlayerHandler) RankingsByWinrate(w http.ResponseWriter, r *http.Request) {
	h.rankings(w, r, stats.RankByWinrate)
}

func (h *PlayerHandler) rankings(w http.ResponseWriter, r *http.Request, order stats.RankingOrder) {
	entries, err := h.statsService.Rankings(r.Context(), order)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RankingsFromModel(entries))
}
