package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/matchpoint-gg/matchpoint/internal/api/apierr"
	"github.com/matchpoint-gg/matchpoint/internal/api/request"
	"github.com/matchpoint-gg/matchpoint/internal/api/response"
	"github.com/matchpoint-gg/matchpoint/internal/model"
	"github.com/matchpoint-gg/matchpoint/internal/services/settlement"
	"github.com/matchpoint-gg/matchpoint/internal/services/stats"
)

// MatchHandler handles match-related endpoints
type MatchHandler struct {
	engine       *settlement.Engine
	statsService *stats.Service
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(engine *settlement.Engine, statsService *stats.Service) *MatchHandler {
	return &MatchHandler{
		engine:       engine,
		statsService: statsService,
	}
}

// Submit handles POST /api/matches/submit
func (h *MatchHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, apierr.NewInvalidRequestError("Invalid match data"))
		return
	}

	result, err := h.engine.SubmitMatch(r.Context(),
		submissionFromRequest(req.Player1),
		submissionFromRequest(req.Player2),
	)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SubmitMatchFromResult(result))
}

// RecentMatches handles GET /api/matches/recentMatches/{playerId}
func (h *MatchHandler) RecentMatches(w http.ResponseWriter, r *http.Request) {
	playerID := model.PlayerID(mux.Vars(r)["playerId"])

	matches, err := h.statsService.RecentMatches(r.Context(), playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RecentMatchesFromModel(matches))
}

// PlayerStatsByMatch handles GET /api/matches/playerStats/{playerId}/{matchId}
func (h *MatchHandler) PlayerStatsByMatch(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	playerID := model.PlayerID(vars["playerId"])
	matchID := model.MatchID(vars["matchId"])

	stat, err := h.statsService.MatchStatLine(r.Context(), playerID, matchID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchStatFromModel(matchID, stat))
}

func submissionFromRequest(p request.PlayerSubmission) model.MatchSubmission {
	return model.MatchSubmission{
		PlayerID: model.PlayerID(p.ID),
		Goals:    p.Goals,
		Passes:   p.Passes,
		Shots:    p.Shots,
		IsWinner: p.IsWinner,
	}
}
