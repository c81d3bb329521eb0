package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/matchpoint-gg/matchpoint/internal/api/handler"
	"github.com/matchpoint-gg/matchpoint/internal/api/middleware"
	"github.com/matchpoint-gg/matchpoint/internal/services/settlement"
	"github.com/matchpoint-gg/matchpoint/internal/services/stats"
	"github.com/matchpoint-gg/matchpoint/internal/ws"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger           *slog.Logger
	SettlementEngine *settlement.Engine
	StatsService     *stats.Service
	Gateway          *ws.Gateway
}

// NewRouter creates a new router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	matchHandler := handler.NewMatchHandler(cfg.SettlementEngine, cfg.StatsService)
	playerHandler := handler.NewPlayerHandler(cfg.StatsService)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Match routes
	api.HandleFunc("/matches/submit", matchHandler.Submit).Methods(http.MethodPost)
	api.HandleFunc("/matches/recentMatches/{playerId}", matchHandler.RecentMatches).Methods(http.MethodGet)
	api.HandleFunc("/matches/playerStats/{playerId}/{matchId}", matchHandler.PlayerStatsByMatch).Methods(http.MethodGet)

	// Player routes
	api.HandleFunc("/players/rankingsByElo", playerHandler.RankingsByElo).Methods(http.MethodGet)
	api.HandleFunc("/players/rankingsByWins", playerHandler.RankingsByWins).Methods(http.MethodGet)
	api.HandleFunc("/players/rankingsByWinrate", playerHandler.RankingsByWinrate).Methods(http.MethodGet)
	api.HandleFunc("/players/playerStat/{playerId}", playerHandler.PlayerStat).Methods(http.MethodGet)
	api.HandleFunc("/players/playerStat/{playerId}/match/{matchId}", playerHandler.PlayerStatByMatch).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Real-time gateway; the websocket takes over the connection, so it
	// skips the logging middleware's response wrapping
	if cfg.Gateway != nil {
		r.HandleFunc("/ws", cfg.Gateway.ServeWS)
	}

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
