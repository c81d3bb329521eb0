package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchpoint-gg/matchpoint/internal/api"
	"github.com/matchpoint-gg/matchpoint/internal/api/response"
	"github.com/matchpoint-gg/matchpoint/internal/factory"
	"github.com/matchpoint-gg/matchpoint/internal/model"
	"github.com/matchpoint-gg/matchpoint/internal/storage/memory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	storage *memory.Storage
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:           logger,
		SettlementEngine: app.SettlementEngine,
		StatsService:     app.StatsService,
		Gateway:          app.Gateway,
	})

	return &testServer{
		handler: router,
		storage: app.Storage.(*memory.Storage),
	}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func submitBody(p1, p2 string, p1Wins bool) map[string]any {
	return map[string]any{
		"player1": map[string]any{
			"id": p1, "goals": 3, "passes": 10, "shots": 5, "isWinner": p1Wins,
		},
		"player2": map[string]any{
			"id": p2, "goals": 1, "passes": 8, "shots": 4, "isWinner": !p1Wins,
		},
	}
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestSubmitMatch(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/matches/submit", submitBody("p1", "p2", true))
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.SubmitMatch
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Len(t, resp.MatchID, 20)
	assert.Equal(t, 1216, resp.Player1NewRating)
	assert.Equal(t, 1184, resp.Player2NewRating)
}

func TestSubmitMatchMissingPlayerID(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/matches/submit", submitBody("", "p2", true))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_REQUEST")
}

func TestSubmitMatchMalformedBody(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/matches/submit", bytes.NewBufferString("not json"))
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid match data")
}

func TestSubmitMatchUsesExistingRatings(t *testing.T) {
	ts := newTestServer(t)

	err := ts.storage.SavePlayer(context.Background(), "p1", &model.PlayerRecord{
		Username: "Alice", EloRating: 1400,
	})
	require.NoError(t, err)
	err = ts.storage.SavePlayer(context.Background(), "p2", &model.PlayerRecord{
		Username: "Bob", EloRating: 1200,
	})
	require.NoError(t, err)

	rr := ts.request(http.MethodPost, "/api/matches/submit", submitBody("p1", "p2", false))
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.SubmitMatch
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1376, resp.Player1NewRating)
	assert.Equal(t, 1224, resp.Player2NewRating)
}

func TestRecentMatches(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/matches/submit", submitBody("p1", "p2", true))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/matches/recentMatches/p1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var matches []response.RecentMatch
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &matches))
	require.Len(t, matches, 1)
	assert.True(t, matches[0].IsWinner)
	// Neither player has a username on record
	assert.Equal(t, "Unknown Opponent", matches[0].OpponentName)
}

func TestRecentMatchesNoHistory(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/matches/recentMatches/nonexistent", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "STATS_NOT_FOUND")
}

func TestPlayerStatsByMatch(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/matches/submit", submitBody("p1", "p2", true))
	require.Equal(t, http.StatusOK, rr.Code)
	var submitResp response.SubmitMatch
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &submitResp))

	rr = ts.request(http.MethodGet, "/api/matches/playerStats/p1/"+submitResp.MatchID, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var stat response.MatchStat
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stat))
	assert.Equal(t, 3, stat.Goals)
	assert.True(t, stat.IsWinner)
}

func TestPlayerStatsByMatchNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/matches/playerStats/p1/nonexistent", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPlayerStat(t *testing.T) {
	ts := newTestServer(t)

	err := ts.storage.SavePlayer(context.Background(), "p1", &model.PlayerRecord{
		Username: "Alice", EloRating: 1200,
	})
	require.NoError(t, err)
	err = ts.storage.SavePlayer(context.Background(), "p2", &model.PlayerRecord{
		Username: "Bob", EloRating: 1200,
	})
	require.NoError(t, err)

	rr := ts.request(http.MethodPost, "/api/matches/submit", submitBody("p1", "p2", true))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/players/playerStat/p1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var stats response.PlayerStats
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stats))
	assert.Equal(t, "Alice", stats.Username)
	assert.Equal(t, 1216, stats.EloRating)
	assert.Equal(t, 1, stats.TotalMatches)
	assert.Equal(t, 3, stats.TotalGoals)
}

func TestPlayerStatUnknownPlayer(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/players/playerStat/nonexistent", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "PLAYER_NOT_FOUND")
}

func TestPlayerStatByMatch(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/matches/submit", submitBody("p1", "p2", false))
	require.Equal(t, http.StatusOK, rr.Code)
	var submitResp response.SubmitMatch
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &submitResp))

	rr = ts.request(http.MethodGet, "/api/players/playerStat/p2/match/"+submitResp.MatchID, nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var stat response.PlayerMatchStat
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &stat))
	assert.Equal(t, "p2", stat.PlayerID)
	assert.Equal(t, submitResp.MatchID, stat.MatchID)
	assert.Equal(t, 1, stat.Goals)
}

func TestRankings(t *testing.T) {
	ts := newTestServer(t)

	err := ts.storage.SavePlayer(context.Background(), "p1", &model.PlayerRecord{
		Username: "Alice", EloRating: 1200,
	})
	require.NoError(t, err)
	err = ts.storage.SavePlayer(context.Background(), "p2", &model.PlayerRecord{
		Username: "Bob", EloRating: 1200,
	})
	require.NoError(t, err)

	rr := ts.request(http.MethodPost, "/api/matches/submit", submitBody("p1", "p2", true))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/players/rankingsByElo", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var rankings []response.Ranking
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rankings))
	require.Len(t, rankings, 2)
	assert.Equal(t, "Alice", rankings[0].Username)
	assert.Equal(t, 1216, rankings[0].EloRating)
	assert.Equal(t, "100.00", rankings[0].WinRate)
	assert.Equal(t, "Bob", rankings[1].Username)

	rr = ts.request(http.MethodGet, "/api/players/rankingsByWins", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rankings))
	assert.Equal(t, 1, rankings[0].Wins)

	rr = ts.request(http.MethodGet, "/api/players/rankingsByWinrate", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rankings))
	assert.Equal(t, "Alice", rankings[0].Username)
}

func TestUnknownRouteReturns404(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
