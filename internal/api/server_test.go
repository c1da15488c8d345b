package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtside/internal/config"
	"courtside/internal/game"
)

// fakeStore keeps snapshots in memory, round-tripping through JSON so the
// handlers exercise the same serialization path as the database store.
type fakeStore struct {
	mu      sync.Mutex
	states  map[string][]byte
	seasons map[string][]game.SeasonResult
	names   map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		states:  map[string][]byte{},
		seasons: map[string][]game.SeasonResult{},
		names:   map[string]string{},
	}
}

func (f *fakeStore) CreateSession(_ context.Context, token string, state *game.GameState) error {
	return f.SaveState(context.Background(), token, state)
}

func (f *fakeStore) LoadState(_ context.Context, token string) (*game.GameState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.states[token]
	if !ok {
		return nil, game.ErrSessionNotFound
	}
	var state game.GameState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (f *fakeStore) SaveState(_ context.Context, token string, state *game.GameState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states[token] = raw
	return nil
}

func (f *fakeStore) RecordSeason(_ context.Context, token, teamName string, result game.SeasonResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seasons[token] = append(f.seasons[token], result)
	f.names[token] = teamName
	return nil
}

func (f *fakeStore) Leaderboard(_ context.Context, limit int) ([]game.LeaderboardEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := make([]game.LeaderboardEntry, 0, len(f.seasons))
	for token, seasons := range f.seasons {
		e := game.LeaderboardEntry{TeamName: f.names[token], Seasons: len(seasons)}
		for _, s := range seasons {
			e.TotalWins += s.Wins
			if s.PlayoffResult == game.PlayoffChampion {
				e.Championships++
			}
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].TotalWins > entries[j].TotalWins })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func testLeague(rng *rand.Rand) []game.Team {
	teams := make([]game.Team, 0, 30)
	for i := 0; i < 30; i++ {
		conf := game.Eastern
		if i >= 15 {
			conf = game.Western
		}
		id := string(rune('a'+i/10)) + string(rune('0'+i%10))
		team := game.Team{
			ID:          "t" + id,
			Name:        "Team " + id,
			City:        "City " + id,
			Conference:  conf,
			ContextType: game.StarDependent,
			MarketSize:  game.MarketMedium,
			Fanbase:     60,
			Prestige:    55,
		}
		for j := 0; j < 12; j++ {
			rating := 62 + (i+j*3)%24
			team.Roster = append(team.Roster, game.Player{
				ID:            team.ID + "-p" + string(rune('a'+j)),
				Name:          "Player " + id + string(rune('a'+j)),
				Position:      game.Positions[j%len(game.Positions)],
				Age:           24 + j%10,
				OverallRating: rating,
				Potential:     rating,
				Offense:       rating,
				Defense:       rating,
				Athleticism:   rating,
				BasketballIQ:  rating,
				Durability:    80,
				Salary:        game.ExpectedSalary(rating),
				ContractYears: 2,
				TeamID:        team.ID,
				IsStarter:     j < 5,
				Morale:        70,
			})
		}
		team.RecalcSalary()
		teams = append(teams, team)
	}
	return teams
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := game.NewService(newFakeStore(), testLeague, slog.New(slog.NewTextHandler(io.Discard, nil)), 17)
	srv := New(config.APIConfig{HTTPTimeout: 30 * time.Second}, slog.New(slog.NewTextHandler(io.Discard, nil)), svc)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, ts *httptest.Server, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var out map[string]any
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&out); err != nil {
		out = nil
	}
	return resp, out
}

func createSession(t *testing.T, ts *httptest.Server) string {
	t.Helper()
	resp, out := doJSON(t, ts, http.MethodPost, "/v1/sessions", "", map[string]any{"team_id": "ta0"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token, _ := out["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp, out := doJSON(t, ts, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, out["ok"])
}

func TestListFranchisesPublic(t *testing.T) {
	ts := newTestServer(t)
	resp, err := ts.Client().Get(ts.URL + "/v1/franchises")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list, 30)
	assert.NotEmpty(t, list[0]["id"])
	assert.NotEmpty(t, list[0]["context_info"])
}

func TestCreateSession(t *testing.T) {
	ts := newTestServer(t)
	resp, out := doJSON(t, ts, http.MethodPost, "/v1/sessions", "", map[string]any{
		"team_id":    "ta0",
		"difficulty": "hard",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, out["token"])

	state, ok := out["state"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ta0", state["team_id"])
	assert.Equal(t, "hard", state["difficulty"])
	assert.Equal(t, float64(1), state["season"])
}

func TestCreateSessionValidation(t *testing.T) {
	ts := newTestServer(t)

	resp, out := doJSON(t, ts, http.MethodPost, "/v1/sessions", "", map[string]any{
		"team_id":    "ta0",
		"difficulty": "nightmare",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, out["error"], "difficulty")

	resp, _ = doJSON(t, ts, http.MethodPost, "/v1/sessions", "", map[string]any{
		"team_id": "nope",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSessionRequiresBearer(t *testing.T) {
	ts := newTestServer(t)

	resp, out := doJSON(t, ts, http.MethodGet, "/v1/session", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, out["error"], "bearer")

	resp, _ = doJSON(t, ts, http.MethodGet, "/v1/session", "not-a-session", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetSession(t *testing.T) {
	ts := newTestServer(t)
	token := createSession(t, ts)

	resp, out := doJSON(t, ts, http.MethodGet, "/v1/session", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ta0", out["team_id"])
	assert.Equal(t, "preseason", out["phase"])
}

func TestGetTeamAndStandings(t *testing.T) {
	ts := newTestServer(t)
	token := createSession(t, ts)

	resp, team := doJSON(t, ts, http.MethodGet, "/v1/session/team", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ta0", team["id"])
	assert.Len(t, team["roster"], 12)

	resp, _ = doJSON(t, ts, http.MethodPost, "/v1/season/simulate", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, standings := doJSON(t, ts, http.MethodGet, "/v1/session/standings", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, standings, 30)
}

func TestGetNews(t *testing.T) {
	ts := newTestServer(t)
	token := createSession(t, ts)

	resp, _ := doJSON(t, ts, http.MethodPost, "/v1/season/simulate", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/v1/session/news", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var news []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&news))
	require.NotEmpty(t, news)
	assert.NotEmpty(t, news[0]["title"])
}

func TestCreateSessionWithStrategy(t *testing.T) {
	ts := newTestServer(t)

	resp, out := doJSON(t, ts, http.MethodPost, "/v1/sessions", "", map[string]any{
		"team_id":  "ta0",
		"strategy": "boom_bust_swing",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	state, ok := out["state"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "boom_bust_swing", state["strategy"])

	resp, _ = doJSON(t, ts, http.MethodPost, "/v1/sessions", "", map[string]any{
		"team_id":  "ta0",
		"strategy": "coin_flip",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEvaluateTrade(t *testing.T) {
	ts := newTestServer(t)
	token := createSession(t, ts)

	_, state := doJSON(t, ts, http.MethodGet, "/v1/session", token, nil)
	teams := state["teams"].([]any)
	var give, want string
	for _, raw := range teams {
		tm := raw.(map[string]any)
		roster := tm["roster"].([]any)
		pid := roster[0].(map[string]any)["id"].(string)
		if tm["id"] == "ta0" {
			give = pid
		} else if want == "" {
			want = pid
		}
	}
	require.NotEmpty(t, give)
	require.NotEmpty(t, want)

	resp, out := doJSON(t, ts, http.MethodPost, "/v1/trades/evaluate", token, map[string]any{
		"to_team_id":        "ta1",
		"players_offered":   []string{give},
		"players_requested": []string{want},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, out, "accepted")
	eval, ok := out["evaluation"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, eval, "fairness_score")
	assert.Contains(t, eval, "risk_assessment")
}

func TestEvaluateTradeUnknownPartner(t *testing.T) {
	ts := newTestServer(t)
	token := createSession(t, ts)

	resp, out := doJSON(t, ts, http.MethodPost, "/v1/trades/evaluate", token, map[string]any{
		"to_team_id": "zz9",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, out["accepted"])
	assert.Equal(t, "unknown trade partner", out["message"])
}

func TestDraftEndpointsOutOfPhase(t *testing.T) {
	ts := newTestServer(t)
	token := createSession(t, ts)

	resp, out := doJSON(t, ts, http.MethodPost, "/v1/draft/pick", token, map[string]any{
		"prospect_id": "x",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, out["error"], "phase")

	resp, _ = doJSON(t, ts, http.MethodPost, "/v1/draft/advance", token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestOfferFreeAgentUnknownPlayer(t *testing.T) {
	ts := newTestServer(t)
	token := createSession(t, ts)

	resp, out := doJSON(t, ts, http.MethodPost, "/v1/freeagents/ghost/offer", token, map[string]any{
		"salary": 10.0,
		"years":  2,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out["message"], "no longer available")
}

func TestListFreeAgents(t *testing.T) {
	ts := newTestServer(t)
	token := createSession(t, ts)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/v1/freeagents", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var agents []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&agents))
	require.NotEmpty(t, agents)
	assert.Contains(t, agents[0], "player")
	assert.Contains(t, agents[0], "asking_price")
}

func TestSimulateSeasonFlow(t *testing.T) {
	ts := newTestServer(t)
	token := createSession(t, ts)

	resp, out := doJSON(t, ts, http.MethodPost, "/v1/season/simulate", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), out["season"])
	assert.NotEmpty(t, out["champion_id"])

	// Season over, the draft is open; simulating again conflicts.
	resp, _ = doJSON(t, ts, http.MethodPost, "/v1/season/simulate", token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSetStrategy(t *testing.T) {
	ts := newTestServer(t)
	token := createSession(t, ts)

	resp, out := doJSON(t, ts, http.MethodPost, "/v1/strategy", token, map[string]any{
		"strategy": "stability_first",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "stability_first", out["strategy"])

	resp, _ = doJSON(t, ts, http.MethodPost, "/v1/strategy", token, map[string]any{
		"strategy": "yolo",
	})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestFinances(t *testing.T) {
	ts := newTestServer(t)
	token := createSession(t, ts)

	resp, out := doJSON(t, ts, http.MethodGet, "/v1/finances", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, out, "current")
	assert.Contains(t, out, "health")
	assert.Contains(t, out, "cap_space")
}

func TestRationalCheck(t *testing.T) {
	ts := newTestServer(t)
	token := createSession(t, ts)

	resp, out := doJSON(t, ts, http.MethodGet, "/v1/finances/rational?cost=12.5", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, out, "rational")
	assert.Contains(t, out, "reason")

	resp, _ = doJSON(t, ts, http.MethodGet, "/v1/finances/rational?cost=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, ts, http.MethodGet, "/v1/finances/rational", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEvaluation(t *testing.T) {
	ts := newTestServer(t)
	token := createSession(t, ts)

	resp, out := doJSON(t, ts, http.MethodGet, "/v1/evaluation", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, out, "score")
	assert.Contains(t, out, "title")
}

func TestLeaderboardPublic(t *testing.T) {
	ts := newTestServer(t)
	token := createSession(t, ts)

	resp, _ := doJSON(t, ts, http.MethodPost, "/v1/season/simulate", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/v1/leaderboard?limit=5", nil)
	require.NoError(t, err)
	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "Team a0", entries[0]["team_name"])
}

func TestBadJSONBody(t *testing.T) {
	ts := newTestServer(t)
	token := createSession(t, ts)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/v1/trades/evaluate", bytes.NewBufferString("{nope"))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBearerTokenParsing(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
		{"  Bearer   abc  ", "abc"},
	}
	for _, tc := range cases {
		if got := bearerToken(tc.header); got != tc.want {
			t.Fatalf("bearerToken(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}
