package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"courtside/internal/config"
	"courtside/internal/game"
	"courtside/internal/league"
	"courtside/internal/metrics"
)

type contextKey string

const tokenContextKey contextKey = "session_token"

type Server struct {
	cfg  config.APIConfig
	log  *slog.Logger
	game *game.Service
	mux  *chi.Mux
}

func New(cfg config.APIConfig, logger *slog.Logger, gameSvc *game.Service) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:  cfg,
		log:  logger,
		game: gameSvc,
		mux:  chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.HTTPTimeout))
	r.Use(s.instrument)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/franchises", s.handleListFranchises)
		r.Post("/sessions", s.handleCreateSession)

		r.Group(func(r chi.Router) {
			r.Use(s.sessionMiddleware)
			r.Get("/session", s.handleGetSession)
			r.Get("/session/team", s.handleGetTeam)
			r.Get("/session/standings", s.handleGetStandings)
			r.Get("/session/news", s.handleGetNews)

			r.Post("/trades/evaluate", s.handleEvaluateTrade)
			r.Post("/trades", s.handleProposeTrade)

			r.Get("/freeagents", s.handleListFreeAgents)
			r.Post("/freeagents/{player_id}/offer", s.handleOfferFreeAgent)

			r.Get("/draft/prospects", s.handleListProspects)
			r.Post("/draft/pick", s.handleDraftPick)
			r.Post("/draft/advance", s.handleAdvanceDraft)

			r.Post("/season/simulate", s.handleSimulateSeason)
			r.Post("/season/start", s.handleAdvanceToSeason)
			r.Post("/strategy", s.handleSetStrategy)

			r.Get("/finances", s.handleFinances)
			r.Get("/finances/rational", s.handleRationalCheck)
			r.Get("/evaluation", s.handleEvaluation)
		})

		r.Get("/leaderboard", s.handleLeaderboard)
	})
}

func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		ctx := context.WithValue(r.Context(), tokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}

// instrument records request latency per route.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		metrics.RequestDuration.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}

func (s *Server) handleListFranchises(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, league.Franchises())
}

type createSessionRequest struct {
	TeamID     string `json:"team_id"`
	Difficulty string `json:"difficulty"`
	Strategy   string `json:"strategy"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid body: %v", err))
		return
	}
	difficulty := game.Difficulty(req.Difficulty)
	switch difficulty {
	case game.DifficultyEasy, game.DifficultyMedium, game.DifficultyHard:
	case "":
		difficulty = game.DifficultyMedium
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown difficulty %q", req.Difficulty))
		return
	}

	token, state, err := s.game.NewSession(r.Context(), req.TeamID, difficulty)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	if req.Strategy != "" {
		state, err = s.game.SetStrategy(r.Context(), token, game.StrategyType(req.Strategy))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	metrics.SessionsCreated.Inc()
	writeJSON(w, http.StatusCreated, map[string]any{
		"token": token,
		"state": state,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	state, err := s.game.State(r.Context(), sessionToken(r.Context()))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	state, err := s.game.State(r.Context(), sessionToken(r.Context()))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	team := state.UserTeam()
	if team == nil {
		writeError(w, http.StatusNotFound, game.ErrTeamNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, team)
}

func (s *Server) handleGetStandings(w http.ResponseWriter, r *http.Request) {
	state, err := s.game.State(r.Context(), sessionToken(r.Context()))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state.Standings)
}

func (s *Server) handleGetNews(w http.ResponseWriter, r *http.Request) {
	state, err := s.game.State(r.Context(), sessionToken(r.Context()))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state.News)
}

func (s *Server) handleEvaluateTrade(w http.ResponseWriter, r *http.Request) {
	var req game.TradeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid body: %v", err))
		return
	}
	result, err := s.game.EvaluateTrade(r.Context(), sessionToken(r.Context()), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleProposeTrade(w http.ResponseWriter, r *http.Request) {
	var req game.TradeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid body: %v", err))
		return
	}
	result, err := s.game.ProposeTrade(r.Context(), sessionToken(r.Context()), req)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	outcome := "rejected"
	if result.Accepted {
		outcome = "accepted"
	}
	metrics.TradesProposed.WithLabelValues(outcome).Inc()
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListFreeAgents(w http.ResponseWriter, r *http.Request) {
	state, err := s.game.State(r.Context(), sessionToken(r.Context()))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state.FreeAgents)
}

type offerRequest struct {
	Salary float64 `json:"salary"`
	Years  int     `json:"years"`
}

func (s *Server) handleOfferFreeAgent(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "player_id")
	var req offerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid body: %v", err))
		return
	}
	result, err := s.game.OfferFreeAgent(r.Context(), sessionToken(r.Context()), playerID, req.Salary, req.Years)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	outcome := "declined"
	if result.Success {
		outcome = "signed"
	}
	metrics.SigningAttempts.WithLabelValues(outcome).Inc()
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListProspects(w http.ResponseWriter, r *http.Request) {
	prospects, err := s.game.Prospects(r.Context(), sessionToken(r.Context()))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prospects)
}

type draftPickRequest struct {
	ProspectID string `json:"prospect_id"`
}

func (s *Server) handleDraftPick(w http.ResponseWriter, r *http.Request) {
	var req draftPickRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid body: %v", err))
		return
	}
	result, err := s.game.MakeDraftPick(r.Context(), sessionToken(r.Context()), req.ProspectID)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAdvanceDraft(w http.ResponseWriter, r *http.Request) {
	result, err := s.game.AdvanceDraft(r.Context(), sessionToken(r.Context()))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSimulateSeason(w http.ResponseWriter, r *http.Request) {
	summary, err := s.game.SimulateSeason(r.Context(), sessionToken(r.Context()))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	metrics.SeasonsSimulated.Inc()
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleAdvanceToSeason(w http.ResponseWriter, r *http.Request) {
	state, err := s.game.AdvanceToSeason(r.Context(), sessionToken(r.Context()))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

type strategyRequest struct {
	Strategy string `json:"strategy"`
}

func (s *Server) handleSetStrategy(w http.ResponseWriter, r *http.Request) {
	var req strategyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid body: %v", err))
		return
	}
	state, err := s.game.SetStrategy(r.Context(), sessionToken(r.Context()), game.StrategyType(req.Strategy))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"strategy": state.Strategy})
}

func (s *Server) handleFinances(w http.ResponseWriter, r *http.Request) {
	report, err := s.game.Finances(r.Context(), sessionToken(r.Context()))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleRationalCheck(w http.ResponseWriter, r *http.Request) {
	cost, err := strconv.ParseFloat(r.URL.Query().Get("cost"), 64)
	if err != nil || cost < 0 {
		writeError(w, http.StatusBadRequest, "cost query parameter must be a non-negative number")
		return
	}
	verdict, err := s.game.RationalCheck(r.Context(), sessionToken(r.Context()), cost)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, verdict)
}

func (s *Server) handleEvaluation(w http.ResponseWriter, r *http.Request) {
	eval, err := s.game.Evaluation(r.Context(), sessionToken(r.Context()))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, eval)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	entries, err := s.game.TopRuns(r.Context(), limit)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, game.ErrTeamNotFound),
		errors.Is(err, game.ErrPlayerNotFound),
		errors.Is(err, game.ErrProspectNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrWrongPhase), errors.Is(err, game.ErrGameOver):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.log.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
