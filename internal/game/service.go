package game

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store persists whole-session snapshots plus the cross-session leaderboard.
type Store interface {
	CreateSession(ctx context.Context, token string, state *GameState) error
	LoadState(ctx context.Context, token string) (*GameState, error)
	SaveState(ctx context.Context, token string, state *GameState) error
	RecordSeason(ctx context.Context, token, teamName string, result SeasonResult) error
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
}

type LeaderboardEntry struct {
	TeamName      string `json:"team_name"`
	Seasons       int    `json:"seasons"`
	TotalWins     int    `json:"total_wins"`
	Championships int    `json:"championships"`
	BestScore     int    `json:"best_score"`
}

// LeagueFn builds a fresh 30-team league for a new session.
type LeagueFn func(rng *rand.Rand) []Team

const (
	DefaultMaxSeasons = 5
	userMinRoster     = 8
	signingCapBuffer  = 0.0
)

type Service struct {
	store  Store
	league LeagueFn
	log    *slog.Logger
	mu     sync.Mutex
	rand   *rand.Rand
}

// NewService wires the game engine to its persistence. A zero seed gets a
// time-based one; fixed seeds make runs reproducible.
func NewService(store Store, league LeagueFn, logger *slog.Logger, seed int64) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Service{
		store:  store,
		league: league,
		log:    logger,
		rand:   rand.New(rand.NewSource(seed)),
	}
}

// NewSession starts a franchise run with the chosen team. The returned
// token authenticates every later call.
func (s *Service) NewSession(ctx context.Context, teamID string, difficulty Difficulty) (string, *GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seed := s.rand.Int63()
	rng := rand.New(rand.NewSource(seed))

	teams := s.league(rng)
	state := &GameState{
		SessionID:       uuid.NewString(),
		Season:          1,
		Phase:           PhasePreseason,
		Difficulty:      difficulty,
		Seed:            seed,
		FanApproval:     60,
		OwnerConfidence: 70,
		Teams:           teams,
		FreeAgents:      GenerateFreeAgents(rng, freeAgentPoolSize),
		Standings:       map[string]Record{},
		PlayoffResults:  map[string]PlayoffResult{},
		MaxSeasons:      DefaultMaxSeasons,
	}

	team := state.Team(teamID)
	if team == nil {
		return "", nil, ErrTeamNotFound
	}
	state.TeamID = teamID
	state.Strategy = ContextFor(team.ContextType).DefaultStrategy

	for i := range state.Teams {
		AssignStarters(&state.Teams[i])
		grantSeasonPicks(&state.Teams[i], 1)
	}

	token := uuid.NewString()
	if err := s.store.CreateSession(ctx, token, state); err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}
	s.log.Info("session created", "session_id", state.SessionID, "team", team.Name, "difficulty", difficulty)
	return token, state, nil
}

func grantSeasonPicks(team *Team, year int) {
	for round := 1; round <= DraftRounds; round++ {
		team.DraftPicks = append(team.DraftPicks, DraftPick{
			ID:             uuid.NewString(),
			Year:           year,
			Round:          round,
			OriginalTeamID: team.ID,
			CurrentTeamID:  team.ID,
		})
	}
}

// State returns the full session snapshot.
func (s *Service) State(ctx context.Context, token string) (*GameState, error) {
	return s.store.LoadState(ctx, token)
}

// withState is the mutation wrapper: load, transform, save. The whole
// snapshot is replaced on success; fn errors abort without persisting.
func (s *Service) withState(ctx context.Context, token string, fn func(*GameState, *rand.Rand) error) (*GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.LoadState(ctx, token)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(s.rand.Int63()))
	if err := fn(state, rng); err != nil {
		return nil, err
	}
	if err := s.store.SaveState(ctx, token, state); err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}
	return state, nil
}

type TradeRequest struct {
	ToTeamID         string   `json:"to_team_id"`
	PlayersOffered   []string `json:"players_offered"`
	PlayersRequested []string `json:"players_requested"`
	PicksOffered     []string `json:"picks_offered"`
	PicksRequested   []string `json:"picks_requested"`
}

func resolveTradeAssets(state *GameState, team *Team, playerIDs, pickIDs []string) ([]Player, []DraftPick, string) {
	var players []Player
	for _, id := range playerIDs {
		found := false
		for _, p := range team.Roster {
			if p.ID == id {
				players = append(players, p)
				found = true
				break
			}
		}
		if !found {
			return nil, nil, fmt.Sprintf("player %s is no longer on the %s roster", id, team.Name)
		}
	}
	var picks []DraftPick
	for _, id := range pickIDs {
		found := false
		for _, pk := range team.DraftPicks {
			if pk.ID == id {
				picks = append(picks, pk)
				found = true
				break
			}
		}
		if !found {
			return nil, nil, fmt.Sprintf("pick %s is not owned by the %s", id, team.Name)
		}
	}
	return players, picks, ""
}

// EvaluateTrade prices a proposed trade without executing it.
func (s *Service) EvaluateTrade(ctx context.Context, token string, req TradeRequest) (*TradeResult, error) {
	state, err := s.store.LoadState(ctx, token)
	if err != nil {
		return nil, err
	}
	result := evaluateTradeRequest(state, req)
	return &result, nil
}

func evaluateTradeRequest(state *GameState, req TradeRequest) TradeResult {
	from := state.UserTeam()
	to := state.Team(req.ToTeamID)
	if from == nil || to == nil || from.ID == to.ID {
		return TradeResult{Message: "unknown trade partner"}
	}

	offered, picksOut, msg := resolveTradeAssets(state, from, req.PlayersOffered, req.PicksOffered)
	if msg != "" {
		return TradeResult{Message: msg}
	}
	requested, picksIn, msg := resolveTradeAssets(state, to, req.PlayersRequested, req.PicksRequested)
	if msg != "" {
		return TradeResult{Message: msg}
	}

	eval := EvaluateTrade(from, to, offered, requested, picksOut, picksIn)
	if !eval.Valid {
		return TradeResult{Message: eval.Reason, Evaluation: eval}
	}
	return TradeResult{Accepted: true, Message: eval.Analysis, Evaluation: eval}
}

// ProposeTrade evaluates the trade and, when the AI front office accepts,
// executes it and logs the risk decision.
func (s *Service) ProposeTrade(ctx context.Context, token string, req TradeRequest) (*TradeResult, error) {
	var result TradeResult
	_, err := s.withState(ctx, token, func(state *GameState, rng *rand.Rand) error {
		if err := requirePhase(state, PhasePreseason, PhaseFreeAgency); err != nil {
			return err
		}

		from := state.UserTeam()
		to := state.Team(req.ToTeamID)
		if from == nil || to == nil || from.ID == to.ID {
			result = TradeResult{Message: "unknown trade partner"}
			return nil
		}

		offered, picksOut, msg := resolveTradeAssets(state, from, req.PlayersOffered, req.PicksOffered)
		if msg != "" {
			result = TradeResult{Message: msg}
			return nil
		}
		requested, picksIn, msg := resolveTradeAssets(state, to, req.PlayersRequested, req.PicksRequested)
		if msg != "" {
			result = TradeResult{Message: msg}
			return nil
		}
		if len(from.Roster)-len(offered) < userMinRoster {
			result = TradeResult{Message: fmt.Sprintf("the %s cannot dress fewer than %d players", from.Name, userMinRoster)}
			return nil
		}

		eval := EvaluateTrade(from, to, offered, requested, picksOut, picksIn)
		if !eval.Valid {
			result = TradeResult{Message: eval.Reason, Evaluation: eval}
			return nil
		}
		if !WouldAIAcceptTrade(eval.FairnessScore, state.Difficulty) {
			result = TradeResult{
				Message:    fmt.Sprintf("the %s decline: %s", to.Name, eval.Analysis),
				Evaluation: eval,
			}
			s.recordTradeProposal(state, from, to, req, eval, TradeRejected)
			return nil
		}

		ExecuteTrade(from, to, offered, requested, picksOut, picksIn)
		AssignStarters(to)
		proposal := s.recordTradeProposal(state, from, to, req, eval, TradeAccepted)

		state.RiskDecisions = append(state.RiskDecisions, RiskDecision{
			ID:          uuid.NewString(),
			Season:      state.Season,
			Kind:        DecisionTrade,
			Description: DescribeTrade(from, to, offered, requested),
			RiskLevel:   eval.RiskAssessment.Level,
			Outcome:     OutcomePending,
		})
		state.News = append(state.News, NewsItem{
			ID:      uuid.NewString(),
			Season:  state.Season,
			Week:    state.Week,
			Title:   "Trade completed",
			Body:    DescribeTrade(from, to, offered, requested),
			Type:    NewsTrade,
			TeamIDs: []string{from.ID, to.ID},
		})

		result = TradeResult{Accepted: true, Message: eval.Analysis, Evaluation: eval, Proposal: proposal}
		s.log.Info("trade executed", "session_id", state.SessionID, "partner", to.Name,
			"fairness", eval.FairnessScore, "risk", eval.RiskAssessment.Level)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Service) recordTradeProposal(state *GameState, from, to *Team, req TradeRequest, eval TradeEvaluation, status TradeStatus) *TradeProposal {
	proposal := TradeProposal{
		ID:               uuid.NewString(),
		FromTeamID:       from.ID,
		ToTeamID:         to.ID,
		PlayersOffered:   req.PlayersOffered,
		PlayersRequested: req.PlayersRequested,
		PicksOffered:     req.PicksOffered,
		PicksRequested:   req.PicksRequested,
		Status:           status,
		FairnessScore:    int(math.Round(eval.FairnessScore)),
	}
	state.TradeHistory = append(state.TradeHistory, proposal)
	return &state.TradeHistory[len(state.TradeHistory)-1]
}

type SigningResult struct {
	Success  bool    `json:"success"`
	Message  string  `json:"message"`
	Interest int     `json:"interest"`
	Player   *Player `json:"player,omitempty"`
}

// OfferFreeAgent makes a contract offer. Rejections are results, not
// errors; the shortfall or the agent's cold feet come back as text.
func (s *Service) OfferFreeAgent(ctx context.Context, token, playerID string, salary float64, years int) (*SigningResult, error) {
	var result SigningResult
	_, err := s.withState(ctx, token, func(state *GameState, rng *rand.Rand) error {
		if err := requirePhase(state, PhasePreseason, PhaseFreeAgency); err != nil {
			return err
		}
		if salary <= 0 || years <= 0 || years > 5 {
			result = SigningResult{Message: "offer must have a positive salary and 1-5 years"}
			return nil
		}

		idx := -1
		for i, fa := range state.FreeAgents {
			if fa.Player.ID == playerID {
				idx = i
				break
			}
		}
		if idx < 0 {
			result = SigningResult{Message: "that free agent is no longer available"}
			return nil
		}
		fa := state.FreeAgents[idx]

		team := state.UserTeam()
		capSpace := SalaryCap - team.TotalSalary
		if salary > capSpace+signingCapBuffer {
			result = SigningResult{Message: fmt.Sprintf(
				"offer of $%.1fM exceeds cap space by $%.1fM", salary, salary-capSpace)}
			return nil
		}

		interest := CalculatePlayerInterest(fa, team, salary)
		if !WillAcceptOffer(interest, state.Difficulty) {
			result = SigningResult{
				Message:  fmt.Sprintf("%s passes on the offer (interest %d)", fa.Player.Name, interest),
				Interest: interest,
			}
			return nil
		}

		signed := SignFreeAgent(team, fa, salary, years)
		state.FreeAgents = append(state.FreeAgents[:idx], state.FreeAgents[idx+1:]...)
		AssignStarters(team)

		state.RiskDecisions = append(state.RiskDecisions, RiskDecision{
			ID:          uuid.NewString(),
			Season:      state.Season,
			Kind:        DecisionSigning,
			Description: fmt.Sprintf("signed %s for $%.1fM x %d years", signed.Name, salary, years),
			RiskLevel:   SigningRisk(salary),
			Outcome:     OutcomePending,
		})
		state.News = append(state.News, NewsItem{
			ID:     uuid.NewString(),
			Season: state.Season,
			Week:   state.Week,
			Title:  fmt.Sprintf("%s sign %s", team.Name, signed.Name),
			Body: fmt.Sprintf("%s agreed to a %d-year, $%.1fM-per-year contract with the %s.",
				signed.Name, years, salary, team.Name),
			Type:    NewsFreeAgency,
			TeamIDs: []string{team.ID},
		})

		result = SigningResult{
			Success:  true,
			Message:  fmt.Sprintf("%s joins the %s", signed.Name, team.Name),
			Interest: interest,
			Player:   &signed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

type DraftResult struct {
	Success    bool    `json:"success"`
	Message    string  `json:"message"`
	Player     *Player `json:"player,omitempty"`
	PickNumber int     `json:"pick_number,omitempty"`
	OnClock    string  `json:"on_clock,omitempty"`
	Complete   bool    `json:"complete"`
}

// Prospects lists the remaining draft board.
func (s *Service) Prospects(ctx context.Context, token string) ([]DraftProspect, error) {
	state, err := s.store.LoadState(ctx, token)
	if err != nil {
		return nil, err
	}
	return state.DraftProspects, nil
}

// MakeDraftPick selects a prospect with the user's current pick, then runs
// AI picks forward to the user's next turn or the end of the draft.
func (s *Service) MakeDraftPick(ctx context.Context, token, prospectID string) (*DraftResult, error) {
	var result DraftResult
	_, err := s.withState(ctx, token, func(state *GameState, rng *rand.Rand) error {
		if err := requirePhase(state, PhaseDraft); err != nil {
			return err
		}
		if onClock(state) != state.TeamID {
			result = DraftResult{Message: "it is not your pick"}
			return nil
		}

		idx := -1
		for i, p := range state.DraftProspects {
			if p.ID == prospectID {
				idx = i
				break
			}
		}
		if idx < 0 {
			result = DraftResult{Message: "that prospect is already off the board"}
			return nil
		}

		prospect := state.DraftProspects[idx]
		pickNumber := state.DraftPickIndex + 1
		player := s.draftProspect(state, rng, state.UserTeam(), idx, pickNumber)

		state.RiskDecisions = append(state.RiskDecisions, RiskDecision{
			ID:          uuid.NewString(),
			Season:      state.Season,
			Kind:        DecisionDraft,
			Description: fmt.Sprintf("drafted %s at pick %d (variance %d)", prospect.Name, pickNumber, prospect.Variance),
			RiskLevel:   DraftRisk(prospect.Variance),
			Outcome:     OutcomePending,
		})

		s.advanceAIPicks(state, rng)
		result = DraftResult{
			Success:    true,
			Message:    fmt.Sprintf("drafted %s", player.Name),
			Player:     &player,
			PickNumber: pickNumber,
			OnClock:    onClock(state),
			Complete:   state.Phase != PhaseDraft,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// AdvanceDraft runs AI picks until the user is on the clock or the draft
// ends.
func (s *Service) AdvanceDraft(ctx context.Context, token string) (*DraftResult, error) {
	var result DraftResult
	_, err := s.withState(ctx, token, func(state *GameState, rng *rand.Rand) error {
		if err := requirePhase(state, PhaseDraft); err != nil {
			return err
		}
		s.advanceAIPicks(state, rng)
		result = DraftResult{
			Success:  true,
			Message:  "draft advanced",
			OnClock:  onClock(state),
			Complete: state.Phase != PhaseDraft,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func onClock(state *GameState) string {
	if state.DraftPickIndex >= len(state.DraftOrder) {
		return ""
	}
	return state.DraftOrder[state.DraftPickIndex]
}

func (s *Service) draftProspect(state *GameState, rng *rand.Rand, team *Team, prospectIdx, pickNumber int) Player {
	prospect := state.DraftProspects[prospectIdx]
	player := DraftProspectToPlayer(rng, prospect, team.ID, pickNumber)
	team.Roster = append(team.Roster, player)
	team.RecalcSalary()
	state.DraftProspects = append(state.DraftProspects[:prospectIdx], state.DraftProspects[prospectIdx+1:]...)
	state.News = append(state.News, DraftOutcomeNews(state.Season, team, prospect, pickNumber))
	state.DraftPickIndex++
	return player
}

func (s *Service) advanceAIPicks(state *GameState, rng *rand.Rand) {
	for state.DraftPickIndex < len(state.DraftOrder) && len(state.DraftProspects) > 0 {
		teamID := state.DraftOrder[state.DraftPickIndex]
		if teamID == state.TeamID {
			return
		}
		team := state.Team(teamID)
		idx := AIDraftSelect(team, state.DraftProspects)
		if idx < 0 {
			break
		}
		s.draftProspect(state, rng, team, idx, state.DraftPickIndex+1)
	}
	state.Phase = PhaseFreeAgency
	maybeProposeTrade(rng, state)
	s.log.Info("draft complete", "session_id", state.SessionID, "season", state.Season)
}

type SeasonSummary struct {
	Season        int            `json:"season"`
	Wins          int            `json:"wins"`
	Losses        int            `json:"losses"`
	PlayoffResult PlayoffResult  `json:"playoff_result"`
	ChampionID    string         `json:"champion_id"`
	MVP           string         `json:"mvp"`
	Financials    FinancialState `json:"financials"`
	RiskRating    RiskRating     `json:"risk_rating"`
	Volatility    float64        `json:"volatility"`
	GameOver      bool           `json:"game_over"`
}

// SimulateSeason plays out the regular season and playoffs, settles the
// books, resolves the season's risk decisions, and rolls into the
// offseason draft (or ends the run after the final season).
func (s *Service) SimulateSeason(ctx context.Context, token string) (*SeasonSummary, error) {
	var summary SeasonSummary
	_, err := s.withState(ctx, token, func(state *GameState, rng *rand.Rand) error {
		if err := requirePhase(state, PhasePreseason, PhaseFreeAgency); err != nil {
			return err
		}
		if state.Phase == PhaseFreeAgency {
			ProcessAIOffseason(rng, state)
			AssignStarters(state.UserTeam())
		}
		expireIncomingProposals(state)

		state.Phase = PhaseRegularSeason
		state.Week = 0
		state.Standings = map[string]Record{}
		state.PlayoffBracket = nil
		state.PlayoffResults = map[string]PlayoffResult{}
		weeks := SimulateRegularSeason(rng, state)
		for _, w := range weeks {
			state.News = append(state.News, injuryNews(state, w)...)
		}

		state.Phase = PhasePlayoffs
		championID := SimulatePlayoffs(rng, state)
		mvp := SeasonMVP(state)

		team := state.UserTeam()
		playoffResult, made := state.PlayoffResults[team.ID]
		if !made {
			playoffResult = PlayoffMissed
		}

		fin := GenerateFinancialReport(team, team.Wins, PlayoffRound(playoffResult),
			championID == team.ID, state.ConsecutiveTaxYears)
		state.ConsecutiveTaxYears = fin.ConsecutiveTaxYears

		ResolveSeasonDecisions(state.RiskDecisions, state.Season, team.Wins, made)

		result := SeasonResult{
			Season:        state.Season,
			Wins:          team.Wins,
			Losses:        team.Losses,
			PlayoffResult: playoffResult,
			MVP:           mvp,
			Financials:    fin,
			RiskRating:    SeasonRiskRating(state.RiskDecisions, state.Season),
		}
		state.SeasonResults = append(state.SeasonResults, result)
		vol := ComputeVolatility(state.SeasonWins(), state.RiskDecisions)
		state.SeasonResults[len(state.SeasonResults)-1].Volatility = vol.WinStdDev

		adjustApproval(state, playoffResult, championID == team.ID, fin.Profit)
		state.News = append(state.News, seasonNews(state, championID, mvp)...)

		if err := s.store.RecordSeason(ctx, token, team.Name, state.SeasonResults[len(state.SeasonResults)-1]); err != nil {
			s.log.Warn("record season", "error", err)
		}

		gameOver := state.Season >= state.MaxSeasons
		if gameOver {
			state.Phase = PhaseSeasonEnd
		} else {
			startOffseason(state, rng)
		}

		summary = SeasonSummary{
			Season:        result.Season,
			Wins:          result.Wins,
			Losses:        result.Losses,
			PlayoffResult: playoffResult,
			ChampionID:    championID,
			MVP:           mvp,
			Financials:    fin,
			RiskRating:    result.RiskRating,
			Volatility:    vol.WinStdDev,
			GameOver:      gameOver,
		}
		s.log.Info("season simulated", "session_id", state.SessionID, "season", result.Season,
			"wins", result.Wins, "playoffs", playoffResult, "profit", fin.Profit)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func adjustApproval(state *GameState, result PlayoffResult, champion bool, profit float64) {
	switch {
	case champion:
		state.FanApproval += 20
		state.OwnerConfidence += 15
	case result != PlayoffMissed:
		state.FanApproval += 8
		state.OwnerConfidence += 5
	default:
		state.FanApproval -= 10
		state.OwnerConfidence -= 5
	}
	if profit < 0 {
		state.OwnerConfidence -= 10
	} else if profit > 20 {
		state.OwnerConfidence += 5
	}
	state.FanApproval = clampPct(state.FanApproval)
	state.OwnerConfidence = clampPct(state.OwnerConfidence)
}

func clampPct(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func seasonNews(state *GameState, championID, mvp string) []NewsItem {
	var items []NewsItem
	if champ := state.Team(championID); champ != nil {
		items = append(items, NewsItem{
			ID:      uuid.NewString(),
			Season:  state.Season,
			Title:   fmt.Sprintf("%s win the championship", champ.Name),
			Body:    fmt.Sprintf("The %s captured the title in season %d. %s took home MVP honors.", champ.Name, state.Season, mvp),
			Type:    NewsSeason,
			TeamIDs: []string{champ.ID},
		})
	}
	return items
}

// startOffseason rolls the league forward: aging, contract decay, expiring
// deals hitting free agency, fresh draft class and order, new season picks.
func startOffseason(state *GameState, rng *rand.Rand) {
	// draft order comes off the season that just ended, before records reset
	state.DraftOrder = BuildDraftOrder(state)
	state.DraftPickIndex = 0

	// standings and playoff results stay visible through the offseason;
	// they reset when the next regular season tips off
	state.Season++
	state.Week = 0

	for i := range state.Teams {
		team := &state.Teams[i]
		team.Wins, team.Losses = 0, 0

		kept := team.Roster[:0]
		for _, p := range team.Roster {
			p.Age++
			p.ContractYears--
			p.Experience++
			if p.ContractYears <= 0 {
				p.TeamID = ""
				p.ContractYears = 0
				state.FreeAgents = append(state.FreeAgents, FreeAgent{
					Player:      p,
					AskingPrice: math.Round(ExpectedSalary(p.OverallRating)*10) / 10,
					YearsWanted: 1 + rng.Intn(3),
				})
				continue
			}
			kept = append(kept, p)
		}
		team.Roster = kept
		team.RecalcSalary()
		grantSeasonPicks(team, state.Season)
	}

	state.FreeAgents = append(state.FreeAgents, GenerateFreeAgents(rng, freeAgentPoolSize/2)...)
	state.DraftProspects = GenerateDraftClass(rng)
	state.Phase = PhaseDraft
}

// RunAIShopping lets the AI front offices work the free-agent market
// without closing the phase. The background worker calls this for sessions
// idling in free agency so the pool keeps moving.
func (s *Service) RunAIShopping(ctx context.Context, token string) error {
	_, err := s.withState(ctx, token, func(state *GameState, rng *rand.Rand) error {
		if state.Phase != PhaseFreeAgency {
			return nil
		}
		ProcessAIOffseason(rng, state)
		maybeProposeTrade(rng, state)
		return nil
	})
	return err
}

// AdvanceToSeason closes free agency: AI front offices finish their
// shopping and lineups reset for the new year.
func (s *Service) AdvanceToSeason(ctx context.Context, token string) (*GameState, error) {
	return s.withState(ctx, token, func(state *GameState, rng *rand.Rand) error {
		if err := requirePhase(state, PhaseFreeAgency); err != nil {
			return err
		}
		ProcessAIOffseason(rng, state)
		AssignStarters(state.UserTeam())
		state.Phase = PhasePreseason
		return nil
	})
}

// SetStrategy changes the franchise strategy and logs it as a risk
// decision.
func (s *Service) SetStrategy(ctx context.Context, token string, strategy StrategyType) (*GameState, error) {
	return s.withState(ctx, token, func(state *GameState, rng *rand.Rand) error {
		if _, ok := strategies[strategy]; !ok {
			return fmt.Errorf("unknown strategy %q", strategy)
		}
		if state.Strategy == strategy {
			return nil
		}
		state.Strategy = strategy
		fit := StrategyCompatibility(state.UserTeam().ContextType, strategy)
		state.RiskDecisions = append(state.RiskDecisions, RiskDecision{
			ID:          uuid.NewString(),
			Season:      state.Season,
			Kind:        DecisionStrategy,
			Description: fmt.Sprintf("switched strategy to %s (%s fit for this franchise)", strategy, fit),
			RiskLevel:   StrategyRisk(strategy),
			Outcome:     OutcomePending,
		})
		return nil
	})
}

type FinancesReport struct {
	Current    FinancialState  `json:"current"`
	Health     FinancialHealth `json:"health"`
	CapSpace   float64         `json:"cap_space"`
	TaxPayroll float64         `json:"tax_payroll"`
}

// Finances projects the user team's books at the current payroll.
func (s *Service) Finances(ctx context.Context, token string) (*FinancesReport, error) {
	state, err := s.store.LoadState(ctx, token)
	if err != nil {
		return nil, err
	}
	team := state.UserTeam()
	playoffResult := PlayoffMissed
	if r, ok := state.PlayoffResults[team.ID]; ok {
		playoffResult = r
	}
	fin := GenerateFinancialReport(team, team.Wins, PlayoffRound(playoffResult),
		playoffResult == PlayoffChampion, state.ConsecutiveTaxYears)
	return &FinancesReport{
		Current:    fin,
		Health:     AnalyzeFinancialHealth(fin),
		CapSpace:   math.Round(state.CapSpace()*10) / 10,
		TaxPayroll: math.Round((team.TotalSalary-LuxuryTaxThreshold)*10) / 10,
	}, nil
}

// RationalCheck classifies a hypothetical commitment against the team's
// risk capacity.
func (s *Service) RationalCheck(ctx context.Context, token string, actionCost float64) (*AggressionVerdict, error) {
	state, err := s.store.LoadState(ctx, token)
	if err != nil {
		return nil, err
	}
	verdict := IsRationalAggression(state.UserTeam(), actionCost)
	return &verdict, nil
}

// Evaluation scores the run so far; final once the last season is played.
func (s *Service) Evaluation(ctx context.Context, token string) (*Evaluation, error) {
	state, err := s.store.LoadState(ctx, token)
	if err != nil {
		return nil, err
	}
	eval := EvaluateRun(state.UserTeam().ContextType, state.SeasonResults, state.RiskDecisions)
	return &eval, nil
}

// TopRuns returns the cross-session leaderboard.
func (s *Service) TopRuns(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.store.Leaderboard(ctx, limit)
}

func requirePhase(state *GameState, allowed ...Phase) error {
	if state.Phase == PhaseSeasonEnd && state.Season >= state.MaxSeasons {
		return ErrGameOver
	}
	for _, p := range allowed {
		if state.Phase == p {
			return nil
		}
	}
	return fmt.Errorf("%w: in %s", ErrWrongPhase, state.Phase)
}
