package game

import "errors"

type Position string

const (
	PointGuard    Position = "PG"
	ShootingGuard Position = "SG"
	SmallForward  Position = "SF"
	PowerForward  Position = "PF"
	Center        Position = "C"
)

var Positions = []Position{PointGuard, ShootingGuard, SmallForward, PowerForward, Center}

type Conference string

const (
	Eastern Conference = "Eastern"
	Western Conference = "Western"
)

type MarketSize string

const (
	MarketLarge  MarketSize = "large"
	MarketMedium MarketSize = "medium"
	MarketSmall  MarketSize = "small"
)

type ContextType string

const (
	LegacyPower       ContextType = "legacy_power"
	SmallMarketReset  ContextType = "small_market_reset"
	RevenueSensitive  ContextType = "revenue_sensitive"
	CashRichExpansion ContextType = "cash_rich_expansion"
	StarDependent     ContextType = "star_dependent"
)

type StrategyType string

const (
	StabilityFirst StrategyType = "stability_first"
	AggressivePush StrategyType = "aggressive_push"
	BoomBustSwing  StrategyType = "boom_bust_swing"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type Phase string

const (
	PhaseTeamSelection Phase = "team_selection"
	PhasePreseason     Phase = "preseason"
	PhaseRegularSeason Phase = "regular_season"
	PhasePlayoffs      Phase = "playoffs"
	PhaseSeasonEnd     Phase = "season_end"
	PhaseDraft         Phase = "offseason_draft"
	PhaseFreeAgency    Phase = "offseason_free_agency"
)

type PlayoffResult string

const (
	PlayoffMissed      PlayoffResult = "missed"
	PlayoffFirstRound  PlayoffResult = "first_round"
	PlayoffSecondRound PlayoffResult = "second_round"
	PlayoffConfFinals  PlayoffResult = "conference_finals"
	PlayoffFinals      PlayoffResult = "finals"
	PlayoffChampion    PlayoffResult = "champion"
)

// PlayoffRound maps a playoff result to the deepest round reached; finals
// and champion both count as round 4 for revenue purposes.
func PlayoffRound(result PlayoffResult) int {
	switch result {
	case PlayoffFirstRound:
		return 1
	case PlayoffSecondRound:
		return 2
	case PlayoffConfFinals:
		return 3
	case PlayoffFinals, PlayoffChampion:
		return 4
	default:
		return 0
	}
}

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

type Outcome string

const (
	OutcomePending Outcome = "pending"
	OutcomeSuccess Outcome = "success"
	OutcomeNeutral Outcome = "neutral"
	OutcomeFailure Outcome = "failure"
)

// All money figures are annual amounts in millions of dollars.
const (
	SalaryCap          = 140.0
	LuxuryTaxThreshold = 170.0
	SalaryFloor        = 110.0
	RepeaterTaxYears   = 3
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrProspectNotFound = errors.New("prospect not found")
	ErrTeamNotFound     = errors.New("team not found")
	ErrWrongPhase       = errors.New("action not allowed in current phase")
	ErrGameOver         = errors.New("the run is complete")
)

type Player struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Position      Position `json:"position"`
	Age           int      `json:"age"`
	OverallRating int      `json:"overall_rating"`
	Potential     int      `json:"potential"`
	Offense       int      `json:"offense"`
	Defense       int      `json:"defense"`
	Athleticism   int      `json:"athleticism"`
	BasketballIQ  int      `json:"basketball_iq"`
	Durability    int      `json:"durability"`
	Salary        float64  `json:"salary"`
	ContractYears int      `json:"contract_years"`
	TeamID        string   `json:"team_id"`
	IsStarter     bool     `json:"is_starter"`
	IsStar        bool     `json:"is_star"`
	Morale        int      `json:"morale"`
	Experience    int      `json:"experience"`
}

type Team struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	City         string      `json:"city"`
	Abbreviation string      `json:"abbreviation"`
	Conference   Conference  `json:"conference"`
	Division     string      `json:"division"`
	ContextType  ContextType `json:"context_type"`
	MarketSize   MarketSize  `json:"market_size"`
	Fanbase      int         `json:"fanbase"`
	Prestige     int         `json:"prestige"`
	TotalSalary  float64     `json:"total_salary"`
	Wins         int         `json:"wins"`
	Losses       int         `json:"losses"`
	Roster       []Player    `json:"roster"`
	DraftPicks   []DraftPick `json:"draft_picks"`
}

// RecalcSalary re-derives TotalSalary from the roster. Every roster mutation
// must be followed by this so the stored figure never drifts from the sum of
// individual salaries.
func (t *Team) RecalcSalary() {
	total := 0.0
	for _, p := range t.Roster {
		total += p.Salary
	}
	t.TotalSalary = total
}

type DraftPick struct {
	ID                string `json:"id"`
	Year              int    `json:"year"`
	Round             int    `json:"round"`
	OriginalTeamID    string `json:"original_team_id"`
	CurrentTeamID     string `json:"current_team_id"`
	ProjectedPosition int    `json:"projected_position,omitempty"`
}

type DraftProspect struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Position      Position `json:"position"`
	Age           int      `json:"age"`
	College       string   `json:"college"`
	OverallRating int      `json:"overall_rating"`
	Potential     int      `json:"potential"`
	Floor         int      `json:"floor"`
	Ceiling       int      `json:"ceiling"`
	Variance      int      `json:"variance"`
	Offense       int      `json:"offense"`
	Defense       int      `json:"defense"`
	Athleticism   int      `json:"athleticism"`
	BasketballIQ  int      `json:"basketball_iq"`
}

type FreeAgent struct {
	Player      Player  `json:"player"`
	AskingPrice float64 `json:"asking_price"`
	YearsWanted int     `json:"years_wanted"`
}

type TradeStatus string

const (
	TradePending  TradeStatus = "pending"
	TradeAccepted TradeStatus = "accepted"
	TradeRejected TradeStatus = "rejected"
)

type TradeProposal struct {
	ID               string      `json:"id"`
	FromTeamID       string      `json:"from_team_id"`
	ToTeamID         string      `json:"to_team_id"`
	PlayersOffered   []string    `json:"players_offered"`
	PlayersRequested []string    `json:"players_requested"`
	PicksOffered     []string    `json:"picks_offered"`
	PicksRequested   []string    `json:"picks_requested"`
	Status           TradeStatus `json:"status"`
	FairnessScore    int         `json:"fairness_score"`
}

type FinancialState struct {
	SalaryCap           float64 `json:"salary_cap"`
	LuxuryTaxThreshold  float64 `json:"luxury_tax_threshold"`
	SalaryFloor         float64 `json:"salary_floor"`
	CurrentPayroll      float64 `json:"current_payroll"`
	LuxuryTaxOwed       float64 `json:"luxury_tax_owed"`
	Revenue             float64 `json:"revenue"`
	Expenses            float64 `json:"expenses"`
	Profit              float64 `json:"profit"`
	ConsecutiveTaxYears int     `json:"consecutive_tax_years"`
}

type DecisionKind string

const (
	DecisionTrade    DecisionKind = "trade"
	DecisionSigning  DecisionKind = "signing"
	DecisionDraft    DecisionKind = "draft"
	DecisionStrategy DecisionKind = "strategy"
)

type RiskDecision struct {
	ID          string       `json:"id"`
	Season      int          `json:"season"`
	Kind        DecisionKind `json:"kind"`
	Description string       `json:"description"`
	RiskLevel   RiskLevel    `json:"risk_level"`
	Outcome     Outcome      `json:"outcome"`
}

type RiskRating string

const (
	RatingAggressive   RiskRating = "aggressive"
	RatingBalanced     RiskRating = "balanced"
	RatingConservative RiskRating = "conservative"
)

type SeasonResult struct {
	Season        int            `json:"season"`
	Wins          int            `json:"wins"`
	Losses        int            `json:"losses"`
	PlayoffResult PlayoffResult  `json:"playoff_result"`
	MVP           string         `json:"mvp"`
	Financials    FinancialState `json:"financials"`
	RiskRating    RiskRating     `json:"risk_rating"`
	Volatility    float64        `json:"volatility"`
}

type VolatilityRating string

const (
	VolatilityStable   VolatilityRating = "stable"
	VolatilityModerate VolatilityRating = "moderate"
	VolatilityVolatile VolatilityRating = "volatile"
	VolatilityExtreme  VolatilityRating = "extreme"
)

type VolatilityMetrics struct {
	WinVariance   float64          `json:"win_variance"`
	WinStdDev     float64          `json:"win_std_dev"`
	DecisionCount int              `json:"decision_count"`
	BigSwingCount int              `json:"big_swing_count"`
	Rating        VolatilityRating `json:"rating"`
}

type NewsType string

const (
	NewsTrade      NewsType = "trade"
	NewsInjury     NewsType = "injury"
	NewsDraft      NewsType = "draft"
	NewsFreeAgency NewsType = "free_agency"
	NewsSeason     NewsType = "season"
	NewsGeneral    NewsType = "general"
)

type NewsItem struct {
	ID      string   `json:"id"`
	Week    int      `json:"week"`
	Season  int      `json:"season"`
	Title   string   `json:"title"`
	Body    string   `json:"body"`
	Type    NewsType `json:"type"`
	TeamIDs []string `json:"team_ids"`
}

type SimulatedGame struct {
	HomeTeamID string `json:"home_team_id"`
	AwayTeamID string `json:"away_team_id"`
	HomeScore  int    `json:"home_score"`
	AwayScore  int    `json:"away_score"`
	WinnerID   string `json:"winner_id"`
}

type InjuryEvent struct {
	PlayerID string `json:"player_id"`
	TeamID   string `json:"team_id"`
	Severity string `json:"severity"`
	WeeksOut int    `json:"weeks_out"`
}

type SimulationWeek struct {
	Week     int             `json:"week"`
	Games    []SimulatedGame `json:"games"`
	Injuries []InjuryEvent   `json:"injuries"`
}

type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

type SeriesResult struct {
	Team1ID  string `json:"team1_id"`
	Team2ID  string `json:"team2_id"`
	Team1Won int    `json:"team1_won"`
	Team2Won int    `json:"team2_won"`
	WinnerID string `json:"winner_id"`
}

type BracketRound struct {
	Round    string         `json:"round"`
	Matchups []SeriesResult `json:"matchups"`
}

// GameState is the whole-session aggregate. Every mutating operation loads
// it, transforms it, and replaces it wholesale; no partial writes.
type GameState struct {
	SessionID           string                   `json:"session_id"`
	TeamID              string                   `json:"team_id"`
	Season              int                      `json:"season"`
	Week                int                      `json:"week"`
	Phase               Phase                    `json:"phase"`
	Strategy            StrategyType             `json:"strategy"`
	Difficulty          Difficulty               `json:"difficulty"`
	Seed                int64                    `json:"seed"`
	FanApproval         int                      `json:"fan_approval"`
	OwnerConfidence     int                      `json:"owner_confidence"`
	ConsecutiveTaxYears int                      `json:"consecutive_tax_years"`
	Teams               []Team                   `json:"teams"`
	FreeAgents          []FreeAgent              `json:"free_agents"`
	DraftProspects      []DraftProspect          `json:"draft_prospects"`
	DraftOrder          []string                 `json:"draft_order"`
	DraftPickIndex      int                      `json:"draft_pick_index"`
	TradeHistory        []TradeProposal          `json:"trade_history"`
	RiskDecisions       []RiskDecision           `json:"risk_decisions"`
	SeasonResults       []SeasonResult           `json:"season_results"`
	Standings           map[string]Record        `json:"standings"`
	PlayoffBracket      []BracketRound           `json:"playoff_bracket"`
	PlayoffResults      map[string]PlayoffResult `json:"playoff_results"`
	News                []NewsItem               `json:"news"`
	MaxSeasons          int                      `json:"max_seasons"`
}

// Team returns a pointer into Teams for the given id, or nil.
func (g *GameState) Team(id string) *Team {
	for i := range g.Teams {
		if g.Teams[i].ID == id {
			return &g.Teams[i]
		}
	}
	return nil
}

// UserTeam returns the team the session's player manages.
func (g *GameState) UserTeam() *Team {
	return g.Team(g.TeamID)
}

// Player searches every roster for the given player id. Rosters are the
// single source of truth; free agents are looked up separately.
func (g *GameState) Player(id string) *Player {
	for t := range g.Teams {
		for i := range g.Teams[t].Roster {
			if g.Teams[t].Roster[i].ID == id {
				return &g.Teams[t].Roster[i]
			}
		}
	}
	return nil
}

// PlayerTeam returns the team currently holding the player, or nil.
func (g *GameState) PlayerTeam(id string) *Team {
	for t := range g.Teams {
		for i := range g.Teams[t].Roster {
			if g.Teams[t].Roster[i].ID == id {
				return &g.Teams[t]
			}
		}
	}
	return nil
}

// CapSpace is the user team's room under the soft cap; negative once the
// payroll is over it.
func (g *GameState) CapSpace() float64 {
	team := g.UserTeam()
	if team == nil {
		return SalaryCap
	}
	return SalaryCap - team.TotalSalary
}

// SeasonWins lists the user's win totals for each completed season, oldest
// first.
func (g *GameState) SeasonWins() []int {
	wins := make([]int, 0, len(g.SeasonResults))
	for _, r := range g.SeasonResults {
		wins = append(wins, r.Wins)
	}
	return wins
}
