package game

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
)

// Fairness buckets, in signed percentage points. Symmetric around zero;
// positive means the offering side is giving up more value.
const (
	FairnessFairBand   = 10.0
	FairnessSlightBand = 25.0
	FairnessHeavyBand  = 40.0
)

// Position-fit adjustments applied to the offering side's package value,
// based on the receiving team's existing depth at each incoming position.
const (
	tradePositionNeedBonus    = 8.0
	positionGlutPenalty  = 6.0
	positionThinDepth    = 2
	positionDeepDepth    = 4
	overCapIncomingRatio = 1.25
	overCapSalaryBuffer  = 5.0
)

// AI acceptance thresholds by difficulty: the minimum fairness score (from
// the offering side's perspective) the AI demands. Easier difficulties take
// worse deals.
var acceptThreshold = map[Difficulty]float64{
	DifficultyEasy:   -25,
	DifficultyMedium: -10,
	DifficultyHard:   0,
}

type TradeRisk struct {
	Score   int       `json:"score"`
	Level   RiskLevel `json:"level"`
	Reasons []string  `json:"reasons"`
}

type TradeEvaluation struct {
	Valid          bool      `json:"valid"`
	Reason         string    `json:"reason,omitempty"`
	FairnessScore  float64   `json:"fairness_score"`
	FromValue      float64   `json:"from_value"`
	ToValue        float64   `json:"to_value"`
	Analysis       string    `json:"analysis"`
	RiskAssessment TradeRisk `json:"risk_assessment"`
}

type SalaryCheck struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

func positionDepth(team *Team, pos Position) int {
	n := 0
	for _, p := range team.Roster {
		if p.Position == pos {
			n++
		}
	}
	return n
}

// positionFitAdjustment scores how well incoming players fit the receiving
// team's roster: thin positions reward the package, gluts penalize it.
func positionFitAdjustment(receiving *Team, incoming []Player) float64 {
	adj := 0.0
	for _, p := range incoming {
		depth := positionDepth(receiving, p.Position)
		if depth < positionThinDepth {
			adj += tradePositionNeedBonus
		} else if depth >= positionDeepDepth {
			adj -= positionGlutPenalty
		}
	}
	return adj
}

// ValidateTradeSalary enforces incoming-salary limits for both teams. A team
// over the cap may take back at most 125% of its outgoing salary plus a
// fixed buffer; a team under the cap may take back outgoing salary plus its
// remaining cap space. Violations carry the exact shortfall.
func ValidateTradeSalary(from, to *Team, offered, requested []Player) SalaryCheck {
	outFrom := totalSalary(offered)
	outTo := totalSalary(requested)

	if check := incomingSalaryCheck(from, outFrom, outTo); !check.Valid {
		return check
	}
	return incomingSalaryCheck(to, outTo, outFrom)
}

func incomingSalaryCheck(team *Team, outgoing, incoming float64) SalaryCheck {
	var limit float64
	if team.TotalSalary > SalaryCap {
		limit = outgoing*overCapIncomingRatio + overCapSalaryBuffer
	} else {
		limit = outgoing + (SalaryCap - team.TotalSalary)
	}
	if incoming > limit {
		short := incoming - limit
		return SalaryCheck{
			Valid: false,
			Reason: fmt.Sprintf("%s cannot absorb $%.1fM incoming salary (limit $%.1fM, over by $%.1fM)",
				team.Name, incoming, limit, short),
		}
	}
	return SalaryCheck{Valid: true}
}

func totalSalary(players []Player) float64 {
	total := 0.0
	for _, p := range players {
		total += p.Salary
	}
	return total
}

// Trade risk scoring weights. Risk is independent of fairness: a perfectly
// fair trade can still be a gamble.
const (
	riskStarOut       = 35
	riskYoungUnproven = 15
	riskFirstRoundOut = 20
	riskPickHeavy     = 10
	riskHighCutoff    = 60
	riskMediumCutoff  = 30

	youngUnprovenRating = 78
)

// AssessTradeRisk scores the offering side's exposure: stars leaving,
// unproven youth arriving, first-round picks going out, and pick-heavy
// returns all add risk.
func AssessTradeRisk(offered, requested []Player, picksOut, picksIn []DraftPick) TradeRisk {
	score := 0
	var reasons []string

	for _, p := range offered {
		if tier := TierOf(p); tier >= TierStar {
			score += riskStarOut
			reasons = append(reasons, fmt.Sprintf("trading away %s-tier player %s", tier, p.Name))
		}
	}
	for _, p := range requested {
		if p.Age <= youngAgeCutoff && p.OverallRating < youngUnprovenRating {
			score += riskYoungUnproven
			reasons = append(reasons, fmt.Sprintf("acquiring unproven %d-year-old %s", p.Age, p.Name))
		}
	}
	for _, pick := range picksOut {
		if pick.Round == 1 {
			score += riskFirstRoundOut
			reasons = append(reasons, "surrendering a first-round pick")
		}
	}
	if len(picksIn) > len(requested) {
		score += riskPickHeavy
		reasons = append(reasons, "return is picks-heavy relative to players")
	}

	level := RiskLow
	switch {
	case score >= riskHighCutoff:
		level = RiskHigh
	case score >= riskMediumCutoff:
		level = RiskMedium
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "no significant risk factors")
	}
	return TradeRisk{Score: score, Level: level, Reasons: reasons}
}

// EvaluateTrade values both packages, applies position fit, and returns a
// signed fairness score with an analysis verdict. It never executes
// anything; invalid trades come back with Valid=false and a reason.
func EvaluateTrade(from, to *Team, offered, requested []Player, picksOffered, picksRequested []DraftPick) TradeEvaluation {
	if len(offered) == 0 && len(picksOffered) == 0 {
		return TradeEvaluation{Valid: false, Reason: "offer includes no assets"}
	}
	if len(requested) == 0 && len(picksRequested) == 0 {
		return TradeEvaluation{Valid: false, Reason: "nothing requested in return"}
	}

	if check := ValidateTradeSalary(from, to, offered, requested); !check.Valid {
		return TradeEvaluation{Valid: false, Reason: check.Reason}
	}

	fromValue := PackageValue(offered) + PicksValue(picksOffered) + positionFitAdjustment(to, offered)
	toValue := PackageValue(requested) + PicksValue(picksRequested) + positionFitAdjustment(from, requested)

	avg := math.Max((fromValue+toValue)/2, 1)
	fairness := (fromValue - toValue) / avg * 100

	risk := AssessTradeRisk(offered, requested, picksOffered, picksRequested)

	return TradeEvaluation{
		Valid:          true,
		FairnessScore:  math.Round(fairness*10) / 10,
		FromValue:      math.Round(fromValue*10) / 10,
		ToValue:        math.Round(toValue*10) / 10,
		Analysis:       fairnessAnalysis(fairness, from.Name, to.Name),
		RiskAssessment: risk,
	}
}

func fairnessAnalysis(fairness float64, fromName, toName string) string {
	abs := math.Abs(fairness)
	winner, loser := toName, fromName
	if fairness < 0 {
		winner, loser = fromName, toName
	}
	switch {
	case abs <= FairnessFairBand:
		return "a fair deal for both sides"
	case abs <= FairnessSlightBand:
		return fmt.Sprintf("slightly favors %s", winner)
	case abs <= FairnessHeavyBand:
		return fmt.Sprintf("favors %s; %s should ask for more", winner, loser)
	default:
		return fmt.Sprintf("heavily favors %s; %s would be fleeced", winner, loser)
	}
}

// WouldAIAcceptTrade applies the difficulty threshold to a fairness score
// computed from the human offer's perspective. Positive fairness means the
// AI is receiving surplus value.
func WouldAIAcceptTrade(fairness float64, difficulty Difficulty) bool {
	threshold, ok := acceptThreshold[difficulty]
	if !ok {
		threshold = acceptThreshold[DifficultyMedium]
	}
	return fairness >= threshold
}

// TradeResult is the structured outcome of attempting a trade; operations
// report failures here instead of through errors.
type TradeResult struct {
	Accepted   bool            `json:"accepted"`
	Message    string          `json:"message"`
	Evaluation TradeEvaluation `json:"evaluation"`
	Proposal   *TradeProposal  `json:"proposal,omitempty"`
}

// ExecuteTrade moves players and picks between the two teams and restores
// the salary invariant on both rosters. Callers must have validated the
// trade already.
func ExecuteTrade(from, to *Team, offered, requested []Player, picksOffered, picksRequested []DraftPick) {
	for _, p := range offered {
		movePlayer(from, to, p.ID)
	}
	for _, p := range requested {
		movePlayer(to, from, p.ID)
	}
	for _, pick := range picksOffered {
		movePick(from, to, pick.ID)
	}
	for _, pick := range picksRequested {
		movePick(to, from, pick.ID)
	}
	from.RecalcSalary()
	to.RecalcSalary()
}

func movePlayer(from, to *Team, playerID string) {
	for i := range from.Roster {
		if from.Roster[i].ID == playerID {
			p := from.Roster[i]
			p.TeamID = to.ID
			p.IsStarter = false
			from.Roster = append(from.Roster[:i], from.Roster[i+1:]...)
			to.Roster = append(to.Roster, p)
			return
		}
	}
}

func movePick(from, to *Team, pickID string) {
	for i := range from.DraftPicks {
		if from.DraftPicks[i].ID == pickID {
			pick := from.DraftPicks[i]
			pick.CurrentTeamID = to.ID
			from.DraftPicks = append(from.DraftPicks[:i], from.DraftPicks[i+1:]...)
			to.DraftPicks = append(to.DraftPicks, pick)
			return
		}
	}
}

// AI counter-offer construction knobs.
const (
	aiStarWantChance  = 0.10
	aiPackageTarget   = 0.85
	aiPackageMinRatio = 0.50
	aiMaxPackageSize  = 3
	aiAddPickChance   = 0.4
)

// GenerateAITradeProposal builds an offer from the AI team for one of the
// user's players: usually the best non-star, occasionally a star. The AI
// assembles up to three of its own players targeting ~85% of the wanted
// player's value, topping up with a second-round pick some of the time.
// Returns nil when the AI cannot get close enough to a credible offer.
func GenerateAITradeProposal(rng *rand.Rand, aiTeam, userTeam *Team) *TradeProposal {
	wanted := pickWantedPlayer(rng, userTeam)
	if wanted == nil {
		return nil
	}
	targetValue := PlayerValue(*wanted) * aiPackageTarget

	candidates := make([]Player, len(aiTeam.Roster))
	copy(candidates, aiTeam.Roster)
	sort.Slice(candidates, func(i, j int) bool {
		return PlayerValue(candidates[i]) > PlayerValue(candidates[j])
	})

	var offer []Player
	offerValue := 0.0
	for _, c := range candidates {
		if len(offer) >= aiMaxPackageSize || offerValue >= targetValue {
			break
		}
		if TierOf(c) >= TierStar {
			continue // the AI does not give up its own stars unprompted
		}
		offer = append(offer, c)
		offerValue = PackageValue(offer)
	}
	if offerValue < targetValue*aiPackageMinRatio {
		return nil
	}

	proposal := &TradeProposal{
		FromTeamID:       aiTeam.ID,
		ToTeamID:         userTeam.ID,
		PlayersRequested: []string{wanted.ID},
		Status:           TradePending,
	}
	for _, p := range offer {
		proposal.PlayersOffered = append(proposal.PlayersOffered, p.ID)
	}

	if offerValue < targetValue && rng.Float64() < aiAddPickChance {
		for _, pick := range aiTeam.DraftPicks {
			if pick.Round == 2 {
				proposal.PicksOffered = append(proposal.PicksOffered, pick.ID)
				break
			}
		}
	}
	return proposal
}

func pickWantedPlayer(rng *rand.Rand, team *Team) *Player {
	var bestStar, bestOther *Player
	for i := range team.Roster {
		p := &team.Roster[i]
		if TierOf(*p) >= TierStar {
			if bestStar == nil || p.OverallRating > bestStar.OverallRating {
				bestStar = p
			}
		} else {
			if bestOther == nil || p.OverallRating > bestOther.OverallRating {
				bestOther = p
			}
		}
	}
	if bestStar != nil && rng.Float64() < aiStarWantChance {
		return bestStar
	}
	if bestOther != nil {
		return bestOther
	}
	return bestStar
}

// DescribeTrade renders a short human summary used for news items.
func DescribeTrade(from, to *Team, offered, requested []Player) string {
	return fmt.Sprintf("%s send %s to %s for %s",
		from.Name, playerNames(offered), to.Name, playerNames(requested))
}

func playerNames(players []Player) string {
	if len(players) == 0 {
		return "draft capital"
	}
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}
