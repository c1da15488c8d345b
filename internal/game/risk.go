package game

import (
	"fmt"
	"math"
)

// Contract-size risk buckets for free-agent signings, annual $M.
const (
	signingMediumSalary = 15.0
	signingHighSalary   = 25.0
)

// SigningRisk buckets a signing by annual salary.
func SigningRisk(salary float64) RiskLevel {
	switch {
	case salary > signingHighSalary:
		return RiskHigh
	case salary >= signingMediumSalary:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Prospect-variance risk buckets for draft picks.
const (
	draftMediumVariance = 10
	draftHighVariance   = 18
)

// DraftRisk buckets a pick by the prospect's outcome variance.
func DraftRisk(variance int) RiskLevel {
	switch {
	case variance > draftHighVariance:
		return RiskHigh
	case variance >= draftMediumVariance:
		return RiskMedium
	default:
		return RiskLow
	}
}

// StrategyRisk is fixed per strategy archetype.
func StrategyRisk(s StrategyType) RiskLevel {
	return StrategyFor(s).RiskLevel
}

// Season-resolution thresholds.
const (
	successWinThreshold = 45
	failureWinThreshold = 35
)

// ResolveSeasonDecisions settles every pending decision from the given
// season. Clearing the win threshold or reaching the playoffs is a success.
// A high-risk decision in a season that both misses the playoffs and falls
// under the failure threshold is marked a failure; everything else lands
// neutral.
func ResolveSeasonDecisions(decisions []RiskDecision, season, wins int, madePlayoffs bool) {
	for i := range decisions {
		d := &decisions[i]
		if d.Season != season || d.Outcome != OutcomePending {
			continue
		}
		switch {
		case wins >= successWinThreshold || madePlayoffs:
			d.Outcome = OutcomeSuccess
		case d.RiskLevel == RiskHigh && wins < failureWinThreshold && !madePlayoffs:
			d.Outcome = OutcomeFailure
		default:
			d.Outcome = OutcomeNeutral
		}
	}
}

// SeasonRiskRating summarizes one season's decisions.
func SeasonRiskRating(decisions []RiskDecision, season int) RiskRating {
	high, medium := 0, 0
	for _, d := range decisions {
		if d.Season != season {
			continue
		}
		switch d.RiskLevel {
		case RiskHigh:
			high++
		case RiskMedium:
			medium++
		}
	}
	switch {
	case high >= 2:
		return RatingAggressive
	case high == 0 && medium == 0:
		return RatingConservative
	default:
		return RatingBalanced
	}
}

// Volatility thresholds on the standard deviation of wins per season.
const (
	volatilityModerateStdDev = 5.0
	volatilityVolatileStdDev = 10.0
	volatilityExtremeStdDev  = 15.0
)

// ComputeVolatility measures season-to-season swing in win totals using
// population variance, plus counts of risk decisions taken.
func ComputeVolatility(wins []int, decisions []RiskDecision) VolatilityMetrics {
	m := VolatilityMetrics{DecisionCount: len(decisions)}
	for _, d := range decisions {
		if d.RiskLevel == RiskHigh {
			m.BigSwingCount++
		}
	}

	if len(wins) > 0 {
		mean := 0.0
		for _, w := range wins {
			mean += float64(w)
		}
		mean /= float64(len(wins))

		variance := 0.0
		for _, w := range wins {
			diff := float64(w) - mean
			variance += diff * diff
		}
		variance /= float64(len(wins))
		m.WinVariance = math.Round(variance*100) / 100
		m.WinStdDev = math.Round(math.Sqrt(variance)*100) / 100
	}

	switch {
	case m.WinStdDev < volatilityModerateStdDev:
		m.Rating = VolatilityStable
	case m.WinStdDev < volatilityVolatileStdDev:
		m.Rating = VolatilityModerate
	case m.WinStdDev < volatilityExtremeStdDev:
		m.Rating = VolatilityVolatile
	default:
		m.Rating = VolatilityExtreme
	}
	return m
}

// ActualRiskProfile reduces the whole decision log to one risk level for
// alignment scoring.
func ActualRiskProfile(decisions []RiskDecision) RiskLevel {
	high := 0
	for _, d := range decisions {
		if d.RiskLevel == RiskHigh {
			high++
		}
	}
	switch {
	case high > 2:
		return RiskHigh
	case high == 0:
		return RiskLow
	default:
		return RiskMedium
	}
}

// Evaluation weights: alignment with the franchise context matters most,
// then money and wins equally.
const (
	weightContext     = 0.4
	weightFinancial   = 0.3
	weightPerformance = 0.3

	contextBaseScore     = 50
	contextExactBonus    = 30
	contextAdjacentBonus = 10
	contextOppositeMalus = -20
)

type Evaluation struct {
	Score            int       `json:"score"`
	Title            string    `json:"title"`
	ContextScore     int       `json:"context_score"`
	FinancialScore   int       `json:"financial_score"`
	PerformanceScore int       `json:"performance_score"`
	ExpectedRisk     RiskLevel `json:"expected_risk"`
	ActualRisk       RiskLevel `json:"actual_risk"`
	Lessons          []string  `json:"lessons"`
}

var riskRank = map[RiskLevel]int{RiskLow: 0, RiskMedium: 1, RiskHigh: 2}

func contextAlignmentScore(expected, actual RiskLevel) int {
	gap := riskRank[expected] - riskRank[actual]
	if gap < 0 {
		gap = -gap
	}
	switch gap {
	case 0:
		return contextBaseScore + contextExactBonus
	case 1:
		return contextBaseScore + contextAdjacentBonus
	default:
		return contextBaseScore + contextOppositeMalus
	}
}

func financialSustainabilityScore(results []SeasonResult) int {
	if len(results) == 0 {
		return 50
	}
	total := 0.0
	for _, r := range results {
		total += r.Financials.Profit
	}
	avg := total / float64(len(results))
	switch {
	case avg > 10:
		return 90
	case avg > 0:
		return 70
	case avg > -20:
		return 50
	default:
		return 30
	}
}

func performanceScore(results []SeasonResult) int {
	champs, playoffs, totalWins := 0, 0, 0
	for _, r := range results {
		totalWins += r.Wins
		if r.PlayoffResult == PlayoffChampion {
			champs++
		}
		if r.PlayoffResult != PlayoffMissed {
			playoffs++
		}
	}
	score := champs*30 + playoffs*10 + totalWins/3
	if score > 100 {
		score = 100
	}
	return score
}

// EvaluateRun produces the end-of-run front-office grade: how well the
// manager's actual risk appetite matched the franchise's situation, whether
// the books stayed solvent, and what the team won.
func EvaluateRun(contextType ContextType, results []SeasonResult, decisions []RiskDecision) Evaluation {
	ctx := ContextFor(contextType)
	actual := ActualRiskProfile(decisions)

	ctxScore := contextAlignmentScore(ctx.ExpectedRisk, actual)
	finScore := financialSustainabilityScore(results)
	perfScore := performanceScore(results)

	overall := int(math.Round(float64(ctxScore)*weightContext +
		float64(finScore)*weightFinancial +
		float64(perfScore)*weightPerformance))

	return Evaluation{
		Score:            overall,
		Title:            evaluationTitle(overall),
		ContextScore:     ctxScore,
		FinancialScore:   finScore,
		PerformanceScore: perfScore,
		ExpectedRisk:     ctx.ExpectedRisk,
		ActualRisk:       actual,
		Lessons:          evaluationLessons(ctx, actual, finScore, perfScore),
	}
}

func evaluationTitle(score int) string {
	switch {
	case score >= 85:
		return "Executive of the Era"
	case score >= 70:
		return "Respected Architect"
	case score >= 55:
		return "Steady Hand"
	case score >= 40:
		return "Seat Getting Warm"
	default:
		return "Fired by Text Message"
	}
}

func evaluationLessons(ctx TeamContext, actual RiskLevel, finScore, perfScore int) []string {
	var lessons []string
	if actual == ctx.ExpectedRisk {
		lessons = append(lessons, fmt.Sprintf("Your %s risk appetite fit a %s franchise.", actual, ctx.Label))
	} else {
		lessons = append(lessons, fmt.Sprintf("A %s franchise called for %s risk; you ran %s.",
			ctx.Label, ctx.ExpectedRisk, actual))
	}
	if finScore < 50 {
		lessons = append(lessons, "The balance sheet sank the tenure; aggression without revenue is a resignation letter.")
	} else if finScore >= 90 {
		lessons = append(lessons, "The franchise made money every step of the way.")
	}
	if perfScore >= 70 {
		lessons = append(lessons, "The on-court results speak for themselves.")
	} else if perfScore < 30 {
		lessons = append(lessons, "Banners are what fans remember, and none went up.")
	}
	return lessons
}
