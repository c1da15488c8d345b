package game

import (
	"fmt"
	"math"
)

// Luxury tax brackets: each band is $5M wide with a strictly increasing
// per-dollar rate; everything past the last band edge pays the top rate.
type taxBracket struct {
	width float64
	rate  float64
}

var taxBrackets = []taxBracket{
	{width: 5, rate: 1.50},
	{width: 5, rate: 1.75},
	{width: 5, rate: 2.50},
	{width: 5, rate: 3.25},
	{width: math.Inf(1), rate: 4.25},
}

const repeaterMultiplier = 1.5

// CalculateLuxuryTax computes the progressive tax on the payroll excess
// over the threshold. The repeater multiplier kicks in at three or more
// consecutive tax seasons; consecutiveTaxYears is the caller's counter,
// this is a pure calculator. Result is rounded to $0.1M.
func CalculateLuxuryTax(payroll float64, consecutiveTaxYears int) float64 {
	excess := payroll - LuxuryTaxThreshold
	if excess <= 0 {
		return 0
	}

	tax := 0.0
	for _, b := range taxBrackets {
		if excess <= 0 {
			break
		}
		band := math.Min(excess, b.width)
		tax += band * b.rate
		excess -= band
	}

	if consecutiveTaxYears >= RepeaterTaxYears {
		tax *= repeaterMultiplier
	}
	return math.Round(tax*10) / 10
}

// CalculateFloorPenalty is the shortfall a team below the salary floor pays
// out anyway (distributed to the roster in the real world; a flat expense
// here).
func CalculateFloorPenalty(payroll float64) float64 {
	if payroll >= SalaryFloor {
		return 0
	}
	return math.Round((SalaryFloor-payroll)*10) / 10
}

// Revenue model constants, all in $M.
const (
	revenueBase          = 80.0
	revenuePerWin        = 0.5
	revenueChampionship  = 25.0
	revenueFanbaseFactor = 0.3
	revenuePrestigeFct   = 0.2
	fixedOperatingCost   = 50.0
)

var marketRevenueBonus = map[MarketSize]float64{
	MarketLarge:  40,
	MarketMedium: 20,
	MarketSmall:  5,
}

// Playoff gate revenue by deepest round reached (0 = missed).
var playoffRevenue = [...]float64{0, 5, 10, 20, 35}

// CalculateRevenue is the season revenue model: base gate, market bonus,
// per-win gate growth, playoff runs, a championship bump, and brand terms
// from fanbase and prestige.
func CalculateRevenue(team *Team, wins int, playoffRound int, champion bool) float64 {
	rev := revenueBase
	rev += marketRevenueBonus[team.MarketSize]
	rev += float64(wins) * revenuePerWin
	if playoffRound >= 0 && playoffRound < len(playoffRevenue) {
		rev += playoffRevenue[playoffRound]
	} else if playoffRound >= len(playoffRevenue) {
		rev += playoffRevenue[len(playoffRevenue)-1]
	}
	if champion {
		rev += revenueChampionship
	}
	rev += float64(team.Fanbase) * revenueFanbaseFactor
	rev += float64(team.Prestige) * revenuePrestigeFct
	return math.Round(rev*10) / 10
}

// CalculateExpenses sums payroll, luxury tax, floor penalty, and fixed
// operating costs.
func CalculateExpenses(payroll, luxuryTax, floorPenalty float64) float64 {
	return math.Round((payroll+luxuryTax+floorPenalty+fixedOperatingCost)*10) / 10
}

// GenerateFinancialReport assembles the season's FinancialState for a team.
// The caller passes the running consecutiveTaxYears counter as it stood
// entering the season; the returned state carries the updated counter.
func GenerateFinancialReport(team *Team, wins, playoffRound int, champion bool, consecutiveTaxYears int) FinancialState {
	payroll := team.TotalSalary
	tax := CalculateLuxuryTax(payroll, consecutiveTaxYears)
	floorPenalty := CalculateFloorPenalty(payroll)
	revenue := CalculateRevenue(team, wins, playoffRound, champion)
	expenses := CalculateExpenses(payroll, tax, floorPenalty)

	updatedTaxYears := 0
	if tax > 0 {
		updatedTaxYears = consecutiveTaxYears + 1
	}

	return FinancialState{
		SalaryCap:           SalaryCap,
		LuxuryTaxThreshold:  LuxuryTaxThreshold,
		SalaryFloor:         SalaryFloor,
		CurrentPayroll:      math.Round(payroll*10) / 10,
		LuxuryTaxOwed:       tax,
		Revenue:             revenue,
		Expenses:            expenses,
		Profit:              math.Round((revenue-expenses)*10) / 10,
		ConsecutiveTaxYears: updatedTaxYears,
	}
}

// Rational-aggression buffer terms.
const (
	aggressionPrestigeFactor = 0.2
	aggressionFanbaseHigh    = 70
	aggressionFanbaseLow     = 40
	aggressionFanbaseSwing   = 10.0
	aggressionBaseThreshold  = 20.0
	overreachRatio           = 1.5
	contenderWins            = 45
)

var marketRiskBuffer = map[MarketSize]float64{
	MarketLarge:  30,
	MarketMedium: 15,
	MarketSmall:  0,
}

type AggressionVerdict struct {
	Rational  bool      `json:"rational"`
	RiskLevel RiskLevel `json:"risk_level"`
	Threshold float64   `json:"threshold"`
	Reason    string    `json:"reason"`
}

// IsRationalAggression classifies an action's cost against the team's
// context-scaled risk buffer. The same cost can be rational for a
// large-market contender and reckless for a revenue-sensitive club; that
// differential is the whole point.
func IsRationalAggression(team *Team, actionCost float64) AggressionVerdict {
	buffer := marketRiskBuffer[team.MarketSize]
	buffer += float64(team.Prestige) * aggressionPrestigeFactor
	if team.Fanbase > aggressionFanbaseHigh {
		buffer += aggressionFanbaseSwing
	} else if team.Fanbase < aggressionFanbaseLow {
		buffer -= aggressionFanbaseSwing
	}

	ctx := ContextFor(team.ContextType)
	threshold := buffer*ctx.RiskMultiplier + aggressionBaseThreshold

	level := RiskLow
	switch {
	case actionCost > threshold*overreachRatio:
		level = RiskHigh
	case actionCost > threshold:
		level = RiskMedium
	}

	rational := actionCost <= threshold
	reason := fmt.Sprintf("a $%.1fM commitment is within the risk capacity of a %s franchise", actionCost, ctx.Label)
	switch {
	case rational:
		// keep default reason
	case level == RiskMedium && team.Wins > contenderWins:
		rational = true
		reason = fmt.Sprintf("$%.1fM is a stretch, but a %d-win contender can justify pushing in", actionCost, team.Wins)
	case team.ContextType == CashRichExpansion:
		rational = true
		reason = fmt.Sprintf("$%.1fM exceeds the usual threshold, but ownership's deep pockets absorb it", actionCost)
	case level == RiskHigh:
		reason = fmt.Sprintf("$%.1fM is more than 1.5x the $%.1fM risk capacity of a %s franchise: %s",
			actionCost, threshold, ctx.Label, ctx.RiskReason)
	default:
		reason = fmt.Sprintf("$%.1fM exceeds the $%.1fM risk capacity of a %s franchise: %s",
			actionCost, threshold, ctx.Label, ctx.RiskReason)
	}

	return AggressionVerdict{
		Rational:  rational,
		RiskLevel: level,
		Threshold: math.Round(threshold*10) / 10,
		Reason:    reason,
	}
}

type FinancialHealth struct {
	Status  string `json:"status"`
	Summary string `json:"summary"`
}

// AnalyzeFinancialHealth gives a qualitative read on a financial state for
// the front-office report.
func AnalyzeFinancialHealth(fs FinancialState) FinancialHealth {
	switch {
	case fs.Profit >= 30:
		return FinancialHealth{Status: "excellent", Summary: "ownership is thrilled; the franchise prints money"}
	case fs.Profit >= 10:
		return FinancialHealth{Status: "healthy", Summary: "comfortably profitable with room to spend"}
	case fs.Profit >= 0:
		return FinancialHealth{Status: "break_even", Summary: "treading water; a tax bill would hurt"}
	case fs.Profit >= -20:
		return FinancialHealth{Status: "strained", Summary: "losing money; ownership patience is finite"}
	default:
		return FinancialHealth{Status: "critical", Summary: "hemorrhaging cash; expect a mandate to cut salary"}
	}
}
