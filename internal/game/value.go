package game

import (
	"math"
	"sort"
)

// Tier buckets player quality for trade valuation. The ordering matters:
// package math walks tiers from highest to lowest.
type Tier int

const (
	TierFiller Tier = iota
	TierRolePlayer
	TierQualityStarter
	TierStar
	TierSuperstar
)

func (t Tier) String() string {
	switch t {
	case TierSuperstar:
		return "superstar"
	case TierStar:
		return "star"
	case TierQualityStarter:
		return "quality starter"
	case TierRolePlayer:
		return "role player"
	default:
		return "filler"
	}
}

// Rating cutoffs for tier classification.
const (
	SuperstarRating      = 90
	StarRating           = 85
	QualityStarterRating = 78
	RolePlayerRating     = 70
)

// Tier base values carry large multiplicative gaps on purpose: the combined
// ceiling of each tier sits strictly below the next tier's base, so no
// quantity of lesser players ever adds up to one better player.
var tierBase = [...]float64{
	TierFiller:         5,
	TierRolePlayer:     25,
	TierQualityStarter: 80,
	TierStar:           250,
	TierSuperstar:      500,
}

var tierCeiling = [...]float64{
	TierFiller:         20,  // < role player base 25
	TierRolePlayer:     60,  // < quality starter base 80
	TierQualityStarter: 240, // < star base 250
	TierStar:           480, // < superstar base 500
	TierSuperstar:      1600,
}

var tierFloorRating = [...]int{
	TierFiller:         40,
	TierRolePlayer:     RolePlayerRating,
	TierQualityStarter: QualityStarterRating,
	TierStar:           StarRating,
	TierSuperstar:      SuperstarRating,
}

// Diminishing-returns multipliers by rank within a tier; anything past the
// fifth-best same-tier player is nearly worthless.
var rankMultipliers = []float64{1.0, 0.6, 0.35, 0.2, 0.1}

const (
	extraRankMultiplier = 0.05
	maxFreePackageSize  = 3
	packageDepthPenalty = 12.0

	withinTierPerPoint   = 3.0
	potentialPerPoint    = 1.5
	youngPotentialFactor = 2.0
	salaryBurdenFactor   = 1.2
	agingContractPerYear = 5.0
	youngAgeCutoff       = 23
)

// TierBase and TierCeiling expose the valuation constants for callers that
// reason about the invariant directly (tests, analysis output).
func TierBase(t Tier) float64    { return tierBase[t] }
func TierCeiling(t Tier) float64 { return tierCeiling[t] }

// TierOf classifies a player. The star flag promotes a sub-85 player into
// the star tier: franchise status counts, not just the number.
func TierOf(p Player) Tier {
	switch {
	case p.OverallRating >= SuperstarRating:
		return TierSuperstar
	case p.OverallRating >= StarRating || p.IsStar:
		return TierStar
	case p.OverallRating >= QualityStarterRating:
		return TierQualityStarter
	case p.OverallRating >= RolePlayerRating:
		return TierRolePlayer
	default:
		return TierFiller
	}
}

// ExpectedSalary is the annual figure a player of the given rating would
// normally command; paying above it is a burden in trade value terms.
func ExpectedSalary(rating int) float64 {
	return math.Max(1, float64(rating-60)*0.8)
}

func ageFactor(age int) float64 {
	switch {
	case age <= youngAgeCutoff:
		return 1.3
	case age <= 27:
		return 1.1
	case age <= 30:
		return 0.95
	case age <= 33:
		return 0.7
	default:
		return 0.5
	}
}

func contractFactor(age, years int) float64 {
	switch {
	case years <= 1:
		return 0.8 // expiring deals are flight risks
	case years <= 3:
		return 1.0
	case age >= 30:
		return 0.7
	default:
		return 0.9
	}
}

// PlayerValue is the single-player valuation primitive. It is deterministic
// and unclamped; tier ceilings are applied by PackageValue.
func PlayerValue(p Player) float64 {
	tier := TierOf(p)
	base := tierBase[tier]
	within := float64(maxInt(0, p.OverallRating-tierFloorRating[tier])) * withinTierPerPoint

	potBonus := float64(maxInt(0, p.Potential-p.OverallRating)) * potentialPerPoint
	if p.Age <= youngAgeCutoff {
		potBonus *= youngPotentialFactor
	}

	salaryPenalty := math.Max(0, p.Salary-ExpectedSalary(p.OverallRating)) * salaryBurdenFactor

	agingContract := 0.0
	if p.Age >= 30 && p.ContractYears >= 3 {
		agingContract = float64(p.ContractYears) * agingContractPerYear
	}

	raw := base + within + potBonus - salaryPenalty - agingContract
	value := raw * ageFactor(p.Age) * contractFactor(p.Age, p.ContractYears)
	return math.Max(1, value)
}

// PackageValue values a multi-player package with diminishing returns per
// tier, each tier capped at its ceiling, plus a flat per-player penalty once
// the package runs deeper than three players (roster dumps are worth less
// than their parts).
func PackageValue(players []Player) float64 {
	if len(players) == 0 {
		return 0
	}

	byTier := make(map[Tier][]float64)
	for _, p := range players {
		tier := TierOf(p)
		byTier[tier] = append(byTier[tier], PlayerValue(p))
	}

	total := 0.0
	for tier, values := range byTier {
		sort.Sort(sort.Reverse(sort.Float64Slice(values)))
		subtotal := 0.0
		for rank, v := range values {
			mult := extraRankMultiplier
			if rank < len(rankMultipliers) {
				mult = rankMultipliers[rank]
			}
			subtotal += v * mult
		}
		total += math.Min(subtotal, tierCeiling[tier])
	}

	if extra := len(players) - maxFreePackageSize; extra > 0 {
		total -= float64(extra) * packageDepthPenalty
	}
	return math.Max(0, total)
}

// Draft pick valuation constants. The premium for the top three projected
// positions is convex: the jump from pick 2 to pick 1 is worth more than
// the jump from pick 3 to pick 2.
const (
	pickBaseMax          = 150.0
	pickPerPosition      = 4.0
	pickBaseMin          = 20.0
	secondRoundMult      = 0.35
	futureYearDiscount   = 0.85
	defaultProjectedPick = 15
)

var topThreePremium = map[int]float64{1: 120, 2: 70, 3: 35}

// PickValue values a draft pick from its projected position, round, and how
// far in the future it conveys.
func PickValue(pick DraftPick) float64 {
	pos := pick.ProjectedPosition
	if pos <= 0 {
		pos = defaultProjectedPick
	}
	base := math.Max(pickBaseMin, pickBaseMax-float64(pos)*pickPerPosition)
	if premium, ok := topThreePremium[pos]; ok && pick.Round == 1 {
		base += premium
	}

	roundMult := 1.0
	if pick.Round != 1 {
		roundMult = secondRoundMult
	}
	yearDiscount := 1.0
	if pick.Year > 1 {
		yearDiscount = futureYearDiscount
	}
	return math.Round(base * roundMult * yearDiscount)
}

// PicksValue sums pick values; picks are independent assets with no
// package discounting.
func PicksValue(picks []DraftPick) float64 {
	total := 0.0
	for _, p := range picks {
		total += PickValue(p)
	}
	return total
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
