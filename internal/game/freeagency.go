package game

import (
	"math"
	"math/rand"

	"github.com/google/uuid"
)

// Interest model terms. Interest is 0-100; the offer's ratio to the asking
// price dominates, then winning, market, role, and prestige.
const (
	interestBase = 50.0

	interestRichOffer   = 25.0 // offer >= 120% of asking
	interestFullOffer   = 15.0 // offer >= asking
	interestNearOffer   = 5.0  // offer >= 80% of asking
	interestLowballHit  = -15.0
	interestContender   = 15.0 // win pct > .600
	interestWinner      = 5.0  // win pct > .500
	interestLoserHit    = -10.0
	interestOpenRole    = 10.0 // fewer than 2 at the position
	interestClearStart  = 10.0 // stronger than everyone on the roster
	interestPrestigeDiv = 20.0
)

var marketInterestBonus = map[MarketSize]float64{
	MarketLarge:  10,
	MarketMedium: 3,
	MarketSmall:  -5,
}

// CalculatePlayerInterest scores a free agent's interest in joining the
// team at the offered salary. Deterministic given inputs.
func CalculatePlayerInterest(fa FreeAgent, team *Team, offerSalary float64) int {
	interest := interestBase

	asking := math.Max(fa.AskingPrice, 0.1)
	switch ratio := offerSalary / asking; {
	case ratio >= 1.2:
		interest += interestRichOffer
	case ratio >= 1.0:
		interest += interestFullOffer
	case ratio >= 0.8:
		interest += interestNearOffer
	default:
		interest += interestLowballHit
	}

	games := team.Wins + team.Losses
	winPct := 0.0
	if games > 0 {
		winPct = float64(team.Wins) / float64(games)
	}
	switch {
	case winPct > 0.6:
		interest += interestContender
	case winPct > 0.5:
		interest += interestWinner
	default:
		interest += interestLoserHit
	}

	interest += marketInterestBonus[team.MarketSize]

	if positionDepth(team, fa.Player.Position) < 2 {
		interest += interestOpenRole
	}
	if strongerThanAll(fa.Player, team) {
		interest += interestClearStart
	}
	interest += float64(team.Prestige) / interestPrestigeDiv

	return int(math.Max(0, math.Min(100, math.Round(interest))))
}

func strongerThanAll(p Player, team *Team) bool {
	for _, r := range team.Roster {
		if r.OverallRating >= p.OverallRating {
			return false
		}
	}
	return true
}

// Acceptance thresholds by difficulty: harder games need more convincing
// offers.
var acceptInterest = map[Difficulty]int{
	DifficultyEasy:   40,
	DifficultyMedium: 55,
	DifficultyHard:   65,
}

// WillAcceptOffer converts an interest score into a yes/no at the given
// difficulty.
func WillAcceptOffer(interest int, difficulty Difficulty) bool {
	threshold, ok := acceptInterest[difficulty]
	if !ok {
		threshold = acceptInterest[DifficultyMedium]
	}
	return interest >= threshold
}

// SignFreeAgent puts the free agent on the roster at the offered terms and
// restores the salary invariant. The caller removes the agent from the
// pool.
func SignFreeAgent(team *Team, fa FreeAgent, offerSalary float64, offerYears int) Player {
	p := fa.Player
	p.TeamID = team.ID
	p.Salary = math.Round(offerSalary*10) / 10
	p.ContractYears = offerYears
	p.Morale = 75
	team.Roster = append(team.Roster, p)
	team.RecalcSalary()
	return p
}

// Free-agent pool generation: veterans of mixed quality with asking prices
// derived from rating.
const freeAgentPoolSize = 40

func GenerateFreeAgents(rng *rand.Rand, count int) []FreeAgent {
	if count <= 0 {
		count = freeAgentPoolSize
	}
	agents := make([]FreeAgent, 0, count)
	for i := 0; i < count; i++ {
		rating := 58 + rng.Intn(30)
		if rng.Float64() < 0.06 {
			rating = 85 + rng.Intn(8) // the occasional marquee name
		}
		age := 24 + rng.Intn(12)
		p := Player{
			ID:            uuid.NewString(),
			Name:          RandomName(rng),
			Position:      Positions[rng.Intn(len(Positions))],
			Age:           age,
			OverallRating: rating,
			Potential:     minInt(99, rating+maxInt(0, 30-age)),
			Offense:       clampRating(rating + rng.Intn(11) - 5),
			Defense:       clampRating(rating + rng.Intn(11) - 5),
			Athleticism:   clampRating(rating + rng.Intn(13) - 8),
			BasketballIQ:  clampRating(rating + rng.Intn(13) - 4),
			Durability:    60 + rng.Intn(35),
			IsStar:        rating >= 88,
			Morale:        70,
			Experience:    maxInt(0, age-21),
		}
		asking := ExpectedSalary(rating) * (0.9 + rng.Float64()*0.4)
		agents = append(agents, FreeAgent{
			Player:      p,
			AskingPrice: math.Round(asking*10) / 10,
			YearsWanted: 1 + rng.Intn(4),
		})
	}
	return agents
}
