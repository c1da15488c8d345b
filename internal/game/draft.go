package game

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/google/uuid"
)

const (
	DraftRounds    = 2
	DraftClassSize = 60
)

// Prospect generation bands by draft range. Base is today's skill,
// potential the scouting consensus ceiling, variance how little anyone
// actually knows.
type prospectBand struct {
	baseMin, baseSpan     int
	potentialMin, potSpan int
	varianceMin, varSpan  int
}

func bandForSlot(slot int) prospectBand {
	switch {
	case slot < 5: // top of the lottery
		return prospectBand{baseMin: 70, baseSpan: 8, potentialMin: 85, potSpan: 14, varianceMin: 8, varSpan: 10}
	case slot < 14: // lottery
		return prospectBand{baseMin: 65, baseSpan: 8, potentialMin: 78, potSpan: 15, varianceMin: 8, varSpan: 10}
	case slot < 30: // rest of the first round
		return prospectBand{baseMin: 60, baseSpan: 8, potentialMin: 72, potSpan: 14, varianceMin: 5, varSpan: 12}
	default: // second round
		return prospectBand{baseMin: 52, baseSpan: 8, potentialMin: 65, potSpan: 15, varianceMin: 4, varSpan: 14}
	}
}

const prospectFloorMin = 45

// GenerateDraftClass builds a full two-round class, ordered by scouting
// consensus (potential-weighted composite).
func GenerateDraftClass(rng *rand.Rand) []DraftProspect {
	prospects := make([]DraftProspect, 0, DraftClassSize)
	for i := 0; i < DraftClassSize; i++ {
		band := bandForSlot(i)
		base := band.baseMin + rng.Intn(band.baseSpan)
		potential := band.potentialMin + rng.Intn(band.potSpan)
		if potential < base {
			potential = base
		}
		variance := band.varianceMin + rng.Intn(band.varSpan)

		p := DraftProspect{
			ID:            uuid.NewString(),
			Name:          RandomName(rng),
			Position:      Positions[rng.Intn(len(Positions))],
			Age:           19 + rng.Intn(4),
			College:       colleges[rng.Intn(len(colleges))],
			OverallRating: base,
			Potential:     potential,
			Floor:         maxInt(prospectFloorMin, base-variance),
			Ceiling:       minInt(99, potential+variance/2),
			Variance:      variance,
			Offense:       clampRating(base + rng.Intn(11) - 5),
			Defense:       clampRating(base + rng.Intn(11) - 5),
			Athleticism:   clampRating(base + rng.Intn(13) - 4),
			BasketballIQ:  clampRating(base + rng.Intn(11) - 6),
		}
		prospects = append(prospects, p)
	}

	sort.Slice(prospects, func(i, j int) bool {
		return prospectComposite(prospects[i]) > prospectComposite(prospects[j])
	})
	return prospects
}

func prospectComposite(p DraftProspect) float64 {
	return 0.4*float64(p.OverallRating) + 0.6*float64(p.Potential)
}

func clampRating(r int) int {
	if r < 40 {
		return 40
	}
	if r > 99 {
		return 99
	}
	return r
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Realized rookie ratings draw from the bottom 30% of the declared
// floor-to-ceiling range. The asymmetry is intentional: prospects
// systematically land closer to their floor than their ceiling, so draft
// risk does not always pay off.
const rookieRealizationSpan = 0.3

// Rookie-scale salary figures, annual $M.
const (
	rookieTopSalary     = 9.0
	rookieSlotDecay     = 0.2
	rookieMinFirstRound = 2.5
	rookieSecondRound   = 1.5
)

// DraftProspectToPlayer converts a drafted prospect into a permanent player
// on a rookie-scale deal. pickNumber is the overall selection, 1-based.
func DraftProspectToPlayer(rng *rand.Rand, prospect DraftProspect, teamID string, pickNumber int) Player {
	span := float64(prospect.Ceiling-prospect.Floor) * rookieRealizationSpan
	rating := prospect.Floor + int(math.Round(rng.Float64()*span))

	salary := math.Max(rookieMinFirstRound, rookieTopSalary-float64(pickNumber-1)*rookieSlotDecay)
	years := 4
	if pickNumber > DraftClassSize/DraftRounds {
		salary = rookieSecondRound
		years = 2
	}

	return Player{
		ID:            prospect.ID,
		Name:          prospect.Name,
		Position:      prospect.Position,
		Age:           prospect.Age,
		OverallRating: rating,
		Potential:     prospect.Potential,
		Offense:       prospect.Offense,
		Defense:       prospect.Defense,
		Athleticism:   prospect.Athleticism,
		BasketballIQ:  prospect.BasketballIQ,
		Durability:    70 + rng.Intn(25),
		Salary:        math.Round(salary*10) / 10,
		ContractYears: years,
		TeamID:        teamID,
		Morale:        70,
	}
}

// BuildDraftOrder produces the two-round pick order: lottery teams by
// reverse record, then playoff teams by how deep they went, champion last.
func BuildDraftOrder(state *GameState) []string {
	teams := make([]*Team, len(state.Teams))
	for i := range state.Teams {
		teams[i] = &state.Teams[i]
	}
	rank := func(t *Team) int {
		if state.PlayoffResults[t.ID] == PlayoffChampion {
			return 5
		}
		return PlayoffRound(state.PlayoffResults[t.ID])
	}
	sort.Slice(teams, func(i, j int) bool {
		ri, rj := rank(teams[i]), rank(teams[j])
		if ri != rj {
			return ri < rj
		}
		if teams[i].Wins != teams[j].Wins {
			return teams[i].Wins < teams[j].Wins
		}
		return teams[i].Losses > teams[j].Losses
	})

	order := make([]string, 0, len(teams)*DraftRounds)
	for round := 0; round < DraftRounds; round++ {
		for _, t := range teams {
			order = append(order, t.ID)
		}
	}
	return order
}

const positionNeedBonus = 5.0

// AIDraftSelect picks the best available prospect by scouting composite,
// nudged toward positions the team is thin at. Returns the index into
// prospects, or -1 if the board is empty.
func AIDraftSelect(team *Team, prospects []DraftProspect) int {
	needs := positionNeeds(team)
	best := -1
	bestScore := -1.0
	for i, p := range prospects {
		score := prospectComposite(p)
		if needs[p.Position] {
			score += positionNeedBonus
		}
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	return best
}

// positionNeeds flags positions carrying fewer than two roster players.
func positionNeeds(team *Team) map[Position]bool {
	counts := map[Position]int{}
	if team != nil {
		for _, p := range team.Roster {
			counts[p.Position]++
		}
	}
	needs := map[Position]bool{}
	for _, pos := range Positions {
		if counts[pos] < 2 {
			needs[pos] = true
		}
	}
	return needs
}

// DraftOutcomeNews announces a pick.
func DraftOutcomeNews(season int, team *Team, prospect DraftProspect, pickNumber int) NewsItem {
	return NewsItem{
		ID:     uuid.NewString(),
		Season: season,
		Title:  fmt.Sprintf("%s select %s", team.Name, prospect.Name),
		Body: fmt.Sprintf("With pick %d, the %s selected %s %s out of %s.",
			pickNumber, team.Name, prospect.Position, prospect.Name, prospect.College),
		Type:    NewsDraft,
		TeamIDs: []string{team.ID},
	}
}
