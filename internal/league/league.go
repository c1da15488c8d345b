// Package league seeds the 30-team world a new session starts from.
// Franchise identities are static; rosters are rolled fresh per session so
// no two runs open against the same league.
package league

import (
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"courtside/internal/game"
)

const (
	rosterSize   = 13
	starterCount = 5
	starStrength = 72 // anchor above which a franchise gets a true star
)

// Generate builds the full league with generated rosters. Satisfies
// game.LeagueFn.
func Generate(rng *rand.Rand) []game.Team {
	return fromFranchises(rng, defaultFranchises)
}

// FranchiseSummary describes a selectable franchise before a session
// exists; rosters are rolled at session creation.
type FranchiseSummary struct {
	ID          string           `json:"id"`
	City        string           `json:"city"`
	Name        string           `json:"name"`
	Conference  game.Conference  `json:"conference"`
	Division    string           `json:"division"`
	Market      game.MarketSize  `json:"market"`
	Context     game.ContextType `json:"context"`
	ContextInfo game.TeamContext `json:"context_info"`
	Fanbase     int              `json:"fanbase"`
	Prestige    int              `json:"prestige"`
}

// Franchises lists every selectable franchise with its situation brief.
func Franchises() []FranchiseSummary {
	out := make([]FranchiseSummary, 0, len(defaultFranchises))
	for _, f := range defaultFranchises {
		out = append(out, FranchiseSummary{
			ID:          strings.ToLower(f.Abbreviation),
			City:        f.City,
			Name:        f.Name,
			Conference:  f.Conference,
			Division:    f.Division,
			Market:      f.Market,
			Context:     f.Context,
			ContextInfo: game.ContextFor(f.Context),
			Fanbase:     f.Fanbase,
			Prestige:    f.Prestige,
		})
	}
	return out
}

// FromFile loads franchise overrides from a YAML file and returns a league
// builder over them. Missing file fields fall back to zero values, so the
// file must list complete franchises.
func FromFile(path string) (game.LeagueFn, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read league file: %w", err)
	}
	var doc struct {
		Franchises []franchise `yaml:"franchises"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse league file: %w", err)
	}
	if len(doc.Franchises) < 2 || len(doc.Franchises)%2 != 0 {
		return nil, fmt.Errorf("league file needs an even number of franchises, got %d", len(doc.Franchises))
	}
	return func(rng *rand.Rand) []game.Team {
		return fromFranchises(rng, doc.Franchises)
	}, nil
}

func fromFranchises(rng *rand.Rand, franchises []franchise) []game.Team {
	teams := make([]game.Team, 0, len(franchises))
	for _, f := range franchises {
		team := game.Team{
			ID:           strings.ToLower(f.Abbreviation),
			Name:         f.Name,
			City:         f.City,
			Abbreviation: f.Abbreviation,
			Conference:   f.Conference,
			Division:     f.Division,
			ContextType:  f.Context,
			MarketSize:   f.Market,
			Fanbase:      f.Fanbase,
			Prestige:     f.Prestige,
		}
		team.Roster = generateRoster(rng, &team, f.Strength)
		team.RecalcSalary()
		teams = append(teams, team)
	}
	return teams
}

// generateRoster rolls a 13-man roster anchored on the franchise strength:
// five starters near the anchor, bench talent trailing off, and a genuine
// star for the stronger franchises.
func generateRoster(rng *rand.Rand, team *game.Team, strength int) []game.Player {
	roster := make([]game.Player, 0, rosterSize)

	hasStar := strength >= starStrength
	for i := 0; i < rosterSize; i++ {
		pos := game.Positions[i%len(game.Positions)]
		var rating int
		switch {
		case i == 0 && hasStar:
			rating = 86 + rng.Intn(9)
		case i < starterCount:
			rating = strength - 2 + rng.Intn(8)
		default:
			rating = strength - 14 + rng.Intn(10)
		}
		if rating < 45 {
			rating = 45
		}
		if rating > 99 {
			rating = 99
		}

		age := 21 + rng.Intn(14)
		potential := rating
		if age < 26 {
			potential = rating + rng.Intn(10)
			if potential > 99 {
				potential = 99
			}
		}

		roster = append(roster, game.Player{
			ID:            uuid.NewString(),
			Name:          game.RandomName(rng),
			Position:      pos,
			Age:           age,
			OverallRating: rating,
			Potential:     potential,
			Offense:       jitter(rng, rating, 6),
			Defense:       jitter(rng, rating, 6),
			Athleticism:   jitter(rng, rating, 8),
			BasketballIQ:  jitter(rng, rating, 7),
			Durability:    60 + rng.Intn(35),
			Salary:        salaryFor(rng, rating),
			ContractYears: 1 + rng.Intn(4),
			TeamID:        team.ID,
			IsStarter:     i < starterCount,
			IsStar:        rating >= 86,
			Morale:        60 + rng.Intn(30),
			Experience:    maxOf(0, age-21),
		})
	}
	return roster
}

func jitter(rng *rand.Rand, base, span int) int {
	v := base + rng.Intn(span*2+1) - span
	if v < 40 {
		v = 40
	}
	if v > 99 {
		v = 99
	}
	return v
}

func salaryFor(rng *rand.Rand, rating int) float64 {
	s := game.ExpectedSalary(rating) * (0.85 + rng.Float64()*0.3)
	return float64(int(s*10)) / 10
}

func maxOf(a, b int) int {
	if a > b {
		return a
	}
	return b
}
