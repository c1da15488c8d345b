package league

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"courtside/internal/game"
)

func TestGenerateLeagueShape(t *testing.T) {
	teams := Generate(rand.New(rand.NewSource(7)))
	if len(teams) != 30 {
		t.Fatalf("teams = %d, want 30", len(teams))
	}

	east, west := 0, 0
	seen := map[string]bool{}
	for _, tm := range teams {
		if seen[tm.ID] {
			t.Fatalf("duplicate team id %q", tm.ID)
		}
		seen[tm.ID] = true
		switch tm.Conference {
		case game.Eastern:
			east++
		case game.Western:
			west++
		default:
			t.Fatalf("team %s has conference %q", tm.ID, tm.Conference)
		}
	}
	if east != 15 || west != 15 {
		t.Fatalf("conference split = %d/%d, want 15/15", east, west)
	}
}

func TestGenerateRosters(t *testing.T) {
	teams := Generate(rand.New(rand.NewSource(11)))
	for _, tm := range teams {
		if len(tm.Roster) != rosterSize {
			t.Fatalf("%s roster = %d, want %d", tm.ID, len(tm.Roster), rosterSize)
		}
		starters := 0
		sum := 0.0
		for _, p := range tm.Roster {
			if p.TeamID != tm.ID {
				t.Fatalf("player %s on %s has team id %q", p.Name, tm.ID, p.TeamID)
			}
			if p.OverallRating < 45 || p.OverallRating > 99 {
				t.Fatalf("player %s rating %d out of range", p.Name, p.OverallRating)
			}
			if p.Potential < p.OverallRating {
				t.Fatalf("player %s potential %d below rating %d", p.Name, p.Potential, p.OverallRating)
			}
			if p.Salary <= 0 {
				t.Fatalf("player %s salary %.1f", p.Name, p.Salary)
			}
			if p.IsStarter {
				starters++
			}
			sum += p.Salary
		}
		if starters != starterCount {
			t.Fatalf("%s starters = %d, want %d", tm.ID, starters, starterCount)
		}
		if !almostEqual(tm.TotalSalary, sum) {
			t.Fatalf("%s total salary %.1f, roster sums to %.1f", tm.ID, tm.TotalSalary, sum)
		}
	}
}

func TestGenerateStrongFranchisesCarryStar(t *testing.T) {
	teams := Generate(rand.New(rand.NewSource(3)))
	byID := map[string]game.Team{}
	for _, tm := range teams {
		byID[tm.ID] = tm
	}

	// Bayside anchors at 80, well above the star threshold.
	star := false
	for _, p := range byID["bsb"].Roster {
		if p.IsStar {
			star = true
		}
	}
	if !star {
		t.Fatalf("bsb generated without a star")
	}
}

func TestFranchises(t *testing.T) {
	list := Franchises()
	if len(list) != len(defaultFranchises) {
		t.Fatalf("franchises = %d, want %d", len(list), len(defaultFranchises))
	}
	for _, f := range list {
		if f.ID == "" || f.City == "" || f.Name == "" {
			t.Fatalf("incomplete franchise %+v", f)
		}
		info := game.ContextFor(f.Context)
		if f.ContextInfo.Type != info.Type || f.ContextInfo.Label != info.Label {
			t.Fatalf("%s context info %q/%q, want %q/%q",
				f.ID, f.ContextInfo.Type, f.ContextInfo.Label, info.Type, info.Label)
		}
	}
}

func TestFromFile(t *testing.T) {
	doc := `franchises:
  - city: Northgate
    name: Norsemen
    abbreviation: NGN
    conference: Eastern
    division: Atlantic
    market: large
    context: legacy_power
    fanbase: 85
    prestige: 88
    strength: 76
  - city: Southport
    name: Sharks
    abbreviation: SPS
    conference: Western
    division: Pacific
    market: small
    context: small_market_reset
    fanbase: 40
    prestige: 35
    strength: 55
`
	path := filepath.Join(t.TempDir(), "league.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	build, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	teams := build(rand.New(rand.NewSource(5)))
	if len(teams) != 2 {
		t.Fatalf("teams = %d, want 2", len(teams))
	}
	if teams[0].ID != "ngn" || teams[0].City != "Northgate" {
		t.Fatalf("first team = %s/%s", teams[0].ID, teams[0].City)
	}
	if teams[1].ContextType != game.SmallMarketReset {
		t.Fatalf("second team context = %q", teams[1].ContextType)
	}
	if len(teams[0].Roster) != rosterSize {
		t.Fatalf("roster = %d, want %d", len(teams[0].Roster), rosterSize)
	}
}

func TestFromFileRejectsOddCount(t *testing.T) {
	doc := `franchises:
  - city: Lone
    name: Stars
    abbreviation: LNS
    conference: Western
    division: Midwest
    market: small
    context: small_market_reset
    fanbase: 40
    prestige: 40
    strength: 55
`
	path := filepath.Join(t.TempDir(), "league.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := FromFile(path); err == nil {
		t.Fatalf("expected error for odd franchise count")
	}
}

func TestFromFileMissing(t *testing.T) {
	if _, err := FromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
