package game

import (
	"math/rand"
	"testing"
)

func faTestTeam() *Team {
	team := &Team{
		ID: "t1", Name: "Monarchs",
		MarketSize: MarketMedium, Prestige: 60,
		Wins: 10, Losses: 14,
	}
	for i, pos := range []Position{PointGuard, PointGuard, ShootingGuard, SmallForward, PowerForward} {
		team.Roster = append(team.Roster, Player{
			ID:            string(rune('a' + i)),
			Position:      pos,
			OverallRating: 74,
			Salary:        10,
		})
	}
	team.RecalcSalary()
	return team
}

func faAgent(rating int, asking float64, pos Position) FreeAgent {
	return FreeAgent{
		Player: Player{
			ID: "fa1", Name: "Free Agent", Position: pos,
			Age: 28, OverallRating: rating, Potential: rating,
		},
		AskingPrice: asking,
		YearsWanted: 2,
	}
}

func TestCalculatePlayerInterest(t *testing.T) {
	team := faTestTeam()
	fa := faAgent(78, 16, Center)

	// 50 base + 15 full offer - 10 losing team + 3 market + 10 open role
	// + 10 clear starter + 3 prestige
	if got := CalculatePlayerInterest(fa, team, 16); got != 81 {
		t.Fatalf("interest = %d, want 81", got)
	}

	// lowball flips the offer term to -15
	if got := CalculatePlayerInterest(fa, team, 10); got != 51 {
		t.Fatalf("lowball interest = %d, want 51", got)
	}

	// rich offers buy more interest than full ones
	if CalculatePlayerInterest(fa, team, 20) <= CalculatePlayerInterest(fa, team, 16) {
		t.Fatal("a 125% offer should score above a 100% offer")
	}
}

func TestCalculatePlayerInterestWinningMatters(t *testing.T) {
	fa := faAgent(78, 16, Center)

	contender := faTestTeam()
	contender.Wins, contender.Losses = 20, 4
	loser := faTestTeam()
	loser.Wins, loser.Losses = 4, 20

	if CalculatePlayerInterest(fa, contender, 16) <= CalculatePlayerInterest(fa, loser, 16) {
		t.Fatal("contenders should draw more interest than losers")
	}
}

func TestCalculatePlayerInterestClamped(t *testing.T) {
	team := faTestTeam()
	team.MarketSize = MarketLarge
	team.Prestige = 100
	team.Wins, team.Losses = 24, 0
	fa := faAgent(90, 10, Center)

	if got := CalculatePlayerInterest(fa, team, 30); got != 100 {
		t.Fatalf("interest = %d, want clamped to 100", got)
	}
}

func TestWillAcceptOffer(t *testing.T) {
	tests := []struct {
		interest   int
		difficulty Difficulty
		want       bool
	}{
		{40, DifficultyEasy, true},
		{39, DifficultyEasy, false},
		{55, DifficultyMedium, true},
		{54, DifficultyMedium, false},
		{65, DifficultyHard, true},
		{64, DifficultyHard, false},
	}
	for _, tt := range tests {
		if got := WillAcceptOffer(tt.interest, tt.difficulty); got != tt.want {
			t.Fatalf("WillAcceptOffer(%d, %s) = %v, want %v", tt.interest, tt.difficulty, got, tt.want)
		}
	}
}

func TestSignFreeAgent(t *testing.T) {
	team := faTestTeam()
	before := team.TotalSalary
	fa := faAgent(78, 16, Center)

	signed := SignFreeAgent(team, fa, 16.55, 3)
	if signed.TeamID != team.ID {
		t.Fatalf("signed player team = %q, want %q", signed.TeamID, team.ID)
	}
	if signed.Salary != 16.6 {
		t.Fatalf("salary = %.2f, want rounded 16.6", signed.Salary)
	}
	if signed.ContractYears != 3 {
		t.Fatalf("contract years = %d, want 3", signed.ContractYears)
	}
	if len(team.Roster) != 6 {
		t.Fatalf("roster size = %d, want 6", len(team.Roster))
	}
	if !almostEqual(team.TotalSalary, before+16.6) {
		t.Fatalf("payroll = %.2f, want %.2f", team.TotalSalary, before+16.6)
	}
}

func TestGenerateFreeAgents(t *testing.T) {
	rng := rand.New(rand.NewSource(19))
	agents := GenerateFreeAgents(rng, 100)

	if len(agents) != 100 {
		t.Fatalf("pool size = %d, want 100", len(agents))
	}
	for i, fa := range agents {
		p := fa.Player
		if p.OverallRating < 58 || p.OverallRating > 92 {
			t.Fatalf("agent %d rating %d out of range", i, p.OverallRating)
		}
		if p.Age < 24 || p.Age > 35 {
			t.Fatalf("agent %d age %d out of range", i, p.Age)
		}
		if fa.AskingPrice <= 0 {
			t.Fatalf("agent %d asking price %.1f", i, fa.AskingPrice)
		}
		if fa.YearsWanted < 1 || fa.YearsWanted > 4 {
			t.Fatalf("agent %d wants %d years", i, fa.YearsWanted)
		}
		if p.IsStar && p.OverallRating < 88 {
			t.Fatalf("agent %d starred at rating %d", i, p.OverallRating)
		}
	}
}

func TestGenerateFreeAgentsDefaultCount(t *testing.T) {
	rng := rand.New(rand.NewSource(19))
	if got := len(GenerateFreeAgents(rng, 0)); got != freeAgentPoolSize {
		t.Fatalf("default pool size = %d, want %d", got, freeAgentPoolSize)
	}
}
