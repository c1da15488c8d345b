package game

import "testing"

func TestSigningRisk(t *testing.T) {
	tests := []struct {
		salary float64
		want   RiskLevel
	}{
		{5, RiskLow},
		{14.9, RiskLow},
		{15, RiskMedium},
		{25, RiskMedium},
		{25.1, RiskHigh},
	}
	for _, tt := range tests {
		if got := SigningRisk(tt.salary); got != tt.want {
			t.Fatalf("SigningRisk(%.1f) = %s, want %s", tt.salary, got, tt.want)
		}
	}
}

func TestDraftRisk(t *testing.T) {
	tests := []struct {
		variance int
		want     RiskLevel
	}{
		{4, RiskLow},
		{9, RiskLow},
		{10, RiskMedium},
		{18, RiskMedium},
		{19, RiskHigh},
	}
	for _, tt := range tests {
		if got := DraftRisk(tt.variance); got != tt.want {
			t.Fatalf("DraftRisk(%d) = %s, want %s", tt.variance, got, tt.want)
		}
	}
}

func TestStrategyRisk(t *testing.T) {
	if got := StrategyRisk(StabilityFirst); got != RiskLow {
		t.Fatalf("stability_first = %s, want low", got)
	}
	if got := StrategyRisk(AggressivePush); got != RiskMedium {
		t.Fatalf("aggressive_push = %s, want medium", got)
	}
	if got := StrategyRisk(BoomBustSwing); got != RiskHigh {
		t.Fatalf("boom_bust_swing = %s, want high", got)
	}
}

func TestResolveSeasonDecisions(t *testing.T) {
	tests := []struct {
		name         string
		level        RiskLevel
		wins         int
		madePlayoffs bool
		want         Outcome
	}{
		{"win threshold clears", RiskHigh, 45, false, OutcomeSuccess},
		{"playoffs clear", RiskHigh, 30, true, OutcomeSuccess},
		{"high risk collapse fails", RiskHigh, 30, false, OutcomeFailure},
		{"low risk collapse is neutral", RiskLow, 30, false, OutcomeNeutral},
		{"high risk mediocrity is neutral", RiskHigh, 40, false, OutcomeNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decisions := []RiskDecision{{Season: 1, RiskLevel: tt.level, Outcome: OutcomePending}}
			ResolveSeasonDecisions(decisions, 1, tt.wins, tt.madePlayoffs)
			if decisions[0].Outcome != tt.want {
				t.Fatalf("outcome = %s, want %s", decisions[0].Outcome, tt.want)
			}
		})
	}
}

func TestResolveSeasonDecisionsSkipsOtherSeasons(t *testing.T) {
	decisions := []RiskDecision{
		{Season: 1, RiskLevel: RiskHigh, Outcome: OutcomeSuccess},
		{Season: 2, RiskLevel: RiskHigh, Outcome: OutcomePending},
		{Season: 3, RiskLevel: RiskHigh, Outcome: OutcomePending},
	}
	ResolveSeasonDecisions(decisions, 2, 50, true)
	if decisions[0].Outcome != OutcomeSuccess {
		t.Fatal("settled decision was reopened")
	}
	if decisions[1].Outcome != OutcomeSuccess {
		t.Fatalf("season 2 decision = %s, want success", decisions[1].Outcome)
	}
	if decisions[2].Outcome != OutcomePending {
		t.Fatalf("future season decision = %s, want pending", decisions[2].Outcome)
	}
}

func TestSeasonRiskRating(t *testing.T) {
	decisions := []RiskDecision{
		{Season: 1, RiskLevel: RiskHigh},
		{Season: 1, RiskLevel: RiskHigh},
		{Season: 2, RiskLevel: RiskMedium},
		{Season: 3, RiskLevel: RiskLow},
	}
	if got := SeasonRiskRating(decisions, 1); got != RatingAggressive {
		t.Fatalf("season 1 = %s, want aggressive", got)
	}
	if got := SeasonRiskRating(decisions, 2); got != RatingBalanced {
		t.Fatalf("season 2 = %s, want balanced", got)
	}
	if got := SeasonRiskRating(decisions, 3); got != RatingConservative {
		t.Fatalf("season 3 = %s, want conservative", got)
	}
}

func TestComputeVolatility(t *testing.T) {
	steady := ComputeVolatility([]int{45, 45, 45}, nil)
	if steady.WinStdDev != 0 || steady.Rating != VolatilityStable {
		t.Fatalf("steady run = %.2f/%s, want 0/stable", steady.WinStdDev, steady.Rating)
	}

	swingy := ComputeVolatility([]int{60, 28, 55}, []RiskDecision{
		{RiskLevel: RiskHigh},
		{RiskLevel: RiskLow},
	})
	if swingy.WinStdDev != 14.06 {
		t.Fatalf("std dev = %.2f, want 14.06", swingy.WinStdDev)
	}
	if swingy.Rating != VolatilityVolatile {
		t.Fatalf("rating = %s, want volatile", swingy.Rating)
	}
	if swingy.BigSwingCount != 1 {
		t.Fatalf("big swings = %d, want 1", swingy.BigSwingCount)
	}
	if swingy.DecisionCount != 2 {
		t.Fatalf("decision count = %d, want 2", swingy.DecisionCount)
	}

	extreme := ComputeVolatility([]int{62, 20}, nil)
	if extreme.Rating != VolatilityExtreme {
		t.Fatalf("rating = %s, want extreme", extreme.Rating)
	}
}

func TestActualRiskProfile(t *testing.T) {
	none := []RiskDecision{{RiskLevel: RiskMedium}, {RiskLevel: RiskLow}}
	if got := ActualRiskProfile(none); got != RiskLow {
		t.Fatalf("no high-risk decisions = %s, want low", got)
	}
	some := append(none, RiskDecision{RiskLevel: RiskHigh})
	if got := ActualRiskProfile(some); got != RiskMedium {
		t.Fatalf("one high-risk decision = %s, want medium", got)
	}
	many := append(some,
		RiskDecision{RiskLevel: RiskHigh},
		RiskDecision{RiskLevel: RiskHigh})
	if got := ActualRiskProfile(many); got != RiskHigh {
		t.Fatalf("three high-risk decisions = %s, want high", got)
	}
}

func TestEvaluateRunAlignmentMatters(t *testing.T) {
	results := []SeasonResult{
		{Wins: 44, PlayoffResult: PlayoffFirstRound, Financials: FinancialState{Profit: 15}},
		{Wins: 46, PlayoffResult: PlayoffSecondRound, Financials: FinancialState{Profit: 15}},
	}

	// revenue_sensitive expects low risk; an all-in decision log breaks alignment
	aggressive := []RiskDecision{
		{RiskLevel: RiskHigh}, {RiskLevel: RiskHigh}, {RiskLevel: RiskHigh},
	}
	careful := []RiskDecision{{RiskLevel: RiskLow}}

	misaligned := EvaluateRun(RevenueSensitive, results, aggressive)
	aligned := EvaluateRun(RevenueSensitive, results, careful)

	if misaligned.ContextScore != contextBaseScore+contextOppositeMalus {
		t.Fatalf("opposite profile context score = %d, want %d",
			misaligned.ContextScore, contextBaseScore+contextOppositeMalus)
	}
	if aligned.ContextScore != contextBaseScore+contextExactBonus {
		t.Fatalf("exact profile context score = %d, want %d",
			aligned.ContextScore, contextBaseScore+contextExactBonus)
	}
	if aligned.Score <= misaligned.Score {
		t.Fatalf("alignment should lift the grade: aligned %d vs misaligned %d",
			aligned.Score, misaligned.Score)
	}
	if aligned.ExpectedRisk != RiskLow || aligned.ActualRisk != RiskLow {
		t.Fatalf("risk profile = %s/%s, want low/low", aligned.ExpectedRisk, aligned.ActualRisk)
	}
}

func TestEvaluateRunScoring(t *testing.T) {
	results := []SeasonResult{
		{Wins: 58, PlayoffResult: PlayoffChampion, Financials: FinancialState{Profit: 25}},
		{Wins: 55, PlayoffResult: PlayoffChampion, Financials: FinancialState{Profit: 25}},
		{Wins: 52, PlayoffResult: PlayoffConfFinals, Financials: FinancialState{Profit: 25}},
	}
	decisions := []RiskDecision{{RiskLevel: RiskMedium}, {RiskLevel: RiskHigh}}

	// star_dependent expects medium risk; one high-risk call still profiles medium
	eval := EvaluateRun(StarDependent, results, decisions)
	if eval.ContextScore != 80 || eval.FinancialScore != 90 || eval.PerformanceScore != 100 {
		t.Fatalf("component scores = %d/%d/%d, want 80/90/100",
			eval.ContextScore, eval.FinancialScore, eval.PerformanceScore)
	}
	if eval.Score != 89 {
		t.Fatalf("overall = %d, want 89", eval.Score)
	}
	if eval.Title != "Executive of the Era" {
		t.Fatalf("title = %q", eval.Title)
	}
	if len(eval.Lessons) == 0 {
		t.Fatal("evaluation carries no lessons")
	}
}

func TestEvaluationTitleBuckets(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{90, "Executive of the Era"},
		{85, "Executive of the Era"},
		{70, "Respected Architect"},
		{55, "Steady Hand"},
		{40, "Seat Getting Warm"},
		{39, "Fired by Text Message"},
	}
	for _, tt := range tests {
		if got := evaluationTitle(tt.score); got != tt.want {
			t.Fatalf("title(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}
