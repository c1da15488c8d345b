package game

import "testing"

func TestContextForFallsBackToRevenueSensitive(t *testing.T) {
	if got := ContextFor("made_up"); got.Type != RevenueSensitive {
		t.Fatalf("fallback context = %s", got.Type)
	}
}

func TestContextTableComplete(t *testing.T) {
	for _, ct := range ContextTypes() {
		info := ContextFor(ct)
		if info.Type != ct {
			t.Fatalf("context %s resolves to %s", ct, info.Type)
		}
		if info.Label == "" || info.Description == "" {
			t.Fatalf("context %s missing label or description", ct)
		}
		if info.RiskMultiplier <= 0 {
			t.Fatalf("context %s risk multiplier %.2f", ct, info.RiskMultiplier)
		}
		if _, ok := strategies[info.DefaultStrategy]; !ok {
			t.Fatalf("context %s default strategy %q not in table", ct, info.DefaultStrategy)
		}
		if info.Difficulty < 1 || info.Difficulty > 5 {
			t.Fatalf("context %s difficulty %d", ct, info.Difficulty)
		}
	}
}

func TestStrategyForUnknownDefaultsToStability(t *testing.T) {
	if got := StrategyFor("made_up"); got.Type != StabilityFirst {
		t.Fatalf("fallback strategy = %s", got.Type)
	}
}

func TestStrategyCompatibility(t *testing.T) {
	cases := []struct {
		context  ContextType
		strategy StrategyType
		want     StrategyFit
	}{
		{RevenueSensitive, StabilityFirst, FitNatural},
		{RevenueSensitive, AggressivePush, FitWorkable},
		{RevenueSensitive, BoomBustSwing, FitAgainstType},
		{LegacyPower, AggressivePush, FitNatural},
		{LegacyPower, BoomBustSwing, FitWorkable},
		{SmallMarketReset, StabilityFirst, FitNatural},
		{SmallMarketReset, BoomBustSwing, FitAgainstType},
		{StarDependent, BoomBustSwing, FitNatural},
		{CashRichExpansion, BoomBustSwing, FitWorkable},
		{CashRichExpansion, StabilityFirst, FitWorkable},
		{"made_up", BoomBustSwing, FitWorkable},
	}
	for _, tc := range cases {
		if got := StrategyCompatibility(tc.context, tc.strategy); got != tc.want {
			t.Fatalf("StrategyCompatibility(%s, %s) = %s, want %s", tc.context, tc.strategy, got, tc.want)
		}
	}
}

func TestContextCompatibilityCoversEveryPairing(t *testing.T) {
	for _, ct := range ContextTypes() {
		for st := range strategies {
			score := ContextCompatibility(ct, st)
			if score <= 0 || score > 1 {
				t.Fatalf("ContextCompatibility(%s, %s) = %.2f", ct, st, score)
			}
		}
	}
}
