package game

// TeamContext is the single definition point for everything an archetype
// parameterizes: risk tolerance in the economic model, expected posture in
// the end-of-run evaluation, and the copy shown to the player. All call
// sites read this table instead of switching on the context type.
type TeamContext struct {
	Type                   ContextType  `json:"type"`
	Label                  string       `json:"label"`
	Description            string       `json:"description"`
	FanPatience            int          `json:"fan_patience"`
	MediaPressure          float64      `json:"media_pressure"`
	RevenueVolatility      float64      `json:"revenue_volatility"`
	OwnershipRiskTolerance float64      `json:"ownership_risk_tolerance"`
	BrandValueAtRisk       float64      `json:"brand_value_at_risk"`
	RiskMultiplier         float64      `json:"risk_multiplier"`
	RiskReason             string       `json:"risk_reason"`
	ExpectedRisk           RiskLevel    `json:"expected_risk"`
	DefaultStrategy        StrategyType `json:"default_strategy"`
	Difficulty             int          `json:"difficulty"`
}

var teamContexts = map[ContextType]TeamContext{
	LegacyPower: {
		Type:                   LegacyPower,
		Label:                  "Legacy Power",
		Description:            "Historic franchise with a massive fanbase, high expectations, and significant brand value. Fans expect contention every year.",
		FanPatience:            3,
		MediaPressure:          1.5,
		RevenueVolatility:      0.3,
		OwnershipRiskTolerance: 0.7,
		BrandValueAtRisk:       0.9,
		RiskMultiplier:         1.2,
		RiskReason:             "Legacy franchises have brand equity to absorb failures",
		ExpectedRisk:           RiskMedium,
		DefaultStrategy:        AggressivePush,
		Difficulty:             3,
	},
	SmallMarketReset: {
		Type:                   SmallMarketReset,
		Label:                  "Small Market Reset",
		Description:            "Smaller market team building through the draft. Patient fanbase but limited free agency appeal.",
		FanPatience:            7,
		MediaPressure:          0.6,
		RevenueVolatility:      0.7,
		OwnershipRiskTolerance: 0.4,
		BrandValueAtRisk:       0.3,
		RiskMultiplier:         0.7,
		RiskReason:             "Small markets have less revenue buffer for mistakes",
		ExpectedRisk:           RiskHigh,
		DefaultStrategy:        StabilityFirst,
		Difficulty:             2,
	},
	RevenueSensitive: {
		Type:                   RevenueSensitive,
		Label:                  "Revenue Sensitive",
		Description:            "Team where financial performance directly drives decisions. Must balance competitiveness with fiscal responsibility.",
		FanPatience:            5,
		MediaPressure:          0.8,
		RevenueVolatility:      0.9,
		OwnershipRiskTolerance: 0.3,
		BrandValueAtRisk:       0.5,
		RiskMultiplier:         0.5,
		RiskReason:             "Revenue-sensitive teams face harsh consequences for failure",
		ExpectedRisk:           RiskLow,
		DefaultStrategy:        StabilityFirst,
		Difficulty:             4,
	},
	CashRichExpansion: {
		Type:                   CashRichExpansion,
		Label:                  "Cash Rich Expansion",
		Description:            "Well-funded franchise looking to establish an identity. Money is available but must be spent wisely.",
		FanPatience:            6,
		MediaPressure:          0.7,
		RevenueVolatility:      0.4,
		OwnershipRiskTolerance: 0.8,
		BrandValueAtRisk:       0.2,
		RiskMultiplier:         1.5,
		RiskReason:             "Well-funded teams can absorb aggressive moves",
		ExpectedRisk:           RiskHigh,
		DefaultStrategy:        AggressivePush,
		Difficulty:             1,
	},
	StarDependent: {
		Type:                   StarDependent,
		Label:                  "Star Dependent",
		Description:            "Franchise built around one or two superstars. Keep the star happy or risk losing everything.",
		FanPatience:            4,
		MediaPressure:          1.2,
		RevenueVolatility:      0.6,
		OwnershipRiskTolerance: 0.6,
		BrandValueAtRisk:       0.7,
		RiskMultiplier:         1.1,
		RiskReason:             "Star-dependent teams often must take risks to compete",
		ExpectedRisk:           RiskMedium,
		DefaultStrategy:        AggressivePush,
		Difficulty:             3,
	},
}

// ContextFor looks up the archetype table; unknown types fall back to the
// revenue-sensitive profile, the most conservative one.
func ContextFor(t ContextType) TeamContext {
	if ctx, ok := teamContexts[t]; ok {
		return ctx
	}
	return teamContexts[RevenueSensitive]
}

func ContextTypes() []ContextType {
	return []ContextType{LegacyPower, SmallMarketReset, RevenueSensitive, CashRichExpansion, StarDependent}
}

type Strategy struct {
	Type                StrategyType `json:"type"`
	Label               string       `json:"label"`
	Description         string       `json:"description"`
	TradeRisk           float64      `json:"trade_risk"`
	DraftPickProtection bool         `json:"draft_pick_protection"`
	OutcomeVariance     float64      `json:"outcome_variance"`
	ChampionshipBonus   float64      `json:"championship_bonus"`
	WinNowOrientation   float64      `json:"win_now_orientation"`
	YouthDevelopment    float64      `json:"youth_development"`
	RiskLevel           RiskLevel    `json:"risk_level"`
}

var strategies = map[StrategyType]Strategy{
	StabilityFirst: {
		Type:                StabilityFirst,
		Label:               "Stability First",
		Description:         "Prioritize consistency and protect the downside. Focus on youth development and smart draft picks.",
		TradeRisk:           0.3,
		DraftPickProtection: true,
		OutcomeVariance:     0.7,
		ChampionshipBonus:   0.05,
		WinNowOrientation:   0.3,
		YouthDevelopment:    0.8,
		RiskLevel:           RiskLow,
	},
	AggressivePush: {
		Type:              AggressivePush,
		Label:             "Aggressive Push",
		Description:       "Trade flexibility for immediate improvement. Medium volatility balancing win-now with some future considerations.",
		TradeRisk:         0.6,
		OutcomeVariance:   1.2,
		ChampionshipBonus: 0.15,
		WinNowOrientation: 0.7,
		YouthDevelopment:  0.4,
		RiskLevel:         RiskMedium,
	},
	BoomBustSwing: {
		Type:              BoomBustSwing,
		Label:             "Boom/Bust Swing",
		Description:       "All-in approach with maximum championship upside but severe collapse risk. Trade everything for a title shot.",
		TradeRisk:         1.0,
		OutcomeVariance:   2.0,
		ChampionshipBonus: 0.30,
		WinNowOrientation: 1.0,
		YouthDevelopment:  0.1,
		RiskLevel:         RiskHigh,
	},
}

func StrategyFor(t StrategyType) Strategy {
	if s, ok := strategies[t]; ok {
		return s
	}
	return strategies[StabilityFirst]
}

type StrategyFit string

const (
	FitNatural     StrategyFit = "natural"
	FitWorkable    StrategyFit = "workable"
	FitAgainstType StrategyFit = "against_type"
)

// StrategyCompatibility grades a strategy against a franchise archetype
// from the compatibility table.
func StrategyCompatibility(t ContextType, s StrategyType) StrategyFit {
	score := ContextCompatibility(t, s)
	switch {
	case score >= 0.8:
		return FitNatural
	case score >= 0.4:
		return FitWorkable
	default:
		return FitAgainstType
	}
}

var contextCompatibility = map[ContextType]map[StrategyType]float64{
	LegacyPower:       {StabilityFirst: 0.5, AggressivePush: 0.9, BoomBustSwing: 0.7},
	SmallMarketReset:  {StabilityFirst: 0.9, AggressivePush: 0.5, BoomBustSwing: 0.3},
	RevenueSensitive:  {StabilityFirst: 0.8, AggressivePush: 0.5, BoomBustSwing: 0.2},
	CashRichExpansion: {StabilityFirst: 0.6, AggressivePush: 0.8, BoomBustSwing: 0.6},
	StarDependent:     {StabilityFirst: 0.4, AggressivePush: 0.8, BoomBustSwing: 0.9},
}

// ContextCompatibility scores how well a strategy suits an archetype, 0..1.
func ContextCompatibility(ctx ContextType, strategy StrategyType) float64 {
	if m, ok := contextCompatibility[ctx]; ok {
		if v, ok := m[strategy]; ok {
			return v
		}
	}
	return 0.5
}
