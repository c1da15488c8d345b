package game

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTierOf(t *testing.T) {
	tests := []struct {
		name   string
		rating int
		isStar bool
		want   Tier
	}{
		{"superstar", 92, false, TierSuperstar},
		{"star at cutoff", 85, false, TierStar},
		{"franchise flag promotes", 80, true, TierStar},
		{"quality starter", 78, false, TierQualityStarter},
		{"role player", 70, false, TierRolePlayer},
		{"filler", 69, false, TierFiller},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Player{OverallRating: tt.rating, IsStar: tt.isStar}
			if got := TierOf(p); got != tt.want {
				t.Fatalf("TierOf(rating=%d, star=%v) = %v, want %v", tt.rating, tt.isStar, got, tt.want)
			}
		})
	}
}

func TestTierCeilingBelowNextBase(t *testing.T) {
	for tier := TierFiller; tier < TierSuperstar; tier++ {
		if TierCeiling(tier) >= TierBase(tier+1) {
			t.Fatalf("tier %v ceiling %.0f not below %v base %.0f",
				tier, TierCeiling(tier), tier+1, TierBase(tier+1))
		}
	}
}

func TestPlayerValueBaseline(t *testing.T) {
	// No upside, fair salary, prime contract: value is base * age factor.
	p := Player{OverallRating: 70, Potential: 70, Age: 27, Salary: ExpectedSalary(70), ContractYears: 2}
	if got := PlayerValue(p); !almostEqual(got, 27.5) {
		t.Fatalf("PlayerValue = %.4f, want 27.5", got)
	}
}

func TestPlayerValueYoungUpside(t *testing.T) {
	young := Player{OverallRating: 70, Potential: 80, Age: 22, Salary: ExpectedSalary(70), ContractYears: 2}
	old := Player{OverallRating: 70, Potential: 80, Age: 28, Salary: ExpectedSalary(70), ContractYears: 2}
	if PlayerValue(young) <= PlayerValue(old) {
		t.Fatalf("young upside %.2f should beat aging upside %.2f", PlayerValue(young), PlayerValue(old))
	}
	// potential gap of 10 doubled for age <= 23, then age factor 1.3
	if got := PlayerValue(young); !almostEqual(got, (25+30)*1.3) {
		t.Fatalf("PlayerValue = %.4f, want %.4f", got, (25+30)*1.3)
	}
}

func TestPlayerValueOverpaidPenalty(t *testing.T) {
	fair := Player{OverallRating: 75, Potential: 75, Age: 27, Salary: ExpectedSalary(75), ContractYears: 2}
	overpaid := fair
	overpaid.Salary = ExpectedSalary(75) + 10
	if PlayerValue(overpaid) >= PlayerValue(fair) {
		t.Fatalf("overpaid %.2f should be worth less than fair %.2f", PlayerValue(overpaid), PlayerValue(fair))
	}
}

func TestPlayerValueAgingLongContract(t *testing.T) {
	short := Player{OverallRating: 80, Potential: 80, Age: 31, Salary: ExpectedSalary(80), ContractYears: 2}
	long := short
	long.ContractYears = 4
	if PlayerValue(long) >= PlayerValue(short) {
		t.Fatalf("aging long deal %.2f should be worth less than short deal %.2f",
			PlayerValue(long), PlayerValue(short))
	}
}

func TestPlayerValueFloor(t *testing.T) {
	p := Player{OverallRating: 45, Potential: 45, Age: 38, Salary: 30, ContractYears: 4}
	if got := PlayerValue(p); got < 1 {
		t.Fatalf("PlayerValue floor broken: %.4f", got)
	}
}

func TestPackageValueQuantityNeverBuysQuality(t *testing.T) {
	rolePlayer := Player{OverallRating: 75, Potential: 75, Age: 27, Salary: ExpectedSalary(75), ContractYears: 2}
	star := Player{OverallRating: 86, Potential: 86, Age: 27, Salary: ExpectedSalary(86), ContractYears: 2, IsStar: true}

	five := []Player{rolePlayer, rolePlayer, rolePlayer, rolePlayer, rolePlayer}
	fiveValue := PackageValue(five)
	starValue := PackageValue([]Player{star})

	if fiveValue > TierCeiling(TierRolePlayer) {
		t.Fatalf("five role players worth %.2f, above tier ceiling %.0f", fiveValue, TierCeiling(TierRolePlayer))
	}
	if starValue < TierBase(TierStar) {
		t.Fatalf("single star worth %.2f, below star base %.0f", starValue, TierBase(TierStar))
	}
	if fiveValue >= starValue {
		t.Fatalf("role-player package %.2f should never match a star %.2f", fiveValue, starValue)
	}
}

func TestPackageValueDiminishingMarginals(t *testing.T) {
	rolePlayer := Player{OverallRating: 74, Potential: 74, Age: 26, Salary: ExpectedSalary(74), ContractYears: 2}

	players := []Player{}
	prev := 0.0
	prevMarginal := math.Inf(1)
	for i := 0; i < 7; i++ {
		players = append(players, rolePlayer)
		total := PackageValue(players)
		marginal := total - prev
		if marginal > prevMarginal+1e-9 {
			t.Fatalf("marginal value rose at player %d: %.4f after %.4f", i+1, marginal, prevMarginal)
		}
		prev = total
		prevMarginal = marginal
	}
}

func TestPackageValueDepthPenalty(t *testing.T) {
	filler := Player{OverallRating: 60, Potential: 60, Age: 27, Salary: 1, ContractYears: 2}
	three := PackageValue([]Player{filler, filler, filler})
	five := PackageValue([]Player{filler, filler, filler, filler, filler})
	// the fourth and fifth bodies add rank-discounted value but cost a flat
	// penalty each; the package must not grow by more than their raw value
	if five > three+2*PlayerValue(filler) {
		t.Fatalf("deep package grew too much: 3 players %.2f, 5 players %.2f", three, five)
	}
}

func TestPackageValueEmpty(t *testing.T) {
	if got := PackageValue(nil); got != 0 {
		t.Fatalf("empty package = %.2f, want 0", got)
	}
}

func TestPickValue(t *testing.T) {
	tests := []struct {
		name string
		pick DraftPick
		want float64
	}{
		{"first overall", DraftPick{Round: 1, Year: 1, ProjectedPosition: 1}, 266},
		{"second overall", DraftPick{Round: 1, Year: 1, ProjectedPosition: 2}, 212},
		{"third overall", DraftPick{Round: 1, Year: 1, ProjectedPosition: 3}, 173},
		{"mid lottery", DraftPick{Round: 1, Year: 1, ProjectedPosition: 10}, 110},
		{"unknown position defaults", DraftPick{Round: 1, Year: 1}, 90},
		{"second round discount", DraftPick{Round: 2, Year: 1, ProjectedPosition: 35}, 7},
		{"future year discount", DraftPick{Round: 1, Year: 2, ProjectedPosition: 10}, 94},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PickValue(tt.pick); got != tt.want {
				t.Fatalf("PickValue = %.0f, want %.0f", got, tt.want)
			}
		})
	}
}

func TestPickValueTopPremiumConvex(t *testing.T) {
	v1 := PickValue(DraftPick{Round: 1, Year: 1, ProjectedPosition: 1})
	v2 := PickValue(DraftPick{Round: 1, Year: 1, ProjectedPosition: 2})
	v3 := PickValue(DraftPick{Round: 1, Year: 1, ProjectedPosition: 3})
	if v1-v2 <= v2-v3 {
		t.Fatalf("premium not convex: 1->2 gap %.0f, 2->3 gap %.0f", v1-v2, v2-v3)
	}
}
