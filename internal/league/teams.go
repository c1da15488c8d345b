package league

import "courtside/internal/game"

// franchise is the static identity of a league team; rosters are generated
// per session. All franchises are fictional.
type franchise struct {
	City         string           `yaml:"city"`
	Name         string           `yaml:"name"`
	Abbreviation string           `yaml:"abbreviation"`
	Conference   game.Conference  `yaml:"conference"`
	Division     string           `yaml:"division"`
	Market       game.MarketSize  `yaml:"market"`
	Context      game.ContextType `yaml:"context"`
	Fanbase      int              `yaml:"fanbase"`
	Prestige     int              `yaml:"prestige"`
	Strength     int              `yaml:"strength"` // roster quality anchor, 0-100
}

var defaultFranchises = []franchise{
	// Eastern Conference
	{"Gotham Bay", "Monarchs", "GBM", game.Eastern, "Atlantic", game.MarketLarge, game.LegacyPower, 88, 90, 78},
	{"Harbor City", "Admirals", "HCA", game.Eastern, "Atlantic", game.MarketLarge, game.StarDependent, 80, 74, 74},
	{"New Avalon", "Knights", "NAK", game.Eastern, "Atlantic", game.MarketMedium, game.RevenueSensitive, 62, 58, 68},
	{"Brookhaven", "Bears", "BHB", game.Eastern, "Atlantic", game.MarketMedium, game.RevenueSensitive, 55, 50, 64},
	{"Port Richmond", "Pilots", "PRP", game.Eastern, "Atlantic", game.MarketSmall, game.SmallMarketReset, 44, 38, 58},
	{"Iron Falls", "Forgers", "IFF", game.Eastern, "Central", game.MarketMedium, game.LegacyPower, 76, 82, 72},
	{"Lakewood", "Loons", "LKL", game.Eastern, "Central", game.MarketMedium, game.RevenueSensitive, 58, 52, 66},
	{"Summit City", "Stags", "SCS", game.Eastern, "Central", game.MarketSmall, game.SmallMarketReset, 41, 35, 56},
	{"Delmont", "Drummers", "DMD", game.Eastern, "Central", game.MarketSmall, game.RevenueSensitive, 47, 44, 60},
	{"Ashford", "Aces", "ASH", game.Eastern, "Central", game.MarketMedium, game.StarDependent, 66, 60, 71},
	{"Crown Point", "Captains", "CPC", game.Eastern, "Southeast", game.MarketLarge, game.StarDependent, 78, 70, 73},
	{"Palm Verde", "Herons", "PVH", game.Eastern, "Southeast", game.MarketLarge, game.CashRichExpansion, 70, 55, 69},
	{"Savanna", "Sentinels", "SVS", game.Eastern, "Southeast", game.MarketMedium, game.RevenueSensitive, 52, 48, 62},
	{"Gulfport", "Gulls", "GPG", game.Eastern, "Southeast", game.MarketSmall, game.SmallMarketReset, 39, 32, 54},
	{"Meridian", "Mammoths", "MRM", game.Eastern, "Southeast", game.MarketSmall, game.SmallMarketReset, 42, 36, 57},
	// Western Conference
	{"Bayside", "Barons", "BSB", game.Western, "Pacific", game.MarketLarge, game.LegacyPower, 90, 92, 80},
	{"Costa Alta", "Cougars", "CAC", game.Western, "Pacific", game.MarketLarge, game.CashRichExpansion, 74, 60, 70},
	{"Silver Strand", "Surf", "SSS", game.Western, "Pacific", game.MarketLarge, game.StarDependent, 77, 68, 72},
	{"Redrock", "Raptors", "RRR", game.Western, "Pacific", game.MarketMedium, game.RevenueSensitive, 56, 50, 63},
	{"Cascade", "Condors", "CSC", game.Western, "Pacific", game.MarketMedium, game.SmallMarketReset, 49, 42, 59},
	{"Prairie View", "Bison", "PVB", game.Western, "Midwest", game.MarketSmall, game.SmallMarketReset, 45, 40, 58},
	{"Twin Forks", "Trappers", "TFT", game.Western, "Midwest", game.MarketMedium, game.RevenueSensitive, 57, 54, 65},
	{"Granite City", "Griffins", "GCG", game.Western, "Midwest", game.MarketMedium, game.LegacyPower, 72, 78, 71},
	{"Windmere", "Wolves", "WMW", game.Western, "Midwest", game.MarketSmall, game.RevenueSensitive, 46, 41, 60},
	{"Dust Basin", "Drifters", "DBD", game.Western, "Midwest", game.MarketSmall, game.SmallMarketReset, 37, 30, 53},
	{"Sol Mesa", "Scorpions", "SMS", game.Western, "Southwest", game.MarketLarge, game.StarDependent, 79, 72, 74},
	{"Rio Oro", "Rattlers", "ROR", game.Western, "Southwest", game.MarketMedium, game.CashRichExpansion, 64, 52, 67},
	{"Verde Canyon", "Vaqueros", "VCV", game.Western, "Southwest", game.MarketMedium, game.RevenueSensitive, 54, 49, 63},
	{"High Plains", "Hawks", "HPH", game.Western, "Southwest", game.MarketSmall, game.SmallMarketReset, 40, 34, 55},
	{"Caldera", "Comets", "CLC", game.Western, "Southwest", game.MarketMedium, game.StarDependent, 61, 56, 69},
}
