package game

import "math/rand"

// Name pools for generated players and prospects. All fictional.
var firstNames = []string{
	"Marcus", "Jalen", "DeAndre", "Tyrese", "Malik", "Darius", "Isaiah",
	"Zion", "Kairo", "Trey", "Andre", "Jamal", "Devin", "Cassius",
	"Omari", "Rashad", "Keon", "Landry", "Theo", "Elan", "Bo",
	"Quincy", "Dominic", "Silas", "Avery", "Rook", "Jaxon", "Micah",
	"Tobias", "Ezra", "Cole", "Damian", "Rowan", "Nico", "Amir",
}

var lastNames = []string{
	"Whitfield", "Carver", "Ellison", "Brooks", "Hargrove", "Sterling",
	"Vance", "Okafor", "Reyes", "Montgomery", "Draper", "Calloway",
	"Bishop", "Ashford", "Delgado", "Pemberton", "Sloane", "Kincaid",
	"Mercer", "Holloway", "Granger", "Fontaine", "Abara", "Tremblay",
	"Voss", "Winslow", "Navarro", "Castellan", "Ibragimov", "Larkin",
}

var colleges = []string{
	"Eastlake University", "St. Aldric's", "Port Hamilton State",
	"Redwood Tech", "Carverton College", "Gulf Coast A&M",
	"Northgate University", "Summit Ridge", "Blackwell Institute",
	"Lakemont State", "Iron Valley University", "Crescent City College",
}

// RandomName draws a fictional player name from the shared pools.
func RandomName(rng *rand.Rand) string {
	return firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
}
