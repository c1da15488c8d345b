package game

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Season shape.
const (
	RegularSeasonWeeks  = 24
	PlayoffTeamsPerConf = 8
	seriesWinsNeeded    = 4
)

// Game simulation tuning. Strength feeds score generation; scores feed the
// winner, never the other way around.
const (
	homeCourtEdge      = 3.0
	momentumWeight     = 0.5
	strengthNoiseSpan  = 20.0 // +/-10
	baseScore          = 95.0
	strengthScoreSlope = 0.5
	scoreNoiseSpan     = 15.0
	minScore           = 80
	momentumCap        = 10
)

// TeamStrength derives a 0-ish..100 strength figure from the roster:
// weighted starter/bench averages, a bonus per star, and a depth bonus up
// to twelve men. An empty roster pegs at 50 so a degenerate session still
// simulates.
func TeamStrength(team *Team) float64 {
	if len(team.Roster) == 0 {
		return 50
	}

	var starterSum, benchSum float64
	var starters, bench int
	stars := 0
	for _, p := range team.Roster {
		if p.IsStar {
			stars++
		}
		if p.IsStarter {
			starterSum += float64(p.OverallRating)
			starters++
		} else {
			benchSum += float64(p.OverallRating)
			bench++
		}
	}

	starterAvg := 60.0
	if starters > 0 {
		starterAvg = starterSum / float64(starters)
	}
	benchAvg := 55.0
	if bench > 0 {
		benchAvg = benchSum / float64(bench)
	}

	strength := starterAvg*0.7 + benchAvg*0.3
	strength += float64(stars) * 2
	strength += 0.5 * math.Min(float64(len(team.Roster)), 12)
	return strength
}

// momentum tracks per-team hot/cold streaks within a season, clamped so a
// long streak cannot snowball a season on its own.
type momentum map[string]float64

func (m momentum) bump(teamID string, won bool) {
	delta := -1.0
	if won {
		delta = 1.0
	}
	v := m[teamID] + delta
	m[teamID] = math.Max(-momentumCap, math.Min(momentumCap, v))
}

// SimulateGame plays one game. Home court and momentum shade each side's
// strength, noise makes upsets possible, and scores are derived from the
// adjusted strengths. Ties are broken by a single point to the stronger
// side.
func SimulateGame(rng *rand.Rand, home, away *Team, mom momentum) SimulatedGame {
	homeAdj := TeamStrength(home) + homeCourtEdge + mom[home.ID]*momentumWeight + (rng.Float64()-0.5)*strengthNoiseSpan
	awayAdj := TeamStrength(away) + mom[away.ID]*momentumWeight + (rng.Float64()-0.5)*strengthNoiseSpan

	homeScore := gameScore(rng, homeAdj)
	awayScore := gameScore(rng, awayAdj)
	if homeScore == awayScore {
		if homeAdj >= awayAdj {
			homeScore++
		} else {
			awayScore++
		}
	}

	winner := home.ID
	if awayScore > homeScore {
		winner = away.ID
	}
	return SimulatedGame{
		HomeTeamID: home.ID,
		AwayTeamID: away.ID,
		HomeScore:  homeScore,
		AwayScore:  awayScore,
		WinnerID:   winner,
	}
}

func gameScore(rng *rand.Rand, adjStrength float64) int {
	score := baseScore + (adjStrength-70)*strengthScoreSlope + (rng.Float64()-0.5)*scoreNoiseSpan
	if score < minScore {
		score = minScore
	}
	return int(math.Round(score))
}

// GenerateWeekPairings shuffles all team IDs and pairs them off. Not a
// balanced schedule; over 24 weeks the law of large numbers does the work.
func GenerateWeekPairings(rng *rand.Rand, teams []Team) [][2]string {
	ids := make([]string, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
	}
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	pairs := make([][2]string, 0, len(ids)/2)
	for i := 0; i+1 < len(ids); i += 2 {
		pairs = append(pairs, [2]string{ids[i], ids[i+1]})
	}
	return pairs
}

// Injury model: durability drives weekly probability, severity drives
// weeks out. Injuries surface in the news feed; rosters are not shortened.
const injuryChanceDivisor = 5000.0

func rollInjuries(rng *rand.Rand, teams []Team) []InjuryEvent {
	var events []InjuryEvent
	for t := range teams {
		for _, p := range teams[t].Roster {
			chance := float64(100-p.Durability) / injuryChanceDivisor
			if rng.Float64() >= chance {
				continue
			}
			severity, weeks := rollSeverity(rng)
			events = append(events, InjuryEvent{
				PlayerID: p.ID,
				TeamID:   teams[t].ID,
				Severity: severity,
				WeeksOut: weeks,
			})
		}
	}
	return events
}

func rollSeverity(rng *rand.Rand) (string, int) {
	roll := rng.Float64()
	switch {
	case roll < 0.5:
		return "minor", 1
	case roll < 0.8:
		return "moderate", 2 + rng.Intn(3)
	case roll < 0.95:
		return "major", 6 + rng.Intn(6)
	default:
		return "season_ending", RegularSeasonWeeks
	}
}

// SimulateWeek advances one schedule week: pairings, games, win/loss
// bookkeeping, momentum updates, injuries.
func SimulateWeek(rng *rand.Rand, state *GameState, mom momentum) SimulationWeek {
	week := SimulationWeek{Week: state.Week}
	for _, pair := range GenerateWeekPairings(rng, state.Teams) {
		home := state.Team(pair[0])
		away := state.Team(pair[1])
		game := SimulateGame(rng, home, away, mom)
		week.Games = append(week.Games, game)

		if game.WinnerID == home.ID {
			home.Wins++
			away.Losses++
		} else {
			away.Wins++
			home.Losses++
		}
		mom.bump(home.ID, game.WinnerID == home.ID)
		mom.bump(away.ID, game.WinnerID == away.ID)

		winRec := state.Standings[game.WinnerID]
		winRec.Wins++
		state.Standings[game.WinnerID] = winRec
		loserID := game.HomeTeamID
		if game.WinnerID == loserID {
			loserID = game.AwayTeamID
		}
		loseRec := state.Standings[loserID]
		loseRec.Losses++
		state.Standings[loserID] = loseRec
	}
	week.Injuries = rollInjuries(rng, state.Teams)
	return week
}

// SimulateRegularSeason runs all remaining weeks and returns the played
// weeks. Standings and rosters are mutated in place.
func SimulateRegularSeason(rng *rand.Rand, state *GameState) []SimulationWeek {
	mom := momentum{}
	var weeks []SimulationWeek
	for state.Week < RegularSeasonWeeks {
		state.Week++
		weeks = append(weeks, SimulateWeek(rng, state, mom))
	}
	return weeks
}

// ConferenceSeeds returns the top eight team IDs in the conference by wins,
// losses breaking ties.
func ConferenceSeeds(state *GameState, conf Conference) []string {
	var teams []*Team
	for i := range state.Teams {
		if state.Teams[i].Conference == conf {
			teams = append(teams, &state.Teams[i])
		}
	}
	sort.Slice(teams, func(i, j int) bool {
		if teams[i].Wins != teams[j].Wins {
			return teams[i].Wins > teams[j].Wins
		}
		return teams[i].Losses < teams[j].Losses
	})
	n := PlayoffTeamsPerConf
	if len(teams) < n {
		n = len(teams)
	}
	seeds := make([]string, n)
	for i := 0; i < n; i++ {
		seeds[i] = teams[i].ID
	}
	return seeds
}

// simulateSeries plays a best-of-seven with alternating notional home court
// for the higher seed.
func simulateSeries(rng *rand.Rand, state *GameState, higherID, lowerID string) SeriesResult {
	higher := state.Team(higherID)
	lower := state.Team(lowerID)
	mom := momentum{}

	result := SeriesResult{Team1ID: higherID, Team2ID: lowerID}
	for result.Team1Won < seriesWinsNeeded && result.Team2Won < seriesWinsNeeded {
		game := SimulateGame(rng, higher, lower, mom)
		if game.WinnerID == higherID {
			result.Team1Won++
		} else {
			result.Team2Won++
		}
	}
	if result.Team1Won == seriesWinsNeeded {
		result.WinnerID = higherID
	} else {
		result.WinnerID = lowerID
	}
	return result
}

var playoffRoundNames = []string{"first_round", "second_round", "conference_finals", "finals"}

var roundResults = []PlayoffResult{
	PlayoffFirstRound,
	PlayoffSecondRound,
	PlayoffConfFinals,
	PlayoffFinals,
}

// SimulatePlayoffs runs the full bracket: both conferences seeded 1-8,
// series paired seed i against seed 7-i, winners advancing until the
// conference champions meet in the finals. Every participant's deepest
// round is recorded in PlayoffResults; the champion is returned.
func SimulatePlayoffs(rng *rand.Rand, state *GameState) string {
	state.PlayoffBracket = nil
	state.PlayoffResults = map[string]PlayoffResult{}

	east := ConferenceSeeds(state, Eastern)
	west := ConferenceSeeds(state, Western)
	for _, id := range append(append([]string{}, east...), west...) {
		state.PlayoffResults[id] = PlayoffFirstRound
	}

	var finalists []string
	for _, seeds := range [][]string{east, west} {
		alive := seeds
		for round := 0; len(alive) > 1; round++ {
			var matchups []SeriesResult
			var winners []string
			for i := 0; i < len(alive)/2; i++ {
				series := simulateSeries(rng, state, alive[i], alive[len(alive)-1-i])
				matchups = append(matchups, series)
				winners = append(winners, series.WinnerID)
				if round+1 < len(roundResults) {
					state.PlayoffResults[series.WinnerID] = roundResults[round+1]
				}
			}
			state.PlayoffBracket = append(state.PlayoffBracket, BracketRound{
				Round:    playoffRoundNames[round],
				Matchups: matchups,
			})
			alive = winners
		}
		if len(alive) == 1 {
			finalists = append(finalists, alive[0])
		}
	}

	if len(finalists) < 2 {
		if len(finalists) == 1 {
			state.PlayoffResults[finalists[0]] = PlayoffChampion
			return finalists[0]
		}
		return ""
	}

	finals := simulateSeries(rng, state, finalists[0], finalists[1])
	state.PlayoffBracket = append(state.PlayoffBracket, BracketRound{
		Round:    "finals",
		Matchups: []SeriesResult{finals},
	})
	state.PlayoffResults[finals.Team1ID] = PlayoffFinals
	state.PlayoffResults[finals.Team2ID] = PlayoffFinals
	state.PlayoffResults[finals.WinnerID] = PlayoffChampion
	return finals.WinnerID
}

// SeasonMVP picks the league MVP: highest rating among starters, with a
// boost for star status.
func SeasonMVP(state *GameState) string {
	bestScore := -1.0
	best := ""
	for t := range state.Teams {
		for _, p := range state.Teams[t].Roster {
			if !p.IsStarter {
				continue
			}
			score := float64(p.OverallRating) * 1.2
			if p.IsStar {
				score += 10
			}
			if score > bestScore {
				bestScore = score
				best = p.Name
			}
		}
	}
	return best
}

// injuryNews converts injury events into news items for the feed.
func injuryNews(state *GameState, week SimulationWeek) []NewsItem {
	var items []NewsItem
	for _, inj := range week.Injuries {
		p := state.Player(inj.PlayerID)
		team := state.Team(inj.TeamID)
		if p == nil || team == nil {
			continue
		}
		items = append(items, NewsItem{
			Week:   week.Week,
			Season: state.Season,
			Title:  fmt.Sprintf("%s injured", p.Name),
			Body: fmt.Sprintf("%s %s suffered a %s injury and is expected to miss %d week(s).",
				team.Name, p.Name, inj.Severity, inj.WeeksOut),
			Type:    NewsInjury,
			TeamIDs: []string{team.ID},
		})
	}
	return items
}
