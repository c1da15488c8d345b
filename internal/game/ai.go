package game

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/google/uuid"
)

const (
	minAIRosterSize  = 10
	aiSignChance     = 0.7
	aiProposalChance = 0.35
)

// AssignStarters marks the best player at each position as the starter,
// falling back to the top five overall when a position is empty.
func AssignStarters(team *Team) {
	for i := range team.Roster {
		team.Roster[i].IsStarter = false
	}

	assigned := 0
	for _, pos := range Positions {
		best := -1
		for i := range team.Roster {
			p := &team.Roster[i]
			if p.Position != pos || p.IsStarter {
				continue
			}
			if best == -1 || p.OverallRating > team.Roster[best].OverallRating {
				best = i
			}
		}
		if best >= 0 {
			team.Roster[best].IsStarter = true
			assigned++
		}
	}

	if assigned < 5 {
		idx := make([]int, 0, len(team.Roster))
		for i := range team.Roster {
			if !team.Roster[i].IsStarter {
				idx = append(idx, i)
			}
		}
		sort.Slice(idx, func(a, b int) bool {
			return team.Roster[idx[a]].OverallRating > team.Roster[idx[b]].OverallRating
		})
		for _, i := range idx {
			if assigned >= 5 {
				break
			}
			team.Roster[i].IsStarter = true
			assigned++
		}
	}
}

// ProcessAIOffseason runs every AI front office: fill thin rosters from the
// free-agent pool when the money works, then reset starting lineups.
// Signed agents are removed from the shared pool.
func ProcessAIOffseason(rng *rand.Rand, state *GameState) {
	for i := range state.Teams {
		team := &state.Teams[i]
		if team.ID == state.TeamID {
			continue
		}
		aiFillRoster(rng, state, team)
		AssignStarters(team)
	}
}

func aiFillRoster(rng *rand.Rand, state *GameState, team *Team) {
	for len(team.Roster) < minAIRosterSize && len(state.FreeAgents) > 0 {
		if rng.Float64() > aiSignChance {
			return
		}
		pick := aiBestAffordable(state.FreeAgents, SalaryCap-team.TotalSalary)
		if pick < 0 {
			return
		}
		fa := state.FreeAgents[pick]
		SignFreeAgent(team, fa, fa.AskingPrice, fa.YearsWanted)
		state.FreeAgents = append(state.FreeAgents[:pick], state.FreeAgents[pick+1:]...)
	}
}

// maybeProposeTrade has a front office come calling with an offer for one
// of the user's players. At most one offer sits on the table at a time;
// unanswered offers are withdrawn when the season tips off.
func maybeProposeTrade(rng *rand.Rand, state *GameState) {
	if rng.Float64() > aiProposalChance {
		return
	}
	tableIncomingProposal(rng, state)
}

func tableIncomingProposal(rng *rand.Rand, state *GameState) {
	if hasIncomingProposal(state) {
		return
	}
	user := state.UserTeam()
	if user == nil || len(state.Teams) < 2 {
		return
	}
	aiTeam := &state.Teams[rng.Intn(len(state.Teams))]
	if aiTeam.ID == user.ID {
		return
	}
	proposal := GenerateAITradeProposal(rng, aiTeam, user)
	if proposal == nil {
		return
	}
	proposal.ID = uuid.NewString()
	state.TradeHistory = append(state.TradeHistory, *proposal)

	wantedName := "one of your players"
	if p := state.Player(proposal.PlayersRequested[0]); p != nil {
		wantedName = p.Name
	}
	state.News = append(state.News, NewsItem{
		ID:     uuid.NewString(),
		Season: state.Season,
		Title:  fmt.Sprintf("%s want to talk trade", aiTeam.Name),
		Body: fmt.Sprintf("The %s have floated a %d-player package for %s. The offer stands until the season tips off.",
			aiTeam.Name, len(proposal.PlayersOffered), wantedName),
		Type:    NewsTrade,
		TeamIDs: []string{aiTeam.ID, user.ID},
	})
}

func hasIncomingProposal(state *GameState) bool {
	for _, p := range state.TradeHistory {
		if p.Status == TradePending && p.ToTeamID == state.TeamID {
			return true
		}
	}
	return false
}

// expireIncomingProposals withdraws any AI offer the user left unanswered.
func expireIncomingProposals(state *GameState) {
	for i := range state.TradeHistory {
		p := &state.TradeHistory[i]
		if p.Status == TradePending && p.ToTeamID == state.TeamID {
			p.Status = TradeRejected
		}
	}
}

func aiBestAffordable(pool []FreeAgent, capSpace float64) int {
	best := -1
	for i, fa := range pool {
		if fa.AskingPrice > capSpace {
			continue
		}
		if best == -1 || fa.Player.OverallRating > pool[best].Player.OverallRating {
			best = i
		}
	}
	return best
}
