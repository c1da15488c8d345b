package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgWhite)
)

func printSuccess(msg string) { success.Println(msg) }
func printWarn(msg string)    { warn.Println(msg) }
func printInfo(msg string)    { neutral.Println(msg) }

func str(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}

func num(m map[string]any, key string) float64 {
	v, _ := m[key].(float64)
	return v
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func userTeamName(state map[string]any) string {
	userID := str(state, "team_id")
	teams, _ := state["teams"].([]any)
	for _, t := range teams {
		team, ok := t.(map[string]any)
		if !ok {
			continue
		}
		if str(team, "id") == userID {
			return strings.TrimSpace(str(team, "city") + " " + str(team, "name"))
		}
	}
	return userID
}

func findUserTeam(state map[string]any) map[string]any {
	userID := str(state, "team_id")
	teams, _ := state["teams"].([]any)
	for _, t := range teams {
		team, ok := t.(map[string]any)
		if !ok {
			continue
		}
		if str(team, "id") == userID {
			return team
		}
	}
	return nil
}

func renderFranchises(franchises []map[string]any) {
	accent.Println("Available franchises")
	fmt.Printf("%-6s %-26s %-8s %-8s %-20s %s\n", "ID", "TEAM", "CONF", "MARKET", "CONTEXT", "PRS")
	for _, f := range franchises {
		ctx := ""
		if info, ok := f["context_info"].(map[string]any); ok {
			ctx = str(info, "label")
		}
		fmt.Printf("%-6s %-26s %-8s %-8s %-20s %3.0f\n",
			str(f, "id"),
			truncate(str(f, "city")+" "+str(f, "name"), 26),
			str(f, "conference"),
			str(f, "market"),
			ctx,
			num(f, "prestige"))
	}
}

func renderStatus(state map[string]any) {
	team := findUserTeam(state)
	if team == nil {
		printWarn("no team found in session state")
		return
	}
	accent.Printf("%s | season %d, %s\n", userTeamName(state), int(num(state, "season")), str(state, "phase"))
	fmt.Printf("Record: %d-%d   Payroll: $%.1fM   Fans: %.0f%%   Owner: %.0f%%\n",
		int(num(team, "wins")), int(num(team, "losses")),
		num(team, "total_salary"),
		num(state, "fan_approval"), num(state, "owner_confidence"))
	fmt.Printf("Strategy: %s\n", str(state, "strategy"))

	news, _ := state["news"].([]any)
	if len(news) > 0 {
		neutral.Println("\nRecent news:")
		start := len(news) - 5
		if start < 0 {
			start = 0
		}
		for _, n := range news[start:] {
			if item, ok := n.(map[string]any); ok {
				fmt.Printf("  - %s\n", str(item, "title"))
			}
		}
	}
}

func renderRoster(state map[string]any) {
	team := findUserTeam(state)
	if team == nil {
		printWarn("no team found in session state")
		return
	}
	accent.Printf("%s roster\n", userTeamName(state))
	fmt.Printf("%-12s %-24s %-4s %4s %4s %4s %9s %6s\n", "ID", "NAME", "POS", "AGE", "OVR", "POT", "SALARY", "YEARS")

	roster, _ := team["roster"].([]any)
	players := make([]map[string]any, 0, len(roster))
	for _, p := range roster {
		if pm, ok := p.(map[string]any); ok {
			players = append(players, pm)
		}
	}
	sort.Slice(players, func(i, j int) bool {
		return num(players[i], "overall_rating") > num(players[j], "overall_rating")
	})
	for _, p := range players {
		marker := " "
		if starter, _ := p["is_starter"].(bool); starter {
			marker = "*"
		}
		fmt.Printf("%-12s %-24s %-4s %4.0f %4.0f %4.0f  $%6.1fM %5.0fy %s\n",
			truncate(str(p, "id"), 12),
			truncate(str(p, "name"), 24),
			str(p, "position"),
			num(p, "age"), num(p, "overall_rating"), num(p, "potential"),
			num(p, "salary"), num(p, "contract_years"), marker)
	}
	fmt.Printf("\nPayroll: $%.1fM  (* = starter)\n", num(team, "total_salary"))
}

func renderTradeResult(out map[string]any, proposed bool) {
	eval, _ := out["evaluation"].(map[string]any)
	if eval == nil {
		eval = out
	}
	if valid, ok := eval["valid"].(bool); ok && !valid {
		danger.Printf("Trade invalid: %s\n", str(eval, "reason"))
		return
	}

	fairness := num(eval, "fairness_score")
	fmt.Printf("You send out: $%.0f value   You get back: $%.0f value\n",
		num(eval, "from_value"), num(eval, "to_value"))
	switch {
	case fairness > 0:
		warn.Printf("Fairness %+.1f: you are overpaying\n", fairness)
	case fairness < 0:
		success.Printf("Fairness %+.1f: you come out ahead\n", fairness)
	default:
		neutral.Println("Fairness 0.0: dead even")
	}
	fmt.Println(str(eval, "analysis"))

	if risk, ok := eval["risk_assessment"].(map[string]any); ok {
		level := str(risk, "level")
		line := fmt.Sprintf("Risk: %s (%.0f)", level, num(risk, "score"))
		if level == "high" {
			danger.Println(line)
		} else {
			neutral.Println(line)
		}
		if reasons, ok := risk["reasons"].([]any); ok {
			for _, r := range reasons {
				fmt.Printf("  - %v\n", r)
			}
		}
	}

	if proposed {
		if accepted, ok := out["accepted"].(bool); ok {
			if accepted {
				printSuccess(str(out, "message"))
			} else {
				printWarn(str(out, "message"))
			}
		}
	}
}

func renderFreeAgents(agents []map[string]any) {
	accent.Println("Free agents")
	fmt.Printf("%-12s %-24s %-4s %4s %4s %9s %6s\n", "ID", "NAME", "POS", "AGE", "OVR", "ASKING", "YEARS")
	for _, fa := range agents {
		player, _ := fa["player"].(map[string]any)
		if player == nil {
			continue
		}
		fmt.Printf("%-12s %-24s %-4s %4.0f %4.0f  $%6.1fM %5.0fy\n",
			truncate(str(player, "id"), 12),
			truncate(str(player, "name"), 24),
			str(player, "position"),
			num(player, "age"), num(player, "overall_rating"),
			num(fa, "asking_price"), num(fa, "years_wanted"))
	}
}

func renderSigningResult(out map[string]any) {
	ok, _ := out["success"].(bool)
	if ok {
		printSuccess(str(out, "message"))
	} else {
		printWarn(str(out, "message"))
	}
	fmt.Printf("Interest: %.0f/100\n", num(out, "interest"))
}

func renderProspects(prospects []map[string]any) {
	accent.Println("Draft board")
	fmt.Printf("%-12s %-24s %-4s %-18s %4s %4s %5s\n", "ID", "NAME", "POS", "COLLEGE", "OVR", "POT", "VAR")
	for _, p := range prospects {
		fmt.Printf("%-12s %-24s %-4s %-18s %4.0f %4.0f %5.0f\n",
			truncate(str(p, "id"), 12),
			truncate(str(p, "name"), 24),
			str(p, "position"),
			truncate(str(p, "college"), 18),
			num(p, "overall_rating"), num(p, "potential"), num(p, "variance"))
	}
}

func renderDraftResult(out map[string]any) {
	if msg := str(out, "message"); msg != "" {
		if ok, _ := out["success"].(bool); ok {
			printSuccess(msg)
		} else {
			printWarn(msg)
		}
	}
	if player, ok := out["player"].(map[string]any); ok && player != nil {
		fmt.Printf("Selected %s (%s) at pick %d, rated %.0f, potential %.0f\n",
			str(player, "name"), str(player, "position"),
			int(num(out, "pick_number")),
			num(player, "overall_rating"), num(player, "potential"))
	}
	if complete, _ := out["complete"].(bool); complete {
		printInfo("The draft is over. Free agency is open.")
	} else if onClock := str(out, "on_clock"); onClock != "" {
		accent.Printf("On the clock: %s\n", onClock)
	}
}

func renderSeasonSummary(out map[string]any) {
	accent.Printf("Season %d complete\n", int(num(out, "season")))
	fmt.Printf("Record: %d-%d   Playoffs: %s\n",
		int(num(out, "wins")), int(num(out, "losses")), str(out, "playoff_result"))
	if champion := str(out, "champion_id"); champion != "" {
		fmt.Printf("Champion: %s\n", champion)
	}
	if mvp := str(out, "mvp"); mvp != "" {
		fmt.Printf("MVP: %s\n", mvp)
	}

	if fin, ok := out["financials"].(map[string]any); ok {
		profit := num(fin, "profit")
		line := fmt.Sprintf("Books: revenue $%.1fM, expenses $%.1fM, profit $%+.1fM",
			num(fin, "revenue"), num(fin, "expenses"), profit)
		if profit < 0 {
			danger.Println(line)
		} else {
			success.Println(line)
		}
		if tax := num(fin, "luxury_tax_owed"); tax > 0 {
			warn.Printf("Luxury tax bill: $%.1fM\n", tax)
		}
	}

	fmt.Printf("Season risk rating: %s   Win volatility: %.2f\n",
		str(out, "risk_rating"), num(out, "volatility"))

	if over, _ := out["game_over"].(bool); over {
		accent.Println("\nYour run is over. See how you did with `cgm eval`.")
	}
}

func renderFinances(out map[string]any) {
	accent.Println("Franchise finances")
	if cur, ok := out["current"].(map[string]any); ok {
		fmt.Printf("Revenue: $%.1fM   Expenses: $%.1fM   Profit: $%+.1fM\n",
			num(cur, "revenue"), num(cur, "expenses"), num(cur, "profit"))
		fmt.Printf("Luxury tax: $%.1fM   Consecutive tax years: %d\n",
			num(cur, "luxury_tax_owed"), int(num(cur, "consecutive_tax_years")))
		fmt.Printf("Payroll: $%.1fM   Cap space: $%.1fM   Over tax line: $%+.1fM\n",
			num(cur, "current_payroll"), num(out, "cap_space"), num(out, "tax_payroll"))
	}
	if health, ok := out["health"].(map[string]any); ok {
		rating := str(health, "status")
		line := fmt.Sprintf("Health: %s. %s", rating, str(health, "summary"))
		switch rating {
		case "excellent", "healthy":
			success.Println(line)
		case "critical", "strained":
			danger.Println(line)
		default:
			neutral.Println(line)
		}
	}
}

func renderRational(out map[string]any) {
	rational, _ := out["rational"].(bool)
	if rational {
		success.Printf("Rational: risk level %s (threshold $%.1fM)\n", str(out, "risk_level"), num(out, "threshold"))
	} else {
		danger.Printf("Overreach: risk level %s (threshold $%.1fM)\n", str(out, "risk_level"), num(out, "threshold"))
	}
	fmt.Println(str(out, "reason"))
}

func renderEvaluation(out map[string]any) {
	accent.Printf("%s\n", str(out, "title"))
	fmt.Printf("Overall score: %.0f/100\n", num(out, "score"))
	fmt.Printf("  Context fit: %.0f   Financial: %.0f   Performance: %.0f\n",
		num(out, "context_score"), num(out, "financial_score"), num(out, "performance_score"))
	fmt.Printf("Expected risk: %s   Actual risk: %s\n", str(out, "expected_risk"), str(out, "actual_risk"))
	if lessons, ok := out["lessons"].([]any); ok && len(lessons) > 0 {
		neutral.Println("\nLessons:")
		for _, l := range lessons {
			fmt.Printf("  - %v\n", l)
		}
	}
}

func renderLeaderboard(entries []map[string]any) {
	accent.Println("All-time runs")
	fmt.Printf("%-4s %-26s %7s %5s %6s %6s\n", "#", "TEAM", "SEASONS", "WINS", "RINGS", "SCORE")
	for i, e := range entries {
		fmt.Printf("%-4d %-26s %7d %5d %6d %6.0f\n",
			i+1,
			truncate(str(e, "team_name"), 26),
			int(num(e, "seasons")), int(num(e, "total_wins")),
			int(num(e, "championships")), num(e, "best_score"))
	}
}
