package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	cl "courtside/internal/cli"
	"courtside/internal/config"
	"courtside/internal/syncq"
)

func main() {
	cfg := config.LoadCLI()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "cgm",
		Short:        "Courtside franchise manager client",
		SilenceUsage: true,
	}

	root.AddCommand(
		newFranchisesCmd(&apiBase),
		newNewCmd(&apiBase),
		newStatusCmd(&apiBase),
		newRosterCmd(&apiBase),
		newTradeCmd(&apiBase),
		newFreeAgentsCmd(&apiBase),
		newDraftCmd(&apiBase),
		newSimCmd(&apiBase),
		newStartCmd(&apiBase),
		newStrategyCmd(&apiBase),
		newFinancesCmd(&apiBase),
		newEvalCmd(&apiBase),
		newLeaderboardCmd(&apiBase),
		newSyncCmd(&apiBase),
		newQuitCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func cmdContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 60*time.Second)
}

func newFranchisesCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "franchises",
		Short: "List the franchises you can take over",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			franchises, err := newClient(apiBase).Franchises(ctx)
			if err != nil {
				return err
			}
			renderFranchises(franchises)
			return nil
		},
	}
}

func newNewCmd(apiBase *string) *cobra.Command {
	var difficulty string
	cmd := &cobra.Command{
		Use:   "new <team-id>",
		Short: "Start a new franchise run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).CreateSession(ctx, args[0], difficulty)
			if err != nil {
				return err
			}
			token, _ := out["token"].(string)
			if token == "" {
				return fmt.Errorf("no session token in response")
			}
			teamName := ""
			if state, ok := out["state"].(map[string]any); ok {
				teamName = userTeamName(state)
			}
			if err := cl.SaveSession(cl.Session{Token: token, TeamID: args[0], TeamName: teamName}); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("You are now running the %s. Good luck.", teamName))
			return nil
		},
	}
	cmd.Flags().StringVar(&difficulty, "difficulty", "medium", "easy, medium, or hard")
	return cmd
}

func newStatusCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current run at a glance",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			state, err := newClient(apiBase).Session(ctx, sess.Token)
			if err != nil {
				return err
			}
			renderStatus(state)
			return nil
		},
	}
}

func newRosterCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "roster",
		Short: "Show your roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			state, err := newClient(apiBase).Session(ctx, sess.Token)
			if err != nil {
				return err
			}
			renderRoster(state)
			return nil
		},
	}
}

func newTradeCmd(apiBase *string) *cobra.Command {
	trade := &cobra.Command{
		Use:   "trade",
		Short: "Evaluate or propose trades",
	}

	var to string
	var give, want, givePicks, wantPicks []string

	addFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&to, "to", "", "trade partner team id")
		c.Flags().StringSliceVar(&give, "give", nil, "player ids to send out")
		c.Flags().StringSliceVar(&want, "want", nil, "player ids to get back")
		c.Flags().StringSliceVar(&givePicks, "give-picks", nil, "pick ids to send out")
		c.Flags().StringSliceVar(&wantPicks, "want-picks", nil, "pick ids to get back")
		_ = c.MarkFlagRequired("to")
	}

	body := func() map[string]any {
		return map[string]any{
			"to_team_id":        to,
			"players_offered":   give,
			"players_requested": want,
			"picks_offered":     givePicks,
			"picks_requested":   wantPicks,
		}
	}

	evalCmd := &cobra.Command{
		Use:   "eval",
		Short: "Price a trade without sending it",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).EvaluateTrade(ctx, sess.Token, body())
			if err != nil {
				return err
			}
			renderTradeResult(out, false)
			return nil
		},
	}
	addFlags(evalCmd)

	sendCmd := &cobra.Command{
		Use:   "send",
		Short: "Send the trade to the other front office",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).ProposeTrade(ctx, sess.Token, body())
			if err != nil {
				if queueErr := syncq.Push(syncq.Command{Method: "POST", Path: "/v1/trades", Body: body()}); queueErr == nil {
					printWarn("API unreachable; trade queued. Run `cgm sync` when back online.")
					return nil
				}
				return err
			}
			renderTradeResult(out, true)
			return nil
		},
	}
	addFlags(sendCmd)

	trade.AddCommand(evalCmd, sendCmd)
	return trade
}

func newFreeAgentsCmd(apiBase *string) *cobra.Command {
	fa := &cobra.Command{
		Use:   "fa",
		Short: "Work the free-agent market",
	}

	fa.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available free agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			agents, err := newClient(apiBase).FreeAgents(ctx, sess.Token)
			if err != nil {
				return err
			}
			renderFreeAgents(agents)
			return nil
		},
	})

	var salary float64
	var years int
	offer := &cobra.Command{
		Use:   "offer <player-id>",
		Short: "Offer a free agent a contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).OfferFreeAgent(ctx, sess.Token, args[0], salary, years)
			if err != nil {
				return err
			}
			renderSigningResult(out)
			return nil
		},
	}
	offer.Flags().Float64Var(&salary, "salary", 0, "annual salary in $M")
	offer.Flags().IntVar(&years, "years", 2, "contract length")
	_ = offer.MarkFlagRequired("salary")
	fa.AddCommand(offer)

	return fa
}

func newDraftCmd(apiBase *string) *cobra.Command {
	draft := &cobra.Command{
		Use:   "draft",
		Short: "Run your draft night",
	}

	draft.AddCommand(&cobra.Command{
		Use:   "board",
		Short: "Show the remaining prospects",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			prospects, err := newClient(apiBase).Prospects(ctx, sess.Token)
			if err != nil {
				return err
			}
			renderProspects(prospects)
			return nil
		},
	})

	draft.AddCommand(&cobra.Command{
		Use:   "pick <prospect-id>",
		Short: "Select a prospect with your pick",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).DraftPick(ctx, sess.Token, args[0])
			if err != nil {
				return err
			}
			renderDraftResult(out)
			return nil
		},
	})

	draft.AddCommand(&cobra.Command{
		Use:   "advance",
		Short: "Let the AI picks play out to your turn",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).AdvanceDraft(ctx, sess.Token)
			if err != nil {
				return err
			}
			renderDraftResult(out)
			return nil
		},
	})

	return draft
}

func newSimCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sim",
		Short: "Simulate the season and playoffs",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).SimulateSeason(ctx, sess.Token)
			if err != nil {
				return err
			}
			renderSeasonSummary(out)
			return nil
		},
	}
}

func newStartCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Close free agency and head into the new season",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			if _, err := newClient(apiBase).StartSeason(ctx, sess.Token); err != nil {
				return err
			}
			printSuccess("Camp opens. The new season is ready to simulate.")
			return nil
		},
	}
}

func newStrategyCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "strategy <stability_first|aggressive_push|boom_bust_swing>",
		Short: "Change your franchise strategy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).SetStrategy(ctx, sess.Token, args[0])
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Strategy set to %v.", out["strategy"]))
			return nil
		},
	}
}

func newFinancesCmd(apiBase *string) *cobra.Command {
	fin := &cobra.Command{
		Use:   "finances",
		Short: "Show the books",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).Finances(ctx, sess.Token)
			if err != nil {
				return err
			}
			renderFinances(out)
			return nil
		},
	}

	var cost float64
	rational := &cobra.Command{
		Use:   "rational",
		Short: "Check whether a commitment fits your risk capacity",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).RationalCheck(ctx, sess.Token, cost)
			if err != nil {
				return err
			}
			renderRational(out)
			return nil
		},
	}
	rational.Flags().Float64Var(&cost, "cost", 0, "commitment size in $M")
	_ = rational.MarkFlagRequired("cost")
	fin.AddCommand(rational)

	return fin
}

func newEvalCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "eval",
		Short: "Show the front-office evaluation of your run",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).Evaluation(ctx, sess.Token)
			if err != nil {
				return err
			}
			renderEvaluation(out)
			return nil
		},
	}
}

func newLeaderboardCmd(apiBase *string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the best runs across all sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := cmdContext(cmd)
			defer cancel()
			entries, err := newClient(apiBase).Leaderboard(ctx, limit)
			if err != nil {
				return err
			}
			renderLeaderboard(entries)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "rows to show")
	return cmd
}

func newSyncCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Replay commands queued while offline",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return err
			}
			commands, err := syncq.Load()
			if err != nil {
				return err
			}
			if len(commands) == 0 {
				printInfo("Nothing queued.")
				return nil
			}

			ctx, cancel := cmdContext(cmd)
			defer cancel()
			client := newClient(apiBase)

			var remaining []syncq.Command
			replayed := 0
			for i, qc := range commands {
				if _, err := client.Do(ctx, qc.Method, qc.Path, sess.Token, qc.Body); err != nil {
					printWarn(fmt.Sprintf("replay stopped at %s %s: %v", qc.Method, qc.Path, err))
					remaining = commands[i:]
					break
				}
				replayed++
			}
			if err := syncq.Save(remaining); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Replayed %d of %d queued command(s).", replayed, len(commands)))
			return nil
		},
	}
}

func newQuitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quit",
		Short: "Abandon the saved run on this machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cl.ClearSession(); err != nil {
				return err
			}
			printInfo("Local run cleared. The session still exists server-side.")
			return nil
		},
	}
}
