package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"courtside/internal/config"
	"courtside/internal/db"
	"courtside/internal/game"
	"courtside/internal/league"
	"courtside/internal/metrics"
	"courtside/internal/store"
)

// Sessions that never finish a season and go quiet for this long are
// removed.
const pruneAfter = 30 * 24 * time.Hour

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.LoadWorker(*configPath)
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	st := store.New(pool, logger)
	if err := st.EnsureSchema(ctx); err != nil {
		logger.Error("schema init failed", "err", err)
		os.Exit(1)
	}
	svc := game.NewService(st, league.Generate, logger, cfg.Seed)

	runOnce := strings.EqualFold(strings.TrimSpace(os.Getenv("COURTSIDE_WORKER_RUN_ONCE")), "true")
	if runOnce {
		tick(ctx, logger, st, svc, cfg.TickEvery)
		logger.Info("worker run-once completed")
		return
	}

	ticker := time.NewTicker(cfg.TickEvery)
	defer ticker.Stop()

	logger.Info("worker started", "tick_every", cfg.TickEvery.String())
	for {
		select {
		case <-ctx.Done():
			logger.Info("worker shutdown")
			return
		case <-ticker.C:
			tick(ctx, logger, st, svc, cfg.TickEvery)
		}
	}
}

// tick pushes every stale free-agency session forward: the AI front
// offices shop the open market so an idle league does not freeze.
func tick(ctx context.Context, logger *slog.Logger, st *store.Store, svc *game.Service, idle time.Duration) {
	metrics.WorkerTicks.Inc()
	tokens, err := st.StaleFreeAgencyTokens(ctx, time.Now().Add(-idle))
	if err != nil {
		logger.Error("stale session scan failed", "err", err)
		return
	}
	for _, token := range tokens {
		if err := svc.RunAIShopping(ctx, token); err != nil {
			logger.Error("ai shopping failed", "err", err)
			continue
		}
	}
	if len(tokens) > 0 {
		logger.Info("offseason tick complete", "sessions", len(tokens))
	}

	pruned, err := st.PruneAbandonedSessions(ctx, time.Now().Add(-pruneAfter))
	if err != nil {
		logger.Error("session prune failed", "err", err)
		return
	}
	if pruned > 0 {
		metrics.SessionsPruned.Add(float64(pruned))
		logger.Info("abandoned sessions pruned", "count", pruned)
	}
}
