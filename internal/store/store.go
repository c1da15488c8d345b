// Package store persists game sessions as whole-state JSONB snapshots in
// Postgres, plus a season log that feeds the leaderboard.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"courtside/internal/game"
)

var ErrTxConflict = errors.New("storage conflict, retry the request")

type Store struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func New(db *pgxpool.Pool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, log: logger}
}

// EnsureSchema creates the tables on startup. Idempotent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS sessions (
			token       text PRIMARY KEY,
			session_id  text NOT NULL,
			state       jsonb NOT NULL,
			created_at  timestamptz NOT NULL DEFAULT now(),
			updated_at  timestamptz NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS seasons (
			id             bigserial PRIMARY KEY,
			token          text NOT NULL REFERENCES sessions(token) ON DELETE CASCADE,
			season         int NOT NULL,
			team_name      text NOT NULL,
			wins           int NOT NULL,
			losses         int NOT NULL,
			playoff_result text NOT NULL,
			profit         double precision NOT NULL,
			score          int NOT NULL,
			created_at     timestamptz NOT NULL DEFAULT now(),
			UNIQUE (token, season)
		);
		CREATE INDEX IF NOT EXISTS seasons_score_idx ON seasons (score DESC);
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *Store) CreateSession(ctx context.Context, token string, state *game.GameState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO sessions (token, session_id, state)
		VALUES ($1, $2, $3)
	`, token, state.SessionID, raw)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *Store) LoadState(ctx context.Context, token string) (*game.GameState, error) {
	var raw []byte
	err := s.db.QueryRow(ctx, `
		SELECT state FROM sessions WHERE token = $1
	`, token).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, game.ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	var state game.GameState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}
	return &state, nil
}

// SaveState replaces the snapshot under a serializable transaction, retried
// on serialization failures with backoff.
func (s *Store) SaveState(ctx context.Context, token string, state *game.GameState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	const maxAttempts = 5
	retryDelay := 50 * time.Millisecond
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = s.saveStateOnce(ctx, token, raw)
		if err == nil {
			return nil
		}
		if !isSerializationError(err) {
			return err
		}
		if attempt == maxAttempts-1 {
			return ErrTxConflict
		}
		if err := sleepWithContext(ctx, retryDelay); err != nil {
			return err
		}
		retryDelay *= 2
	}
	return ErrTxConflict
}

func (s *Store) saveStateOnce(ctx context.Context, token string, raw []byte) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE sessions
		SET state = $1, updated_at = now()
		WHERE token = $2
	`, raw, token)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return game.ErrSessionNotFound
	}
	return tx.Commit(ctx)
}

func (s *Store) RecordSeason(ctx context.Context, token, teamName string, result game.SeasonResult) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO seasons (token, season, team_name, wins, losses, playoff_result, profit, score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (token, season) DO NOTHING
	`, token, result.Season, teamName, result.Wins, result.Losses,
		string(result.PlayoffResult), result.Financials.Profit, seasonScore(result))
	if err != nil {
		return fmt.Errorf("record season: %w", err)
	}
	return nil
}

// seasonScore is the leaderboard figure for one season: wins plus a bonus
// for playoff depth.
func seasonScore(result game.SeasonResult) int {
	bonus := map[game.PlayoffResult]int{
		game.PlayoffFirstRound:  5,
		game.PlayoffSecondRound: 10,
		game.PlayoffConfFinals:  15,
		game.PlayoffFinals:      20,
		game.PlayoffChampion:    35,
	}
	return result.Wins + bonus[result.PlayoffResult]
}

func (s *Store) Leaderboard(ctx context.Context, limit int) ([]game.LeaderboardEntry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT team_name,
		       count(*) AS seasons,
		       sum(wins) AS total_wins,
		       count(*) FILTER (WHERE playoff_result = 'champion') AS championships,
		       max(score) AS best_score
		FROM seasons
		GROUP BY token, team_name
		ORDER BY best_score DESC, total_wins DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []game.LeaderboardEntry
	for rows.Next() {
		var e game.LeaderboardEntry
		if err := rows.Scan(&e.TeamName, &e.Seasons, &e.TotalWins, &e.Championships, &e.BestScore); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// StaleFreeAgencyTokens lists sessions that have sat in the free-agency
// phase without activity since the cutoff. The worker nudges those leagues
// along.
func (s *Store) StaleFreeAgencyTokens(ctx context.Context, cutoff time.Time) ([]string, error) {
	rows, err := s.db.Query(ctx, `
		SELECT token
		FROM sessions
		WHERE state->>'phase' = 'offseason_free_agency'
		  AND updated_at < $1
		ORDER BY updated_at
		LIMIT 50
	`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("stale sessions: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

// PruneAbandonedSessions deletes runs that went idle before completing a
// single season. Finished runs keep their rows so the leaderboard holds.
func (s *Store) PruneAbandonedSessions(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, `
		DELETE FROM sessions s
		WHERE s.updated_at < $1
		  AND NOT EXISTS (SELECT 1 FROM seasons WHERE seasons.token = s.token)
	`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func isSerializationError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "40001"
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
