package request_tracking

import (
	"context"
	"database/sql"
	"fmt"
)

// RequestInfo describes one handled generation request.
type RequestInfo struct {
	UserID     string
	Task       string
	Model      string
	Outcome    string // "success" or "fallback"
	DurationMs int64
}

// Store persists request logs and answers usage queries.
// The Postgres implementation is PGStore; tests use an in-memory fake.
type Store interface {
	InsertRequestLog(ctx context.Context, info RequestInfo) error
	CountRequestsToday(ctx context.Context, userID string) (int64, error)
}

// PGStore is the Postgres-backed Store.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) InsertRequestLog(ctx context.Context, info RequestInfo) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO generation_logs (user_id, task, model, outcome, duration_ms, day_bucket)
		 VALUES ($1, $2, $3, $4, $5, (now() AT TIME ZONE 'utc')::date)`,
		info.UserID, info.Task, info.Model, info.Outcome, info.DurationMs)
	if err != nil {
		return fmt.Errorf("insert generation log: %w", err)
	}
	return nil
}

func (s *PGStore) CountRequestsToday(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM generation_logs
		 WHERE user_id = $1 AND day_bucket = (now() AT TIME ZONE 'utc')::date`,
		userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count requests today: %w", err)
	}
	return count, nil
}
