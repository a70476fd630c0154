// Package habits learns per-user corrections from accept/adjust history:
// a multiplicative brightness bias per context bucket and a ranking of
// preferred effects.
package habits

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS usage_events (
	id           TEXT PRIMARY KEY,
	user_id      TEXT NOT NULL,
	event_type   TEXT NOT NULL,
	parameter    TEXT NOT NULL,
	suggested    REAL,
	adjusted     REAL,
	effect_id    TEXT,
	darkness     REAL,
	context_json TEXT,
	created_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_usage_events_user_time
	ON usage_events(user_id, created_at);

CREATE TABLE IF NOT EXISTS habit_records (
	user_id      TEXT NOT NULL,
	habit_type   TEXT NOT NULL,
	bucket       TEXT NOT NULL,
	value        REAL NOT NULL,
	sample_count INTEGER NOT NULL,
	updated_at   TEXT NOT NULL,
	PRIMARY KEY (user_id, habit_type, bucket)
);
`

// Event is one accept or adjust record in the historical usage store.
type Event struct {
	ID        string
	UserID    string
	Type      string // "accepted" | "adjusted"
	Parameter string // "brightness" | "effect" | ...
	Suggested float64
	Adjusted  float64
	EffectID  string
	Darkness  float64
	Context   map[string]any
	CreatedAt time.Time
}

// BiasRecord is one persisted habit: a context-bucketed correction value.
type BiasRecord struct {
	Type        string // "brightness_bias" | "effect_preference"
	Bucket      string // "night" | "day" | effect id
	Value       float64
	SampleCount int
}

// Store is the sqlite-backed historical usage store.
type Store struct {
	db *sql.DB
}

// OpenStore opens (and migrates) the habits database.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open habits db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to migrate habits db: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// LogEvent appends one event.
func (s *Store) LogEvent(ctx context.Context, e Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	ctxJSON, err := json.Marshal(e.Context)
	if err != nil {
		return fmt.Errorf("failed to encode event context: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO usage_events
		(id, user_id, event_type, parameter, suggested, adjusted, effect_id, darkness, context_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Type, e.Parameter, e.Suggested, e.Adjusted,
		e.EffectID, e.Darkness, string(ctxJSON), e.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to log event: %w", err)
	}
	return nil
}

// RecentEvents returns a user's events from the last N days, oldest first.
func (s *Store) RecentEvents(ctx context.Context, userID string, days int) ([]Event, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, event_type, parameter, suggested, adjusted, effect_id, darkness, context_json, created_at
		FROM usage_events
		WHERE user_id = ? AND created_at >= ?
		ORDER BY created_at ASC`, userID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var ctxJSON, createdAt string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Type, &e.Parameter,
			&e.Suggested, &e.Adjusted, &e.EffectID, &e.Darkness, &ctxJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if ctxJSON != "" {
			_ = json.Unmarshal([]byte(ctxJSON), &e.Context)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

// SaveHabit upserts one habit record.
func (s *Store) SaveHabit(ctx context.Context, userID string, r BiasRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO habit_records (user_id, habit_type, bucket, value, sample_count, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, habit_type, bucket)
		DO UPDATE SET value = excluded.value,
		              sample_count = excluded.sample_count,
		              updated_at = excluded.updated_at`,
		userID, r.Type, r.Bucket, r.Value, r.SampleCount, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save habit: %w", err)
	}
	return nil
}

// Habits returns a user's persisted habit records.
func (s *Store) Habits(ctx context.Context, userID string, limit int) ([]BiasRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT habit_type, bucket, value, sample_count
		FROM habit_records
		WHERE user_id = ?
		ORDER BY updated_at DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query habits: %w", err)
	}
	defer rows.Close()

	var out []BiasRecord
	for rows.Next() {
		var r BiasRecord
		if err := rows.Scan(&r.Type, &r.Bucket, &r.Value, &r.SampleCount); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
