package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sandevgo/saya/internal/core"
)

// timeLayout is fixed width so that lexical order of the stored text is
// chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

type MemoriesRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewMemoriesRepo(db *sql.DB) *MemoriesRepo {
	return &MemoriesRepo{db: db, now: time.Now}
}

func (r *MemoriesRepo) SaveMemory(ctx context.Context, userID int64, text string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_memories (user_id, memory, timestamp) VALUES (?, ?, ?)`,
		userID, text, formatTime(r.now()),
	)
	if err != nil {
		return fmt.Errorf("failed to insert memory: %w", err)
	}
	return nil
}

// GetMemories returns up to limit memory texts for the user, newest first.
func (r *MemoriesRepo) GetMemories(ctx context.Context, userID int64, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT memory FROM user_memories WHERE user_id = ? ORDER BY timestamp DESC, id DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query memories: %w", err)
	}
	defer rows.Close()

	memories := make([]string, 0, limit)
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("failed to scan memory: %w", err)
		}
		memories = append(memories, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return memories, nil
}

func (r *MemoriesRepo) CountMemories(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_memories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count memories: %w", err)
	}
	return n, nil
}

func (r *MemoriesRepo) listAll(ctx context.Context) ([]core.MemoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id, memory, timestamp FROM user_memories ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query memories: %w", err)
	}
	defer rows.Close()

	entries := make([]core.MemoryEntry, 0)
	for rows.Next() {
		var (
			e  core.MemoryEntry
			ts string
		)
		if err := rows.Scan(&e.UserID, &e.Text, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan memory: %w", err)
		}
		if e.Timestamp, err = parseTime(ts); err != nil {
			return nil, fmt.Errorf("bad memory timestamp %q: %w", ts, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
