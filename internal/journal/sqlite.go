// Package journal records tool invocations in SQLite.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

type Journal struct {
	db *sql.DB
}

// Open opens the journal database at path. An empty path keeps the journal
// in memory for the life of the process.
func Open(ctx context.Context, path string) (*Journal, error) {
	trimmed := strings.TrimSpace(path)
	inMemory := false
	if trimmed == "" {
		trimmed = ":memory:"
		inMemory = true
	}
	if strings.Contains(trimmed, "mode=memory") || trimmed == ":memory:" || trimmed == "file::memory:" {
		inMemory = true
	}
	db, err := sql.Open("sqlite", trimmed)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if !inMemory {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL;"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL: %w", err)
		}
	}
	return &Journal{db: db}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS activity (
            id TEXT PRIMARY KEY,
            tool TEXT NOT NULL,
            success INTEGER NOT NULL,
            error TEXT NOT NULL DEFAULT '',
            duration_ms INTEGER NOT NULL,
            items INTEGER NOT NULL DEFAULT 0,
            created_at INTEGER NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS idx_activity_created ON activity(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_activity_tool_created ON activity(tool, created_at);`,
	}

	for _, statement := range statements {
		if _, err := j.db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

func (j *Journal) Record(ctx context.Context, activity Activity) error {
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}
	_, err := j.db.ExecContext(ctx, `INSERT INTO activity
        (id, tool, success, error, duration_ms, items, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?);`,
		activity.ID,
		activity.Tool,
		activity.Success,
		activity.Error,
		activity.Duration.Milliseconds(),
		activity.Items,
		activity.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}

// Recent returns invocations newest first, optionally for one tool, with the
// total number of matching rows.
func (j *Journal) Recent(ctx context.Context, tool string, offset, limit int) ([]Activity, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	whereQuery := ""
	args := []any{}
	if tool = strings.TrimSpace(tool); tool != "" {
		whereQuery = " WHERE tool = ?"
		args = append(args, tool)
	}

	var total int
	if err := j.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM activity"+whereQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count activity: %w", err)
	}

	listQuery := `SELECT id, tool, success, error, duration_ms, items, created_at
        FROM activity` + whereQuery + " ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?"
	listArgs := append([]any{}, args...)
	listArgs = append(listArgs, limit, offset)

	rows, err := j.db.QueryContext(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		var activity Activity
		var durationMS, createdAt int64
		if err := rows.Scan(
			&activity.ID,
			&activity.Tool,
			&activity.Success,
			&activity.Error,
			&durationMS,
			&activity.Items,
			&createdAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan activity: %w", err)
		}
		activity.Duration = time.Duration(durationMS) * time.Millisecond
		activity.CreatedAt = time.UnixMilli(createdAt)
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list activity: %w", err)
	}
	return activities, total, nil
}

// Summary aggregates invocations since the given time, per tool.
func (j *Journal) Summary(ctx context.Context, since time.Time) ([]ToolSummary, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT tool, COUNT(1), SUM(CASE WHEN success THEN 0 ELSE 1 END), MAX(created_at)
        FROM activity
        WHERE created_at >= ?
        GROUP BY tool
        ORDER BY COUNT(1) DESC, tool ASC;`, since.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("summarize activity: %w", err)
	}
	defer rows.Close()

	var summaries []ToolSummary
	for rows.Next() {
		var summary ToolSummary
		var lastCall int64
		if err := rows.Scan(&summary.Tool, &summary.Calls, &summary.Failures, &lastCall); err != nil {
			return nil, fmt.Errorf("summarize activity: %w", err)
		}
		summary.LastCall = time.UnixMilli(lastCall)
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("summarize activity: %w", err)
	}
	return summaries, nil
}

// Prune deletes invocations older than before and reports how many went.
func (j *Journal) Prune(ctx context.Context, before time.Time) (int64, error) {
	result, err := j.db.ExecContext(ctx, `DELETE FROM activity WHERE created_at < ?;`, before.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("prune activity: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune activity: %w", err)
	}
	return rows, nil
}

// Ping reports whether the database is reachable.
func (j *Journal) Ping(ctx context.Context) error {
	return j.db.PingContext(ctx)
}
