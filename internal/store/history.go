// Package store persists parsed commands to a local SQLite database so
// past instructions can be reviewed and replayed.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/rmoreno/cadet/internal/parser"
)

// CommandRecord is one persisted parse result.
type CommandRecord struct {
	ID        string         `json:"id"`
	Prompt    string         `json:"prompt"`
	Action    string         `json:"action"`
	Command   parser.Command `json:"command"`
	CreatedAt time.Time      `json:"created_at"`
}

// History stores parsed commands in SQLite.
type History struct {
	db *sql.DB
}

// OpenHistory opens (or creates) the history database at the given path.
func OpenHistory(path string) (*History, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	h := &History{db: db}
	if err := h.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return h, nil
}

func (h *History) initialize() error {
	// Single writer with concurrent readers; busy_timeout covers the
	// brief write lock during inserts from parallel requests.
	pragmas := []string{
		`PRAGMA journal_mode = WAL;`,
		`PRAGMA busy_timeout = 5000;`,
	}
	for _, p := range pragmas {
		if _, err := h.db.Exec(p); err != nil {
			return fmt.Errorf("failed to apply pragma: %w", err)
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS commands (
		id TEXT PRIMARY KEY,
		prompt TEXT NOT NULL,
		action TEXT NOT NULL,
		parameters TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_commands_created_at ON commands(created_at);
	`
	if _, err := h.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create commands table: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (h *History) Close() error {
	return h.db.Close()
}

// Save persists one parse result and returns the stored record.
func (h *History) Save(ctx context.Context, prompt string, cmd parser.Command) (CommandRecord, error) {
	record := CommandRecord{
		ID:        uuid.NewString(),
		Prompt:    prompt,
		Action:    string(cmd.Action),
		Command:   cmd,
		CreatedAt: time.Now().UTC(),
	}

	params, err := json.Marshal(cmd)
	if err != nil {
		return CommandRecord{}, fmt.Errorf("failed to encode command: %w", err)
	}

	_, err = h.db.ExecContext(ctx,
		`INSERT INTO commands (id, prompt, action, parameters, created_at) VALUES (?, ?, ?, ?, ?)`,
		record.ID, record.Prompt, record.Action, string(params), record.CreatedAt)
	if err != nil {
		return CommandRecord{}, fmt.Errorf("failed to insert command: %w", err)
	}

	return record, nil
}

// List returns up to limit records, newest first. A non-positive limit
// returns all records.
func (h *History) List(ctx context.Context, limit int) ([]CommandRecord, error) {
	query := `SELECT id, prompt, action, parameters, created_at FROM commands ORDER BY created_at DESC, id`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query commands: %w", err)
	}
	defer rows.Close()

	var records []CommandRecord
	for rows.Next() {
		var record CommandRecord
		var params string
		if err := rows.Scan(&record.ID, &record.Prompt, &record.Action, &params, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan command row: %w", err)
		}
		if err := json.Unmarshal([]byte(params), &record.Command); err != nil {
			return nil, fmt.Errorf("failed to decode command %s: %w", record.ID, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate command rows: %w", err)
	}

	return records, nil
}

// Count returns the total number of stored records.
func (h *History) Count(ctx context.Context) (int, error) {
	var n int
	if err := h.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM commands`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count commands: %w", err)
	}
	return n, nil
}
