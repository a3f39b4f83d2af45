// Package tracelog persists interpreter runs and their draw-primitive
// streams to SQLite, so a rendered image can be traced back to the exact
// sequence of ops that produced it.
package tracelog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"logo/interpreter-go/pkg/canvas"
)

// Store handles SQLite operations for run tracing.
type Store struct {
	db *sql.DB
}

// Run represents one interpreter run record.
type Run struct {
	ID        string     `json:"id"`
	Script    string     `json:"script"`
	Status    string     `json:"status"`
	Width     int        `json:"width"`
	Height    int        `json:"height"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

// Open creates a Store backed by the database at dbPath, creating the
// schema on first use.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("tracelog: open database: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("tracelog: migrate: %w", err)
	}
	return store, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		script TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Running',
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		started_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		ended_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS ops (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		kind TEXT NOT NULL,
		x REAL NOT NULL DEFAULT 0,
		y REAL NOT NULL DEFAULT 0,
		color INTEGER NOT NULL DEFAULT 0,
		pen_down INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);

	CREATE INDEX IF NOT EXISTS idx_ops_run_seq ON ops(run_id, seq);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// BeginRun inserts a new run record and returns its generated ID.
func (s *Store) BeginRun(script string, width, height int) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO runs (id, script, status, width, height, started_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, script, "Running", width, height, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("tracelog: begin run: %w", err)
	}
	return id, nil
}

// EndRun marks a run finished with the given status.
func (s *Store) EndRun(id, status string) error {
	_, err := s.db.Exec(
		`UPDATE runs SET status = ?, ended_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("tracelog: end run %s: %w", id, err)
	}
	return nil
}

// RecordOps appends a primitive stream to a run in one transaction,
// preserving emission order through the seq column.
func (s *Store) RecordOps(runID string, ops []canvas.Op) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("tracelog: begin tx: %w", err)
	}
	stmt, err := tx.Prepare(
		`INSERT INTO ops (run_id, seq, kind, x, y, color, pen_down) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("tracelog: prepare insert: %w", err)
	}
	defer stmt.Close()

	for seq, op := range ops {
		if _, err := stmt.Exec(runID, seq, op.Kind.String(), op.X, op.Y, op.Color, op.Down); err != nil {
			tx.Rollback()
			return fmt.Errorf("tracelog: insert op %d: %w", seq, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tracelog: commit: %w", err)
	}
	return nil
}

// RunOps returns a run's primitive stream in emission order.
func (s *Store) RunOps(runID string) ([]canvas.Op, error) {
	rows, err := s.db.Query(
		`SELECT kind, x, y, color, pen_down FROM ops WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("tracelog: query ops: %w", err)
	}
	defer rows.Close()

	var ops []canvas.Op
	for rows.Next() {
		var kind string
		var op canvas.Op
		if err := rows.Scan(&kind, &op.X, &op.Y, &op.Color, &op.Down); err != nil {
			return nil, fmt.Errorf("tracelog: scan op: %w", err)
		}
		parsed, err := parseKind(kind)
		if err != nil {
			return nil, err
		}
		op.Kind = parsed
		ops = append(ops, op)
	}
	return ops, rows.Err()
}

// GetRun retrieves a run record by ID.
func (s *Store) GetRun(id string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, script, status, width, height, started_at, ended_at FROM runs WHERE id = ?`, id)

	var run Run
	var endedAt sql.NullTime
	if err := row.Scan(&run.ID, &run.Script, &run.Status, &run.Width, &run.Height, &run.StartedAt, &endedAt); err != nil {
		return nil, fmt.Errorf("tracelog: get run %s: %w", id, err)
	}
	if endedAt.Valid {
		run.EndedAt = &endedAt.Time
	}
	return &run, nil
}

func parseKind(kind string) (canvas.OpKind, error) {
	switch kind {
	case canvas.OpMoveTo.String():
		return canvas.OpMoveTo, nil
	case canvas.OpLineTo.String():
		return canvas.OpLineTo, nil
	case canvas.OpSetColor.String():
		return canvas.OpSetColor, nil
	case canvas.OpPenState.String():
		return canvas.OpPenState, nil
	default:
		return 0, fmt.Errorf("tracelog: unknown op kind %q", kind)
	}
}
