package lib

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Migration is one step of the history schema. Steps run in slice order and
// each runs at most once per database.
type Migration struct {
	Name  string
	UpSQL string
}

var historyMigrations = []Migration{
	{
		Name: "0001_runs",
		UpSQL: `CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			command TEXT NOT NULL,
			source TEXT NOT NULL,
			started_at TIMESTAMP NOT NULL,
			finished_at TIMESTAMP NOT NULL,
			success BOOLEAN NOT NULL,
			error_count INTEGER NOT NULL
		)`,
	},
	{
		Name: "0002_diagnostics",
		UpSQL: `CREATE TABLE IF NOT EXISTS diagnostics (
			run_id TEXT NOT NULL REFERENCES runs(id),
			seq INTEGER NOT NULL,
			code TEXT NOT NULL,
			line INTEGER NOT NULL,
			col INTEGER NOT NULL,
			message TEXT NOT NULL,
			PRIMARY KEY (run_id, seq)
		)`,
	},
	{
		Name:  "0003_runs_started_at",
		UpSQL: `CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	},
}

type Run struct {
	ID         string
	Command    string
	Source     string
	StartedAt  time.Time
	FinishedAt time.Time
	Success    bool
	ErrorCount int
}

type StoredDiagnostic struct {
	Code     string
	Location Location
	Message  string
}

// History records scan, parse and index runs in Postgres or SQLite.
type History struct {
	db     *sql.DB
	driver string
}

func OpenHistory(ctx context.Context, cfg HistoryConfig) (*History, error) {
	switch cfg.Driver {
	case "postgres", "sqlite3":
	case "":
		return nil, errors.New("history is disabled")
	default:
		return nil, fmt.Errorf("unsupported history driver %q", cfg.Driver)
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.Driver == "sqlite3" {
		// An in-memory database exists per connection.
		db.SetMaxOpenConns(1)
	}

	h := &History{db: db, driver: cfg.Driver}
	if err := h.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return h, nil
}

func (h *History) Close() error {
	return h.db.Close()
}

// rebind turns "?" placeholders into "$1", "$2", ... for Postgres.
func (h *History) rebind(query string) string {
	if h.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}

func (h *History) migrate(ctx context.Context) error {
	_, err := h.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations: %w", err)
	}

	for _, m := range historyMigrations {
		if err := h.applyMigration(ctx, m); err != nil {
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
	}
	return nil
}

func (h *History) applyMigration(ctx context.Context, m Migration) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRowContext(ctx,
		h.rebind(`SELECT COUNT(*) FROM schema_migrations WHERE name = ?`), m.Name).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if _, err := tx.ExecContext(ctx, m.UpSQL); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		h.rebind(`INSERT INTO schema_migrations (name, applied_at) VALUES (?, ?)`),
		m.Name, time.Now().UTC())
	if err != nil {
		return err
	}
	return tx.Commit()
}

// Record stores run with its diagnostics and returns the run id. An empty
// run.ID gets a fresh UUID.
func (h *History) Record(ctx context.Context, run Run, errs []*Error) (string, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	run.ErrorCount = len(errs)

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, h.rebind(`INSERT INTO runs
		(id, command, source, started_at, finished_at, success, error_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)`),
		run.ID, run.Command, run.Source,
		run.StartedAt.UTC(), run.FinishedAt.UTC(),
		run.Success, run.ErrorCount)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for i, e := range errs {
		_, err = tx.ExecContext(ctx, h.rebind(`INSERT INTO diagnostics
			(run_id, seq, code, line, col, message)
			VALUES (?, ?, ?, ?, ?, ?)`),
			run.ID, i, e.Code.String(), e.Location.Line, e.Location.Col, e.Message())
		if err != nil {
			return "", fmt.Errorf("inserting diagnostic: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return run.ID, nil
}

// Recent lists up to limit runs, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := h.db.QueryContext(ctx, h.rebind(`SELECT
		id, command, source, started_at, finished_at, success, error_count
		FROM runs ORDER BY started_at DESC, id LIMIT ?`), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		err := rows.Scan(&r.ID, &r.Command, &r.Source, &r.StartedAt, &r.FinishedAt, &r.Success, &r.ErrorCount)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (h *History) Diagnostics(ctx context.Context, runID string) ([]StoredDiagnostic, error) {
	rows, err := h.db.QueryContext(ctx, h.rebind(`SELECT code, line, col, message
		FROM diagnostics WHERE run_id = ? ORDER BY seq`), runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	diags := []StoredDiagnostic{}
	for rows.Next() {
		var d StoredDiagnostic
		if err := rows.Scan(&d.Code, &d.Location.Line, &d.Location.Col, &d.Message); err != nil {
			return nil, err
		}
		diags = append(diags, d)
	}
	return diags, rows.Err()
}
