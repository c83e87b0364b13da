// Package sqlite stores decoded outcomes in a SQLite database so a scanned
// journal can be queried with SQL.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/crimson-sun/journal/internal/model"
	"github.com/crimson-sun/journal/internal/output"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const upsertOutcome = `INSERT INTO outcomes (source, line, kind, event_time, error_kind, error, record)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (source, line) DO UPDATE SET
    kind = excluded.kind,
    event_time = excluded.event_time,
    error_kind = excluded.error_kind,
    error = excluded.error,
    record = excluded.record`

// Output upserts one row per (source, line). Scanning the same journal again
// replaces its rows rather than duplicating them.
type Output struct {
	db        *sql.DB
	verbosity output.Verbosity
	mu        sync.Mutex
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string, verbosity output.Verbosity) (*Output, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite output: database path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One writer; SQLite serializes writes anyway.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(db, migrationsFS, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Output{db: db, verbosity: verbosity}, nil
}

// Write stores the outcome's record at the output's verbosity.
func (o *Output) Write(ctx context.Context, outcome model.Outcome) error {
	rec := output.FormatOutcome(outcome, o.verbosity)
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("sqlite output: marshal: %w", err)
	}

	var eventTime sql.NullInt64
	if ts, ok := outcome.Event.(model.Timestamped); ok {
		if t, ok := ts.Time(); ok {
			eventTime = sql.NullInt64{Int64: t.UTC().UnixMilli(), Valid: true}
		}
	}
	var errKind, errMsg string
	if rec.Error != nil {
		errKind, errMsg = rec.Error.Kind, rec.Error.Message
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	_, err = o.db.ExecContext(ctx, upsertOutcome,
		outcome.Source,
		outcome.Line,
		outcome.Kind(),
		eventTime,
		errKind,
		errMsg,
		string(data),
	)
	if err != nil {
		return fmt.Errorf("sqlite output: insert line %d: %w", outcome.Line, err)
	}
	return nil
}

// KindCounts returns how many stored rows have each event kind. Failed lines
// are counted under their error kind prefixed with "!".
func (o *Output) KindCounts(ctx context.Context) (map[string]int, error) {
	rows, err := o.db.QueryContext(ctx,
		`SELECT CASE WHEN error_kind != '' THEN '!' || error_kind ELSE kind END AS k, COUNT(*)
		 FROM outcomes GROUP BY k`)
	if err != nil {
		return nil, fmt.Errorf("sqlite output: count kinds: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var k string
		var n int
		if err := rows.Scan(&k, &n); err != nil {
			return nil, fmt.Errorf("sqlite output: scan kind count: %w", err)
		}
		counts[k] = n
	}
	return counts, rows.Err()
}

// Close closes the database handle.
func (o *Output) Close() error {
	if o == nil || o.db == nil {
		return nil
	}
	return o.db.Close()
}

const migrationTable = "schema_migrations"

// applyMigrations runs each .sql file under root once, in name order. Only
// the part after a "-- +migrate Up" marker is executed when one is present.
func applyMigrations(db *sql.DB, fsys fs.FS, root string) error {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS ` + migrationTable + ` (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
)`); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, name := range files {
		var applied int
		if err := db.QueryRow(`SELECT COUNT(*) FROM `+migrationTable+` WHERE name = ?`, name).Scan(&applied); err != nil {
			return fmt.Errorf("check migration %s: %w", name, err)
		}
		if applied > 0 {
			continue
		}

		content, err := fs.ReadFile(fsys, root+"/"+name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		up := string(content)
		if _, after, ok := strings.Cut(up, "-- +migrate Up"); ok {
			up = after
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", name, err)
		}
		if _, err := tx.Exec(up); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("exec migration %s: %w", name, err)
		}
		if _, err := tx.Exec(`INSERT INTO `+migrationTable+` (name) VALUES (?)`, name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", name, err)
		}
	}
	return nil
}
