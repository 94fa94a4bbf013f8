// Package catalog persists extracted calendar events in SQLite so they can
// be queried without re-running the extraction pipeline.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"github.com/ChinmaySinha/SLM-for-Academic-Calendar-Interpretation/internal/model"
)

// Catalog is a SQLite-backed event store. A pipeline run replaces the whole
// catalog; there is no incremental update.
type Catalog struct {
	db *sql.DB
}

// Open opens (or creates) the catalog database at path and applies the
// schema.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}

	c := &Catalog{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: migrate: %w", err)
	}

	slog.Debug("catalog opened", "path", path)
	return c, nil
}

func (c *Catalog) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY,
		raw_date_text TEXT NOT NULL,
		day_text TEXT,
		details_text TEXT NOT NULL,
		source_file TEXT,
		date_start TEXT,
		date_end TEXT,
		event_type TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_type ON events(event_type);
	CREATE INDEX IF NOT EXISTS idx_events_start ON events(date_start);
	`
	_, err := c.db.Exec(schema)
	return err
}

// Replace swaps the catalog contents for the given event set in one
// transaction.
func (c *Catalog) Replace(ctx context.Context, events []model.Event) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("catalog: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM events"); err != nil {
		return fmt.Errorf("catalog: clear: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events (id, raw_date_text, day_text, details_text, source_file, date_start, date_end, event_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("catalog: prepare: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		_, err := stmt.ExecContext(ctx,
			ev.ID,
			ev.RawDateText,
			nullable(ev.DayText),
			ev.DetailsText,
			nullable(ev.SourceFile),
			nullable(ev.DateStart),
			nullable(ev.DateEnd),
			ev.EventType,
		)
		if err != nil {
			return fmt.Errorf("catalog: insert event %d: %w", ev.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("catalog: commit: %w", err)
	}
	slog.Info("catalog replaced", "events", len(events))
	return nil
}

// Events returns the catalog contents ordered by id. An empty eventType
// returns everything.
func (c *Catalog) Events(ctx context.Context, eventType string) ([]model.Event, error) {
	query := `
		SELECT id, raw_date_text, day_text, details_text, source_file, date_start, date_end, event_type
		FROM events
	`
	var args []any
	if eventType != "" {
		query += " WHERE event_type = ?"
		args = append(args, eventType)
	}
	query += " ORDER BY id"

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("catalog: query events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var ev model.Event
		var day, source, start, end sql.NullString
		if err := rows.Scan(&ev.ID, &ev.RawDateText, &day, &ev.DetailsText, &source, &start, &end, &ev.EventType); err != nil {
			return nil, fmt.Errorf("catalog: scan event: %w", err)
		}
		ev.DayText = day.String
		ev.SourceFile = source.String
		ev.DateStart = start.String
		ev.DateEnd = end.String
		events = append(events, ev)
	}
	return events, rows.Err()
}

// CountByType returns event counts keyed by event type.
func (c *Catalog) CountByType(ctx context.Context) (map[string]int, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT event_type, COUNT(*) FROM events GROUP BY event_type")
	if err != nil {
		return nil, fmt.Errorf("catalog: count by type: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var typ string
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			return nil, fmt.Errorf("catalog: scan count: %w", err)
		}
		counts[typ] = n
	}
	return counts, rows.Err()
}

// Count returns the total number of cataloged events.
func (c *Catalog) Count(ctx context.Context) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("catalog: count: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
