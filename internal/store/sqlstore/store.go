// Package sqlstore persists triaged reports and operator feedback in
// SQLite through sqlx.
package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/couchcryptid/akom-triage-service/internal/domain"
	"github.com/couchcryptid/akom-triage-service/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	seq          INTEGER PRIMARY KEY AUTOINCREMENT,
	id           TEXT NOT NULL UNIQUE,
	received_at  TEXT NOT NULL DEFAULT '',
	text         TEXT NOT NULL,
	event_type   TEXT NOT NULL,
	priority     TEXT NOT NULL,
	unit         TEXT NOT NULL,
	units        TEXT NOT NULL DEFAULT '',
	district     TEXT NOT NULL DEFAULT '',
	neighborhood TEXT NOT NULL DEFAULT '',
	avenue       TEXT NOT NULL DEFAULT '',
	street       TEXT NOT NULL DEFAULT '',
	region       TEXT NOT NULL DEFAULT '',
	lat          REAL NOT NULL,
	lon          REAL NOT NULL,
	geo_source   TEXT NOT NULL,
	geo_label    TEXT NOT NULL DEFAULT '',
	source       TEXT NOT NULL DEFAULT '',
	processed_at TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS feedback (
	seq            INTEGER PRIMARY KEY AUTOINCREMENT,
	report_id      TEXT NOT NULL,
	tarih          TEXT NOT NULL DEFAULT '',
	ihbar          TEXT NOT NULL,
	tahmin_olay    TEXT NOT NULL,
	dogru_olay     TEXT NOT NULL,
	tahmin_oncelik TEXT NOT NULL,
	dogru_oncelik  TEXT NOT NULL
)`

// Rows keep their first insert position; a rewrite replaces the values.
const upsertQuery = `
INSERT INTO reports (
	id, received_at, text, event_type, priority, unit, units,
	district, neighborhood, avenue, street, region,
	lat, lon, geo_source, geo_label, source, processed_at
) VALUES (
	:id, :received_at, :text, :event_type, :priority, :unit, :units,
	:district, :neighborhood, :avenue, :street, :region,
	:lat, :lon, :geo_source, :geo_label, :source, :processed_at
)
ON CONFLICT(id) DO UPDATE SET
	received_at = excluded.received_at,
	text = excluded.text,
	event_type = excluded.event_type,
	priority = excluded.priority,
	unit = excluded.unit,
	units = excluded.units,
	district = excluded.district,
	neighborhood = excluded.neighborhood,
	avenue = excluded.avenue,
	street = excluded.street,
	region = excluded.region,
	lat = excluded.lat,
	lon = excluded.lon,
	geo_source = excluded.geo_source,
	geo_label = excluded.geo_label,
	source = excluded.source,
	processed_at = excluded.processed_at`

const selectAllQuery = `
SELECT id, received_at, text, event_type, priority, unit, units,
	district, neighborhood, avenue, street, region,
	lat, lon, geo_source, geo_label, source, processed_at
FROM reports
ORDER BY seq`

const insertFeedbackQuery = `
INSERT INTO feedback (
	report_id, tarih, ihbar, tahmin_olay, dogru_olay, tahmin_oncelik, dogru_oncelik
) VALUES (
	:report_id, :tarih, :ihbar, :tahmin_olay, :dogru_olay, :tahmin_oncelik, :dogru_oncelik
)`

const selectFeedbackQuery = `
SELECT report_id, tarih, ihbar, tahmin_olay, dogru_olay, tahmin_oncelik, dogru_oncelik
FROM feedback
ORDER BY seq`

// Store is a domain.ReportStore and domain.FeedbackStore over a SQLite
// database.
type Store struct {
	db *sqlx.DB
}

// Open connects to the SQLite file at path and creates the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	s, err := New(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing connection and ensures the schema exists.
func New(ctx context.Context, db *sqlx.DB) (*Store, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Append inserts a report, replacing any earlier row with the same ID.
func (s *Store) Append(ctx context.Context, r domain.Report) error {
	if _, err := s.db.NamedExecContext(ctx, upsertQuery, store.FromReport(r)); err != nil {
		return fmt.Errorf("insert report %s: %w", r.ID, err)
	}
	return nil
}

// All returns every report in insertion order.
func (s *Store) All(ctx context.Context) ([]domain.Report, error) {
	var rows []store.Row
	if err := s.db.SelectContext(ctx, &rows, selectAllQuery); err != nil {
		return nil, fmt.Errorf("select reports: %w", err)
	}
	reports := make([]domain.Report, 0, len(rows))
	for _, row := range rows {
		rep, err := row.Report()
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

// AppendFeedback records one operator correction.
func (s *Store) AppendFeedback(ctx context.Context, f domain.Feedback) error {
	if _, err := s.db.NamedExecContext(ctx, insertFeedbackQuery, store.FromFeedback(f)); err != nil {
		return fmt.Errorf("insert feedback for %s: %w", f.ReportID, err)
	}
	return nil
}

// Feedback returns every correction in insertion order.
func (s *Store) Feedback(ctx context.Context) ([]domain.Feedback, error) {
	var rows []store.FeedbackRow
	if err := s.db.SelectContext(ctx, &rows, selectFeedbackQuery); err != nil {
		return nil, fmt.Errorf("select feedback: %w", err)
	}
	out := make([]domain.Feedback, 0, len(rows))
	for _, row := range rows {
		f, err := row.Feedback()
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
