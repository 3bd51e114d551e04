// Package store keeps a history of assembled reports.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/RobinCoderZhao/daily-report/internal/dailyreport/report"
	"github.com/RobinCoderZhao/daily-report/pkg/storage"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS reports (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    generated_at TEXT NOT NULL,
    ai_news      TEXT NOT NULL,
    stock_news   TEXT NOT NULL,
    crypto_news  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reports_generated ON reports(generated_at);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS reports (
    id           BIGSERIAL PRIMARY KEY,
    generated_at TEXT NOT NULL,
    ai_news      TEXT NOT NULL,
    stock_news   TEXT NOT NULL,
    crypto_news  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reports_generated ON reports(generated_at);
`

// ErrNotFound is returned when no report is stored.
var ErrNotFound = errors.New("report not found")

// Record is a stored report.
type Record struct {
	ID     int64
	Report *report.Report
}

// Store provides report persistence.
type Store struct {
	db *storage.DB
}

// Open connects to the configured database and creates the schema.
func Open(ctx context.Context, cfg storage.Config) (*Store, error) {
	db, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	schema := sqliteSchema
	if db.DriverType() == storage.Postgres {
		schema = postgresSchema
	}
	if err := db.Migrate(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Save stores a report and returns its ID.
func (s *Store) Save(ctx context.Context, r *report.Report) (int64, error) {
	generated := r.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	var id int64
	err := s.db.Transaction(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, s.db.Rebind(`
			INSERT INTO reports (generated_at, ai_news, stock_news, crypto_news)
			VALUES (?, ?, ?, ?) RETURNING id
		`), generated.UTC().Format(time.RFC3339Nano), r.AINews, r.StockNews, r.CryptoNews).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("save report: %w", err)
	}
	return id, nil
}

// Latest returns the most recently generated report.
func (s *Store) Latest(ctx context.Context) (*Record, error) {
	records, err := s.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return &records[0], nil
}

// List returns up to limit reports, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, s.db.Rebind(`
		SELECT id, generated_at, ai_news, stock_news, crypto_news
		FROM reports ORDER BY generated_at DESC, id DESC LIMIT ?
	`), limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var generated string
		r := &report.Report{}
		if err := rows.Scan(&rec.ID, &generated, &r.AINews, &r.StockNews, &r.CryptoNews); err != nil {
			return nil, err
		}
		r.GeneratedAt, err = time.Parse(time.RFC3339Nano, generated)
		if err != nil {
			return nil, fmt.Errorf("report %d: parse generated_at %q: %w", rec.ID, generated, err)
		}
		rec.Report = r
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Count returns the number of stored reports.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reports").Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return n, err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
