// Package database provides the SQLite report-history index for reportgc.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/Killmanga-AI/reportgc/internal/models"
)

// DB is the report-history database. It indexes every generated report so
// the list command can answer without walking the storage tree.
type DB struct {
	conn        *sql.DB
	path        string
	maxConns    int
	busyTimeout time.Duration
}

// Option represents a functional option for configuring the database.
type Option func(*DB)

// WithMaxConnections sets the maximum number of open connections.
func WithMaxConnections(n int) Option {
	return func(db *DB) {
		db.maxConns = n
	}
}

// WithBusyTimeout sets the busy timeout for SQLite.
func WithBusyTimeout(timeout time.Duration) Option {
	return func(db *DB) {
		db.busyTimeout = timeout
	}
}

// New opens the database at path (":memory:" works for tests) and ensures
// the schema exists.
func New(path string, opts ...Option) (*DB, error) {
	db := &DB{
		path:        path,
		maxConns:    10,
		busyTimeout: 5 * time.Second,
	}

	for _, opt := range opts {
		opt(db)
	}

	connStr := path
	if strings.Contains(path, "?") {
		connStr = fmt.Sprintf("%s&_busy_timeout=%d", path, db.busyTimeout.Milliseconds())
	} else {
		connStr = fmt.Sprintf("%s?_busy_timeout=%d", path, db.busyTimeout.Milliseconds())
	}

	conn, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	conn.SetMaxOpenConns(db.maxConns)
	conn.SetMaxIdleConns(db.maxConns / 2)
	conn.SetConnMaxLifetime(time.Hour)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("applying pragma %q: %w", pragma, err)
		}
	}

	db.conn = conn

	if err := db.migrate(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		report_id          TEXT PRIMARY KEY,
		generated_at       TEXT NOT NULL,
		grade              TEXT NOT NULL,
		total_findings     INTEGER NOT NULL,
		critical           INTEGER NOT NULL,
		high               INTEGER NOT NULL,
		medium             INTEGER NOT NULL,
		low                INTEGER NOT NULL,
		cisa_kev_count     INTEGER NOT NULL,
		total_effort_hours INTEGER NOT NULL,
		path               TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_reports_generated_at ON reports(generated_at);
	`

	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("creating reports table: %w", err)
	}

	return nil
}

// ReportRecord is one row of report history.
type ReportRecord struct {
	ReportID         string
	GeneratedAt      string
	Grade            string
	TotalFindings    int
	Critical         int
	High             int
	Medium           int
	Low              int
	CisaKEVCount     int
	TotalEffortHours int
	Path             string
}

// RecordFromReport builds a history record from a report and the directory
// it was stored in.
func RecordFromReport(report *models.Report, path string) ReportRecord {
	return ReportRecord{
		ReportID:         report.ReportID,
		GeneratedAt:      report.GeneratedAt,
		Grade:            report.Grade,
		TotalFindings:    report.Summary.TotalFindings,
		Critical:         report.Summary.Critical,
		High:             report.Summary.High,
		Medium:           report.Summary.Medium,
		Low:              report.Summary.Low,
		CisaKEVCount:     report.Summary.CisaKEVCount,
		TotalEffortHours: report.TotalEffortHours,
		Path:             path,
	}
}

// InsertReport records a generated report, replacing any previous row with
// the same id.
func (db *DB) InsertReport(ctx context.Context, rec ReportRecord) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO reports (
			report_id, generated_at, grade, total_findings,
			critical, high, medium, low, cisa_kev_count,
			total_effort_hours, path
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ReportID, rec.GeneratedAt, rec.Grade, rec.TotalFindings,
		rec.Critical, rec.High, rec.Medium, rec.Low, rec.CisaKEVCount,
		rec.TotalEffortHours, rec.Path,
	)
	if err != nil {
		return fmt.Errorf("inserting report %s: %w", rec.ReportID, err)
	}

	return nil
}

// GetReport fetches one history record by report id.
func (db *DB) GetReport(ctx context.Context, reportID string) (*ReportRecord, error) {
	row := db.conn.QueryRowContext(ctx, `
		SELECT report_id, generated_at, grade, total_findings,
		       critical, high, medium, low, cisa_kev_count,
		       total_effort_hours, path
		FROM reports WHERE report_id = ?`, reportID)

	var rec ReportRecord
	err := row.Scan(
		&rec.ReportID, &rec.GeneratedAt, &rec.Grade, &rec.TotalFindings,
		&rec.Critical, &rec.High, &rec.Medium, &rec.Low, &rec.CisaKEVCount,
		&rec.TotalEffortHours, &rec.Path,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("report %s not found", reportID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying report %s: %w", reportID, err)
	}

	return &rec, nil
}

// ListReports returns up to limit history records, newest first. A limit of
// zero or less means no limit.
func (db *DB) ListReports(ctx context.Context, limit int) ([]ReportRecord, error) {
	query := `
		SELECT report_id, generated_at, grade, total_findings,
		       critical, high, medium, low, cisa_kev_count,
		       total_effort_hours, path
		FROM reports ORDER BY generated_at DESC, report_id DESC`

	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []ReportRecord
	for rows.Next() {
		var rec ReportRecord
		if err := rows.Scan(
			&rec.ReportID, &rec.GeneratedAt, &rec.Grade, &rec.TotalFindings,
			&rec.Critical, &rec.High, &rec.Medium, &rec.Low, &rec.CisaKEVCount,
			&rec.TotalEffortHours, &rec.Path,
		); err != nil {
			return nil, fmt.Errorf("scanning report row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating report rows: %w", err)
	}

	return records, nil
}
