package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/decoylab/honeypot/internal/domain"
	"github.com/decoylab/honeypot/internal/shared"
	_ "modernc.org/sqlite"
)

// SQLiteArchive implements Archive using a local SQLite database.
type SQLiteArchive struct {
	db *sql.DB
}

var _ Archive = (*SQLiteArchive)(nil)

// NewSQLite creates a SQLite-backed report archive at dbPath.
func NewSQLite(dbPath string) (*SQLiteArchive, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}

	// WAL mode for better concurrency between report writers and readers.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open archive database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping archive database: %w", err)
	}

	a := &SQLiteArchive{db: db}
	if err := a.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize archive schema: %w", err)
	}
	return a, nil
}

func (a *SQLiteArchive) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		scam_detected INTEGER NOT NULL,
		total_messages INTEGER NOT NULL,
		intelligence_json TEXT NOT NULL,
		agent_notes TEXT NOT NULL,
		delivered INTEGER NOT NULL,
		reported_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_reports_reported_at ON reports(reported_at);
	`
	if _, err := a.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (a *SQLiteArchive) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

// SaveReport records a final report. Retries a few times with backoff on
// SQLite concurrency errors, since a burst of terminations can contend on
// the writer.
func (a *SQLiteArchive) SaveReport(ctx context.Context, rep *domain.FinalReport, delivered bool) error {
	maxRetries := 3
	baseDelay := 100 * time.Millisecond

	var err error
	for i := 0; i < maxRetries; i++ {
		err = a.saveReportOnce(ctx, rep, delivered)
		if err == nil {
			return nil
		}
		if shared.IsSQLiteConflictError(err) && i < maxRetries-1 {
			delay := baseDelay * time.Duration(1<<i)
			slog.Debug("archive write conflict, retrying",
				"session_id", rep.SessionID,
				"attempt", i+1,
				"delay", delay)
			time.Sleep(delay)
			continue
		}
		break
	}
	return fmt.Errorf("save report for %s: %w", rep.SessionID, err)
}

func (a *SQLiteArchive) saveReportOnce(ctx context.Context, rep *domain.FinalReport, delivered bool) error {
	intelJSON, err := json.Marshal(rep.ExtractedIntelligence)
	if err != nil {
		return fmt.Errorf("marshal intelligence: %w", err)
	}

	query := `
	INSERT INTO reports (session_id, scam_detected, total_messages, intelligence_json, agent_notes, delivered, reported_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = a.db.ExecContext(ctx, query,
		rep.SessionID, rep.ScamDetected, rep.TotalMessagesExchanged,
		string(intelJSON), rep.AgentNotes, delivered, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// RecentReports returns up to limit reports, newest first.
func (a *SQLiteArchive) RecentReports(ctx context.Context, limit int) ([]*StoredReport, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
	SELECT session_id, scam_detected, total_messages, intelligence_json, agent_notes, delivered, reported_at
	FROM reports ORDER BY reported_at DESC, id DESC LIMIT ?`

	rows, err := a.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close report rows", "error", closeErr)
		}
	}()

	var reports []*StoredReport
	for rows.Next() {
		var (
			rep        StoredReport
			intelJSON  string
			reportedAt int64
		)
		if err := rows.Scan(
			&rep.SessionID, &rep.ScamDetected, &rep.TotalMessagesExchanged,
			&intelJSON, &rep.AgentNotes, &rep.Delivered, &reportedAt,
		); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}

		rec := domain.NewIntelligenceRecord()
		if err := json.Unmarshal([]byte(intelJSON), rec); err != nil {
			return nil, fmt.Errorf("unmarshal intelligence for %s: %w", rep.SessionID, err)
		}
		rep.ExtractedIntelligence = rec
		rep.ReportedAt = time.Unix(reportedAt, 0)
		reports = append(reports, &rep)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return reports, nil
}

// Close closes the database connection.
func (a *SQLiteArchive) Close() error {
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close archive database: %w", err)
	}
	return nil
}
