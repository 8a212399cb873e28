package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/byteprobe/internal/model"
)

// FileName is the database file created inside the database directory.
const FileName = "byteprobe.db"

// storedTimestampLayout has fixed width so that created_at sorts as text.
const storedTimestampLayout = "2006-01-02T15:04:05.000000000Z"

// HistoryDB provides SQLite-based storage for reports.
//
// Design decision: We use a single database file for all inputs rather than
// one per file. Listing by path or by content hash is then a plain query.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist,
// ErrDatabaseNotFound is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite takes the open mode in the DSN: rw refuses to
	// create a missing file, rwc creates it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Reports store complete interpretation results as JSON
	CREATE TABLE IF NOT EXISTS reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		path TEXT NOT NULL,
		sha256 TEXT NOT NULL DEFAULT '',
		size INTEGER NOT NULL,
		actions TEXT NOT NULL,
		created_at TEXT NOT NULL,
		elapsed_ns INTEGER,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reports_path ON reports(path);
	CREATE INDEX IF NOT EXISTS idx_reports_sha256 ON reports(sha256);
	CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports(created_at);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// ReportMetadata summarises a stored report without decoding it.
type ReportMetadata struct {
	// ID is the unique identifier of the report in the database.
	ID int64

	// Path is the interpreted input path.
	Path string

	// SHA256 is the input digest, or "" if it was not part of the header.
	SHA256 string

	// Size is the number of bytes interpreted.
	Size int

	// Actions lists the action kinds in execution order.
	Actions []string

	// Timestamp is when the run started.
	Timestamp time.Time

	// Elapsed is the execution time. It is zero for incomplete reports.
	Elapsed time.Duration

	// Complete reports whether every action ran.
	Complete bool
}

// SaveReport stores a report and returns its id.
// The SHA-256 column is taken from the header hashes when present.
func (hdb *HistoryDB) SaveReport(ctx context.Context, report *model.Report) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	var elapsed sql.NullInt64
	if report.Footer != nil {
		elapsed = sql.NullInt64{Int64: int64(report.Footer.Elapsed), Valid: true}
	}

	query := `
	INSERT INTO reports (path, sha256, size, actions, created_at, elapsed_ns, report_json)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	res, err := hdb.db.ExecContext(ctx, query,
		report.Header.Path,
		report.Header.HashValue("sha256"),
		report.Header.Size,
		strings.Join(report.ActionNames(), ","),
		report.Header.Timestamp.UTC().Format(storedTimestampLayout),
		elapsed,
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save report: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get report id: %w", err)
	}
	return id, nil
}

// GetReportByID retrieves a stored report.
// Returns ErrReportNotFound if no report has the id.
func (hdb *HistoryDB) GetReportByID(ctx context.Context, id int64) (*model.Report, error) {
	var reportJSON string
	err := hdb.db.QueryRowContext(ctx, "SELECT report_json FROM reports WHERE id = ?", id).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrReportNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	// Numbers in section options stay json.Number so that integers keep
	// their exact digits when the report is rendered again.
	dec := json.NewDecoder(strings.NewReader(reportJSON))
	dec.UseNumber()

	var report model.Report
	if err := dec.Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to deserialize report: %w", err)
	}
	return &report, nil
}

// Filter narrows ListReports. Zero fields match everything.
type Filter struct {
	// Path matches the input path exactly.
	Path string

	// SHA256 matches the input digest exactly.
	SHA256 string

	// Limit caps the number of results. Zero means no limit.
	Limit int
}

// ListReports returns report metadata, newest first.
func (hdb *HistoryDB) ListReports(ctx context.Context, filter Filter) ([]ReportMetadata, error) {
	var (
		where []string
		args  []any
	)
	if filter.Path != "" {
		where = append(where, "path = ?")
		args = append(args, filter.Path)
	}
	if filter.SHA256 != "" {
		where = append(where, "sha256 = ?")
		args = append(args, strings.ToLower(filter.SHA256))
	}

	query := "SELECT id, path, sha256, size, actions, created_at, elapsed_ns FROM reports"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var results []ReportMetadata
	for rows.Next() {
		var (
			meta      ReportMetadata
			actions   string
			timestamp string
			elapsed   sql.NullInt64
		)
		if err := rows.Scan(&meta.ID, &meta.Path, &meta.SHA256, &meta.Size, &actions, &timestamp, &elapsed); err != nil {
			return nil, fmt.Errorf("failed to scan report metadata: %w", err)
		}

		if actions != "" {
			meta.Actions = strings.Split(actions, ",")
		}
		meta.Timestamp = parseTimestamp(timestamp)
		if elapsed.Valid {
			meta.Elapsed = time.Duration(elapsed.Int64)
			meta.Complete = true
		}
		results = append(results, meta)
	}

	return results, rows.Err()
}

// ListPaths returns the distinct input paths with stored reports.
func (hdb *HistoryDB) ListPaths(ctx context.Context) ([]string, error) {
	rows, err := hdb.db.QueryContext(ctx, "SELECT DISTINCT path FROM reports ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("failed to list paths: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan path: %w", err)
		}
		paths = append(paths, p)
	}

	return paths, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	storedTimestampLayout,     // Format written by SaveReport
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	time.RFC3339,              // Full RFC3339 format
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
