package stores

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/vmi98/api-analytics/internal/models"
)

// sqliteTimeLayout is fixed-width so stored timestamps compare correctly as
// text in range predicates. All values are stored in UTC.
const sqliteTimeLayout = "2006-01-02 15:04:05.000000000"

const schema = `
CREATE TABLE IF NOT EXISTS api_keys (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	api_key    TEXT NOT NULL UNIQUE,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS request_logs (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	client_key   TEXT NOT NULL,
	created_at   TEXT NOT NULL,
	method       TEXT NOT NULL,
	endpoint     TEXT NOT NULL,
	ip           TEXT NOT NULL DEFAULT '',
	process_time REAL NOT NULL CHECK (process_time >= 0),
	status_code  INTEGER NOT NULL CHECK (status_code BETWEEN 100 AND 599)
);

CREATE INDEX IF NOT EXISTS idx_request_logs_client_created
	ON request_logs (client_key, created_at);
`

// OpenSQLite opens (creating if needed) the sqlite database at path and
// ensures the schema exists. The pool is capped at one connection; sqlite is
// single-writer and the cap also makes ":memory:" behave as one database.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return db, nil
}

// SQLiteLogStore implements LogStore on a sqlite database.
type SQLiteLogStore struct {
	db *sql.DB
}

func NewSQLiteLogStore(db *sql.DB) *SQLiteLogStore {
	return &SQLiteLogStore{db: db}
}

func (s *SQLiteLogStore) Append(ctx context.Context, record *models.RequestLog) error {
	query := `
		INSERT INTO request_logs (client_key, created_at, method, endpoint, ip, process_time, status_code)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		record.ClientKey,
		record.CreatedAt.UTC().Format(sqliteTimeLayout),
		record.Method,
		record.Endpoint,
		record.IP,
		record.ProcessTime,
		record.StatusCode,
	)
	if err != nil {
		return fmt.Errorf("failed to insert request log: %w", err)
	}
	return nil
}

func (s *SQLiteLogStore) List(ctx context.Context, clientKey string, filter models.LogFilter) ([]*models.RequestLog, error) {
	query := `
		SELECT id, client_key, created_at, method, endpoint, ip, process_time, status_code
		FROM request_logs
		WHERE client_key = ?
	`
	args := []any{clientKey}

	var conds []string
	if filter.DateFrom != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, filter.DateFrom.UTC().Format(sqliteTimeLayout))
	}
	if filter.DateTo != nil {
		conds = append(conds, "created_at <= ?")
		args = append(args, filter.DateTo.UTC().Format(sqliteTimeLayout))
	}
	if filter.Method != "" {
		conds = append(conds, "method = ?")
		args = append(args, filter.Method)
	}
	if filter.StatusCode != 0 {
		conds = append(conds, "status_code = ?")
		args = append(args, filter.StatusCode)
	}
	if filter.Endpoint != "" {
		conds = append(conds, "endpoint = ?")
		args = append(args, filter.Endpoint)
	}
	if filter.IP != "" {
		conds = append(conds, "ip = ?")
		args = append(args, filter.IP)
	}
	if filter.ProcessTimeMin != nil {
		conds = append(conds, "process_time >= ?")
		args = append(args, *filter.ProcessTimeMin)
	}
	if filter.ProcessTimeMax != nil {
		conds = append(conds, "process_time <= ?")
		args = append(args, *filter.ProcessTimeMax)
	}
	if len(conds) > 0 {
		query += " AND " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query request logs: %w", err)
	}
	defer rows.Close()

	records := make([]*models.RequestLog, 0)
	for rows.Next() {
		var (
			record    models.RequestLog
			createdAt string
		)
		if err := rows.Scan(
			&record.ID,
			&record.ClientKey,
			&createdAt,
			&record.Method,
			&record.Endpoint,
			&record.IP,
			&record.ProcessTime,
			&record.StatusCode,
		); err != nil {
			return nil, fmt.Errorf("failed to scan request log: %w", err)
		}
		record.CreatedAt, err = time.ParseInLocation(sqliteTimeLayout, createdAt, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at %q: %w", createdAt, err)
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate request logs: %w", err)
	}
	return records, nil
}

// SQLiteAPIKeyStore implements APIKeyStore on the same sqlite database.
type SQLiteAPIKeyStore struct {
	db *sql.DB
}

func NewSQLiteAPIKeyStore(db *sql.DB) *SQLiteAPIKeyStore {
	return &SQLiteAPIKeyStore{db: db}
}

func (s *SQLiteAPIKeyStore) Create(ctx context.Context, key string) error {
	query := `INSERT INTO api_keys (api_key, created_at) VALUES (?, ?)`
	_, err := s.db.ExecContext(ctx, query, key, time.Now().UTC().Format(sqliteTimeLayout))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrAPIKeyAlreadyExists
		}
		return fmt.Errorf("failed to insert api key: %w", err)
	}
	return nil
}

func (s *SQLiteAPIKeyStore) Exists(ctx context.Context, key string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM api_keys WHERE api_key = ?`, key).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up api key: %w", err)
	}
	return true, nil
}
