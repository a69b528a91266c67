package transcript

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// schema contains the SQL statements to create the transcript schema.
const schema = `
CREATE TABLE IF NOT EXISTS transcripts (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    provider TEXT NOT NULL,
    outcome TEXT NOT NULL,
    error_kind TEXT,
    latency_ms INTEGER NOT NULL,
    reply_preview TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transcripts_session ON transcripts(session_id);
CREATE INDEX IF NOT EXISTS idx_transcripts_created ON transcripts(created_at);
`

// SQLiteConfig contains configuration for the SQLite storage backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is how long to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/transcripts.db",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db        *sql.DB
	config    *SQLiteConfig
	storeStmt *sql.Stmt
	logger    *slog.Logger
}

// NewSQLiteStorage opens (or creates) the database and initializes the
// schema.
func NewSQLiteStorage(config *SQLiteConfig) (*SQLiteStorage, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "transcript.sqlite")

	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, &StorageError{Backend: "sqlite", Op: "open", Cause: err}
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStorage{
		db:     db,
		config: config,
		logger: logger,
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("SQLite transcript storage initialized",
		"path", config.Path,
		"wal_mode", config.WALMode,
	)

	return s, nil
}

func (s *SQLiteStorage) initialize() error {
	if s.config.WALMode {
		if _, err := s.db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return &StorageError{Backend: "sqlite", Op: "enable_wal", Cause: err}
		}
	}

	busyTimeoutMs := s.config.BusyTimeout.Milliseconds()
	if _, err := s.db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		return &StorageError{Backend: "sqlite", Op: "set_busy_timeout", Cause: err}
	}

	if _, err := s.db.Exec(schema); err != nil {
		return &StorageError{Backend: "sqlite", Op: "create_schema", Cause: err}
	}

	stmt, err := s.db.Prepare(`
		INSERT INTO transcripts
			(id, session_id, provider, outcome, error_kind, latency_ms, reply_preview, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return &StorageError{Backend: "sqlite", Op: "prepare_insert", Cause: err}
	}
	s.storeStmt = stmt

	return nil
}

func (s *SQLiteStorage) Store(ctx context.Context, record *Record) error {
	_, err := s.storeStmt.ExecContext(ctx,
		record.ID,
		record.SessionID,
		record.Provider,
		record.Outcome,
		record.ErrorKind,
		record.LatencyMS,
		record.ReplyPreview,
		record.CreatedAt,
	)
	if err != nil {
		return &StorageError{Backend: "sqlite", Op: "insert", Cause: err}
	}
	return nil
}

func (s *SQLiteStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transcripts").Scan(&count)
	if err != nil {
		return 0, &StorageError{Backend: "sqlite", Op: "count", Cause: err}
	}
	return count, nil
}

func (s *SQLiteStorage) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transcripts WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, &StorageError{Backend: "sqlite", Op: "prune", Cause: err}
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, &StorageError{Backend: "sqlite", Op: "prune_rows_affected", Cause: err}
	}

	if deleted > 0 {
		s.logger.Info("transcripts pruned",
			"deleted", deleted,
			"cutoff", cutoff,
		)
	}
	return deleted, nil
}

func (s *SQLiteStorage) Close() error {
	if s.storeStmt != nil {
		s.storeStmt.Close()
	}
	return s.db.Close()
}
