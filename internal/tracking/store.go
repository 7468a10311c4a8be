// Package tracking records per-invocation token usage in a local SQLite
// database so `scour gain` can report how much context the condensed output
// saved compared to raw search transcripts.
//
// Tracking is best-effort throughout: a missing home directory, an unwritable
// database, or a failed insert never fails the command being tracked.
package tracking

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	_ "modernc.org/sqlite" // SQLite driver
)

// EnvDataDir overrides the default ~/.scour data directory when set.
const EnvDataDir = "SCOUR_DATA_DIR"

const schema = `
CREATE TABLE IF NOT EXISTS invocations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hash TEXT NOT NULL,
	command TEXT NOT NULL,
	proxy_command TEXT NOT NULL,
	input_tokens INTEGER NOT NULL,
	output_tokens INTEGER NOT NULL,
	saved_tokens INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_invocations_command ON invocations(command);
CREATE INDEX IF NOT EXISTS idx_invocations_created ON invocations(created_at);
`

// Store persists invocation records.
type Store struct {
	db   *sql.DB
	path string
}

// OpenStore opens (creating if needed) the usage database. An empty dataDir
// resolves to $SCOUR_DATA_DIR, then ~/.scour.
func OpenStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = os.Getenv(EnvDataDir)
	}
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".scour")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "usage.db")

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening usage database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing usage schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Record is one tracked invocation.
type Record struct {
	Hash         string
	Command      string
	ProxyCommand string
	InputTokens  int
	OutputTokens int
	SavedTokens  int
	Duration     time.Duration
	CreatedAt    time.Time
}

// Insert stores one invocation record.
func (s *Store) Insert(rec Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`
		INSERT INTO invocations (hash, command, proxy_command, input_tokens, output_tokens, saved_tokens, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.Hash, rec.Command, rec.ProxyCommand, rec.InputTokens, rec.OutputTokens,
		rec.SavedTokens, rec.Duration.Milliseconds(), rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting invocation: %w", err)
	}
	return nil
}

// EstimateTokens approximates the token count of text the way most BPE
// tokenizers average out for code: about four bytes per token.
func EstimateTokens(text string) int {
	return len(text) / 4
}

// InvocationHash returns a stable hex digest identifying one command line.
func InvocationHash(command string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(command))
}
