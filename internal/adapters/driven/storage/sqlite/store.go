package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/sercha-crawler-plugin/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/domain"
	"github.com/custodia-labs/sercha-crawler-plugin/internal/core/ports/driven"
)

// Store is a SQLite-based store for the plugin journal.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.sercha/data/plugin.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".sercha", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "plugin.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// JournalStore returns a JournalStore interface backed by this store.
func (s *Store) JournalStore() driven.JournalStore {
	return &journalStore{store: s}
}

// migrate applies every .up.sql migration newer than the recorded version.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_journal.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Journal Store ====================

// journalStore implements driven.JournalStore.
type journalStore struct {
	store *Store
}

var _ driven.JournalStore = (*journalStore)(nil)

const journalColumns = "id, document_id, crawl_url, outcome, message, processed_at"

// Record saves a journal entry, replacing any entry with the same ID.
func (s *journalStore) Record(ctx context.Context, entry *domain.JournalEntry) error {
	if entry == nil || entry.ID == "" || !entry.Outcome.IsValid() {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO journal (`+journalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.DocumentID, entry.CrawlURL, string(entry.Outcome), entry.Message, entry.ProcessedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("recording journal entry: %w", err)
	}
	return nil
}

// Get returns an entry by ID.
func (s *journalStore) Get(ctx context.Context, id string) (*domain.JournalEntry, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+journalColumns+" FROM journal WHERE id = ?", id)

	entry, err := scanJournalEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting journal entry: %w", err)
	}
	return entry, nil
}

// List returns up to limit entries, most recent first.
func (s *journalStore) List(ctx context.Context, limit int) ([]domain.JournalEntry, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+journalColumns+` FROM journal
		ORDER BY processed_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	return scanJournalEntries(rows)
}

// ListByOutcome returns entries with the given outcome, most recent first.
func (s *journalStore) ListByOutcome(ctx context.Context, outcome domain.Outcome) ([]domain.JournalEntry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+journalColumns+` FROM journal
		WHERE outcome = ?
		ORDER BY processed_at DESC, id DESC
	`, string(outcome))
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	return scanJournalEntries(rows)
}

// ==================== Helper Functions ====================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJournalEntry(row rowScanner) (*domain.JournalEntry, error) {
	var (
		entry       domain.JournalEntry
		outcome     string
		processedAt int64
	)
	if err := row.Scan(&entry.ID, &entry.DocumentID, &entry.CrawlURL, &outcome, &entry.Message, &processedAt); err != nil {
		return nil, err
	}
	entry.Outcome = domain.Outcome(outcome)
	entry.ProcessedAt = time.Unix(0, processedAt)
	return &entry, nil
}

func scanJournalEntries(rows *sql.Rows) ([]domain.JournalEntry, error) {
	result := make([]domain.JournalEntry, 0)
	for rows.Next() {
		entry, err := scanJournalEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning journal entry: %w", err)
		}
		result = append(result, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journal: %w", err)
	}
	return result, nil
}
