package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/clause-labs/retriva-cli/internal/adapters/driven/history/sqlite/migrations"
	"github.com/clause-labs/retriva-cli/internal/core/domain"
	"github.com/clause-labs/retriva-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.HistoryStore = (*Store)(nil)

// Store persists interactions in a local SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.retriva/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".retriva", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
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

// Save stores an interaction.
func (s *Store) Save(ctx context.Context, interaction domain.Interaction) error {
	if interaction.ID == "" {
		return fmt.Errorf("%w: interaction id is empty", domain.ErrInvalidInput)
	}
	if interaction.CreatedAt.IsZero() {
		interaction.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO interactions (id, namespace, prompt, answer, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			namespace = excluded.namespace,
			prompt = excluded.prompt,
			answer = excluded.answer,
			created_at = excluded.created_at
	`, interaction.ID, interaction.Namespace, interaction.Prompt,
		interaction.Answer, interaction.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving interaction: %w", err)
	}

	return nil
}

// Recent returns up to limit interactions for a namespace, oldest first.
func (s *Store) Recent(ctx context.Context, namespace string, limit int) ([]domain.Interaction, error) {
	if limit <= 0 {
		limit = domain.DefaultHistoryTurns
	}

	// Select the newest rows, then reverse so callers get a transcript.
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, namespace, prompt, answer, created_at
		FROM interactions
		WHERE namespace = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, namespace, limit)
	if err != nil {
		return nil, fmt.Errorf("querying interactions: %w", err)
	}
	defer rows.Close()

	var interactions []domain.Interaction
	for rows.Next() {
		var interaction domain.Interaction
		if err := rows.Scan(
			&interaction.ID,
			&interaction.Namespace,
			&interaction.Prompt,
			&interaction.Answer,
			&interaction.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning interaction: %w", err)
		}
		interactions = append(interactions, interaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating interactions: %w", err)
	}

	for i, j := 0, len(interactions)-1; i < j; i, j = i+1, j-1 {
		interactions[i], interactions[j] = interactions[j], interactions[i]
	}

	return interactions, nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
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
