package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/meow/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/meow/internal/core/domain"
	"github.com/custodia-labs/meow/internal/core/ports/driven"
)

// Ensure Store implements the interfaces.
var (
	_ driven.VectorStore   = (*Store)(nil)
	_ driven.IndexRunStore = (*Store)(nil)
)

// DefaultFileName is the database file name inside the data directory.
const DefaultFileName = "meow_vectors.db"

// Store is a SQLite-backed vector store keyed by absolute file path.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the database at dbPath.
// If dbPath is empty, defaults to ~/.meow/data/meow_vectors.db.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".meow", "data", DefaultFileName)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %w", domain.ErrStorage, err)
	}

	// WAL mode lets a reader coexist with the indexer.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %w", domain.ErrStorage, err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: running migrations: %w", domain.ErrStorage, err)
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

// migrate runs all pending migrations, recording each applied version.
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
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_embeddings.up.sql" -> 1
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
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// apply executes one migration and records its version atomically.
func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Embeddings ====================

// Upsert stores rec, replacing any record for the same path.
func (s *Store) Upsert(ctx context.Context, rec domain.EmbeddingRecord) error {
	if rec.Path == "" {
		return fmt.Errorf("%w: empty path", domain.ErrInvalidInput)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO embeddings (path, vector, modified, model)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			vector = excluded.vector,
			modified = excluded.modified,
			model = excluded.model
	`, rec.Path, float32SliceToBytes(rec.Vector), rec.Modified, rec.Model)
	if err != nil {
		return fmt.Errorf("%w: upserting %s: %w", domain.ErrStorage, rec.Path, err)
	}
	return nil
}

// Get retrieves the record for path.
func (s *Store) Get(ctx context.Context, path string) (*domain.EmbeddingRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT path, vector, modified, model FROM embeddings WHERE path = ?
	`, path)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// LoadAll returns every record in insertion order.
func (s *Store) LoadAll(ctx context.Context) ([]domain.EmbeddingRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, vector, modified, model FROM embeddings ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying embeddings: %w", domain.ErrStorage, err)
	}
	defer rows.Close()

	var records []domain.EmbeddingRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating embeddings: %w", domain.ErrStorage, err)
	}

	return records, nil
}

// Stats counts records in total and per embedding model.
func (s *Store) Stats(ctx context.Context) (*domain.StoreStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT model, COUNT(*) FROM embeddings GROUP BY model
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: counting embeddings: %w", domain.ErrStorage, err)
	}
	defer rows.Close()

	stats := &domain.StoreStats{Models: make(map[string]int), Path: s.path}
	for rows.Next() {
		var (
			model string
			count int
		)
		if err := rows.Scan(&model, &count); err != nil {
			return nil, fmt.Errorf("%w: scanning stats: %w", domain.ErrStorage, err)
		}
		stats.Models[model] = count
		stats.Records += count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating stats: %w", domain.ErrStorage, err)
	}

	return stats, nil
}

// ==================== Index Runs ====================

// SaveRun records a finished indexing run.
func (s *Store) SaveRun(ctx context.Context, run *domain.IndexRun) error {
	rootsJSON, err := json.Marshal(run.Roots)
	if err != nil {
		return fmt.Errorf("%w: marshalling roots: %w", domain.ErrStorage, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO index_runs (id, started_at, finished_at, indexed, skipped, roots)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			started_at = excluded.started_at,
			finished_at = excluded.finished_at,
			indexed = excluded.indexed,
			skipped = excluded.skipped,
			roots = excluded.roots
	`, run.ID, run.StartedAt.UTC(), run.FinishedAt.UTC(), run.Indexed, run.Skipped, string(rootsJSON))
	if err != nil {
		return fmt.Errorf("%w: saving index run: %w", domain.ErrStorage, err)
	}
	return nil
}

// LastRun returns the most recently finished run.
func (s *Store) LastRun(ctx context.Context) (*domain.IndexRun, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, indexed, skipped, roots
		FROM index_runs ORDER BY finished_at DESC LIMIT 1
	`)

	var (
		run       domain.IndexRun
		rootsJSON string
	)
	err := row.Scan(&run.ID, &run.StartedAt, &run.FinishedAt, &run.Indexed, &run.Skipped, &rootsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanning index run: %w", domain.ErrStorage, err)
	}
	if err := json.Unmarshal([]byte(rootsJSON), &run.Roots); err != nil {
		return nil, fmt.Errorf("%w: unmarshalling roots: %w", domain.ErrStorage, err)
	}
	run.StartedAt = run.StartedAt.Local()
	run.FinishedAt = run.FinishedAt.Local()
	return &run, nil
}

// ==================== Helper Functions ====================

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord scans one embeddings row. sql.ErrNoRows is returned unwrapped.
func scanRecord(row scanner) (*domain.EmbeddingRecord, error) {
	var (
		rec  domain.EmbeddingRecord
		blob []byte
	)
	if err := row.Scan(&rec.Path, &blob, &rec.Modified, &rec.Model); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scanning embedding: %w", domain.ErrStorage, err)
	}

	vec, err := bytesToFloat32Slice(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding vector for %s: %w", domain.ErrStorage, rec.Path, err)
	}
	rec.Vector = vec
	return &rec, nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("blob length %d is not a multiple of 4", len(data))
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats, nil
}
