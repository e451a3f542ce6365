// duckstore.go - DuckDB-backed processing history
package history

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/marcboeker/go-duckdb"
	"github.com/schema-scout/backend/internal/models"
)

// Store records one row per processing request in a DuckDB file, so
// history survives restarts without pulling in a full database server.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// NewStore opens (or creates) the history database in dataDir.
func NewStore(dataDir string) (*Store, error) {
	return NewStoreAtPath(filepath.Join(dataDir, "history.duckdb"))
}

// NewStoreAtPath opens the history database at a specific path.
func NewStoreAtPath(dbPath string) (*Store, error) {
	connector, err := duckdb.NewConnector(dbPath, func(execer driver.ExecerContext) error {
		pragmas := []string{
			"PRAGMA memory_limit='256MB'",
			"PRAGMA threads=2",
			"PRAGMA enable_progress_bar=false",
		}
		for _, pragma := range pragmas {
			if _, err := execer.ExecContext(context.Background(), pragma, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("creating DuckDB connector: %w", err)
	}

	db := sql.OpenDB(connector)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS processing_history (
			id              VARCHAR PRIMARY KEY,
			schema_file     VARCHAR NOT NULL,
			query           VARCHAR NOT NULL,
			corrected_query VARCHAR,
			output_format   VARCHAR NOT NULL,
			threshold       DOUBLE NOT NULL,
			table_count     INTEGER NOT NULL,
			top_score       DOUBLE NOT NULL,
			duration_ms     BIGINT NOT NULL,
			created_at      TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history table: %w", err)
	}

	return &Store{db: db}, nil
}

// Record inserts one history entry. The entry's ID and CreatedAt are
// assigned here if unset.
func (s *Store) Record(ctx context.Context, entry *models.HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO processing_history
			(id, schema_file, query, corrected_query, output_format, threshold, table_count, top_score, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.SchemaFile, entry.Query, entry.CorrectedQuery,
		entry.OutputFormat, entry.Threshold, entry.TableCount,
		entry.TopScore, entry.DurationMs, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}
	return nil
}

// Recent returns the latest entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, schema_file, query, corrected_query, output_format, threshold, table_count, top_score, duration_ms, created_at
		FROM processing_history
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		var corrected sql.NullString
		if err := rows.Scan(&e.ID, &e.SchemaFile, &e.Query, &corrected,
			&e.OutputFormat, &e.Threshold, &e.TableCount, &e.TopScore,
			&e.DurationMs, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.CorrectedQuery = corrected.String
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Len returns the total number of recorded entries.
func (s *Store) Len(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM processing_history`).Scan(&n)
	return n, err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
