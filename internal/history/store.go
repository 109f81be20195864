// Package history persists query outcomes in a local DuckDB file so past
// questions and answers survive restarts and can be exported.
package history

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/marcboeker/go-duckdb"

	"github.com/gemini-rag/backend/internal/models"
)

// Store is a DuckDB-backed query history log.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// NewStore opens (or creates) the history database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	connector, err := duckdb.NewConnector(dbPath, func(execer driver.ExecerContext) error {
		// Keep the embedded database small; history is low-volume.
		_, err := execer.ExecContext(context.Background(), "PRAGMA memory_limit='256MB'", nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("creating DuckDB connector: %w", err)
	}

	db := sql.OpenDB(connector)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS query_history (
			id               VARCHAR PRIMARY KEY,
			store_ref        VARCHAR NOT NULL,
			question         VARCHAR NOT NULL,
			answer           VARCHAR NOT NULL,
			is_found         BOOLEAN NOT NULL,
			citation_count   INTEGER NOT NULL,
			response_time_ms BIGINT NOT NULL,
			created_at       TIMESTAMP NOT NULL
		)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history table: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Record appends one query outcome to the log. The record's ID and
// timestamp are assigned here when unset.
func (s *Store) Record(rec *models.HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO query_history
			(id, store_ref, question, answer, is_found, citation_count, response_time_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.StoreRef, rec.Question, rec.Answer, rec.IsFound,
		rec.CitationCount, rec.ResponseTimeMs, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting history record: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(limit int) ([]*models.HistoryRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, store_ref, question, answer, is_found, citation_count, response_time_ms, created_at
		FROM query_history
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var records []*models.HistoryRecord
	for rows.Next() {
		rec := &models.HistoryRecord{}
		if err := rows.Scan(
			&rec.ID, &rec.StoreRef, &rec.Question, &rec.Answer,
			&rec.IsFound, &rec.CitationCount, &rec.ResponseTimeMs, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning history record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
