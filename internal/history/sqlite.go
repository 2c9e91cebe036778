// Package history persists assessment records so users can review their
// past predictions. Two backends are provided: an embedded SQLite store for
// single-node deployments and a PostgreSQL store for shared ones.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/health-assistant-server/internal/domain"
)

// SQLiteStore implements domain.HistoryStore using an embedded SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens (or creates) the history database at dbPath and
// ensures the schema exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS assessments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		disease TEXT NOT NULL,
		features TEXT NOT NULL,
		probability REAL NOT NULL,
		verdict TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_assessments_disease ON assessments(disease);
	CREATE INDEX IF NOT EXISTS idx_assessments_created_at ON assessments(created_at);
	`

	_, err := db.Exec(schema)
	return err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(s scanner) (*domain.AssessmentRecord, error) {
	record := &domain.AssessmentRecord{}
	var disease, verdict, featuresJSON string

	if err := s.Scan(&record.ID, &disease, &featuresJSON, &record.Probability, &verdict, &record.CreatedAt); err != nil {
		return nil, err
	}

	record.Disease = domain.Disease(disease)
	record.Verdict = domain.Verdict(verdict)
	if err := json.Unmarshal([]byte(featuresJSON), &record.Features); err != nil {
		return nil, fmt.Errorf("failed to decode stored features: %w", err)
	}
	return record, nil
}

// Save inserts an assessment record and fills in its assigned ID and
// creation time.
func (s *SQLiteStore) Save(ctx context.Context, record *domain.AssessmentRecord) error {
	featuresJSON, err := json.Marshal(record.Features)
	if err != nil {
		return fmt.Errorf("failed to encode features: %w", err)
	}

	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO assessments (disease, features, probability, verdict, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		record.Disease.String(), string(featuresJSON), record.Probability,
		record.Verdict.String(), now,
	)
	if err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get assessment id: %w", err)
	}
	record.ID = id
	record.CreatedAt = now
	return nil
}

// Get retrieves a single assessment record by ID.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (*domain.AssessmentRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, disease, features, probability, verdict, created_at
		FROM assessments WHERE id = ?`, id)

	record, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: assessment %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return record, nil
}

// List returns assessment records newest first.
func (s *SQLiteStore) List(ctx context.Context, limit, offset int) ([]*domain.AssessmentRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, disease, features, probability, verdict, created_at
		FROM assessments ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	var records []*domain.AssessmentRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Count returns the total number of stored assessments.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM assessments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count assessments: %w", err)
	}
	return count, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
