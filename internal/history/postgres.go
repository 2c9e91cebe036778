package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/health-assistant-server/internal/domain"
)

// PostgresStore implements domain.HistoryStore on a pgx connection pool.
// The assessments table is created by the migration runner, not here.
type PostgresStore struct {
	db  *pgxpool.Pool
	log *logrus.Logger
}

// NewPostgresStore creates a history store backed by PostgreSQL.
func NewPostgresStore(db *pgxpool.Pool, logger *logrus.Logger) *PostgresStore {
	return &PostgresStore{db: db, log: logger}
}

// Save inserts an assessment record and fills in its assigned ID and
// creation time.
func (s *PostgresStore) Save(ctx context.Context, record *domain.AssessmentRecord) error {
	featuresJSON, err := json.Marshal(record.Features)
	if err != nil {
		return fmt.Errorf("failed to encode features: %w", err)
	}

	query := `
		INSERT INTO assessments (disease, features, probability, verdict)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err = s.db.QueryRow(ctx, query,
		record.Disease.String(), featuresJSON, record.Probability, record.Verdict.String(),
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"disease": record.Disease,
			"error":   err,
		}).Error("Failed to save assessment")
		return fmt.Errorf("saving assessment: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"assessment_id": record.ID,
		"disease":       record.Disease,
		"verdict":       record.Verdict,
	}).Info("Assessment saved")

	return nil
}

// Get retrieves a single assessment record by ID.
func (s *PostgresStore) Get(ctx context.Context, id int64) (*domain.AssessmentRecord, error) {
	query := `
		SELECT id, disease, features, probability, verdict, created_at
		FROM assessments
		WHERE id = $1`

	record := &domain.AssessmentRecord{}
	var disease, verdict string
	var featuresJSON []byte

	err := s.db.QueryRow(ctx, query, id).Scan(
		&record.ID, &disease, &featuresJSON, &record.Probability, &verdict, &record.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: assessment %d", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting assessment: %w", err)
	}

	record.Disease = domain.Disease(disease)
	record.Verdict = domain.Verdict(verdict)
	if err := json.Unmarshal(featuresJSON, &record.Features); err != nil {
		return nil, fmt.Errorf("failed to decode stored features: %w", err)
	}
	return record, nil
}

// List returns assessment records newest first.
func (s *PostgresStore) List(ctx context.Context, limit, offset int) ([]*domain.AssessmentRecord, error) {
	query := `
		SELECT id, disease, features, probability, verdict, created_at
		FROM assessments
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`

	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing assessments: %w", err)
	}
	defer rows.Close()

	var records []*domain.AssessmentRecord
	for rows.Next() {
		record := &domain.AssessmentRecord{}
		var disease, verdict string
		var featuresJSON []byte

		if err := rows.Scan(&record.ID, &disease, &featuresJSON, &record.Probability, &verdict, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning assessment: %w", err)
		}
		record.Disease = domain.Disease(disease)
		record.Verdict = domain.Verdict(verdict)
		if err := json.Unmarshal(featuresJSON, &record.Features); err != nil {
			return nil, fmt.Errorf("failed to decode stored features: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Count returns the total number of stored assessments.
func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM assessments`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting assessments: %w", err)
	}
	return count, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}
