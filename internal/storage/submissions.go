// Package storage persists built containers and their submission outcomes.
// A failed submission never discards the container; the row is kept for
// diagnostics and for the relay to retry.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Submission statuses.
const (
	StatusPending   = "pending"
	StatusSubmitted = "submitted"
	StatusFailed    = "failed"
)

// SubmissionRecord is one retained build.
type SubmissionRecord struct {
	ID        string
	SubjectID string
	Container []byte
	Status    string
	Attempts  int
	LastError string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is the pgx-backed submission store.
type Store struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewStore creates a store.
func NewStore(pool *pgxpool.Pool, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{pool: pool, logger: logger}
}

// EnsureSchema creates the submissions table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS document_submissions (
			id          TEXT PRIMARY KEY,
			subject_id  TEXT NOT NULL,
			container   JSONB NOT NULL,
			status      TEXT NOT NULL,
			attempts    INT NOT NULL DEFAULT 0,
			last_error  TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure submissions schema: %w", err)
	}
	return nil
}

// Insert retains a freshly built container before submission.
func (s *Store) Insert(ctx context.Context, id, subjectID string, container []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO document_submissions (id, subject_id, container, status)
		VALUES ($1, $2, $3, $4)
	`, id, subjectID, container, StatusPending)
	if err != nil {
		return fmt.Errorf("insert submission %s: %w", id, err)
	}
	return nil
}

// MarkSubmitted records a successful submission.
func (s *Store) MarkSubmitted(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE document_submissions
		SET status = $2, attempts = attempts + 1, last_error = '', updated_at = now()
		WHERE id = $1
	`, id, StatusSubmitted)
	if err != nil {
		return fmt.Errorf("mark submitted %s: %w", id, err)
	}
	return nil
}

// MarkFailed records a failed attempt; the container stays retained.
func (s *Store) MarkFailed(ctx context.Context, id, cause string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE document_submissions
		SET status = $2, attempts = attempts + 1, last_error = $3, updated_at = now()
		WHERE id = $1
	`, id, StatusFailed, cause)
	if err != nil {
		return fmt.Errorf("mark failed %s: %w", id, err)
	}
	return nil
}

// Get loads one retained submission.
func (s *Store) Get(ctx context.Context, id string) (*SubmissionRecord, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, subject_id, container, status, attempts, last_error, created_at, updated_at
		FROM document_submissions WHERE id = $1
	`, id)

	var rec SubmissionRecord
	err := row.Scan(&rec.ID, &rec.SubjectID, &rec.Container, &rec.Status,
		&rec.Attempts, &rec.LastError, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("load submission %s: %w", id, err)
	}
	return &rec, nil
}

// ListFailed returns the oldest failed submissions, up to limit, for the
// relay to retry.
func (s *Store) ListFailed(ctx context.Context, limit int) ([]SubmissionRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, subject_id, container, status, attempts, last_error, created_at, updated_at
		FROM document_submissions
		WHERE status = $1
		ORDER BY updated_at ASC
		LIMIT $2
	`, StatusFailed, limit)
	if err != nil {
		return nil, fmt.Errorf("list failed submissions: %w", err)
	}
	defer rows.Close()

	var out []SubmissionRecord
	for rows.Next() {
		var rec SubmissionRecord
		if err := rows.Scan(&rec.ID, &rec.SubjectID, &rec.Container, &rec.Status,
			&rec.Attempts, &rec.LastError, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
