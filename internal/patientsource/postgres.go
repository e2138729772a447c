package patientsource

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Postgres reads patient records stored as ordered JSONB rows.
type Postgres struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgres creates a Postgres-backed source.
func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) *Postgres {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Postgres{pool: pool, logger: logger}
}

// EnsureSchema creates the patient_records table when missing.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS patient_records (
			position  SERIAL PRIMARY KEY,
			record    JSONB NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure patient_records schema: %w", err)
	}
	return nil
}

// List returns every record in insertion order.
func (p *Postgres) List(ctx context.Context) ([]Record, error) {
	rows, err := p.pool.Query(ctx, `SELECT record FROM patient_records ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("list patient records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan patient record: %w", err)
		}
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			// Malformed rows are dropped, not fatal.
			p.logger.Warn("skipping malformed patient record", zap.Error(err))
			continue
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
