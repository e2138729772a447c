// Package patientsource supplies the ordered list of subject records the
// engine builds documents for. Records are arbitrary JSON objects; the
// engine tolerates the absence of any field.
package patientsource

import "context"

// Record is one raw patient record.
type Record = map[string]any

// Source reads the ordered patient record list.
type Source interface {
	List(ctx context.Context) ([]Record, error)
}

// Static is a fixed in-memory source, used in tests and for bootstrap
// deployments without a database.
type Static struct {
	records []Record
}

// NewStatic creates a static source.
func NewStatic(records []Record) *Static {
	return &Static{records: records}
}

// List returns the configured records in order.
func (s *Static) List(ctx context.Context) ([]Record, error) {
	return s.records, nil
}
