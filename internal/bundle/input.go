// Package bundle implements the lab report document bundle engine: it turns a
// loosely-structured patient record, a practitioner identity, test
// measurements and optional attachments into one internally consistent FHIR
// document Bundle.
package bundle

import "context"

// SubjectRecord is a raw patient record from the patient source. Records are
// arbitrary JSON objects; the engine consumes known fields tolerantly and
// ignores everything else.
type SubjectRecord map[string]any

// str returns the string at key, or "" when absent or not a string.
func (r SubjectRecord) str(key string) string {
	if r == nil {
		return ""
	}
	if s, ok := r[key].(string); ok {
		return s
	}
	return ""
}

// AuthorIdentity is the practitioner identity under which every document in
// this process is authored. It is resolved once at startup by the hosting
// application and injected into each build.
type AuthorIdentity struct {
	// ID is a validated synthetic identifier; use identity.Resolve to build
	// one from an untrusted candidate.
	ID      string
	Display string
	License string
}

// MeasurementInput is one test result row from the caller.
type MeasurementInput struct {
	Code  string `json:"code,omitempty"`
	Value string `json:"value,omitempty"`
	Unit  string `json:"unit,omitempty"`
	Date  string `json:"date,omitempty"`
}

// DocumentMeta carries the document-level fields of a build.
type DocumentMeta struct {
	Status   string `json:"status"`
	Title    string `json:"title"`
	TestCode string `json:"testCode"`
	// AuthoredOn is a zone-naive local instant; empty means "now".
	AuthoredOn string `json:"authoredOn,omitempty"`
	// VisitText, when non-empty, produces an Encounter resource.
	VisitText string `json:"visitText,omitempty"`
	// CustodianName, when non-empty, produces a custodian Organization.
	CustodianName string `json:"custodianName,omitempty"`
	// Attester configuration; an unresolvable party falls back to a single
	// official-mode attestation naming the author.
	AttesterMode      string `json:"attesterMode,omitempty"`
	AttesterPartyType string `json:"attesterPartyType,omitempty"`
	AttesterOrgName   string `json:"attesterOrgName,omitempty"`
}

// FileAttachment is a file-like blob from the picker collaborator. Open is
// invoked asynchronously during the build; a read failure aborts the whole
// build.
type FileAttachment struct {
	Name        string
	ContentType string
	Open        func(ctx context.Context) ([]byte, error)
}

// BuildInput is everything one build consumes. All of it is ephemeral except
// Author, which is process-wide and read-only.
type BuildInput struct {
	Subject      SubjectRecord
	Author       AuthorIdentity
	Measurements []MeasurementInput
	Meta         DocumentMeta
	Attachments  []*FileAttachment
}
