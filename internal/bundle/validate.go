package bundle

import "strings"

// ValidationError aggregates every input violation of one build attempt. The
// gate never short-circuits: all rules are evaluated and surfaced together.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid build input: " + strings.Join(e.Violations, "; ")
}

// Validate runs the pre-build gate. It returns nil when the build may
// proceed.
func Validate(in BuildInput) *ValidationError {
	var violations []string

	if len(in.Subject) == 0 {
		violations = append(violations, "a patient record must be selected")
	}
	if strings.TrimSpace(in.Meta.Status) == "" {
		violations = append(violations, "document status is required")
	}
	if strings.TrimSpace(in.Meta.Title) == "" {
		violations = append(violations, "document title is required")
	}
	if strings.TrimSpace(in.Meta.TestCode) == "" {
		violations = append(violations, "test code is required")
	}
	if !hasResultContent(in) {
		violations = append(violations, "at least one test result or report file is required")
	}

	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

func hasResultContent(in BuildInput) bool {
	if len(in.Attachments) > 0 {
		return true
	}
	for _, m := range in.Measurements {
		if strings.TrimSpace(m.Value) != "" || strings.TrimSpace(m.Unit) != "" {
			return true
		}
	}
	return false
}
