// Package identity resolves the process-wide author identity. The hosting
// application resolves it exactly once at startup and injects the value into
// every build; nothing reads it from ambient state afterwards.
package identity

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hcxlabs/go-labdoc/internal/bundle"
)

// Literal fallbacks when the external identity source omits a field.
const (
	FallbackDisplay = "Unknown Practitioner"
	FallbackLicense = "NA"
)

// Resolve turns a raw identity object of uncertain shape into a usable
// AuthorIdentity. The id candidate is validated and lowercased, or replaced
// with a fresh identifier; the display name may be plain text or a
// first-element-of-list text record; all fields fall back to literal text
// when absent.
func Resolve(raw map[string]any) bundle.AuthorIdentity {
	id, _ := raw["id"].(string)

	display := FallbackDisplay
	switch v := raw["name"].(type) {
	case string:
		if v != "" {
			display = v
		}
	case []any:
		if len(v) > 0 {
			switch first := v[0].(type) {
			case string:
				if first != "" {
					display = first
				}
			case map[string]any:
				if text, ok := first["text"].(string); ok && text != "" {
					display = text
				}
			}
		}
	}

	license := FallbackLicense
	if v, ok := raw["license"].(string); ok && v != "" {
		license = v
	}

	return bundle.AuthorIdentity{
		ID:      bundle.ResolveID(id),
		Display: display,
		License: license,
	}
}

// Load reads and resolves the identity from a JSON file, falling back to an
// all-defaults identity when no path is configured.
func Load(path string) (bundle.AuthorIdentity, error) {
	if path == "" {
		return Resolve(nil), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return bundle.AuthorIdentity{}, fmt.Errorf("read identity file: %w", err)
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return bundle.AuthorIdentity{}, fmt.Errorf("parse identity file: %w", err)
	}
	return Resolve(obj), nil
}
