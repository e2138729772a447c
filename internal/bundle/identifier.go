package bundle

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Canonical version-4 layout: fixed version nibble, variant nibble in [89ab].
var idPattern = regexp.MustCompile(`^(?i)[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// GenerateID mints a lowercase random identifier in the canonical v4 layout.
func GenerateID() string {
	return uuid.NewString()
}

// ValidateID reports whether s matches the canonical v4 layout exactly,
// case-insensitively.
func ValidateID(s string) bool {
	return idPattern.MatchString(s)
}

// ResolveID returns candidate lowercased when it validates, otherwise a
// freshly minted identifier. Idempotent on valid input.
func ResolveID(candidate string) string {
	if ValidateID(candidate) {
		return strings.ToLower(candidate)
	}
	return GenerateID()
}

// URN renders an identifier as the urn:uuid locator used for every
// cross-resource reference inside a container.
func URN(id string) string {
	return "urn:uuid:" + id
}
