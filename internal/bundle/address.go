package bundle

import (
	"encoding/json"
	"sort"
	"strings"
)

// NormalizedAddress is one reconciled entry from a subject record's
// shape-polymorphic address list.
type NormalizedAddress struct {
	Value   string
	Label   string
	Primary bool
}

// TextAddress is a plain-string address element.
type TextAddress string

// StructuredAddress is a composite address element.
type StructuredAddress map[string]any

// The address list may live at either of two source locations; the first
// non-empty one wins.
func rawAddressList(rec SubjectRecord) []any {
	if rec == nil {
		return nil
	}
	if list, ok := rec["addresses"].([]any); ok && len(list) > 0 {
		return list
	}
	if contact, ok := rec["contact"].(map[string]any); ok {
		if list, ok := contact["addresses"].([]any); ok {
			return list
		}
	}
	return nil
}

func (a TextAddress) normalize() NormalizedAddress {
	return NormalizedAddress{Value: string(a), Label: string(a)}
}

func (a StructuredAddress) normalize() NormalizedAddress {
	primary, _ := a["isPrimary"].(bool)
	if value, ok := a["address"].(string); ok && value != "" {
		label := value
		if primary {
			label += " (primary)"
		}
		return NormalizedAddress{Value: value, Label: label, Primary: primary}
	}
	// No explicit address sub-field: fall back to a deterministic textual
	// serialization of the whole object (json.Marshal sorts map keys).
	raw, err := json.Marshal(map[string]any(a))
	serialized := string(raw)
	if err != nil {
		serialized = ""
	}
	return NormalizedAddress{Value: serialized, Label: serialized, Primary: primary}
}

// NormalizeAddresses reconciles the record's address list. Null and
// unrecognized elements are dropped silently; the output is ordered
// primary-first, then lexicographically by value. Entries are never
// deduplicated.
func NormalizeAddresses(rec SubjectRecord) []NormalizedAddress {
	var out []NormalizedAddress
	for _, elem := range rawAddressList(rec) {
		switch v := elem.(type) {
		case string:
			if strings.TrimSpace(v) != "" {
				out = append(out, TextAddress(v).normalize())
			}
		case map[string]any:
			out = append(out, StructuredAddress(v).normalize())
		default:
			// null or non-string/non-object: drop
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Primary != out[j].Primary {
			return out[i].Primary
		}
		return out[i].Value < out[j].Value
	})
	return out
}
