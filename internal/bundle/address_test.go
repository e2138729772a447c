package bundle

import (
	"reflect"
	"testing"
)

func TestNormalizeAddressesMixedShapes(t *testing.T) {
	rec := SubjectRecord{
		"addresses": []any{
			"a@x",
			map[string]any{"address": "b@x", "isPrimary": true},
		},
	}

	got := NormalizeAddresses(rec)
	want := []NormalizedAddress{
		{Value: "b@x", Label: "b@x (primary)", Primary: true},
		{Value: "a@x", Label: "a@x", Primary: false},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestNormalizeAddressesContactFallback(t *testing.T) {
	rec := SubjectRecord{
		"contact": map[string]any{
			"addresses": []any{"nested@x"},
		},
	}
	got := NormalizeAddresses(rec)
	if len(got) != 1 || got[0].Value != "nested@x" {
		t.Fatalf("got %+v", got)
	}
}

func TestNormalizeAddressesTopLevelWins(t *testing.T) {
	rec := SubjectRecord{
		"addresses": []any{"top@x"},
		"contact": map[string]any{
			"addresses": []any{"nested@x"},
		},
	}
	got := NormalizeAddresses(rec)
	if len(got) != 1 || got[0].Value != "top@x" {
		t.Fatalf("got %+v", got)
	}
}

func TestNormalizeAddressesDropsJunk(t *testing.T) {
	rec := SubjectRecord{
		"addresses": []any{nil, 42, "  ", "keep@x"},
	}
	got := NormalizeAddresses(rec)
	if len(got) != 1 || got[0].Value != "keep@x" {
		t.Fatalf("got %+v", got)
	}
}

func TestNormalizeAddressesObjectWithoutAddressField(t *testing.T) {
	rec := SubjectRecord{
		"addresses": []any{
			map[string]any{"city": "Pune", "line": "12 MG Road"},
		},
	}
	got := NormalizeAddresses(rec)
	if len(got) != 1 {
		t.Fatalf("got %+v", got)
	}
	// json.Marshal sorts object keys, so the serialization is deterministic.
	want := `{"city":"Pune","line":"12 MG Road"}`
	if got[0].Value != want {
		t.Fatalf("got %q, want %q", got[0].Value, want)
	}
}

func TestNormalizeAddressesKeepsDuplicates(t *testing.T) {
	rec := SubjectRecord{
		"addresses": []any{"same@x", "same@x"},
	}
	if got := NormalizeAddresses(rec); len(got) != 2 {
		t.Fatalf("duplicates should be kept, got %+v", got)
	}
}

func TestNormalizeAddressesStableOrder(t *testing.T) {
	rec := SubjectRecord{
		"addresses": []any{
			"c@x",
			map[string]any{"address": "z@x", "isPrimary": true},
			"a@x",
			map[string]any{"address": "m@x", "isPrimary": true},
		},
	}
	got := NormalizeAddresses(rec)
	order := make([]string, len(got))
	for i, a := range got {
		order[i] = a.Value
	}
	want := []string{"m@x", "z@x", "a@x", "c@x"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("order %v, want %v", order, want)
	}
}

func TestNormalizeAddressesEmpty(t *testing.T) {
	if got := NormalizeAddresses(nil); len(got) != 0 {
		t.Fatalf("nil record: got %+v", got)
	}
	if got := NormalizeAddresses(SubjectRecord{}); len(got) != 0 {
		t.Fatalf("empty record: got %+v", got)
	}
}
