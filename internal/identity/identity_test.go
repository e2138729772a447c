package identity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hcxlabs/go-labdoc/internal/bundle"
)

func TestResolveDefaults(t *testing.T) {
	got := Resolve(nil)
	if got.Display != FallbackDisplay {
		t.Errorf("display = %q", got.Display)
	}
	if got.License != FallbackLicense {
		t.Errorf("license = %q", got.License)
	}
	if !bundle.ValidateID(got.ID) {
		t.Errorf("id %q not minted", got.ID)
	}
}

func TestResolveKeepsValidID(t *testing.T) {
	got := Resolve(map[string]any{"id": "9E3023CD-12A5-4E52-9B22-1FA300D5A213"})
	if got.ID != "9e3023cd-12a5-4e52-9b22-1fa300d5a213" {
		t.Errorf("id = %q", got.ID)
	}
}

func TestResolveNameShapes(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]any
		want string
	}{
		{"plain string", map[string]any{"name": "Dr. Mehta"}, "Dr. Mehta"},
		{"list of strings", map[string]any{"name": []any{"Dr. Rao", "ignored"}}, "Dr. Rao"},
		{"list of text records", map[string]any{"name": []any{map[string]any{"text": "Dr. Iyer"}}}, "Dr. Iyer"},
		{"empty list", map[string]any{"name": []any{}}, FallbackDisplay},
		{"wrong type", map[string]any{"name": 42}, FallbackDisplay},
		{"empty string", map[string]any{"name": ""}, FallbackDisplay},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Resolve(tc.raw); got.Display != tc.want {
				t.Errorf("display = %q, want %q", got.Display, tc.want)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity.json")
	content := `{"id":"9e3023cd-12a5-4e52-9b22-1fa300d5a213","name":"Dr. Mehta","license":"MH-123"}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Display != "Dr. Mehta" || got.License != "MH-123" {
		t.Errorf("got %+v", got)
	}
}

func TestLoadEmptyPathFallsBack(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Display != FallbackDisplay {
		t.Errorf("got %+v", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error")
	}
}
