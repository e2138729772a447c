package patientsource

import (
	"context"
	"testing"
)

func TestStaticListPreservesOrder(t *testing.T) {
	s := NewStatic([]Record{
		{"name": "A"},
		{"name": "B"},
	})
	got, err := s.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0]["name"] != "A" || got[1]["name"] != "B" {
		t.Fatalf("got %+v", got)
	}
}

func TestStaticListEmpty(t *testing.T) {
	s := NewStatic(nil)
	got, err := s.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("got %+v", got)
	}
}
