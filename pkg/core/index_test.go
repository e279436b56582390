package core

import (
	"reflect"
	"testing"
)

func TestBuildIndex(t *testing.T) {
	records := []ReferenceRecord{
		{Accession: "P1", Window: "AAA"},
		{Accession: "P2", Window: "BBB"},
		{Accession: "P1", Window: "CCC"},
		{Accession: "p1", Window: "DDD"},
		{Accession: "P1 ", Window: "EEE"},
	}

	idx := BuildIndex(records)

	if idx.Len() != 4 {
		t.Fatalf("Expected 4 accessions, got %d", idx.Len())
	}

	tests := []struct {
		acc  string
		want []int
	}{
		{"P1", []int{0, 2}},
		{"P2", []int{1}},
		{"p1", []int{3}},
		{"P1 ", []int{4}},
		{"P3", nil},
	}
	for _, tt := range tests {
		if got := idx.Lookup(tt.acc); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Lookup(%q) = %v, want %v", tt.acc, got, tt.want)
		}
	}

	if idx.Record(2).Window != "CCC" {
		t.Errorf("Record(2).Window = %q, want CCC", idx.Record(2).Window)
	}
}

func TestBuildIndexEmpty(t *testing.T) {
	idx := BuildIndex(nil)
	if idx.Len() != 0 {
		t.Errorf("Expected empty index, got %d accessions", idx.Len())
	}
	if got := idx.Lookup(""); got != nil {
		t.Errorf("Lookup on empty index = %v, want nil", got)
	}
}
