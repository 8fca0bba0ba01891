package service

import (
	"testing"

	"medline_mirror/internal/listing"
)

func descriptors(names ...string) []listing.File {
	var out []listing.File
	for i, name := range names {
		out = append(out, listing.File{
			Modified: "20131125174213",
			Size:     int64(100 + i),
			UniqueID: "ID-" + name,
			Filename: name,
		})
	}
	return out
}

func planNames(plan []listing.File) []string {
	var names []string
	for _, f := range plan {
		names = append(names, f.Filename)
	}
	return names
}

func TestPlan(t *testing.T) {
	entries := descriptors("a.xml.gz", "b.xml.gz", "c.xml.gz", "d.xml.gz")

	tests := []struct {
		name  string
		known map[string]struct{}
		limit int
		want  []string
	}{
		{
			name:  "unbounded with nothing known",
			known: map[string]struct{}{},
			limit: 0,
			want:  []string{"a.xml.gz", "b.xml.gz", "c.xml.gz", "d.xml.gz"},
		},
		{
			name:  "known identifiers are skipped",
			known: map[string]struct{}{"ID-a.xml.gz": {}, "ID-c.xml.gz": {}},
			limit: 0,
			want:  []string{"b.xml.gz", "d.xml.gz"},
		},
		{
			name:  "limit truncates in listing order",
			known: map[string]struct{}{},
			limit: 2,
			want:  []string{"a.xml.gz", "b.xml.gz"},
		},
		{
			name:  "bounded runs make forward progress",
			known: map[string]struct{}{"ID-a.xml.gz": {}, "ID-b.xml.gz": {}},
			limit: 2,
			want:  []string{"c.xml.gz", "d.xml.gz"},
		},
		{
			name:  "negative limit means unbounded",
			known: map[string]struct{}{},
			limit: -1,
			want:  []string{"a.xml.gz", "b.xml.gz", "c.xml.gz", "d.xml.gz"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := planNames(Plan(entries, tt.known, listing.DefaultExcludes(), tt.limit))
			if len(got) != len(tt.want) {
				t.Fatalf("Plan() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Plan() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestPlanExcludesPatterns(t *testing.T) {
	entries := descriptors("medline14n0001.xml.gz", "baseline_stats.html", "dump.dat", "note.txt")
	got := planNames(Plan(entries, map[string]struct{}{}, listing.DefaultExcludes(), 0))

	want := []string{"medline14n0001.xml.gz", "note.txt"}
	if len(got) != len(want) {
		t.Fatalf("Plan() = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("Plan() = %v, want %v", got, want)
		}
	}
}
