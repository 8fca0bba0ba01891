package listing

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		filename string
		want     Class
	}{
		{"medline14n0745.xml.gz", ClassArchive},
		{"medline14n0745.xml.gz.md5", ClassChecksum},
		{"medline14n0745.xml.notes.txt", ClassNote},
		{"special-note.txt", ClassNote},
		{"README", ClassNote},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := Classify(tt.filename); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestRecordGroup(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"medline14n0745.xml.gz", "medline14n0745"},
		{"medline14n0745.xml.gz.md5", "medline14n0745"},
		{"medline14n0745.xml.notes.txt", "medline14n0745"},
		{"special-note.txt", ""},
		{"MEDLINE14N0745.xml.gz", ""}, // token is lowercase only
		{"medline4n0745.xml.gz", ""},  // two digits required before n
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := RecordGroup(tt.filename); got != tt.want {
				t.Errorf("RecordGroup(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestExcludeList(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"medline14n0745_stats.html", true},
		{"medline14n0745.dat", true},
		{"medline14n0745.xml.gz", false},
		{"special-note.txt", false},
	}

	excl := DefaultExcludes()
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := excl.Excluded(tt.filename); got != tt.want {
				t.Errorf("Excluded(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestNewExcludeListTrimsEmptyEntries(t *testing.T) {
	excl := NewExcludeList([]string{" stats.html ", "", "  "})
	if !excl.Excluded("medline14n0745_stats.html") {
		t.Error("expected trimmed suffix to match")
	}
	if excl.Excluded("anything-else.txt") {
		t.Error("blank suffixes must not match everything")
	}
}
