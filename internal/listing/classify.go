package listing

import (
	"regexp"
	"strings"
)

// Class is the kind of remote file, determined by filename suffix.
type Class int

const (
	// ClassArchive is a compressed Medline export (medline14n0745.xml.gz).
	ClassArchive Class = iota
	// ClassChecksum is the published MD5 companion (medline14n0745.xml.gz.md5).
	ClassChecksum
	// ClassNote is anything else NLM drops in the directory, e.g. retraction
	// lists with the same basename as an archive.
	ClassNote
)

func (c Class) String() string {
	switch c {
	case ClassArchive:
		return "archive"
	case ClassChecksum:
		return "checksum"
	default:
		return "note"
	}
}

// example - medline14n0746.xml.gz.md5
var recordGroupPattern = regexp.MustCompile(`^[a-z]{2}[0-9]{2}n[0-9]{4}`)

// Classify maps a filename to its record kind. Rules are ordered: the more
// specific checksum suffix is tested before the archive suffix.
func Classify(filename string) Class {
	switch {
	case strings.HasSuffix(filename, ".xml.gz.md5"):
		return ClassChecksum
	case strings.HasSuffix(filename, ".xml.gz"):
		return ClassArchive
	default:
		return ClassNote
	}
}

// RecordGroup extracts the record-group token that ties an archive to its
// checksum and note files. Returns "" when the filename does not start with
// one, which is legal for every kind.
func RecordGroup(filename string) string {
	return recordGroupPattern.FindString(filename)
}

// ExcludeList holds filename suffixes that are never planned for retrieval,
// regardless of class.
type ExcludeList struct {
	suffixes []string
}

// DefaultExcludes skips generated statistics pages and raw binary dumps;
// both can be looked up online and are not worth mirroring.
func DefaultExcludes() *ExcludeList {
	return NewExcludeList([]string{"stats.html", ".dat"})
}

func NewExcludeList(suffixes []string) *ExcludeList {
	e := &ExcludeList{}
	for _, s := range suffixes {
		if s = strings.TrimSpace(s); s != "" {
			e.suffixes = append(e.suffixes, s)
		}
	}
	return e
}

func (e *ExcludeList) Excluded(filename string) bool {
	for _, s := range e.suffixes {
		if strings.HasSuffix(filename, s) {
			return true
		}
	}
	return false
}
