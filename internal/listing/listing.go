// Package listing decodes remote MLSD directory-listing lines into file
// descriptors and classifies filenames into the three NLM record kinds.
package listing

import (
	"fmt"
	"strconv"
	"strings"
)

// File describes one remote file from a directory listing. It lives only for
// the duration of a sync run; the database package persists its promoted
// form once the file has been retrieved.
type File struct {
	Modified string // modification timestamp, lexically sortable (e.g. 20131125174213)
	Size     int64  // remote-reported size, informational only
	UniqueID string // server-assigned identifier, the dedup key
	Filename string
}

// FormatError reports a listing line that does not match the expected
// fact-list grammar. Callers skip the line and continue; a noisy remote
// listing must not abort the whole enumeration.
type FormatError struct {
	Line   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed listing line %q: %s", e.Line, e.Reason)
}

// ParseLine parses one MLSD listing line of the form
//
//	modify=20131125174213;size=24847843;type=file;unique=4600001UE9FE; medline14n0745.xml.gz
//
// into a File. Entries whose type fact is not "file" (directories, symlinks)
// return (nil, nil). A structurally broken line returns a *FormatError.
func ParseLine(line string) (*File, error) {
	sep := strings.IndexAny(line, " \t")
	if sep < 0 {
		return nil, &FormatError{Line: line, Reason: "missing metadata/filename separator"}
	}
	metadata := line[:sep]
	filename := strings.TrimLeft(line[sep:], " \t")
	if filename == "" {
		return nil, &FormatError{Line: line, Reason: "empty filename"}
	}

	facts := make(map[string]string)
	for _, fact := range strings.Split(metadata, ";") {
		if fact == "" {
			// The NLM server terminates the fact list with a ';'.
			continue
		}
		k, v, ok := strings.Cut(fact, "=")
		if !ok {
			return nil, &FormatError{Line: line, Reason: fmt.Sprintf("fact %q is not key=value", fact)}
		}
		facts[k] = v
	}

	if facts["type"] != "file" {
		return nil, nil
	}

	for _, k := range []string{"modify", "size", "unique"} {
		if facts[k] == "" {
			return nil, &FormatError{Line: line, Reason: fmt.Sprintf("missing %s fact", k)}
		}
	}

	size, err := strconv.ParseInt(facts["size"], 10, 64)
	if err != nil {
		return nil, &FormatError{Line: line, Reason: fmt.Sprintf("unparsable size %q", facts["size"])}
	}

	return &File{
		Modified: facts["modify"],
		Size:     size,
		UniqueID: facts["unique"],
		Filename: filename,
	}, nil
}
