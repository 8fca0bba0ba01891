package files

import (
	"fmt"

	"medline_mirror/internal/listing"
)

// Retrieval is a listing descriptor augmented with the outcome of a
// successful download. It is what the ledger persists.
type Retrieval struct {
	listing.File
	DownloadedAt string // wall clock, yyyymmddhhmmss
	MD5          string // hex digest of the bytes actually written
	LocalPath    string
}

// TransferError reports an interrupted remote read or local write. It aborts
// the remaining retrievals of a run but never the commit of earlier ones.
type TransferError struct {
	Filename string
	Err      error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer of %s failed: %v", e.Filename, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }
