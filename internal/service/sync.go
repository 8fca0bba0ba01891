// Package service drives one synchronization run: enumerate the remote
// directory, plan the not-yet-retrieved entries, fetch them in order and
// commit every success to the ledger exactly once, whatever else fails.
package service

import (
	"errors"
	"fmt"
	"io"

	"medline_mirror/internal/files"
	"medline_mirror/internal/listing"
	"medline_mirror/internal/logger"
)

// RemoteDir is the connected remote-directory client the orchestrator
// consumes. Connection establishment and credentials are the caller's
// problem.
type RemoteDir interface {
	ChangeDir(dir string) error
	ListLines(dir string) ([]string, error)
	Retrieve(name string, w io.Writer) error
}

// Ledger is the durable record of previously processed files.
type Ledger interface {
	KnownIdentifiers() (map[string]struct{}, error)
	Record(batch []files.Retrieval) error
}

type SyncService struct {
	remote     RemoteDir
	ledger     Ledger
	downloader *files.Downloader
	exclude    *listing.ExcludeList
}

// NewSyncService wires the orchestrator's collaborators. The caller owns the
// remote connection and ledger lifecycles.
func NewSyncService(remote RemoteDir, ledger Ledger, storage *files.Storage, exclude *listing.ExcludeList) *SyncService {
	if exclude == nil {
		exclude = listing.DefaultExcludes()
	}
	return &SyncService{
		remote:     remote,
		ledger:     ledger,
		downloader: files.NewDownloader(storage, remote),
		exclude:    exclude,
	}
}

// Sync performs one run against serverDir, retrieving at most limit new
// files (0 or negative = unbounded). It returns the retrievals that were
// committed to the ledger. On a transfer failure the partial batch is still
// committed before the original error is returned, so the ledger always
// reflects true progress and the next run resumes where this one stopped.
func (s *SyncService) Sync(serverDir string, limit int) ([]files.Retrieval, error) {
	if err := s.remote.ChangeDir(serverDir); err != nil {
		return nil, fmt.Errorf("failed to change to remote directory %s: %w", serverDir, err)
	}

	entries, err := s.listRemote(serverDir)
	if err != nil {
		return nil, err
	}

	known, err := s.ledger.KnownIdentifiers()
	if err != nil {
		return nil, fmt.Errorf("failed to load known identifiers: %w", err)
	}

	plan := Plan(entries, known, s.exclude, limit)
	logger.Info.Printf("Listing has %d files, %d already recorded, planned %d", len(entries), len(known), len(plan))

	var batch []files.Retrieval
	var transferErr error
	for _, f := range plan {
		r, err := s.downloader.Fetch(f)
		if err != nil {
			// Abort the remaining plan; whatever is already in the batch
			// still gets committed below.
			logger.Error.Printf("Retrieval of %s aborted the run: %v", f.Filename, err)
			transferErr = err
			break
		}
		batch = append(batch, r)
	}

	if err := s.ledger.Record(batch); err != nil {
		if transferErr != nil {
			logger.Error.Printf("Commit failed after transfer error %v", transferErr)
		}
		return nil, err
	}

	if transferErr != nil {
		return batch, transferErr
	}
	logger.Info.Printf("Run complete: %d files retrieved", len(batch))
	return batch, nil
}

// listRemote enumerates serverDir and parses each listing line. Malformed
// lines are logged and skipped; a noisy listing must not abort the run.
func (s *SyncService) listRemote(serverDir string) ([]listing.File, error) {
	lines, err := s.remote.ListLines(serverDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list remote directory %s: %w", serverDir, err)
	}

	var entries []listing.File
	for _, line := range lines {
		if line == "" {
			continue
		}
		f, err := listing.ParseLine(line)
		if err != nil {
			var fe *listing.FormatError
			if errors.As(err, &fe) {
				logger.Warn.Printf("Skipping listing line: %v", fe)
				continue
			}
			return nil, err
		}
		if f != nil {
			entries = append(entries, *f)
		}
	}
	return entries, nil
}
