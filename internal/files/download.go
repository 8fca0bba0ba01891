package files

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"time"

	"medline_mirror/internal/listing"
	"medline_mirror/internal/logger"
)

const downloadTimeFormat = "20060102150405"

// RemoteSource streams one remote file's bytes into a sink.
type RemoteSource interface {
	Retrieve(name string, w io.Writer) error
}

// Downloader fetches remote files into local storage and records the MD5 of
// the bytes it wrote.
type Downloader struct {
	storage *Storage
	remote  RemoteSource
}

// NewDownloader creates a new file downloader
func NewDownloader(storage *Storage, remote RemoteSource) *Downloader {
	return &Downloader{storage: storage, remote: remote}
}

// Fetch streams one remote file to disk and returns the descriptor augmented
// with the download timestamp, observed MD5 and local path. The checksum is
// computed over the bytes actually written, never the remote-reported size.
// A failed fetch leaves at most one partial file behind; the next run
// overwrites it harmlessly.
func (d *Downloader) Fetch(f listing.File) (Retrieval, error) {
	if err := d.storage.CheckDiskSpace(f.Size); err != nil {
		return Retrieval{}, &TransferError{Filename: f.Filename, Err: err}
	}

	dest := d.storage.DestPath(f.Filename)
	logger.Debug.Printf("Fetching %s (%d bytes reported) to %s", f.Filename, f.Size, dest)

	out, err := os.Create(dest)
	if err != nil {
		return Retrieval{}, &TransferError{Filename: f.Filename, Err: err}
	}

	hash := md5.New()
	if err := d.remote.Retrieve(f.Filename, io.MultiWriter(out, hash)); err != nil {
		out.Close()
		return Retrieval{}, &TransferError{Filename: f.Filename, Err: err}
	}
	if err := out.Close(); err != nil {
		return Retrieval{}, &TransferError{Filename: f.Filename, Err: err}
	}

	return Retrieval{
		File:         f,
		DownloadedAt: time.Now().Format(downloadTimeFormat),
		MD5:          hex.EncodeToString(hash.Sum(nil)),
		LocalPath:    dest,
	}, nil
}
