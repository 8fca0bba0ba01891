package files

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// Storage manages the local output directory downloaded files land in.
type Storage struct {
	BasePath string
}

// NewStorage creates a Storage instance and ensures the output directory
// exists.
func NewStorage(basePath string) (*Storage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", basePath, err)
	}
	return &Storage{BasePath: basePath}, nil
}

// DestPath returns the local destination for a remote filename.
func (s *Storage) DestPath(filename string) string {
	return filepath.Join(s.BasePath, filename)
}

// FileExists checks if a file exists at the given path
func (s *Storage) FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CheckDiskSpace verifies if there's enough space for a file. The remote
// size is advisory only; it gates the download but plays no part in
// verification.
func (s *Storage) CheckDiskSpace(requiredBytes int64) error {
	var stat syscall.Statfs_t
	err := syscall.Statfs(s.BasePath, &stat)
	if err != nil {
		return fmt.Errorf("failed to check disk space: %w", err)
	}

	// Available bytes = blocks * size
	availableBytes := stat.Bavail * uint64(stat.Bsize)
	if uint64(requiredBytes) > availableBytes {
		return fmt.Errorf("insufficient disk space. Required: %d bytes, Available: %d bytes",
			requiredBytes, availableBytes)
	}

	return nil
}
