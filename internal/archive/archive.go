package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// now is replaced in tests
var now = time.Now

// ArchiveDir moves dir into a sibling "archive" directory under a
// timestamped name and returns the new path. A missing dir is not an
// error; nothing is archived and the returned path is empty.
func ArchiveDir(dir string) (string, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to inspect directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", dir)
	}

	// Get parent directory and create archive path
	parentDir := filepath.Dir(filepath.Clean(dir))
	archiveDir := filepath.Join(parentDir, "archive")

	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	base := filepath.Base(filepath.Clean(dir))
	timestamp := now().Format("20060102-150405")
	archivePath := filepath.Join(archiveDir, fmt.Sprintf("%s-%s", base, timestamp))

	// Add microseconds if an archive from the same second exists
	if _, err := os.Stat(archivePath); err == nil {
		timestamp = now().Format("20060102-150405.000000")
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s", base, timestamp))
	}

	if err := os.Rename(dir, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive directory: %w", err)
	}

	return archivePath, nil
}
