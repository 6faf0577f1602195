package batch

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPattern selects the documents of an input folder
const DefaultPattern = "*.html"

// FindDocuments returns the regular files in dir whose names match pattern,
// sorted by name
func FindDocuments(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var documents []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		// Pattern was validated above
		if ok, _ := filepath.Match(pattern, entry.Name()); ok {
			documents = append(documents, filepath.Join(dir, entry.Name()))
		}
	}

	return documents, nil
}

// ReadListFile reads document paths from a file, one per line.
// Blank lines and lines starting with '#' are ignored.
func ReadListFile(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	defer f.Close()

	var documents []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		documents = append(documents, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	return documents, nil
}
