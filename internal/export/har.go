// har.go - Writes a synthesized HAR document to a file or stream.
// Output is indented JSON with a trailing newline, loadable by browser
// DevTools, Charles Proxy, and other HAR consumers.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bhecquet/seleniumRobot-sub007/internal/har"
)

// ExportResult is the response when saving HAR to a file.
type ExportResult struct {
	SavedTo       string `json:"saved_to"`
	EntriesCount  int    `json:"entries_count"`
	PagesCount    int    `json:"pages_count"`
	FileSizeBytes int64  `json:"file_size_bytes"`
}

// Marshal renders doc the way it is written to disk.
func Marshal(doc *har.Har) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil HAR document")
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal HAR: %w", err)
	}
	return append(data, '\n'), nil
}

// Encode writes doc to w and returns the number of bytes written.
func Encode(w io.Writer, doc *har.Har) (int64, error) {
	data, err := Marshal(doc)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	if err != nil {
		return int64(n), fmt.Errorf("failed to write HAR: %w", err)
	}
	return int64(n), nil
}

// WriteFile saves doc to path. Relative paths are accepted as long as they
// do not climb out with ".."; absolute paths must sit under the temp
// directory or one of allowedRoots. The parent directory must exist.
func WriteFile(doc *har.Har, path string, allowedRoots ...string) (ExportResult, error) {
	if !isPathSafe(path, allowedRoots) {
		return ExportResult{}, fmt.Errorf("unsafe path: %s", path)
	}

	data, err := Marshal(doc)
	if err != nil {
		return ExportResult{}, err
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return ExportResult{}, fmt.Errorf("failed to write file: %w", err)
	}

	return ExportResult{
		SavedTo:       path,
		EntriesCount:  len(doc.Log.Entries),
		PagesCount:    len(doc.Log.Pages),
		FileSizeBytes: int64(len(data)),
	}, nil
}

func isPathSafe(path string, allowedRoots []string) bool {
	if path == "" || strings.Contains(path, "..") {
		return false
	}
	if !filepath.IsAbs(path) {
		return true
	}
	tmpDir := os.TempDir()
	if strings.HasPrefix(path, "/tmp/") ||
		strings.HasPrefix(path, "/private/tmp/") ||
		strings.HasPrefix(path, tmpDir+string(filepath.Separator)) {
		return true
	}
	for _, root := range allowedRoots {
		if root == "" {
			continue
		}
		root = filepath.Clean(root)
		if strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
