package batch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docsift/pdf-outliner/internal/outline"
)

// Permissions for written outline files and mirrored subdirectories
const (
	filePerm = 0o640
	dirPerm  = 0o750
)

// OutputPath returns the JSON path for a PDF given its path relative to
// the input directory: same base name, .json extension, subdirectories
// mirrored under the output directory. Mirroring keeps same-named files
// from different subdirectories from overwriting each other's output.
func OutputPath(outputDir, relPath string) string {
	base := strings.TrimSuffix(relPath, filepath.Ext(relPath))
	return filepath.Join(outputDir, base+".json")
}

// WriteRecord serializes one output record to its JSON file. The encoding
// is fixed by the schema contract: two-space indent, UTF-8, no HTML
// escaping, so repeated runs over identical input produce byte-identical
// files.
func WriteRecord(path string, record *outline.OutputRecord) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create output directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), filePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// EncodeRecord returns the JSON serialization of a record using the same
// encoding as WriteRecord. Used by the MCP tools to return outlines inline.
func EncodeRecord(record *outline.OutputRecord) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		return "", fmt.Errorf("failed to encode record: %w", err)
	}
	return buf.String(), nil
}
