package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsift/pdf-outliner/internal/outline"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		pdfName string
		want    string
	}{
		{"simple", "report.pdf", "out/report.json"},
		{"uppercase extension", "REPORT.PDF", "out/REPORT.json"},
		{"dotted base name", "v1.2-final.pdf", "out/v1.2-final.json"},
		{"no extension", "report", "out/report.json"},
		{"nested path mirrored", "2024/q3/report.pdf", "out/2024/q3/report.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.want), OutputPath("out", tt.pdfName))
		})
	}
}

func TestEncodeRecord_FieldOrderAndShape(t *testing.T) {
	record := &outline.OutputRecord{
		Title: "Test Doc",
		Outline: []outline.OutlineEntry{
			{Level: outline.LevelH1, Text: "Intro", Page: 1},
		},
	}

	got, err := EncodeRecord(record)
	require.NoError(t, err)

	want := `{
  "title": "Test Doc",
  "outline": [
    {
      "level": "H1",
      "text": "Intro",
      "page": 1
    }
  ]
}
`
	assert.Equal(t, want, got)
}

func TestEncodeRecord_EmptyOutlineIsArray(t *testing.T) {
	record := &outline.OutputRecord{Title: "Flat", Outline: []outline.OutlineEntry{}}

	got, err := EncodeRecord(record)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"title\": \"Flat\",\n  \"outline\": []\n}\n", got)
}

func TestEncodeRecord_NoHTMLEscaping(t *testing.T) {
	record := &outline.OutputRecord{
		Title:   "Q&A <Session>",
		Outline: []outline.OutlineEntry{},
	}

	got, err := EncodeRecord(record)
	require.NoError(t, err)
	assert.Contains(t, got, "Q&A <Session>")
	assert.NotContains(t, got, `<`)
	assert.NotContains(t, got, `&`)
}

func TestOutputPath_SameNameDifferentSubdirs(t *testing.T) {
	a := OutputPath("out", filepath.Join("invoices", "report.pdf"))
	b := OutputPath("out", filepath.Join("contracts", "report.pdf"))
	assert.NotEqual(t, a, b)
}

func TestWriteRecord_CreatesMirroredDirectories(t *testing.T) {
	dir := t.TempDir()
	path := OutputPath(dir, filepath.Join("sub", "nested", "doc.pdf"))
	record := &outline.OutputRecord{Title: "Nested", Outline: []outline.OutlineEntry{}}

	require.NoError(t, WriteRecord(path, record))
	assert.FileExists(t, path)
}

func TestWriteRecord_Idempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	record := &outline.OutputRecord{
		Title: "Stable",
		Outline: []outline.OutlineEntry{
			{Level: outline.LevelH1, Text: "Once", Page: 1},
			{Level: outline.LevelH2, Text: "Twice", Page: 2},
		},
	}

	require.NoError(t, WriteRecord(path, record))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, WriteRecord(path, record))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
