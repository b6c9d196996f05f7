package pdf

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/docsift/pdf-outliner/internal/outline"
)

// Document is a scoped parse handle for a single PDF file. It is opened,
// drained of fragments once, and closed unconditionally before any
// classification work starts.
type Document struct {
	path   string
	file   *os.File
	reader *pdf.Reader
}

// Open validates and opens a PDF file. Validation runs in two layers:
// cheap file checks first, then a relaxed pdfcpu context read that rejects
// corrupt, encrypted and zero-page documents before ledongthuc ever sees
// them. Failures surface as *UnreadableDocumentError.
func Open(path string, maxFileSize int64) (*Document, error) {
	if err := validateFile(path, maxFileSize); err != nil {
		return nil, err
	}

	if err := validateStructure(path); err != nil {
		return nil, err
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, &UnreadableDocumentError{Path: path, Reason: "cannot parse", Err: err}
	}

	return &Document{path: path, file: f, reader: reader}, nil
}

// validateFile performs basic validation on the file itself
func validateFile(path string, maxFileSize int64) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}

	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", path)
	}

	if info.Size() == 0 {
		return &UnreadableDocumentError{Path: path, Reason: "file is empty"}
	}

	if maxFileSize > 0 && info.Size() > maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)", info.Size(), maxFileSize)
	}

	return nil
}

// validateStructure reads the document through pdfcpu in relaxed mode to
// catch corruption, encryption and empty page trees up front.
func validateStructure(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		return &UnreadableDocumentError{Path: path, Reason: "corrupt or unsupported", Err: err}
	}

	if ctx.Encrypt != nil {
		return &UnreadableDocumentError{Path: path, Reason: "document is encrypted"}
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return &UnreadableDocumentError{Path: path, Reason: "cannot determine page count", Err: err}
	}
	if ctx.PageCount == 0 {
		return &UnreadableDocumentError{Path: path, Reason: "document has no pages"}
	}

	return nil
}

// Path returns the file path the document was opened from
func (d *Document) Path() string {
	return d.path
}

// PageCount returns the number of pages in the document
func (d *Document) PageCount() int {
	return d.reader.NumPage()
}

// Close releases the underlying file handle
func (d *Document) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}

// ExtractFragments walks every page and converts its text content into the
// raw fragment stream the outline pipeline consumes, together with each
// page's dimensions. A document whose pages yield no fragments at all
// returns *ParseError.
func (d *Document) ExtractFragments() (fragments []outline.Fragment, pages map[int]outline.PageSize, err error) {
	// ledongthuc/pdf panics on some malformed font descriptors instead of
	// returning an error; turn that into an unreadable-document failure.
	defer func() {
		if r := recover(); r != nil {
			fragments, pages = nil, nil
			err = &UnreadableDocumentError{
				Path:   d.path,
				Reason: "parser failure",
				Err:    fmt.Errorf("%v", r),
			}
		}
	}()

	pages = make(map[int]outline.PageSize)

	for pageNum := 1; pageNum <= d.reader.NumPage(); pageNum++ {
		page := d.reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		pages[pageNum] = pageDimensions(page)

		for _, text := range page.Content().Text {
			if strings.TrimSpace(text.S) == "" {
				continue
			}

			// ledongthuc doesn't report text height; the font size is the
			// usual approximation.
			height := text.FontSize
			if height == 0 {
				height = 12.0
			}

			fragments = append(fragments, outline.Fragment{
				Text:     text.S,
				Page:     pageNum,
				FontSize: text.FontSize,
				FontName: text.Font,
				IsBold:   isBoldFont(text.Font),
				IsItalic: isItalicFont(text.Font),
				X:        text.X,
				Y:        text.Y,
				Width:    text.W,
				Height:   height,
			})
		}
	}

	if len(fragments) == 0 {
		return nil, nil, &ParseError{Path: d.path}
	}

	return fragments, pages, nil
}

// pageDimensions reads the page MediaBox. Pages without one report zero
// dimensions, which disables position-based filtering downstream.
func pageDimensions(page pdf.Page) outline.PageSize {
	mediaBox := page.V.Key("MediaBox")
	if mediaBox.Kind() != pdf.Array || mediaBox.Len() < 4 {
		return outline.PageSize{}
	}
	return outline.PageSize{
		Width:  mediaBox.Index(2).Float64() - mediaBox.Index(0).Float64(),
		Height: mediaBox.Index(3).Float64() - mediaBox.Index(1).Float64(),
	}
}

// isBoldFont infers boldness from the font name, the only style signal the
// parser exposes
func isBoldFont(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "bold") || strings.Contains(lower, "black") ||
		strings.Contains(lower, "heavy")
}

// isItalicFont infers italic style from the font name
func isItalicFont(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "italic") || strings.Contains(lower, "oblique")
}
