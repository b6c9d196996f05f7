package batch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/docsift/pdf-outliner/internal/config"
	"github.com/docsift/pdf-outliner/internal/outline"
	"github.com/docsift/pdf-outliner/internal/pdf"
)

// Summary reports the outcome of one batch run
type Summary struct {
	Total     int
	Processed int
	Failed    int
}

// TotalFailure reports whether every attempted document failed. An empty
// input directory is not a failure.
func (s *Summary) TotalFailure() bool {
	return s.Total > 0 && s.Processed == 0
}

// Runner processes every PDF in the input directory and writes one outline
// JSON file per document. Documents are independent: each worker owns its
// document end-to-end, and one bad file never aborts the batch.
type Runner struct {
	cfg       *config.Config
	search    *pdf.Search
	extractor *outline.Extractor
	log       *slog.Logger
}

// NewRunner creates a batch runner from the application configuration
func NewRunner(cfg *config.Config, log *slog.Logger) *Runner {
	return &Runner{
		cfg:       cfg,
		search:    pdf.NewSearch(cfg.MaxFileSize),
		extractor: outline.NewExtractor(cfg.OutlineConfig()),
		log:       log,
	}
}

// Run scans the input directory and processes all PDFs with a worker pool.
// Per-document failures are logged and counted, never raised; the returned
// error covers only batch-level problems such as an unreadable input
// directory.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	files, err := r.search.FindPDFs(r.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	summary := &Summary{Total: len(files)}
	if len(files) == 0 {
		r.log.Warn("no PDF files found", "dir", r.cfg.InputDir)
		return summary, nil
	}
	r.log.Info("processing documents", "count", len(files), "workers", r.workerCount())

	sem := make(chan struct{}, r.workerCount())
	results := make(chan error, len(files))

	for _, file := range files {
		sem <- struct{}{}
		go func(file pdf.FileInfo) {
			defer func() { <-sem }()
			results <- r.processOne(ctx, file)
		}(file)
	}

	for range files {
		if err := <-results; err != nil {
			summary.Failed++
		} else {
			summary.Processed++
		}
	}

	r.log.Info("batch complete", "processed", summary.Processed, "failed", summary.Failed)
	return summary, nil
}

// workerCount resolves the configured worker count, defaulting to one
// worker per CPU core.
func (r *Runner) workerCount() int {
	if r.cfg.Workers > 0 {
		return r.cfg.Workers
	}
	return runtime.NumCPU()
}

// ProcessFile runs the full pipeline for a single PDF and returns its
// output record without writing anything. Shared by the batch path and the
// MCP extract tool.
func (r *Runner) ProcessFile(ctx context.Context, path string) (*outline.OutputRecord, error) {
	doc, err := pdf.Open(path, r.cfg.MaxFileSize)
	if err != nil {
		return nil, err
	}

	// Extraction is the only I/O-bound stage. It runs under the
	// per-document budget; an expired budget abandons the document while
	// the goroutine finishes draining and closes the handle.
	type parsed struct {
		fragments []outline.Fragment
		pages     map[int]outline.PageSize
		err       error
	}
	ch := make(chan parsed, 1)
	go func() {
		fragments, pages, err := doc.ExtractFragments()
		doc.Close()
		ch <- parsed{fragments: fragments, pages: pages, err: err}
	}()

	var p parsed
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("document abandoned: %w", ctx.Err())
	case p = <-ch:
	}
	if p.err != nil {
		return nil, p.err
	}

	record, profile := r.extractor.Extract(p.fragments, p.pages)
	if profile.IsFlat() {
		r.log.Warn("flat document, no size contrast for headings", "file", path)
	}

	return record, nil
}

// relativePath resolves a discovered file's path relative to the input
// directory so the output tree mirrors the input tree. Falls back to the
// base name when the path does not sit under the input directory.
func (r *Runner) relativePath(path string) string {
	rel, err := filepath.Rel(r.cfg.InputDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.Base(path)
	}
	return rel
}

// processOne handles a single document within its wall-clock budget and
// writes its JSON output. An abandoned or failed document produces no
// output file.
func (r *Runner) processOne(ctx context.Context, file pdf.FileInfo) error {
	log := r.log.With("file", file.Name)

	docCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	record, err := r.ProcessFile(docCtx, file.Path)
	if err != nil {
		log.Error("processing failed", "error", err)
		return err
	}

	outPath := OutputPath(r.cfg.OutputDir, r.relativePath(file.Path))
	if err := WriteRecord(outPath, record); err != nil {
		log.Error("write failed", "error", err)
		return err
	}

	log.Info("outline written", "output", outPath, "headings", len(record.Outline))
	return nil
}
