// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements directory-scoped PDF-to-text batch conversion
// with pluggable extraction backends.
//
// Conversion is idempotent by presence: a source PDF whose sibling .txt file
// already exists is skipped without reading the source. Failures never
// propagate past the unit they belong to; a bad page costs that page, a bad
// file costs that file, and the run continues.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pdftext/pkg/types"
)

// PageResult is the outcome of extracting text from a single page. Page
// numbers are 1-based. A non-nil Err means the page yielded no text and the
// caller decides how to report it.
type PageResult struct {
	Page int
	Text string
	Err  error
}

// Extractor pulls per-page text out of a PDF file. A returned error means
// the PDF structure itself could not be parsed; per-page failures are carried
// inside the PageResults instead.
type Extractor interface {
	Extract(pdfPath string) ([]PageResult, error)
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any files failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// OutputPath returns the text output path for a source PDF: same directory,
// same base name, .txt extension.
func OutputPath(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + ".txt"
}

// IsPDF reports whether name has a .pdf extension, case-insensitively.
func IsPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

// NewDocument builds the conversion record for a source PDF.
func NewDocument(pdfPath string) types.Document {
	return types.Document{
		ID:      strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath)),
		PDFPath: pdfPath,
		TxtPath: OutputPath(pdfPath),
	}
}

// ConvertFile converts a single PDF to a sibling .txt file, writing status
// lines to w. If the output already exists the source is skipped entirely.
// A structural parse failure creates no output file; individual page
// failures are logged as warnings and the remaining pages are still written.
func ConvertFile(e Extractor, pdfPath string, w io.Writer) types.ConversionStatus {
	return convertOne(e, NewDocument(pdfPath), "", w)
}

func convertOne(e Extractor, doc types.Document, label string, w io.Writer) types.ConversionStatus {
	name := filepath.Base(doc.PDFPath)

	if _, err := os.Stat(doc.TxtPath); err == nil {
		fmt.Fprintf(w, "%sskipping %s (text file already exists)\n", label, name)
		return types.ConversionNone
	}

	fmt.Fprintf(w, "%sconverting %s...\n", label, name)

	pages, err := e.Extract(doc.PDFPath)
	if err != nil {
		fmt.Fprintf(w, "  error reading PDF structure for %s: %v\n", name, err)
		return types.ConversionFailed
	}

	var texts []string
	badPages := 0
	for _, p := range pages {
		if p.Err != nil {
			badPages++
			fmt.Fprintf(w, "  warning: could not extract text from page %d of %s: %v\n",
				p.Page, name, p.Err)
			continue
		}
		// Empty pages contribute nothing, not even an empty line.
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
	}

	if err := writeText(doc.TxtPath, strings.Join(texts, "\n")); err != nil {
		fmt.Fprintf(w, "  error writing %s: %v\n", filepath.Base(doc.TxtPath), err)
		return types.ConversionFailed
	}

	fmt.Fprintf(w, "  created %s\n", filepath.Base(doc.TxtPath))
	if badPages > 0 {
		return types.ConversionPartial
	}
	return types.ConversionDone
}

// writeText writes content to a temporary sibling and renames it into place,
// so an interrupted run never leaves a truncated .txt that a later run would
// skip as complete.
func writeText(path, content string) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// ConvertDir converts every PDF directly inside dir (non-recursive, .pdf
// matched case-insensitively), printing per-file progress and a summary to
// w. A missing directory is reported and yields an empty result; it is not
// an error. Files are processed in the sorted order os.ReadDir returns.
func ConvertDir(e Extractor, dir string, w io.Writer) BatchResult {
	var result BatchResult

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(w, "Directory not found: %s\n", dir)
		return result
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintf(w, "Directory not found: %s\n", dir)
		return result
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !IsPDF(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}

	fmt.Fprintf(w, "Found %d PDF files in %s...\n", len(names), dir)

	for i, name := range names {
		label := fmt.Sprintf("[%d/%d] ", i+1, len(names))
		switch convertOne(e, NewDocument(filepath.Join(dir, name)), label, w) {
		case types.ConversionDone, types.ConversionPartial:
			result.Converted++
		case types.ConversionNone:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}
