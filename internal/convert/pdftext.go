// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor extracts the embedded text layer of a PDF using
// github.com/ledongthuc/pdf. Scanned (image-only) PDFs yield empty pages;
// OCR is out of scope.
type PDFExtractor struct{}

// NewPDFExtractor creates the default extraction backend.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract opens the PDF at pdfPath and extracts text page by page. The
// returned slice has one entry per page in page order; pages that fail to
// decode carry their error instead of text. An error return means the file
// could not be opened or its structure could not be parsed.
func (e *PDFExtractor) Extract(pdfPath string) ([]PageResult, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", pdfPath, err)
	}
	defer f.Close()

	numPages := r.NumPage()
	fonts := make(map[string]*pdf.Font)
	results := make([]PageResult, 0, numPages)

	for i := 1; i <= numPages; i++ {
		text, err := extractPage(r, i, fonts)
		results = append(results, PageResult{Page: i, Text: text, Err: err})
	}

	return results, nil
}

// extractPage pulls the plain text of one page. The pdf package panics on
// some malformed content streams, so the panic is converted to the page's
// error and the remaining pages still get their chance.
func extractPage(r *pdf.Reader, num int, fonts map[string]*pdf.Font) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("page decode panic: %v", rec)
		}
	}()

	p := r.Page(num)
	if p.V.IsNull() {
		return "", nil
	}

	for _, name := range p.Fonts() {
		if _, ok := fonts[name]; !ok {
			font := p.Font(name)
			fonts[name] = &font
		}
	}

	text, err = p.GetPlainText(fonts)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
