// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/pdftext/pkg/types"
)

// fakeExtractor implements Extractor for testing. It returns canned page
// results or a structural error, keyed by path.
type fakeExtractor struct {
	pages map[string][]PageResult
	errs  map[string]error
}

func (f *fakeExtractor) Extract(pdfPath string) ([]PageResult, error) {
	if err, ok := f.errs[pdfPath]; ok {
		return nil, err
	}
	if pages, ok := f.pages[pdfPath]; ok {
		return pages, nil
	}
	return nil, errors.New("unexpected path: " + pdfPath)
}

// singleExtractor returns the same pages for any path.
type singleExtractor struct {
	pages []PageResult
	err   error
}

func (s *singleExtractor) Extract(pdfPath string) ([]PageResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.pages, nil
}

// setupPDF creates a placeholder PDF file and returns its path.
func setupPDF(t *testing.T, name string) string {
	t.Helper()
	pdfPath := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(pdfPath, []byte("fake pdf"), 0o644); err != nil {
		t.Fatal(err)
	}
	return pdfPath
}

func readOutput(t *testing.T, pdfPath string) string {
	t.Helper()
	data, err := os.ReadFile(OutputPath(pdfPath))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	return string(data)
}

func TestConvertFile(t *testing.T) {
	tests := []struct {
		name       string
		extractor  Extractor
		preCreate  bool // create output .txt before running
		wantStatus types.ConversionStatus
		wantLog    string
	}{
		{
			name: "successful conversion",
			extractor: &singleExtractor{pages: []PageResult{
				{Page: 1, Text: "Hello"},
				{Page: 2, Text: "World"},
			}},
			wantStatus: types.ConversionDone,
			wantLog:    "created",
		},
		{
			name:       "skip existing text file",
			extractor:  &singleExtractor{err: errors.New("should not be called")},
			preCreate:  true,
			wantStatus: types.ConversionNone,
			wantLog:    "already exists",
		},
		{
			name:       "structure failure",
			extractor:  &singleExtractor{err: errors.New("bad xref table")},
			wantStatus: types.ConversionFailed,
			wantLog:    "error reading PDF structure",
		},
		{
			name: "partial conversion on page failure",
			extractor: &singleExtractor{pages: []PageResult{
				{Page: 1, Text: "first"},
				{Page: 2, Err: errors.New("broken stream")},
			}},
			wantStatus: types.ConversionPartial,
			wantLog:    "warning: could not extract text from page 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pdfPath := setupPDF(t, "doc.pdf")

			if tt.preCreate {
				if err := os.WriteFile(OutputPath(pdfPath), []byte("existing"), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			var log bytes.Buffer
			status := ConvertFile(tt.extractor, pdfPath, &log)

			if status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status, tt.wantStatus)
			}
			if !strings.Contains(log.String(), tt.wantLog) {
				t.Errorf("log output %q does not contain %q", log.String(), tt.wantLog)
			}
		})
	}
}

func TestConvertFile_JoinsPagesWithNewline(t *testing.T) {
	pdfPath := setupPDF(t, "a.pdf")
	ext := &singleExtractor{pages: []PageResult{
		{Page: 1, Text: "Hello"},
		{Page: 2, Text: "World"},
	}}

	var log bytes.Buffer
	if status := ConvertFile(ext, pdfPath, &log); status != types.ConversionDone {
		t.Fatalf("status = %q, want %q", status, types.ConversionDone)
	}

	if got := readOutput(t, pdfPath); got != "Hello\nWorld" {
		t.Errorf("output = %q, want %q", got, "Hello\nWorld")
	}
}

func TestConvertFile_FailedPageLeavesNoGap(t *testing.T) {
	pdfPath := setupPDF(t, "c.pdf")
	ext := &singleExtractor{pages: []PageResult{
		{Page: 1, Text: "page one"},
		{Page: 2, Err: errors.New("corrupt stream")},
		{Page: 3, Text: "page three"},
	}}

	var log bytes.Buffer
	status := ConvertFile(ext, pdfPath, &log)
	if status != types.ConversionPartial {
		t.Fatalf("status = %q, want %q", status, types.ConversionPartial)
	}

	// No blank line or placeholder where page 2 would have been.
	if got := readOutput(t, pdfPath); got != "page one\npage three" {
		t.Errorf("output = %q, want %q", got, "page one\npage three")
	}
	if !strings.Contains(log.String(), "page 2 of c.pdf") {
		t.Errorf("warning should name the page and file, got %q", log.String())
	}
}

func TestConvertFile_EmptyPagesContributeNothing(t *testing.T) {
	pdfPath := setupPDF(t, "sparse.pdf")
	ext := &singleExtractor{pages: []PageResult{
		{Page: 1, Text: ""},
		{Page: 2, Text: "only text"},
		{Page: 3, Text: ""},
	}}

	var log bytes.Buffer
	if status := ConvertFile(ext, pdfPath, &log); status != types.ConversionDone {
		t.Fatalf("status = %q, want %q", status, types.ConversionDone)
	}
	if got := readOutput(t, pdfPath); got != "only text" {
		t.Errorf("output = %q, want %q", got, "only text")
	}
}

func TestConvertFile_StructureFailureCreatesNoOutput(t *testing.T) {
	pdfPath := setupPDF(t, "corrupt.pdf")
	ext := &singleExtractor{err: errors.New("not a pdf")}

	var log bytes.Buffer
	if status := ConvertFile(ext, pdfPath, &log); status != types.ConversionFailed {
		t.Fatalf("status = %q, want %q", status, types.ConversionFailed)
	}

	if _, err := os.Stat(OutputPath(pdfPath)); !os.IsNotExist(err) {
		t.Errorf("no output file should exist after a structure failure")
	}
	if !strings.Contains(log.String(), "corrupt.pdf") {
		t.Errorf("error line should name the file, got %q", log.String())
	}
}

func TestConvertDir_MissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does-not-exist")

	var log bytes.Buffer
	result := ConvertDir(&singleExtractor{}, dir, &log)

	if result.Total() != 0 {
		t.Errorf("total = %d, want 0", result.Total())
	}
	if !strings.Contains(log.String(), "Directory not found") {
		t.Errorf("log = %q, want directory-not-found notice", log.String())
	}
}

func TestConvertDir(t *testing.T) {
	dir := t.TempDir()

	// a.pdf converts, B.PDF matches case-insensitively and converts,
	// b.txt is a pre-existing output with no source, c.pdf is skipped
	// (output exists), d.pdf fails, notes.md is ignored.
	for name, content := range map[string]string{
		"a.pdf":    "pdf",
		"B.PDF":    "pdf",
		"b.txt":    "pre-existing",
		"c.pdf":    "pdf",
		"c.txt":    "already converted",
		"d.pdf":    "pdf",
		"notes.md": "not a pdf",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	ext := &fakeExtractor{
		pages: map[string][]PageResult{
			filepath.Join(dir, "a.pdf"): {{Page: 1, Text: "Hello"}, {Page: 2, Text: "World"}},
			filepath.Join(dir, "B.PDF"): {{Page: 1, Text: "upper"}},
		},
		errs: map[string]error{
			filepath.Join(dir, "d.pdf"): errors.New("bad pdf"),
		},
	}

	var log bytes.Buffer
	result := ConvertDir(ext, dir, &log)

	if result.Converted != 2 {
		t.Errorf("converted = %d, want 2", result.Converted)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", result.Skipped)
	}
	if result.Failed != 1 {
		t.Errorf("failed = %d, want 1", result.Failed)
	}
	if !result.HasFailures() {
		t.Error("HasFailures should be true")
	}
	if result.Total() != 4 {
		t.Errorf("total = %d, want 4", result.Total())
	}

	output := log.String()
	if !strings.Contains(output, "Found 4 PDF files") {
		t.Errorf("log should report the total found, got %q", output)
	}
	if !strings.Contains(output, "[1/4] ") {
		t.Errorf("log should contain per-file progress labels, got %q", output)
	}
	if !strings.Contains(output, "Batch summary: 2 converted, 1 skipped, 1 failed (total: 4)") {
		t.Errorf("log should contain the summary line, got %q", output)
	}

	// a.txt was written with the newline-joined pages.
	if got := readOutput(t, filepath.Join(dir, "a.pdf")); got != "Hello\nWorld" {
		t.Errorf("a.txt = %q, want %q", got, "Hello\nWorld")
	}

	// Pre-existing outputs are byte-for-byte untouched.
	for name, want := range map[string]string{
		"b.txt": "pre-existing",
		"c.txt": "already converted",
	} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != want {
			t.Errorf("%s = %q, want %q (must not be overwritten)", name, data, want)
		}
	}

	// d.pdf failed structurally, so no d.txt appears.
	if _, err := os.Stat(filepath.Join(dir, "d.txt")); !os.IsNotExist(err) {
		t.Error("d.txt should not exist after a structure failure")
	}
}

func TestConvertDir_Idempotent(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.pdf"), []byte("pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	ext := &singleExtractor{pages: []PageResult{{Page: 1, Text: "once"}}}

	var first bytes.Buffer
	if r := ConvertDir(ext, dir, &first); r.Converted != 1 {
		t.Fatalf("first run converted = %d, want 1", r.Converted)
	}

	var second bytes.Buffer
	r := ConvertDir(ext, dir, &second)
	if r.Skipped != 1 || r.Converted != 0 {
		t.Errorf("second run = %+v, want 1 skipped", r)
	}
	if got := readOutput(t, filepath.Join(dir, "a.pdf")); got != "once" {
		t.Errorf("output changed across runs: %q", got)
	}
}

func TestConvertDir_IgnoresSubdirectories(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "nested.pdf"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "nested.pdf", "inner.pdf"), []byte("pdf"), 0o644); err != nil {
		t.Fatal(err)
	}

	var log bytes.Buffer
	result := ConvertDir(&singleExtractor{}, dir, &log)

	if result.Total() != 0 {
		t.Errorf("total = %d, want 0 (directories and nested files are not candidates)", result.Total())
	}
	if !strings.Contains(log.String(), "Found 0 PDF files") {
		t.Errorf("log = %q", log.String())
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{filepath.Join("dir", "a.pdf"), filepath.Join("dir", "a.txt")},
		{filepath.Join("dir", "B.PDF"), filepath.Join("dir", "B.txt")},
		{filepath.Join("dir", "report.v2.pdf"), filepath.Join("dir", "report.v2.txt")},
	}
	for _, tt := range tests {
		if got := OutputPath(tt.in); got != tt.want {
			t.Errorf("OutputPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsPDF(t *testing.T) {
	for name, want := range map[string]bool{
		"a.pdf":   true,
		"a.PDF":   true,
		"a.Pdf":   true,
		"a.txt":   false,
		"apdf":    false,
		"a.pdf.x": false,
	} {
		if got := IsPDF(name); got != want {
			t.Errorf("IsPDF(%q) = %v, want %v", name, got, want)
		}
	}
}
