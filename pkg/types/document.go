// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the records and configuration shared across pdftext
// commands.
package types

// ConversionStatus indicates the state of PDF-to-text conversion for a
// document.
type ConversionStatus string

const (
	// ConversionNone means the output already existed and the source was skipped.
	ConversionNone ConversionStatus = "none"
	// ConversionDone means every page was extracted and the output was written.
	ConversionDone ConversionStatus = "converted"
	// ConversionPartial means the output was written but one or more pages
	// could not be extracted.
	ConversionPartial ConversionStatus = "partial"
	// ConversionFailed means no output was produced for the source.
	ConversionFailed ConversionStatus = "failed"
)

// Document holds the file paths and conversion state for one source PDF.
type Document struct {
	// ID is the base filename without extension (e.g. "incident-runbook").
	ID string `json:"id" yaml:"id"`

	// PDFPath is the path to the source PDF.
	PDFPath string `json:"pdf_path" yaml:"pdf_path"`

	// TxtPath is the path to the plain-text output, a sibling of PDFPath.
	TxtPath string `json:"txt_path" yaml:"txt_path"`

	// ConversionStatus tracks the outcome of the last conversion attempt.
	ConversionStatus ConversionStatus `json:"conversion_status" yaml:"conversion_status"`
}
