// Package ingest normalizes heterogeneous uploads (PDF, DOCX, XLSX, images,
// plain text) into a single UTF-8 text representation usable as model
// context.
package ingest

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"
)

// File is one raw upload entering the pipeline.
type File struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Extracted is the plain-text projection of one successfully ingested file.
type Extracted struct {
	Name       string
	Content    string
	SourceType string
	SizeBytes  int64
}

// ExtractionError names the file whose bytes could not be converted.
type ExtractionError struct {
	Filename string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s failed: %v", e.Filename, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Pipeline dispatches files to the extractor matching their detected format.
type Pipeline struct {
	ocr OCRClient
}

func NewPipeline(ocr OCRClient) *Pipeline {
	return &Pipeline{ocr: ocr}
}

// Extract converts one file to text. Failures are wrapped in an
// *ExtractionError carrying the filename.
func (p *Pipeline) Extract(ctx context.Context, f File) (Extracted, error) {
	format := Detect(f.MIMEType, f.Name)

	var content string
	var err error
	switch format {
	case FormatPDF:
		content, err = ExtractPDF(f.Data)
	case FormatDocx:
		content, err = ExtractDocx(f.Data)
	case FormatSpreadsheet:
		content, err = ExtractSpreadsheet(f.Data)
	case FormatImage:
		content, err = extractImage(ctx, p.ocr, f.MIMEType, f.Data)
	case FormatText:
		content = extractText(f.Data)
	}
	if err != nil {
		return Extracted{}, &ExtractionError{Filename: f.Name, Err: err}
	}

	return Extracted{
		Name:       f.Name,
		Content:    content,
		SourceType: format.String(),
		SizeBytes:  int64(len(f.Data)),
	}, nil
}

// ExtractBatch runs the pipeline over an ordered batch. Ingestion is
// best-effort: a failing file is reported and skipped, the rest continue.
// All results are collected before the caller mutates any workspace state,
// and successes keep the order their source files were presented in.
func (p *Pipeline) ExtractBatch(ctx context.Context, files []File) ([]Extracted, []*ExtractionError) {
	var extracted []Extracted
	var failures []*ExtractionError
	for _, f := range files {
		result, err := p.Extract(ctx, f)
		if err != nil {
			var exErr *ExtractionError
			if e, ok := err.(*ExtractionError); ok {
				exErr = e
			} else {
				exErr = &ExtractionError{Filename: f.Name, Err: err}
			}
			log.Printf("ingest: %v", exErr)
			failures = append(failures, exErr)
			continue
		}
		extracted = append(extracted, result)
	}
	return extracted, failures
}

// extractText reads bytes as UTF-8, replacing invalid sequences. Garbled text
// is preferred over refusing the file.
func extractText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), "�")
}
