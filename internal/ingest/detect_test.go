package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectByMIMEType(t *testing.T) {
	cases := []struct {
		name     string
		mimeType string
		filename string
		want     Format
	}{
		{"pdf mime", "application/pdf", "report.bin", FormatPDF},
		{"docx mime", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "notes.bin", FormatDocx},
		{"xlsx mime", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "data.bin", FormatSpreadsheet},
		{"image mime", "image/png", "scan.bin", FormatImage},
		{"image mime webp", "image/webp", "photo", FormatImage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Detect(tc.mimeType, tc.filename))
		})
	}
}

func TestDetectByExtensionFallback(t *testing.T) {
	cases := []struct {
		name     string
		mimeType string
		filename string
		want     Format
	}{
		{"generic mime pdf ext", "application/octet-stream", "report.pdf", FormatPDF},
		{"generic mime docx ext", "application/octet-stream", "notes.DOCX", FormatDocx},
		{"generic mime xlsx ext", "", "data.xlsx", FormatSpreadsheet},
		{"jpeg extension", "application/octet-stream", "scan.jpeg", FormatImage},
		{"heic extension", "", "photo.heic", FormatImage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Detect(tc.mimeType, tc.filename))
		})
	}
}

func TestDetectMIMETakesPrecedenceOverExtension(t *testing.T) {
	// A declared PDF type wins even with a misleading extension.
	assert.Equal(t, FormatPDF, Detect("application/pdf", "mislabeled.xlsx"))
}

func TestDetectFallsBackToText(t *testing.T) {
	assert.Equal(t, FormatText, Detect("", ""))
	assert.Equal(t, FormatText, Detect("text/plain", "readme.md"))
	assert.Equal(t, FormatText, Detect("application/octet-stream", "archive.tar.gz"))
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "pdf", FormatPDF.String())
	assert.Equal(t, "docx", FormatDocx.String())
	assert.Equal(t, "spreadsheet", FormatSpreadsheet.String())
	assert.Equal(t, "image", FormatImage.String())
	assert.Equal(t, "text", FormatText.String())
}
