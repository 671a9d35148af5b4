package ingest

import (
	"path/filepath"
	"strings"
)

// Format is the closed set of extractor categories.
type Format int

const (
	FormatText Format = iota // fallback: read bytes as UTF-8
	FormatPDF
	FormatDocx
	FormatSpreadsheet
	FormatImage
)

func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatDocx:
		return "docx"
	case FormatSpreadsheet:
		return "spreadsheet"
	case FormatImage:
		return "image"
	default:
		return "text"
	}
}

const (
	mimePDF  = "application/pdf"
	mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeXlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".bmp":  true,
	".heic": true,
}

// Detect classifies a file by declared MIME type first, then by filename
// extension, and falls back to plain text. It is a total function: every
// input maps to some format, so ingestion never refuses a file.
func Detect(mimeType, filename string) Format {
	switch mimeType {
	case mimePDF:
		return FormatPDF
	case mimeDocx:
		return FormatDocx
	case mimeXlsx:
		return FormatSpreadsheet
	}
	if strings.HasPrefix(mimeType, "image/") {
		return FormatImage
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDocx
	case ".xlsx":
		return FormatSpreadsheet
	}
	if imageExtensions[ext] {
		return FormatImage
	}
	return FormatText
}
