package ingest

import (
	"context"
	"strings"
)

// NoTextSentinel is returned when OCR finds nothing, so downstream context
// assembly sees a present-but-empty document rather than a missing one.
const NoTextSentinel = "[OCR: no text found in image]"

// OCRClient transcribes an image through a remote vision model.
type OCRClient interface {
	TranscribeImage(ctx context.Context, mimeType string, data []byte) (string, error)
}

// extractImage delegates to the vision model and substitutes the sentinel for
// empty results.
func extractImage(ctx context.Context, ocr OCRClient, mimeType string, data []byte) (string, error) {
	text, err := ocr.TranscribeImage(ctx, mimeType, data)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return NoTextSentinel, nil
	}
	return text, nil
}
