package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPDFEmptyInput(t *testing.T) {
	_, err := ExtractPDF(nil)
	assert.ErrorContains(t, err, "empty pdf input")
}

func TestExtractPDFRejectsGarbage(t *testing.T) {
	_, err := ExtractPDF([]byte("this is not a pdf document"))
	assert.Error(t, err)
}

func TestExtractPDFRecoversFromParserPanic(t *testing.T) {
	// A truncated header with a bogus trailer exercises the recover path
	// without bringing the whole batch down.
	data := []byte("%PDF-1.4\ntrailer\n<< /Root 1 0 R >>\nstartxref\n999999\n%%EOF")
	_, err := ExtractPDF(data)
	assert.Error(t, err)
}
