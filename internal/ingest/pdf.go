package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractPDF extracts text from every page in order, prefixing each page with
// a "--- Page N ---" marker. Layout is not reconstructed: the text items of a
// page are joined with single spaces in reading order.
func ExtractPDF(data []byte) (text string, err error) {
	// The parser panics on some malformed xref tables.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parse panic: %v", r)
		}
	}()

	if len(data) == 0 {
		return "", fmt.Errorf("empty pdf input")
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf failed: %w", err)
	}

	var out strings.Builder
	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		var items []string
		if !page.V.IsNull() {
			for _, item := range page.Content().Text {
				items = append(items, item.S)
			}
		}
		fmt.Fprintf(&out, "--- Page %d ---\n%s\n\n", i, strings.Join(items, " "))
	}
	return out.String(), nil
}
