package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExtractSpreadsheet serializes every row of every sheet (in sheet order) as
// one CSV line. A cell is quoted, with internal quotes doubled, only when it
// contains a comma, a double quote, or a newline, so that standard CSV
// parsers reconstruct the original value.
func ExtractSpreadsheet(data []byte) (string, error) {
	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open spreadsheet failed: %w", err)
	}
	defer book.Close()

	var lines []string
	for _, sheet := range book.GetSheetList() {
		rows, err := book.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("read sheet %q failed: %w", sheet, err)
		}
		for _, row := range rows {
			cells := make([]string, len(row))
			for i, cell := range row {
				cells[i] = quoteCSVCell(cell)
			}
			lines = append(lines, strings.Join(cells, ","))
		}
	}
	return strings.Join(lines, "\n"), nil
}

func quoteCSVCell(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}
