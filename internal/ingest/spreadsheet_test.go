package ingest

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestQuoteCSVCell(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"plain value untouched", "hello", "hello"},
		{"comma forces quoting", "Smith, John", `"Smith, John"`},
		{"quote doubled and wrapped", `say "hi"`, `"say ""hi"""`},
		{"newline forces quoting", "line1\nline2", "\"line1\nline2\""},
		{"empty value untouched", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, quoteCSVCell(tc.value))
		})
	}
}

func buildWorkbook(t *testing.T, rows map[string][][]string) []byte {
	t.Helper()

	book := excelize.NewFile()
	first := true
	for sheet, sheetRows := range rows {
		if first {
			require.NoError(t, book.SetSheetName("Sheet1", sheet))
			first = false
		} else {
			_, err := book.NewSheet(sheet)
			require.NoError(t, err)
		}
		for i, row := range sheetRows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, book.SetSheetRow(sheet, cell, &row))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, book.Write(&buf))
	return buf.Bytes()
}

func TestExtractSpreadsheet(t *testing.T) {
	data := buildWorkbook(t, map[string][][]string{
		"People": {
			{"name", "city"},
			{"Smith, John", "Paris"},
		},
	})

	content, err := ExtractSpreadsheet(data)
	require.NoError(t, err)
	assert.Equal(t, "name,city\n\"Smith, John\",Paris", content)
}

func TestExtractSpreadsheetRoundTripsThroughCSVReader(t *testing.T) {
	original := [][]string{
		{"id", "comment"},
		{"1", `contains "quotes" and, commas`},
	}
	data := buildWorkbook(t, map[string][][]string{"Sheet1": original})

	content, err := ExtractSpreadsheet(data)
	require.NoError(t, err)

	parsed, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}

func TestExtractSpreadsheetRejectsGarbage(t *testing.T) {
	_, err := ExtractSpreadsheet([]byte("not a zip archive"))
	assert.Error(t, err)
}
