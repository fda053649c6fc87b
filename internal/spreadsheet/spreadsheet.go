// Package spreadsheet flattens tabular bulk input into the same free-text
// form the single-item pipeline consumes: one "key: value" joined string
// per row, keyed by the header row.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Domain errors for spreadsheet operations.
var (
	ErrEmptyWorkbook = errors.New("workbook has no sheets")
	ErrNoHeader      = errors.New("sheet has no header row")
)

// Read parses a workbook and flattens every data row of the first sheet
// into a text item. Rows with no populated cells are skipped.
func Read(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyWorkbook
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	header := rows[0]
	var items []string
	for _, row := range rows[1:] {
		if item := Flatten(header, row); item != "" {
			items = append(items, item)
		}
	}

	return items, nil
}

// Flatten joins a row against its header into a comma-separated
// "key: value" string, skipping empty cells.
func Flatten(header, row []string) string {
	var parts []string
	for i, cell := range row {
		if i >= len(header) {
			break
		}

		key := strings.TrimSpace(header[i])
		value := strings.TrimSpace(cell)
		if key == "" || value == "" {
			continue
		}

		parts = append(parts, fmt.Sprintf("%s: %s", key, value))
	}
	return strings.Join(parts, ", ")
}
