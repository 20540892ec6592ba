// Package spreadsheet turns an uploaded brokerage workbook into position rows.
//
// The expected export format carries an "OPEN POSITION" sheet with a header
// row somewhere below the top (the exports lead with report metadata), and a
// trailing "Total" summary row that is not a position.
package spreadsheet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/foliolabs/folio-portal/internal/models"
)

var (
	// ErrSheetNotFound indicates the workbook has no "OPEN POSITION" sheet.
	ErrSheetNotFound = errors.New("could not find 'OPEN POSITION' sheet")

	// ErrHeaderNotFound indicates no header row with a "Symbol" column exists.
	ErrHeaderNotFound = errors.New("could not find header row with 'Symbol' column")
)

// Extract parses a workbook (legacy binary .xls or zip-based .xlsx, sniffed
// from magic bytes) and returns the position rows of its "OPEN POSITION"
// sheet in file order. It has no storage or network side effects.
func Extract(data []byte) ([]models.PositionRow, error) {
	grid, err := openPositionsGrid(data)
	if err != nil {
		return nil, err
	}
	return extractRows(grid)
}

// extractRows locates the header row in a sheet grid and converts every
// position row below it.
func extractRows(grid [][]string) ([]models.PositionRow, error) {
	headerIdx := -1
	var headers []string
	for i, row := range grid {
		for _, cell := range row {
			if strings.EqualFold(cell, "symbol") {
				headerIdx = i
				headers = row
				break
			}
		}
		if headerIdx >= 0 {
			break
		}
	}
	if headerIdx < 0 {
		return nil, ErrHeaderNotFound
	}

	symbolIdx := findColumn(headers, "symbol")
	volumeIdx := findColumn(headers, "volume")
	openPriceIdx := findColumn(headers, "open price", "open_price")

	var rows []models.PositionRow
	for _, row := range grid[headerIdx+1:] {
		symbol := cellAt(row, symbolIdx)
		if symbol == "" || symbol == "Total" {
			continue
		}
		rows = append(rows, models.PositionRow{
			Symbol:    symbol,
			Volume:    cellAt(row, volumeIdx),
			OpenPrice: cellAt(row, openPriceIdx),
		})
	}
	return rows, nil
}

// findColumn returns the index of the first header containing any of the
// given substrings (case-insensitive), or -1.
func findColumn(headers []string, substrings ...string) int {
	for i, h := range headers {
		lower := strings.ToLower(h)
		for _, sub := range substrings {
			if strings.Contains(lower, sub) {
				return i
			}
		}
	}
	return -1
}

// cellAt returns the cell at idx, or "" when the column is missing (-1) or
// the row is shorter than the header.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// targetSheet tells whether a sheet name identifies the open-positions sheet.
func targetSheet(name string) bool {
	return strings.Contains(strings.ToUpper(name), "OPEN POSITION")
}

// formatError wraps a workbook parse failure as a user-facing upload error.
func formatError(err error) error {
	return fmt.Errorf("failed to read workbook: %w", err)
}
