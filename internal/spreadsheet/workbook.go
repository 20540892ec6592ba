package spreadsheet

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Workbook magic bytes: OLE compound file (legacy .xls) and zip (.xlsx).
var (
	magicOLE = []byte{0xD0, 0xCF, 0x11, 0xE0}
	magicZip = []byte{'P', 'K'}
)

// openPositionsGrid loads the "OPEN POSITION" sheet of a workbook as a grid
// of stringified cells, choosing the parser by magic bytes.
func openPositionsGrid(data []byte) ([][]string, error) {
	switch {
	case bytes.HasPrefix(data, magicOLE):
		return xlsGrid(data)
	case bytes.HasPrefix(data, magicZip):
		return xlsxGrid(data)
	default:
		return nil, fmt.Errorf("unrecognized spreadsheet format (expected .xls or .xlsx)")
	}
}

// xlsxGrid reads the target sheet from a zip-based workbook.
func xlsxGrid(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, formatError(err)
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		if !targetSheet(name) {
			continue
		}
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, formatError(err)
		}
		return rows, nil
	}
	return nil, ErrSheetNotFound
}

// xlsGrid reads the target sheet from a legacy binary workbook.
func xlsGrid(data []byte) ([][]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, formatError(err)
	}

	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil || !targetSheet(sheet.Name) {
			continue
		}

		grid := make([][]string, 0, int(sheet.MaxRow)+1)
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				grid = append(grid, nil)
				continue
			}
			cells := make([]string, row.LastCol())
			for c := row.FirstCol(); c < row.LastCol(); c++ {
				cells[c] = row.Col(c)
			}
			grid = append(grid, cells)
		}
		return grid, nil
	}
	return nil, ErrSheetNotFound
}
