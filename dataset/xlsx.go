package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"battkit/table"
)

// readSpreadsheet reads an Excel workbook into a table. Recognized options:
// sheet (string, defaults to the first sheet) and has_headers (bool).
func readSpreadsheet(path string, opts Options) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if s, ok := opts["sheet"].(string); ok && s != "" {
		sheet = s
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	return tableFromRecords(rows, hasHeaders(opts)), nil
}
