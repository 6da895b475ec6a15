package dataset

import (
	"encoding/csv"
	"fmt"
	"os"

	"battkit/table"
)

// readCSV reads a comma-separated file into a table. Recognized options:
// delimiter, comment (single-char strings), has_headers, trim_leading_space,
// lazy_quotes (bools).
func readCSV(path string, opts Options) (*table.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	if d, ok := opts["delimiter"].(string); ok && len(d) == 1 {
		reader.Comma = rune(d[0])
	}
	if c, ok := opts["comment"].(string); ok && len(c) == 1 {
		reader.Comment = rune(c[0])
	}
	if v, ok := opts["lazy_quotes"].(bool); ok {
		reader.LazyQuotes = v
	}
	if v, ok := opts["trim_leading_space"].(bool); ok {
		reader.TrimLeadingSpace = v
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return tableFromRecords(records, hasHeaders(opts)), nil
}

func hasHeaders(opts Options) bool {
	if v, ok := opts["has_headers"].(bool); ok {
		return v
	}
	return true
}

// tableFromRecords turns row-major string records into a typed table. The
// first record supplies column names unless headers are disabled, in which
// case columns are named column_1..column_N. Short rows are padded with
// missing cells; cells beyond the column count are dropped.
func tableFromRecords(records [][]string, headers bool) *table.Table {
	t := table.New()
	if len(records) == 0 {
		return t
	}

	var columns []string
	if headers {
		for _, h := range records[0] {
			columns = append(columns, table.NormalizeSpaces(h))
		}
		records = records[1:]
	} else {
		for i := range records[0] {
			columns = append(columns, fmt.Sprintf("column_%d", i+1))
		}
	}

	cols := make([][]any, len(columns))
	for _, record := range records {
		for i := range columns {
			var v any
			if i < len(record) {
				v = table.ParseCell(record[i])
			}
			cols[i] = append(cols[i], v)
		}
	}
	for i, name := range columns {
		t.SetColumn(name, cols[i])
	}
	return t
}
