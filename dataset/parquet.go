package dataset

import (
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"battkit/table"
)

// readParquet reads a flat parquet file into a table. Numeric kinds widen to
// float64, byte arrays become strings, nulls become missing cells. No options
// are consumed.
func readParquet(path string, _ Options) (*table.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat parquet: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}

	fields := pf.Schema().Fields()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name()
	}
	cols := make([][]any, len(columns))

	for _, rg := range pf.RowGroups() {
		if err := appendRowGroup(rg, cols); err != nil {
			return nil, fmt.Errorf("read parquet rows: %w", err)
		}
	}

	t := table.New()
	for i, name := range columns {
		t.SetColumn(name, cols[i])
	}
	return t, nil
}

func appendRowGroup(rg parquet.RowGroup, cols [][]any) error {
	rows := rg.Rows()
	defer rows.Close()

	buf := make([]parquet.Row, 64)
	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			for _, value := range row {
				ci := value.Column()
				if ci < 0 || ci >= len(cols) {
					continue
				}
				cols[ci] = append(cols[ci], parquetValue(value))
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
	}
}

func parquetValue(v parquet.Value) any {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return float64(v.Int32())
	case parquet.Int64:
		return float64(v.Int64())
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return v.String()
	}
}
