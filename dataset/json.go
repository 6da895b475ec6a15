package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"battkit/table"
)

// readJSON reads a records-style JSON file (an array of objects) into a
// table. Column order follows first appearance across records; records that
// omit a key get a missing cell. No options are consumed.
func readJSON(path string, _ Options) (*table.Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open json: %w", err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse json records: %w", err)
	}

	var columns []string
	index := map[string]int{}
	var cols [][]any

	for rowIdx, rec := range records {
		dec := json.NewDecoder(bytes.NewReader(rec))
		dec.UseNumber()
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse json record %d: %w", rowIdx+1, err)
		}
		if d, ok := tok.(json.Delim); !ok || d != '{' {
			return nil, fmt.Errorf("json record %d is not an object", rowIdx+1)
		}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("parse json record %d: %w", rowIdx+1, err)
			}
			key := keyTok.(string)
			var val any
			if err := dec.Decode(&val); err != nil {
				return nil, fmt.Errorf("parse json record %d: %w", rowIdx+1, err)
			}
			ci, known := index[key]
			if !known {
				ci = len(columns)
				index[key] = ci
				columns = append(columns, key)
				cols = append(cols, make([]any, rowIdx))
			}
			for len(cols[ci]) < rowIdx {
				cols[ci] = append(cols[ci], nil)
			}
			cols[ci] = append(cols[ci], jsonValue(val))
		}
		for i := range cols {
			if len(cols[i]) < rowIdx+1 {
				cols[i] = append(cols[i], nil)
			}
		}
	}

	t := table.New()
	for i, name := range columns {
		t.SetColumn(name, cols[i])
	}
	return t, nil
}

func jsonValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case string:
		if strings.TrimSpace(x) == "" {
			return nil
		}
		return x
	default:
		return v
	}
}
