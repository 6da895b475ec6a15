// Package table holds the in-memory tabular representation shared by the
// dataset readers and the feature mapper.
package table

// Table is an in-memory tabular dataset with ordered columns. Cells are held
// as any; nil marks a missing value. Columns keep their insertion order, which
// downstream mapping and extraction rely on.
type Table struct {
	names []string
	cols  map[string][]any
	rows  int
}

func New() *Table {
	return &Table{cols: map[string][]any{}}
}

// SetColumn stores values under name, replacing any existing column with the
// same name. Shorter columns are padded with missing cells so every column has
// the same length.
func (t *Table) SetColumn(name string, values []any) {
	if _, exists := t.cols[name]; !exists {
		t.names = append(t.names, name)
	}
	vals := make([]any, len(values))
	copy(vals, values)
	t.cols[name] = vals
	if len(vals) > t.rows {
		t.rows = len(vals)
	}
	t.pad()
}

func (t *Table) pad() {
	for name, col := range t.cols {
		for len(col) < t.rows {
			col = append(col, nil)
		}
		t.cols[name] = col
	}
}

// Columns returns the column names in insertion order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Column returns a copy of the named column's cells.
func (t *Table) Column(name string) ([]any, bool) {
	col, ok := t.cols[name]
	if !ok {
		return nil, false
	}
	out := make([]any, len(col))
	copy(out, col)
	return out, true
}

func (t *Table) NumRows() int { return t.rows }

func (t *Table) NumCols() int { return len(t.names) }

// Shape returns (rows, columns).
func (t *Table) Shape() (int, int) { return t.rows, len(t.names) }

func (t *Table) Copy() *Table {
	out := New()
	for _, name := range t.names {
		col := t.cols[name]
		out.SetColumn(name, col)
	}
	out.rows = t.rows
	out.pad()
	return out
}

// MissingCells counts missing cells across the whole table.
func (t *Table) MissingCells() int {
	count := 0
	for _, name := range t.names {
		for _, v := range t.cols[name] {
			if IsMissing(v) {
				count++
			}
		}
	}
	return count
}
