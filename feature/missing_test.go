package feature

import (
	"testing"

	"github.com/stretchr/testify/require"

	"battkit/table"
)

func numericGapTable() *table.Table {
	tbl := table.New()
	tbl.SetColumn("capacity", []any{1.0, nil, 3.0})
	tbl.SetColumn("label", []any{"a", nil, "b"})
	return tbl
}

func TestHandleMissingValuesMean(t *testing.T) {
	m := NewMapper(nil)

	clean := m.HandleMissingValues(numericGapTable(), StrategyMean)

	capacity, _ := clean.Column("capacity")
	require.Equal(t, []any{1.0, 2.0, 3.0}, capacity)

	// non-numeric columns keep their gaps
	label, _ := clean.Column("label")
	require.Equal(t, []any{"a", nil, "b"}, label)
}

func TestHandleMissingValuesMedian(t *testing.T) {
	m := NewMapper(nil)
	tbl := table.New()
	tbl.SetColumn("voltage", []any{3.0, 3.2, nil, 4.0})

	clean := m.HandleMissingValues(tbl, StrategyMedian)

	voltage, _ := clean.Column("voltage")
	require.Equal(t, []any{3.0, 3.2, 3.2, 4.0}, voltage)
}

func TestHandleMissingValuesDrop(t *testing.T) {
	m := NewMapper(nil)
	tbl := table.New()
	tbl.SetColumn("capacity", []any{1.0, nil, 3.0})
	tbl.SetColumn("voltage", []any{3.7, 3.6, 3.5})

	clean := m.HandleMissingValues(tbl, StrategyDrop)

	rows, cols := clean.Shape()
	require.Equal(t, 2, rows)
	require.Equal(t, 2, cols)
	capacity, _ := clean.Column("capacity")
	require.Equal(t, []any{1.0, 3.0}, capacity)
	voltage, _ := clean.Column("voltage")
	require.Equal(t, []any{3.7, 3.5}, voltage)
}

func TestForwardFillLeavesLeadingGap(t *testing.T) {
	m := NewMapper(nil)
	tbl := table.New()
	tbl.SetColumn("capacity", []any{nil, 1.0, nil, 2.0})

	clean := m.HandleMissingValues(tbl, StrategyForwardFill)

	capacity, _ := clean.Column("capacity")
	require.Equal(t, []any{nil, 1.0, 1.0, 2.0}, capacity)
}

func TestBackwardFillLeavesTrailingGap(t *testing.T) {
	m := NewMapper(nil)
	tbl := table.New()
	tbl.SetColumn("capacity", []any{1.0, nil, 2.0, nil})

	clean := m.HandleMissingValues(tbl, StrategyBackwardFill)

	capacity, _ := clean.Column("capacity")
	require.Equal(t, []any{1.0, 2.0, 2.0, nil}, capacity)
}

func TestUnknownStrategyFallsBackToMean(t *testing.T) {
	m := NewMapper(nil)

	var clean *table.Table
	require.NotPanics(t, func() {
		clean = m.HandleMissingValues(numericGapTable(), "bogus")
	})

	want := m.HandleMissingValues(numericGapTable(), StrategyMean)
	for _, name := range want.Columns() {
		wantCol, _ := want.Column(name)
		gotCol, _ := clean.Column(name)
		require.Equal(t, wantCol, gotCol)
	}
}

func TestAllMissingNumericColumnStaysMissing(t *testing.T) {
	m := NewMapper(nil)
	tbl := table.New()
	tbl.SetColumn("capacity", []any{nil, nil})

	clean := m.HandleMissingValues(tbl, StrategyMean)

	capacity, _ := clean.Column("capacity")
	require.Equal(t, []any{nil, nil}, capacity)
}

func TestStrategies(t *testing.T) {
	require.Equal(t, []string{
		StrategyMean, StrategyMedian, StrategyDrop, StrategyForwardFill, StrategyBackwardFill,
	}, Strategies())
}
