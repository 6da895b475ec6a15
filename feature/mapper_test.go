package feature

import (
	"testing"

	"github.com/stretchr/testify/require"

	"battkit/table"
)

func TestFindMatchingColumnsDefaults(t *testing.T) {
	m := NewMapper(nil)

	mapping := m.FindMatchingColumns([]string{"Cap_Ah", "Voltage_V", "Current_A"})

	require.Equal(t, []string{Capacity, Voltage, Current}, mapping.Features())
	require.Equal(t, map[string]string{
		Capacity: "Cap_Ah",
		Voltage:  "Voltage_V",
		Current:  "Current_A",
	}, mapping.AsMap())
}

func TestFindMatchingColumnsIsDeterministic(t *testing.T) {
	m := NewMapper(nil)
	columns := []string{"time", "Voltage", "V", "Temp", "i_cell", "I"}

	first := m.FindMatchingColumns(columns)
	second := m.FindMatchingColumns(columns)

	require.Equal(t, first.Features(), second.Features())
	require.Equal(t, first.AsMap(), second.AsMap())
}

func TestMappingIsInjectiveAndColumnsValid(t *testing.T) {
	m := NewMapper(nil)
	columns := []string{"time", "Voltage", "V", "Temp", "i_cell", "I"}

	mapping := m.FindMatchingColumns(columns)

	valid := map[string]struct{}{}
	for _, c := range columns {
		valid[c] = struct{}{}
	}
	seen := map[string]struct{}{}
	for _, col := range mapping.Columns() {
		_, dup := seen[col]
		require.False(t, dup, "column %q consumed twice", col)
		seen[col] = struct{}{}
		_, ok := valid[col]
		require.True(t, ok, "column %q not in input set", col)
	}
}

// Two features can both match a column; the one declared earlier wins and the
// later one has to settle for a different column or stay unmatched.
func TestCollisionDeclarationOrderWins(t *testing.T) {
	m := NewMapper(nil)

	mapping := m.FindMatchingColumns([]string{"Q_V"})
	col, ok := mapping.Column(Capacity)
	require.True(t, ok)
	require.Equal(t, "Q_V", col)
	require.False(t, mapping.Has(Voltage))

	mapping = m.FindMatchingColumns([]string{"Q_V", "Cell_V"})
	col, _ = mapping.Column(Capacity)
	require.Equal(t, "Q_V", col)
	col, ok = mapping.Column(Voltage)
	require.True(t, ok)
	require.Equal(t, "Cell_V", col)
}

// Within a feature, the earlier pattern wins regardless of column order: the
// generic temp pattern fires before the more specific t_batt one.
func TestPatternPriorityWithinFeature(t *testing.T) {
	m := NewMapper(nil)

	for _, columns := range [][]string{
		{"t_batt", "temp"},
		{"temp", "t_batt"},
	} {
		mapping := m.FindMatchingColumns(columns)
		col, ok := mapping.Column(Temperature)
		require.True(t, ok)
		require.Equal(t, "temp", col)
	}
}

func TestUnmatchedFeatureAbsentFromMapping(t *testing.T) {
	m := NewMapper(nil)

	mapping := m.FindMatchingColumns([]string{"Voltage_V", "Current_A"})

	require.False(t, mapping.Has(DischargeTime))
	require.False(t, mapping.Has(ChargeTime))
	require.True(t, mapping.Has(Voltage))
}

func TestExtractFeaturesCopiesValues(t *testing.T) {
	m := NewMapper(nil)
	tbl := table.New()
	tbl.SetColumn("Voltage_V", []any{3.7, 3.6, nil})
	tbl.SetColumn("Step", []any{1.0, 2.0, 3.0})

	out := m.ExtractFeatures(tbl, nil)

	require.Equal(t, []string{Voltage}, out.Columns())
	v, _ := out.Column(Voltage)
	require.Equal(t, []any{3.7, 3.6, nil}, v)
}

func TestExtractFeaturesSkipsAbsentColumn(t *testing.T) {
	m := NewMapper(nil)
	tbl := table.New()
	tbl.SetColumn("Voltage_V", []any{3.7})

	mapping := NewMapping()
	mapping.Set(Capacity, "gone")
	mapping.Set(Voltage, "Voltage_V")

	out := m.ExtractFeatures(tbl, mapping)

	require.Equal(t, []string{Voltage}, out.Columns())
	require.False(t, out.HasColumn(Capacity))
}

func TestAvailableFeatures(t *testing.T) {
	m := NewMapper(nil)

	got := m.AvailableFeatures([]string{"Cap_Ah", "Voltage_V"})

	require.Equal(t, map[string]struct{}{
		Capacity: {},
		Voltage:  {},
	}, got)
}

func TestAddCustomPatternDiscardsBuiltins(t *testing.T) {
	m := NewMapper(nil)
	require.NoError(t, m.AddCustomPattern(Capacity, []string{"foo"}))

	mapping := m.FindMatchingColumns([]string{"Ah_total"})
	require.False(t, mapping.Has(Capacity))

	mapping = m.FindMatchingColumns([]string{"foo_q"})
	col, ok := mapping.Column(Capacity)
	require.True(t, ok)
	require.Equal(t, "foo_q", col)
}

func TestAddCustomPatternNewFeature(t *testing.T) {
	m := NewMapper(nil)
	require.NoError(t, m.AddCustomPattern("internal_resistance", []string{"resistance", "ohm", "r_int"}))

	require.Equal(t, []string{Capacity, Voltage, Current, Temperature,
		DischargeTime, ChargeTime, "internal_resistance"}, m.Features())

	mapping := m.FindMatchingColumns([]string{"R_Ohms"})
	col, ok := mapping.Column("internal_resistance")
	require.True(t, ok)
	require.Equal(t, "R_Ohms", col)
}

func TestAddCustomPatternBadRegex(t *testing.T) {
	m := NewMapper(nil)
	err := m.AddCustomPattern("broken", []string{"("})
	require.Error(t, err)
	require.NotContains(t, m.Features(), "broken")
}
