// Package feature maps vendor-specific battery dataset columns onto a fixed
// set of standardized feature names using ordered, case-insensitive regex
// patterns.
package feature

import (
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"battkit/table"
)

// Standard feature identifiers seeded into every Mapper.
const (
	Capacity      = "capacity"
	Voltage       = "voltage"
	Current       = "current"
	Temperature   = "temperature"
	DischargeTime = "discharge_time"
	ChargeTime    = "charge_time"
)

// defaultSpecs lists the built-in features in declaration order. Pattern order
// encodes priority: within a feature, earlier patterns are tried first. The
// loose single-letter patterns (q, v, i) are intentionally permissive; vendors
// abbreviate aggressively and existing datasets rely on these matching.
var defaultSpecs = []struct {
	name     string
	patterns []string
}{
	{Capacity, []string{
		`capacity`, `cap`, `q`, `charge_capacity`, `discharge_capacity`,
		`nominal_capacity`, `ah`, `ampere_hour`, `mah`, `milliampere`,
	}},
	{Voltage, []string{
		`voltage`, `volt`, `v`, `batt_voltage`, `cell_voltage`,
		`terminal_voltage`, `v_batt`, `volts`, `voltage_v`,
	}},
	{Current, []string{
		`current`, `curr`, `i`, `batt_current`, `cell_current`,
		`discharge_current`, `charge_current`, `amps`, `amperes`,
		`current_a`, `ampere`,
	}},
	{Temperature, []string{
		`temperature`, `temp`, `tmp`, `batt_temp`, `cell_temp`,
		`t_batt`, `thermal`, `deg`, `celsius`, `fahrenheit`,
		`temp_c`, `temp_f`,
	}},
	{DischargeTime, []string{
		`discharge_time`, `disch_time`, `t_discharge`, `t_disch`,
		`discharge_duration`, `duration_discharge`, `disc_time`,
		`time_discharge`,
	}},
	{ChargeTime, []string{
		`charge_time`, `chg_time`, `t_charge`, `t_chg`,
		`charge_duration`, `duration_charge`, `ch_time`,
		`time_charge`,
	}},
}

type pattern struct {
	raw string
	re  *regexp.Regexp
}

// Mapper owns the feature pattern registry and performs column matching and
// extraction. Each Mapper holds an independent copy of the built-in specs;
// the registry is single-writer and not safe for concurrent mutation.
type Mapper struct {
	order    []string
	patterns map[string][]pattern
	log      *zap.Logger
}

// NewMapper builds a Mapper seeded with the built-in feature specs. A nil
// logger disables diagnostics.
func NewMapper(log *zap.Logger) *Mapper {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Mapper{patterns: map[string][]pattern{}, log: log}
	for _, spec := range defaultSpecs {
		compiled := make([]pattern, 0, len(spec.patterns))
		for _, p := range spec.patterns {
			compiled = append(compiled, pattern{raw: p, re: regexp.MustCompile(`(?i)` + p)})
		}
		m.order = append(m.order, spec.name)
		m.patterns[spec.name] = compiled
	}
	return m
}

// Features returns the declared feature names in declaration order.
func (m *Mapper) Features() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// FindMatchingColumns resolves each declared feature to the first column whose
// name contains a match of one of the feature's patterns. Features are
// processed in declaration order and patterns in priority order; a column is
// consumed by at most one feature and an earlier feature's match is never
// revisited. Features with no eligible column are simply absent from the
// result.
func (m *Mapper) FindMatchingColumns(columns []string) *Mapping {
	matches := NewMapping()
	used := map[string]struct{}{}

	for _, feat := range m.order {
		for _, pat := range m.patterns[feat] {
			found := false
			for _, col := range columns {
				if _, taken := used[col]; taken {
					continue
				}
				if pat.re.MatchString(col) {
					matches.Set(feat, col)
					used[col] = struct{}{}
					found = true
					break
				}
			}
			if found {
				break
			}
		}
	}

	return matches
}

// ExtractFeatures copies mapped columns out of t under their standard feature
// names. A nil mapping is computed from t's columns. A mapped column that is
// absent from the table is logged and skipped; extraction never fails.
func (m *Mapper) ExtractFeatures(t *table.Table, mapping *Mapping) *table.Table {
	if mapping == nil {
		mapping = m.FindMatchingColumns(t.Columns())
	}

	out := table.New()
	for _, feat := range mapping.Features() {
		col, _ := mapping.Column(feat)
		values, ok := t.Column(col)
		if !ok {
			m.log.Warn("mapped column not found in table",
				zap.String("feature", feat),
				zap.String("column", col))
			continue
		}
		out.SetColumn(feat, values)
	}

	missing := make([]string, 0)
	for _, feat := range m.order {
		if !mapping.Has(feat) {
			missing = append(missing, feat)
		}
	}
	if len(missing) > 0 {
		m.log.Info("features not present in dataset", zap.Strings("missing", missing))
	}

	return out
}

// AvailableFeatures returns the set of features the given columns can satisfy.
func (m *Mapper) AvailableFeatures(columns []string) map[string]struct{} {
	mapping := m.FindMatchingColumns(columns)
	out := make(map[string]struct{}, mapping.Len())
	for _, feat := range mapping.Features() {
		out[feat] = struct{}{}
	}
	return out
}

// AddCustomPattern registers a feature with the given pattern list. If the
// feature already exists, including the built-ins, its previous patterns are
// discarded entirely. Patterns are case-insensitive regexes matched by
// unanchored search.
func (m *Mapper) AddCustomPattern(name string, patterns []string) error {
	compiled := make([]pattern, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(`(?i)` + p)
		if err != nil {
			return fmt.Errorf("compile pattern %q for feature %q: %w", p, name, err)
		}
		compiled = append(compiled, pattern{raw: p, re: re})
	}
	if _, exists := m.patterns[name]; !exists {
		m.order = append(m.order, name)
	}
	m.patterns[name] = compiled
	return nil
}
