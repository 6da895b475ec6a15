package feature

import (
	"github.com/montanaflynn/stats"
	"go.uber.org/zap"

	"battkit/table"
)

// Missing-value strategies accepted by HandleMissingValues.
const (
	StrategyMean         = "mean"
	StrategyMedian       = "median"
	StrategyDrop         = "drop"
	StrategyForwardFill  = "forward_fill"
	StrategyBackwardFill = "backward_fill"
)

// Strategies lists the recognized missing-value strategies.
func Strategies() []string {
	return []string{StrategyMean, StrategyMedian, StrategyDrop, StrategyForwardFill, StrategyBackwardFill}
}

// HandleMissingValues returns a copy of t with missing cells handled by the
// given strategy. mean and median fill only numeric columns; drop removes any
// row with a missing cell; forward_fill and backward_fill propagate the
// nearest value along row order, leaving leading (resp. trailing) gaps
// missing. An unrecognized strategy is logged and falls back to mean.
func (m *Mapper) HandleMissingValues(t *table.Table, strategy string) *table.Table {
	var clean *table.Table
	switch strategy {
	case StrategyDrop:
		clean = dropMissingRows(t)
	case StrategyMean:
		clean = fillStatistic(t, stats.Mean)
	case StrategyMedian:
		clean = fillStatistic(t, stats.Median)
	case StrategyForwardFill:
		clean = fillDirectional(t, false)
	case StrategyBackwardFill:
		clean = fillDirectional(t, true)
	default:
		m.log.Warn("unknown missing-value strategy, using mean",
			zap.String("strategy", strategy))
		clean = fillStatistic(t, stats.Mean)
	}

	rowsBefore, colsBefore := t.Shape()
	rowsAfter, colsAfter := clean.Shape()
	m.log.Info("missing values handled",
		zap.String("strategy", strategy),
		zap.Int("rows_before", rowsBefore),
		zap.Int("cols_before", colsBefore),
		zap.Int("rows_after", rowsAfter),
		zap.Int("cols_after", colsAfter),
		zap.Int("missing_before", t.MissingCells()),
		zap.Int("missing_after", clean.MissingCells()))

	return clean
}

// numericValues collects the present cells of a column as floats. ok is false
// when the column holds any non-numeric value, mirroring a numeric-only
// statistic: mixed and text columns are left untouched.
func numericValues(values []any) (stats.Float64Data, bool) {
	out := make(stats.Float64Data, 0, len(values))
	for _, v := range values {
		if table.IsMissing(v) {
			continue
		}
		f, ok := table.AsFloat(v)
		if !ok {
			return nil, false
		}
		out = append(out, f)
	}
	return out, true
}

func fillStatistic(t *table.Table, stat func(stats.Float64Data) (float64, error)) *table.Table {
	out := table.New()
	for _, name := range t.Columns() {
		values, _ := t.Column(name)
		numeric, ok := numericValues(values)
		if !ok || len(numeric) == 0 {
			out.SetColumn(name, values)
			continue
		}
		fill, err := stat(numeric)
		if err != nil {
			out.SetColumn(name, values)
			continue
		}
		filled := make([]any, len(values))
		for i, v := range values {
			if table.IsMissing(v) {
				filled[i] = fill
			} else {
				filled[i] = v
			}
		}
		out.SetColumn(name, filled)
	}
	return out
}

func dropMissingRows(t *table.Table) *table.Table {
	rows, _ := t.Shape()
	names := t.Columns()
	cols := make([][]any, len(names))
	for i, name := range names {
		cols[i], _ = t.Column(name)
	}

	keep := make([]int, 0, rows)
	for r := 0; r < rows; r++ {
		complete := true
		for _, col := range cols {
			if table.IsMissing(col[r]) {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, r)
		}
	}

	out := table.New()
	for i, name := range names {
		filtered := make([]any, 0, len(keep))
		for _, r := range keep {
			filtered = append(filtered, cols[i][r])
		}
		out.SetColumn(name, filtered)
	}
	return out
}

func fillDirectional(t *table.Table, backward bool) *table.Table {
	out := table.New()
	for _, name := range t.Columns() {
		values, _ := t.Column(name)
		filled := make([]any, len(values))
		copy(filled, values)
		if backward {
			var last any
			for i := len(filled) - 1; i >= 0; i-- {
				if table.IsMissing(filled[i]) {
					filled[i] = last
				} else {
					last = filled[i]
				}
			}
		} else {
			var last any
			for i := range filled {
				if table.IsMissing(filled[i]) {
					filled[i] = last
				} else {
					last = filled[i]
				}
			}
		}
		out.SetColumn(name, filled)
	}
	return out
}
