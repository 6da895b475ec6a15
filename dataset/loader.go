// Package dataset loads battery test datasets from disk and normalizes them
// onto standardized feature columns. Format dispatch is by file extension;
// reader options pass through to the target format reader untouched.
package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"battkit/feature"
	"battkit/internal/config"
	"battkit/internal/logging"
	"battkit/table"
)

// Options carries format-reader settings as a name -> value map. Each reader
// picks out the keys it understands and ignores the rest; no validation
// happens here.
type Options map[string]any

// UnsupportedFormatError is returned when a file extension matches none of
// the supported formats.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s", e.Ext)
}

// Result bundles everything a single process call produced.
type Result struct {
	RawData           *table.Table
	ProcessedData     *table.Table
	FeatureMapping    *feature.Mapping
	AvailableFeatures []string
}

// Loader reads raw tables from files and delegates matching and extraction to
// its feature mapper.
type Loader struct {
	mapper          *feature.Mapper
	log             *zap.Logger
	defaultSheet    string
	defaultStrategy string
}

// NewLoader builds a Loader around the given mapper. A nil mapper gets a
// fresh one with the built-in feature specs; a nil logger disables
// diagnostics.
func NewLoader(mapper *feature.Mapper, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	if mapper == nil {
		mapper = feature.NewMapper(log)
	}
	return &Loader{mapper: mapper, log: log, defaultStrategy: feature.StrategyMean}
}

// NewLoaderFromEnv wires configuration and the diagnostic logger from the
// environment (and .env, if present) for callers that do not inject their
// own.
func NewLoaderFromEnv() (*Loader, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg)
	if err != nil {
		return nil, err
	}
	l := NewLoader(feature.NewMapper(log), log)
	l.defaultSheet = cfg.XLSXSheet
	if cfg.MissingStrategy != "" {
		l.defaultStrategy = cfg.MissingStrategy
	}
	return l, nil
}

// Mapper exposes the loader's feature mapper so callers can register custom
// patterns between loads.
func (l *Loader) Mapper() *feature.Mapper { return l.mapper }

// LoadDataset reads a raw table from path, dispatching on the file extension
// (case-insensitive). Supported: .csv, .xlsx, .xls, .parquet, .json.
func (l *Loader) LoadDataset(path string, opts Options) (*table.Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		return readCSV(path, opts)
	case ".xlsx", ".xls":
		return readSpreadsheet(path, l.withDefaultSheet(opts))
	case ".parquet":
		return readParquet(path, opts)
	case ".json":
		return readJSON(path, opts)
	default:
		return nil, &UnsupportedFormatError{Ext: ext}
	}
}

// ProcessDataset loads path and extracts standardized features from it.
func (l *Loader) ProcessDataset(path string, opts Options) (*Result, error) {
	raw, err := l.LoadDataset(path, opts)
	if err != nil {
		return nil, err
	}
	return l.process(raw), nil
}

// ProcessTable runs matching and extraction on a caller-supplied table,
// skipping the load step.
func (l *Loader) ProcessTable(t *table.Table) *Result {
	return l.process(t)
}

// CleanMissing applies the loader's configured default missing-value strategy.
func (l *Loader) CleanMissing(t *table.Table) *table.Table {
	return l.mapper.HandleMissingValues(t, l.defaultStrategy)
}

func (l *Loader) process(raw *table.Table) *Result {
	rows, cols := raw.Shape()
	l.log.Info("dataset loaded",
		zap.Int("rows", rows),
		zap.Int("columns", cols),
		zap.Strings("column_names", raw.Columns()))

	mapping := l.mapper.FindMatchingColumns(raw.Columns())
	l.log.Info("feature mapping detected", zap.Any("mapping", mapping.AsMap()))

	processed := l.mapper.ExtractFeatures(raw, mapping)
	prows, pcols := processed.Shape()
	l.log.Info("features extracted",
		zap.Int("rows", prows),
		zap.Int("columns", pcols),
		zap.Strings("features", processed.Columns()))

	return &Result{
		RawData:           raw,
		ProcessedData:     processed,
		FeatureMapping:    mapping,
		AvailableFeatures: processed.Columns(),
	}
}

func (l *Loader) withDefaultSheet(opts Options) Options {
	if l.defaultSheet == "" {
		return opts
	}
	if _, ok := opts["sheet"]; ok {
		return opts
	}
	merged := Options{"sheet": l.defaultSheet}
	for k, v := range opts {
		merged[k] = v
	}
	return merged
}
