package feature

// Mapping resolves standard feature names to source column names. Entries keep
// their insertion order so extraction output is deterministic. Each feature
// appears at most once and each source column is consumed at most once.
type Mapping struct {
	features []string
	columns  map[string]string
}

func NewMapping() *Mapping {
	return &Mapping{columns: map[string]string{}}
}

// Set binds a feature to a source column, overwriting any previous binding.
func (m *Mapping) Set(feature, column string) {
	if _, exists := m.columns[feature]; !exists {
		m.features = append(m.features, feature)
	}
	m.columns[feature] = column
}

// Column returns the source column bound to the feature.
func (m *Mapping) Column(feature string) (string, bool) {
	col, ok := m.columns[feature]
	return col, ok
}

func (m *Mapping) Has(feature string) bool {
	_, ok := m.columns[feature]
	return ok
}

// Features returns the mapped feature names in insertion order.
func (m *Mapping) Features() []string {
	out := make([]string, len(m.features))
	copy(out, m.features)
	return out
}

// Columns returns the consumed source column names in insertion order.
func (m *Mapping) Columns() []string {
	out := make([]string, 0, len(m.features))
	for _, f := range m.features {
		out = append(out, m.columns[f])
	}
	return out
}

func (m *Mapping) Len() int { return len(m.features) }

// AsMap flattens the mapping for diagnostics.
func (m *Mapping) AsMap() map[string]string {
	out := make(map[string]string, len(m.columns))
	for f, c := range m.columns {
		out[f] = c
	}
	return out
}
