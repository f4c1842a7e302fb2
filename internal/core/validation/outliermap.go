package validation

import (
	"iter"
	"slices"

	"github.com/sdezurik/MolProbity/internal/core/numeric"
	"github.com/sdezurik/MolProbity/internal/core/residue"
)

// Severity is the value an outlier map holds for one residue: a magnitude,
// and for label-based criteria the analyzer's label.
type Severity struct {
	Value float64
	Label string
}

// String renders the label when present, else the value.
func (s Severity) String() string {
	if s.Label != "" {
		return s.Label
	}
	return numeric.Format(s.Value)
}

// OutlierMap maps residue keys to severities and iterates in residue.Compare order.
// The zero value is an empty map.
type OutlierMap struct {
	keys   []residue.Key
	values map[residue.Key]Severity
}

// Len returns the number of outliers.
func (m OutlierMap) Len() int { return len(m.keys) }

// Has reports whether key is an outlier.
func (m OutlierMap) Has(key residue.Key) bool {
	_, ok := m.values[key]
	return ok
}

// Get returns the severity of key.
func (m OutlierMap) Get(key residue.Key) (Severity, bool) {
	s, ok := m.values[key]
	return s, ok
}

// Keys returns the outlier keys in ascending order.
func (m OutlierMap) Keys() []residue.Key {
	return slices.Clone(m.keys)
}

// All iterates the outliers in ascending key order.
func (m OutlierMap) All() iter.Seq2[residue.Key, Severity] {
	return func(yield func(residue.Key, Severity) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Equal reports whether both maps hold the same keys and severities.
func (m OutlierMap) Equal(o OutlierMap) bool {
	if !slices.Equal(m.keys, o.keys) {
		return false
	}
	for k, v := range m.values {
		if o.values[k] != v {
			return false
		}
	}
	return true
}

// OutlierMapBuilder collects entries; Build sorts them once.
type OutlierMapBuilder struct {
	values map[residue.Key]Severity
}

// NewOutlierMapBuilder returns an empty builder.
func NewOutlierMapBuilder() *OutlierMapBuilder {
	return &OutlierMapBuilder{values: make(map[residue.Key]Severity)}
}

// Set records key, replacing any previous severity.
func (b *OutlierMapBuilder) Set(key residue.Key, sev Severity) {
	b.values[key] = sev
}

// SetMax records key unless a larger value is already held.
func (b *OutlierMapBuilder) SetMax(key residue.Key, sev Severity) {
	if prev, ok := b.values[key]; ok && prev.Value >= sev.Value {
		return
	}
	b.values[key] = sev
}

// Build returns the populated map sorted by residue.Compare.
func (b *OutlierMapBuilder) Build() OutlierMap {
	keys := make([]residue.Key, 0, len(b.values))
	values := make(map[residue.Key]Severity, len(b.values))
	for k, v := range b.values {
		keys = append(keys, k)
		values[k] = v
	}
	slices.SortFunc(keys, residue.Compare)
	return OutlierMap{keys: keys, values: values}
}
