package classify

// Store caches computed breaks per (dataset, attribute) pair. It is
// populated once when a dataset finishes loading and is read-only
// afterwards, so concurrent readers need no locking.
type Store struct {
	classes int
	breaks  map[string]map[string][]float64
}

// NewStore creates an empty store that classifies into classes intervals.
func NewStore(classes int) *Store {
	return &Store{
		classes: classes,
		breaks:  make(map[string]map[string][]float64),
	}
}

// Classes returns the configured class count.
func (s *Store) Classes() int { return s.classes }

// Set computes and caches breaks for one (dataset, attribute) pair and
// returns them. Attributes with no participating values cache an empty
// result, which consumers treat as "nothing to classify".
func (s *Store) Set(dataset, attr string, values []float64) []float64 {
	b := ComputeBreaks(values, s.classes)
	m := s.breaks[dataset]
	if m == nil {
		m = make(map[string][]float64)
		s.breaks[dataset] = m
	}
	m[attr] = b
	return b
}

// Breaks returns the cached breaks for a (dataset, attribute) pair, or
// nil when the attribute was never classified.
func (s *Store) Breaks(dataset, attr string) []float64 {
	return s.breaks[dataset][attr]
}

// Attrs lists the attributes classified for a dataset.
func (s *Store) Attrs(dataset string) []string {
	m := s.breaks[dataset]
	attrs := make([]string, 0, len(m))
	for attr := range m {
		attrs = append(attrs, attr)
	}
	return attrs
}
