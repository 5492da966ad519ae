package sanmd

// KindSet is an insertion-ordered, duplicate-free set of metadata
// kinds. Iteration order equals first-insertion order, which keeps
// emitted symbols and sections stable across runs on identical input.
// The zero value is an empty set.
type KindSet struct {
	present [numKinds]bool
	order   []KindID
}

// Insert adds kinds not already present, preserving first-insertion
// order.
func (s *KindSet) Insert(kinds ...KindID) {
	for _, k := range kinds {
		if s.present[k] {
			continue
		}
		s.present[k] = true
		s.order = append(s.order, k)
	}
}

// Contains reports whether the kind is present.
func (s *KindSet) Contains(k KindID) bool {
	return s.present[k]
}

// Empty reports whether no kinds have been inserted.
func (s *KindSet) Empty() bool {
	return len(s.order) == 0
}

// Kinds returns the kinds in first-insertion order. The returned slice
// is owned by the set and must not be modified.
func (s *KindSet) Kinds() []KindID {
	return s.order
}
