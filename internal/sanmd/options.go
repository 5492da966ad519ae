package sanmd

// Options selects which metadata kinds the pass emits. All default to
// off; selection policy lives with the caller.
type Options struct {
	// Covered emits per-function coverage records unconditionally.
	Covered bool
	// Atomics emits per-instruction records for atomic operations.
	Atomics bool
	// UAR marks functions subject to use-after-return checking.
	UAR bool
}

// Or returns the union of two option sets. External overrides OR into
// the base configuration rather than replacing it.
func (o Options) Or(other Options) Options {
	return Options{
		Covered: o.Covered || other.Covered,
		Atomics: o.Atomics || other.Atomics,
		UAR:     o.UAR || other.UAR,
	}
}

// Any reports whether at least one kind is enabled.
func (o Options) Any() bool {
	return o.Covered || o.Atomics || o.UAR
}
