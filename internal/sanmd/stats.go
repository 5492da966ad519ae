package sanmd

import "fmt"

// Stats counts metadata attached during one run, for diagnostics.
type Stats struct {
	// Covered is the number of functions that received a covered record.
	Covered int
	// Atomics is the number of instructions that received an atomics record.
	Atomics int
	// UAR is the number of functions whose mask carries the UAR bit.
	UAR int
}

// Add accumulates another run's counters.
func (s *Stats) Add(other Stats) {
	s.Covered += other.Covered
	s.Atomics += other.Atomics
	s.UAR += other.UAR
}

// String returns a one-line summary.
func (s Stats) String() string {
	return fmt.Sprintf("covered=%d atomics=%d uar=%d", s.Covered, s.Atomics, s.UAR)
}
