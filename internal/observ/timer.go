// Package observ provides lightweight timing for the command layer.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Timer accumulates wall-clock time per named phase. A phase may run
// many times, concurrently: per-module work on parallel goroutines
// folds into a single line per phase with a unit count.
type Timer struct {
	mu    sync.Mutex
	order []string
	acc   map[string]*phaseAcc
}

type phaseAcc struct {
	dur   time.Duration
	count int
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{acc: make(map[string]*phaseAcc)} }

// Start begins one unit of the named phase. The returned stop function
// folds the elapsed time into the phase total and must be called
// exactly once.
func (t *Timer) Start(name string) func() {
	begin := time.Now()
	return func() { t.add(name, time.Since(begin)) }
}

func (t *Timer) add(name string, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	a, ok := t.acc[name]
	if !ok {
		a = &phaseAcc{}
		t.acc[name] = a
		t.order = append(t.order, name)
	}
	a.dur += d
	a.count++
}

// PhaseReport is the serializable form of one aggregated phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Count      int     `json:"count"`
}

// Report aggregates all phases with their total duration.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report lists phases in first-start order. TotalMS sums phase time
// across goroutines, so it can exceed wall-clock time.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.order) == 0 {
		return Report{}
	}
	report := Report{Phases: make([]PhaseReport, len(t.order))}
	var total time.Duration
	for i, name := range t.order {
		a := t.acc[name]
		total += a.dur
		report.Phases[i] = PhaseReport{
			Name:       name,
			DurationMS: durationToMillis(a.dur),
			Count:      a.count,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

// Summary returns a human-readable rendering of Report.
func (t *Timer) Summary() string {
	report := t.Report()
	var out strings.Builder
	out.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&out, "  %-12s %8.2f ms  x%d\n", p.Name, p.DurationMS, p.Count)
	}
	fmt.Fprintf(&out, "  %-12s %8.2f ms\n", "total", report.TotalMS)
	return out.String()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
