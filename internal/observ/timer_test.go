package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimer_AccumulatesPerPhase(t *testing.T) {
	tm := NewTimer()
	tm.add("load", 2*time.Millisecond)
	tm.add("instrument", 5*time.Millisecond)
	tm.add("load", 3*time.Millisecond)

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(r.Phases))
	}
	if r.Phases[0].Name != "load" || r.Phases[1].Name != "instrument" {
		t.Errorf("phase order = %q, %q; want first-start order", r.Phases[0].Name, r.Phases[1].Name)
	}
	if r.Phases[0].Count != 2 {
		t.Errorf("load count = %d, want 2", r.Phases[0].Count)
	}
	if r.Phases[0].DurationMS != 5 {
		t.Errorf("load duration = %v ms, want 5", r.Phases[0].DurationMS)
	}
	if r.TotalMS != 10 {
		t.Errorf("total = %v ms, want 10", r.TotalMS)
	}
}

func TestTimer_ConcurrentStarts(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for n := 0; n < 16; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stop := tm.Start("instrument")
			stop()
		}()
	}
	wg.Wait()

	r := tm.Report()
	if len(r.Phases) != 1 || r.Phases[0].Count != 16 {
		t.Fatalf("report = %+v, want one phase counted 16 times", r)
	}
}

func TestTimer_Summary(t *testing.T) {
	tm := NewTimer()
	tm.add("load", time.Millisecond)

	s := tm.Summary()
	if !strings.HasPrefix(s, "timings:\n") {
		t.Errorf("summary missing header: %q", s)
	}
	if !strings.Contains(s, "load") || !strings.Contains(s, "x1") {
		t.Errorf("summary missing phase line: %q", s)
	}
	if !strings.Contains(s, "total") {
		t.Errorf("summary missing total line: %q", s)
	}
}
