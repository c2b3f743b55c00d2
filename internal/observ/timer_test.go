package observ

import (
	"strings"
	"sync"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.Measure("load", func() int { return 3 })
	idx := tm.Begin("lex")
	tm.End(idx, 120, "3 files")
	tm.End(99, 0, "") // неизвестный индекс игнорируется

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "load" || r.Phases[1].Items != 120 {
		t.Fatalf("report = %+v", r)
	}
	if r.TotalMS < r.Phases[1].DurationMS {
		t.Fatalf("total %.3f shorter than a phase %.3f", r.TotalMS, r.Phases[1].DurationMS)
	}
	s := tm.Summary()
	if !strings.Contains(s, "lex") || !strings.Contains(s, "120 items") || !strings.Contains(s, "// 3 files") {
		t.Fatalf("summary:\n%s", s)
	}
}

func TestTimerConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Measure("file", func() int { return 1 })
		}()
	}
	wg.Wait()
	if n := len(tm.Report().Phases); n != 16 {
		t.Fatalf("expected 16 phases, got %d", n)
	}
}

func TestEmptyTimer(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Fatalf("empty timer report = %+v", r)
	}
}
