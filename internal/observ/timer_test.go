package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerRecordsPhases(t *testing.T) {
	timer := NewTimer()

	idx := timer.Begin("tokenize")
	timer.End(idx, "3 tokens")
	timer.Add("cache", 2*time.Millisecond, "")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(report.Phases))
	}
	if report.Phases[0].Name != "tokenize" || report.Phases[0].Note != "3 tokens" {
		t.Fatalf("first phase = %+v", report.Phases[0])
	}
	if report.Phases[1].DurationMS != 2 {
		t.Fatalf("cache duration = %.2f ms, want 2", report.Phases[1].DurationMS)
	}

	summary := timer.Summary()
	for _, want := range []string{"timings:", "tokenize", "// 3 tokens", "total"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestEndIgnoresBadIndex(t *testing.T) {
	timer := NewTimer()
	timer.End(-1, "")
	timer.End(5, "")
	if got := len(timer.Report().Phases); got != 0 {
		t.Fatalf("phases = %d, want 0", got)
	}
}

// Merge суммирует одноимённые фазы и сохраняет порядок первого
// появления.
func TestMergeSumsPhasesByName(t *testing.T) {
	total := NewTimer()
	total.Add("tokenize", 2*time.Millisecond, "")
	total.Add("parse", 3*time.Millisecond, "")

	perFile := NewTimer()
	perFile.Add("tokenize", 1*time.Millisecond, "")
	perFile.Add("resolve", 4*time.Millisecond, "")

	total.Merge(perFile)

	report := total.Report()
	want := []struct {
		name string
		ms   float64
	}{
		{"tokenize", 3},
		{"parse", 3},
		{"resolve", 4},
	}
	if len(report.Phases) != len(want) {
		t.Fatalf("phases = %d, want %d", len(report.Phases), len(want))
	}
	for i, w := range want {
		if report.Phases[i].Name != w.name || report.Phases[i].DurationMS != w.ms {
			t.Errorf("phase %d = %s %.2f, want %s %.2f",
				i, report.Phases[i].Name, report.Phases[i].DurationMS, w.name, w.ms)
		}
	}
	if report.TotalMS != 10 {
		t.Errorf("total = %.2f ms, want 10", report.TotalMS)
	}
}

func TestMergeNil(t *testing.T) {
	timer := NewTimer()
	timer.Merge(nil)
	if len(timer.Report().Phases) != 0 {
		t.Fatalf("merge of nil changed the timer")
	}
}
