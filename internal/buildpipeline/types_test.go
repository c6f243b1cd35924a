package buildpipeline

import (
	"testing"
	"time"
)

func TestTimings(t *testing.T) {
	var timings Timings

	if timings.Has(StageParse) {
		t.Fatalf("empty timings report a stage")
	}
	timings.Set(StageTokenize, 2*time.Millisecond)
	timings.Set(StageParse, 3*time.Millisecond)

	if !timings.Has(StageTokenize) {
		t.Fatalf("recorded stage not reported")
	}
	if got := timings.Duration(StageParse); got != 3*time.Millisecond {
		t.Fatalf("parse duration = %v, want 3ms", got)
	}
	if got := timings.Sum(StageTokenize, StageParse, StageResolve); got != 5*time.Millisecond {
		t.Fatalf("sum = %v, want 5ms", got)
	}
}

func TestChannelSink(t *testing.T) {
	ch := make(chan Event, 4)
	sink := ChannelSink{Ch: ch}

	EmitQueued(sink, []string{"a.c", "b.c"})
	EmitFile(sink, "a.c", StageParse, StatusWorking, nil)

	if got := len(ch); got != 3 {
		t.Fatalf("events = %d, want 3", got)
	}
	first := <-ch
	if first.File != "a.c" || first.Stage != StageTokenize || first.Status != StatusQueued {
		t.Fatalf("first event = %+v", first)
	}

	// nil-канал молча глотает события
	ChannelSink{}.OnEvent(Event{File: "x.c"})
}

func TestNormalizeFiles(t *testing.T) {
	got := NormalizeFiles([]string{
		"/proj/src/b.c",
		"/proj/src/a.c",
		"/proj/src/a.c",
		"",
	}, "/proj")

	want := []string{"src/a.c", "src/b.c"}
	if len(got) != len(want) {
		t.Fatalf("files = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("files = %v, want %v", got, want)
		}
	}
}
