package vm_test

import (
	"strings"
	"testing"

	"tci/internal/source"
	"tci/internal/vm"
)

func TestFaultCodeString(t *testing.T) {
	tests := []struct {
		code vm.FaultCode
		want string
	}{
		{vm.FaultNullDeref, "TCI1001"},
		{vm.FaultOutOfBounds, "TCI1002"},
		{vm.FaultUseAfterFree, "TCI1003"},
		{vm.FaultDoubleFree, "TCI1004"},
		{vm.FaultInvalidPointer, "TCI1005"},
		{vm.FaultOutOfMemory, "TCI1006"},
		{vm.FaultThrown, "TCI1999"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("code %d: got %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestFaultError(t *testing.T) {
	m, _ := newMachine(t)
	fault := m.ThrowError("out-of-bounds", "oops", 0)
	want := "fault TCI1002 (out-of-bounds): oops"
	if fault.Error() != want {
		t.Errorf("got %q, want %q", fault.Error(), want)
	}
}

// skip срезает внутренние кадры: отчёт указывает на код пользователя,
// а не на хелпер рантайма, который заметил проблему.
func TestThrowErrorSkipsInnerFrames(t *testing.T) {
	fs := source.NewFileSet()
	fid := fs.AddVirtual("test.c", []byte("Int main() {\n  bad\n}\n"))

	userSpan := source.Span{File: fid, Start: 15, End: 18}
	helperSpan := source.Span{File: fid, Start: 0, End: 3}

	m, _ := newMachine(t)
	m.PushFrame("main", userSpan)
	m.PushFrame("fputs", helperSpan)

	fault := m.ThrowError("out-of-bounds", "oops", 1)

	if len(fault.Frames) != 1 {
		t.Fatalf("frames: got %d, want 1", len(fault.Frames))
	}
	if fault.Frames[0].Func != "main" {
		t.Errorf("top frame: got %q, want %q", fault.Frames[0].Func, "main")
	}
	if fault.Span != userSpan {
		t.Errorf("fault span: got %+v, want the user frame", fault.Span)
	}
}

func TestThrowErrorSkipBeyondDepth(t *testing.T) {
	m, _ := newMachine(t)
	m.PushFrame("main", source.Span{})

	fault := m.ThrowError("out-of-bounds", "oops", 99)
	if len(fault.Frames) != 0 {
		t.Errorf("frames: got %d, want 0", len(fault.Frames))
	}
}

func TestPopFrameUnwinds(t *testing.T) {
	m, _ := newMachine(t)

	m.PushFrame("main", source.Span{})
	m.PushFrame("helper", source.Span{})
	m.PopFrame()

	fault := m.ThrowError("out-of-bounds", "oops", 0)
	if len(fault.Frames) != 1 || fault.Frames[0].Func != "main" {
		t.Errorf("frames after pop: %+v", fault.Frames)
	}
	if m.Depth() != 1 {
		t.Errorf("depth: got %d, want 1", m.Depth())
	}
}

func TestFormatWithFiles(t *testing.T) {
	fs := source.NewFileSet()
	fid := fs.AddVirtual("test.c", []byte("Int main() {\n  bad\n}\n"))

	m, _ := newMachine(t)
	m.PushFrame("main", source.Span{File: fid, Start: 15, End: 18})

	fault := m.ThrowError("use-after-free", "pointer came from a freed block", 0)
	out := fault.FormatWithFiles(fs)

	if !strings.HasPrefix(out, "fault TCI1003 (use-after-free): pointer came from a freed block\n") {
		t.Errorf("header: %q", out)
	}
	if !strings.Contains(out, "at test.c:2:3\n") {
		t.Errorf("location missing: %q", out)
	}
	if !strings.Contains(out, "backtrace:\n  0: main at test.c:2:3\n") {
		t.Errorf("backtrace missing: %q", out)
	}
}

func TestFormatWithFilesNoSpan(t *testing.T) {
	m, _ := newMachine(t)
	fault := m.ThrowError("out-of-memory", "budget exhausted", 0)

	out := fault.FormatWithFiles(source.NewFileSet())
	if !strings.Contains(out, "at <no-span>") {
		t.Errorf("missing placeholder: %q", out)
	}
}
