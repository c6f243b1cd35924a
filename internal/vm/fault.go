package vm

import (
	"fmt"
	"strings"

	"tci/internal/source"
)

// FaultCode identifies the class of a runtime fault.
type FaultCode int

// Stable fault codes - do not change values.
const (
	FaultNullDeref      FaultCode = 1001 // TCI1001: dereference through the null page
	FaultOutOfBounds    FaultCode = 1002 // TCI1002: access past the end of an allocation
	FaultUseAfterFree   FaultCode = 1003 // TCI1003: access to a freed allocation
	FaultDoubleFree     FaultCode = 1004 // TCI1004: second free of the same allocation
	FaultInvalidPointer FaultCode = 1005 // TCI1005: address inside no allocation, live or dead
	FaultOutOfMemory    FaultCode = 1006 // TCI1006: allocation would exceed the memory budget
	FaultThrown         FaultCode = 1999 // TCI1999: raised by the program with a custom kind
)

// String returns the code as "TCI1003" format.
func (c FaultCode) String() string {
	return fmt.Sprintf("TCI%d", c)
}

// Канонические имена классов — ровно те строки, которые программа
// передаёт первым аргументом THROW_ERROR, чтобы получить встроенный код.
const (
	KindNullDeref      = "null-dereference"
	KindOutOfBounds    = "out-of-bounds"
	KindUseAfterFree   = "use-after-free"
	KindDoubleFree     = "double-free"
	KindInvalidPointer = "invalid-pointer"
	KindOutOfMemory    = "out-of-memory"
)

var kindCodes = map[string]FaultCode{
	KindNullDeref:      FaultNullDeref,
	KindOutOfBounds:    FaultOutOfBounds,
	KindUseAfterFree:   FaultUseAfterFree,
	KindDoubleFree:     FaultDoubleFree,
	KindInvalidPointer: FaultInvalidPointer,
	KindOutOfMemory:    FaultOutOfMemory,
}

func codeForKind(kind string) FaultCode {
	if code, ok := kindCodes[kind]; ok {
		return code
	}
	return FaultThrown
}

// Frame represents one frame in the fault backtrace.
type Frame struct {
	Func string
	Span source.Span
}

// Fault is a recoverable runtime error raised through THROW_ERROR.
// The host may abort the running program on it; the host process
// itself keeps going.
type Fault struct {
	Code    FaultCode
	Kind    string
	Message string
	Span    source.Span // Location where the fault was raised
	Frames  []Frame     // Stack frames from top to bottom, already skip-trimmed
}

// Error implements the error interface.
func (f *Fault) Error() string {
	return fmt.Sprintf("fault %s (%s): %s", f.Code, f.Kind, f.Message)
}

// FormatWithFiles formats the fault with resolved file:line:col information.
func (f *Fault) FormatWithFiles(files *source.FileSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("fault %s (%s): %s\n", f.Code, f.Kind, f.Message))

	sb.WriteString("at ")
	sb.WriteString(formatSpan(f.Span, files))
	sb.WriteString("\n")

	if len(f.Frames) > 0 {
		sb.WriteString("backtrace:\n")
		for i, frame := range f.Frames {
			sb.WriteString(fmt.Sprintf("  %d: %s at %s\n", i, frame.Func, formatSpan(frame.Span, files)))
		}
	}

	return sb.String()
}

// formatSpan formats a span as "file:line:col" or "<no-span>" if empty
// or if the span points outside the file set.
func formatSpan(span source.Span, files *source.FileSet) string {
	if files == nil || (span.Start == 0 && span.End == 0) {
		return "<no-span>"
	}
	if int(span.File) >= files.Len() {
		return "<no-span>"
	}

	file := files.Get(span.File)
	start, _ := files.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", file.Path, start.Line, start.Col)
}
