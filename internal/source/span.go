package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) inside one file.
// Инвариант: Start <= End.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover widens s until other fits inside it. Spans from different files are
// not comparable; s comes back unchanged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Slice returns the bytes the span covers.
func (f *File) Slice(s Span) []byte {
	if s.Start >= uint32(len(f.Content)) {
		return nil
	}
	end := s.End
	if end > uint32(len(f.Content)) {
		end = uint32(len(f.Content))
	}
	return f.Content[s.Start:end]
}
