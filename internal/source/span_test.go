package source

import (
	"testing"
)

func TestSpanEmptyAndLen(t *testing.T) {
	tests := []struct {
		name  string
		span  Span
		empty bool
		len   uint32
	}{
		{"zero", Span{}, true, 0},
		{"point", Span{Start: 5, End: 5}, true, 0},
		{"range", Span{Start: 2, End: 7}, false, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Empty(); got != tt.empty {
				t.Errorf("Empty() = %v, want %v", got, tt.empty)
			}
			if got := tt.span.Len(); got != tt.len {
				t.Errorf("Len() = %d, want %d", got, tt.len)
			}
		})
	}
}

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name  string
		base  Span
		other Span
		want  Span
	}{
		{
			name:  "other extends right",
			base:  Span{File: 1, Start: 0, End: 4},
			other: Span{File: 1, Start: 2, End: 9},
			want:  Span{File: 1, Start: 0, End: 9},
		},
		{
			name:  "other extends left",
			base:  Span{File: 1, Start: 6, End: 10},
			other: Span{File: 1, Start: 1, End: 7},
			want:  Span{File: 1, Start: 1, End: 10},
		},
		{
			name:  "other inside",
			base:  Span{File: 1, Start: 0, End: 10},
			other: Span{File: 1, Start: 3, End: 4},
			want:  Span{File: 1, Start: 0, End: 10},
		},
		{
			name:  "different file keeps base",
			base:  Span{File: 1, Start: 4, End: 6},
			other: Span{File: 2, Start: 0, End: 100},
			want:  Span{File: 1, Start: 4, End: 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.base.Cover(tt.other); got != tt.want {
				t.Errorf("Cover() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFileSlice(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("slice.c", []byte("Int x;"))
	f := fs.Get(id)

	if got := string(f.Slice(Span{File: id, Start: 0, End: 3})); got != "Int" {
		t.Errorf("Slice() = %q, want %q", got, "Int")
	}
	if got := string(f.Slice(Span{File: id, Start: 4, End: 5})); got != "x" {
		t.Errorf("Slice() = %q, want %q", got, "x")
	}
	// выход за границы не должен паниковать
	if got := f.Slice(Span{File: id, Start: 100, End: 200}); got != nil {
		t.Errorf("Slice() out of range = %q, want nil", got)
	}
	if got := string(f.Slice(Span{File: id, Start: 4, End: 200})); got != "x;" {
		t.Errorf("Slice() clamped = %q, want %q", got, "x;")
	}
}
