package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddVirtualAssignsSequentialIDs(t *testing.T) {
	fs := NewFileSet()

	a := fs.AddVirtual("a.c", []byte("Int a;"))
	b := fs.AddVirtual("b.c", []byte("Int b;"))

	if a == b {
		t.Fatalf("expected distinct IDs, got %d twice", a)
	}
	if fs.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", fs.Len())
	}
	if fs.Get(a).Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag on virtual file")
	}
}

func TestAddSamePathTwiceIndexPointsAtNewest(t *testing.T) {
	fs := NewFileSet()

	fs.Add("x.c", []byte("old"), 0)
	newer := fs.Add("x.c", []byte("new"), 0)

	f, ok := fs.GetByPath("x.c")
	if !ok {
		t.Fatal("GetByPath failed for registered path")
	}
	if f.ID != newer {
		t.Errorf("index points at %d, want newest %d", f.ID, newer)
	}
	if string(f.Content) != "new" {
		t.Errorf("content = %q, want %q", f.Content, "new")
	}
}

func TestHashChangesWithContent(t *testing.T) {
	fs := NewFileSet()

	a := fs.AddVirtual("a.c", []byte("Int x;"))
	b := fs.AddVirtual("b.c", []byte("Int y;"))
	c := fs.AddVirtual("c.c", []byte("Int x;"))

	if fs.Get(a).Hash == fs.Get(b).Hash {
		t.Error("different content produced identical hashes")
	}
	if fs.Get(a).Hash != fs.Get(c).Hash {
		t.Error("identical content produced different hashes")
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.c")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Int x;\r\nInt y;\r\n")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	f := fs.Get(id)
	if string(f.Content) != "Int x;\nInt y;\n" {
		t.Errorf("content = %q, want normalized form", f.Content)
	}
	if f.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM flag")
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Error("expected FileNormalizedCRLF flag")
	}
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.c")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

// TestResolveMultiline проверяет строки и колонки после первого перевода строки.
func TestResolveMultiline(t *testing.T) {
	fs := NewFileSet()
	// offsets:  0123 456 789
	content := "ab\ncd\nef"
	id := fs.AddVirtual("m.c", []byte(content))

	tests := []struct {
		name string
		off  uint32
		want LineCol
	}{
		{"first byte", 0, LineCol{Line: 1, Col: 1}},
		{"newline belongs to its line", 2, LineCol{Line: 1, Col: 3}},
		{"start of second line", 3, LineCol{Line: 2, Col: 1}},
		{"inside second line", 4, LineCol{Line: 2, Col: 2}},
		{"start of third line", 6, LineCol{Line: 3, Col: 1}},
		{"last byte", 7, LineCol{Line: 3, Col: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
			if start != tt.want {
				t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
			}
		})
	}
}

func TestResolveUTF8(t *testing.T) {
	fs := NewFileSet()
	// α занимает два байта
	id := fs.AddVirtual("u.c", []byte("α\n"))

	start, end := fs.Resolve(Span{File: id, Start: 0, End: 1})
	if (start != LineCol{Line: 1, Col: 1}) {
		t.Errorf("start = %+v, want 1:1", start)
	}
	if (end != LineCol{Line: 1, Col: 2}) {
		t.Errorf("end = %+v, want 1:2", end)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("l.c", []byte("Int x;\nInt y;\nInt z;"))
	f := fs.Get(id)

	tests := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "Int x;"},
		{2, "Int y;"},
		{3, "Int z;"},
		{4, ""},
	}

	for _, tt := range tests {
		if got := f.GetLine(tt.line); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestFormatPathModes(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("dir/file.c", []byte(""))
	f := fs.Get(id)

	if got := f.FormatPath("basename", ""); got != "file.c" {
		t.Errorf("basename = %q, want %q", got, "file.c")
	}
	if got := f.FormatPath("auto", ""); got != "dir/file.c" {
		t.Errorf("auto for short path = %q, want unchanged", got)
	}
	if got := f.FormatPath("", ""); got != "dir/file.c" {
		t.Errorf("unknown mode = %q, want raw path", got)
	}
}
