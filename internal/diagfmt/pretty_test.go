package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"tci/internal/diag"
	"tci/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()

	content := []byte("Int x = 42;\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.c", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.FutAssignInit,
		source.Span{File: fileID, Start: 6, End: 10},
		"initialized declarations are not interpreted",
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{
			name:     "Absolute path",
			mode:     PathModeAbsolute,
			contains: "/home/user/project/src/test.c",
		},
		{
			name:     "Relative path",
			mode:     PathModeRelative,
			contains: "src/test.c",
		},
		{
			name:     "Basename only",
			mode:     PathModeBasename,
			contains: "test.c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			opts := PrettyOpts{
				Color:    false,
				Context:  1,
				PathMode: tt.mode,
			}

			Pretty(&buf, bag, fs, opts)
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "error") {
				t.Error("Expected severity in output")
			}
			if !strings.Contains(output, "FUT7001") {
				t.Error("Expected FUT7001 code in output")
			}
			if !strings.Contains(output, "initialized declarations") {
				t.Error("Expected message in output")
			}
		})
	}
}

// TestPathModeAuto проверяет авто-режим выбора пути
func TestPathModeAuto(t *testing.T) {
	fs := source.NewFileSet()

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "Short path - as is",
			path:     "test.c",
			expected: "test.c:1:7",
		},
		{
			name:     "Long absolute path - basename",
			path:     "/very/long/absolute/path/to/some/nested/directory/file.c",
			expected: "file.c:1:7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := []byte("Int x @ 3;\n")
			fileID := fs.AddVirtual(tt.path, content)

			bag := diag.NewBag(10)
			bag.Add(diag.New(
				diag.SevError,
				diag.LexUnknownChar,
				source.Span{File: fileID, Start: 6, End: 7},
				"stray '@' in program",
			))

			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 0, PathMode: PathModeAuto})

			if !strings.Contains(buf.String(), tt.expected) {
				t.Errorf("Expected %q in output, got:\n%s", tt.expected, buf.String())
			}
		})
	}
}

// Подчёркивание должно стоять ровно под виноватыми байтами.
func TestUnderlineColumn(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.c", []byte("Int x @ 3;\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnknownChar,
		source.Span{File: fileID, Start: 6, End: 7},
		"stray '@' in program",
	))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 0, PathMode: PathModeBasename})
	output := buf.String()

	if !strings.Contains(output, "   1 | Int x @ 3;") {
		t.Errorf("Expected gutter line, got:\n%s", output)
	}
	if !strings.Contains(output, "     |       ^\n") {
		t.Errorf("Expected caret under the '@' column, got:\n%s", output)
	}
}

// Спан через границу строки подчёркивается на обеих строках: до конца
// первой и от начала второй.
func TestUnderlineSpansTwoLines(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.c", []byte("Int x\n= 2;\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.FutAssignInit,
		source.Span{File: fileID, Start: 4, End: 9},
		"initialized declarations are not interpreted",
	))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 0, PathMode: PathModeBasename})
	output := buf.String()

	for _, want := range []string{
		"   1 | Int x",
		"     |     ^\n",
		"   2 | = 2;",
		"     | ^~~\n",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got:\n%s", want, output)
		}
	}
}

// Табуляция раскрывается в пробелы и в тексте, и в отступе каретки,
// иначе колонки разъезжаются.
func TestUnderlineAfterTab(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.c", []byte("\tInt x;\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevWarning,
		diag.SynTypeNameCase,
		source.Span{File: fileID, Start: 1, End: 4},
		"type names start with a capital letter",
	))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 0, PathMode: PathModeBasename})
	output := buf.String()

	if !strings.Contains(output, "   1 |     Int x;") {
		t.Errorf("Expected tab expanded to spaces, got:\n%s", output)
	}
	if !strings.Contains(output, "     |     ^~~\n") {
		t.Errorf("Expected caret shifted past the tab, got:\n%s", output)
	}
}

func TestColorToggle(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.c", []byte("Int x @ 3;\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnknownChar,
		source.Span{File: fileID, Start: 6, End: 7},
		"stray '@' in program",
	))

	render := func(enabled bool) string {
		var buf bytes.Buffer
		Pretty(&buf, bag, fs, PrettyOpts{Color: enabled, Context: 0})
		return buf.String()
	}

	if colored := render(true); !strings.Contains(colored, "\x1b[") {
		t.Errorf("Expected escape sequences with color on, got:\n%q", colored)
	}
	if plain := render(false); strings.Contains(plain, "\x1b[") {
		t.Errorf("Expected plain text with color off, got:\n%q", plain)
	}
}

func TestNotesToggle(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.c", []byte("Int x = 42;\n"))

	d := diag.New(
		diag.SevError,
		diag.FutAssignInit,
		source.Span{File: fileID, Start: 6, End: 10},
		"initialized declarations are not interpreted",
	)
	d.Notes = append(d.Notes, diag.Note{
		Span: source.Span{File: fileID, Start: 4, End: 5},
		Msg:  "declared here",
	})
	bag := diag.NewBag(10)
	bag.Add(d)

	var with bytes.Buffer
	Pretty(&with, bag, fs, PrettyOpts{ShowNotes: true, PathMode: PathModeBasename})
	if !strings.Contains(with.String(), "note: declared here (test.c:1:5)") {
		t.Errorf("Expected note line, got:\n%s", with.String())
	}

	var without bytes.Buffer
	Pretty(&without, bag, fs, PrettyOpts{ShowNotes: false, PathMode: PathModeBasename})
	if strings.Contains(without.String(), "note:") {
		t.Errorf("Expected notes suppressed, got:\n%s", without.String())
	}
}

// Между диагностиками ровно одна пустая строка, после последней — нет.
func TestDiagnosticsSeparatedByBlankLine(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.c", []byte("Int x @ 3;\n@ y;\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnknownChar,
		source.Span{File: fileID, Start: 6, End: 7}, "stray '@' in program"))
	bag.Add(diag.New(diag.SevError, diag.LexUnknownChar,
		source.Span{File: fileID, Start: 11, End: 12}, "stray '@' in program"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 0})
	output := buf.String()

	if strings.Count(output, "\n\n") != 1 {
		t.Errorf("Expected exactly one blank separator, got:\n%q", output)
	}
	if strings.HasSuffix(output, "\n\n") {
		t.Errorf("Expected no trailing blank line, got:\n%q", output)
	}
}

func TestFormatLocationUnknownFile(t *testing.T) {
	fs := source.NewFileSet()

	got := FormatLocation(fs, source.Span{File: 99, Start: 0, End: 1}, PathModeAuto)
	if got != "<unknown>" {
		t.Errorf("FormatLocation: got %q, want %q", got, "<unknown>")
	}
}
