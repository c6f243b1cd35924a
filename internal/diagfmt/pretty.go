package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"

	"tci/internal/diag"
	"tci/internal/source"
)

// palette — цвета вывода; при выключенном цвете все Sprint
// становятся тождественными.
type palette struct {
	err  *color.Color
	warn *color.Color
	info *color.Color
	code *color.Color
	gut  *color.Color
	mark *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:  color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow, color.Bold),
		info: color.New(color.FgCyan),
		code: color.New(color.Bold),
		gut:  color.New(color.FgBlue),
		mark: color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gut, p.mark} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с
// аналогичным форматом. Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)

	for i := range bag.Items() {
		d := &bag.Items()[i]
		if i > 0 {
			fmt.Fprintln(w)
		}

		sev := pal.severity(d.Severity)
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			FormatLocation(fs, d.Primary, opts.PathMode),
			sev.Sprint(d.Severity.String()),
			pal.code.Sprint(d.Code.ID()),
			d.Message,
		)
		writeSnippet(w, fs, d.Primary, int(opts.Context), pal)

		if opts.ShowNotes {
			for _, note := range d.Notes {
				fmt.Fprintf(w, "  %s: %s (%s)\n",
					pal.info.Sprint("note"),
					note.Msg,
					FormatLocation(fs, note.Span, opts.PathMode),
				)
			}
		}
	}
}

// FormatLocation renders a span's start as "path:line:col".
func FormatLocation(fs *source.FileSet, span source.Span, mode PathMode) string {
	if int(span.File) >= fs.Len() {
		return "<unknown>"
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", displayPath(fs, span.File, mode), start.Line, start.Col)
}

func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

// writeSnippet печатает строки исходника вокруг основного спана с
// колонкой номеров и строкой-подчёркиванием под виноватым местом.
func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, context int, pal palette) {
	if int(span.File) >= fs.Len() {
		return
	}
	if context < 0 {
		context = 0
	}
	file := fs.Get(span.File)
	start, end := fs.Resolve(span)

	first := start.Line
	if uint32(context) < first {
		first -= uint32(context)
	} else {
		first = 1
	}
	last := end.Line + uint32(context)

	for line := first; line <= last; line++ {
		text := file.GetLine(line)
		if text == "" && line > start.Line && lineBeyondEOF(file, line) {
			break
		}
		fmt.Fprintf(w, "%s %s\n", pal.gut.Sprintf("%4d |", line), expandTabs(text))

		if line < start.Line || line > end.Line {
			continue
		}
		// подчёркивание: от начала спана в этой строке до его конца
		// либо до конца строки
		from := uint32(0)
		if line == start.Line {
			from = start.Col - 1
		}
		to := displayLen(text)
		if line == end.Line {
			to = end.Col - 1
		}
		if to > displayLen(text) {
			to = displayLen(text)
		}
		pad := displayWidth(text, from)
		width := displayWidth(text, to) - pad
		if width < 1 {
			width = 1
		}
		underline := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "%s %s%s\n",
			pal.gut.Sprint("     |"),
			strings.Repeat(" ", pad),
			pal.mark.Sprint(underline),
		)
	}
}

func lineBeyondEOF(f *source.File, line uint32) bool {
	// строк всего len(LineIdx)+1; дальше GetLine отдаёт пустоту
	return line > uint32(len(f.LineIdx))+1
}

const tabStop = 4

// expandTabs заменяет табуляции пробелами, иначе ширина колонок
// в терминале непредсказуема.
func expandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabStop))
}

func displayLen(s string) uint32 {
	return uint32(len(s))
}

// displayWidth измеряет терминальную ширину первых byteCol байтов
// строки. Текст приводится к NFC перед измерением: комбинируемые
// последовательности занимают одну клетку, не несколько.
func displayWidth(s string, byteCol uint32) int {
	if byteCol > uint32(len(s)) {
		byteCol = uint32(len(s))
	}
	prefix := norm.NFC.String(expandTabs(s[:byteCol]))
	return runewidth.StringWidth(prefix)
}
