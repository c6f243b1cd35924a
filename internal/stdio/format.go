package stdio

import (
	"strconv"

	"tci/internal/vm"
)

// formatString renders a printf-style format from program memory.
// The supported verbs are %d %i %u %x %c %s %p and %%, with a field
// width and the '-' and '0' flags. A directive with no argument left
// is copied to the output verbatim instead of reading stack garbage.
func (l *Lib) formatString(formatAddr uint32, args []uint32) ([]byte, *vm.Fault) {
	format, fault := l.m.LoadCString(formatAddr)
	if fault != nil {
		return nil, fault
	}

	var out []byte
	next := 0
	i := 0
	for i < len(format) {
		c := format[i]
		if c != '%' {
			out = append(out, c)
			i++
			continue
		}

		// разбор директивы: %[flags][width]verb
		j := i + 1
		leftAlign := false
		zeroPad := false
	flagLoop:
		for j < len(format) {
			switch format[j] {
			case '-':
				leftAlign = true
			case '0':
				zeroPad = true
			default:
				break flagLoop
			}
			j++
		}
		width := 0
		for j < len(format) && format[j] >= '0' && format[j] <= '9' {
			width = width*10 + int(format[j]-'0')
			j++
		}
		if j >= len(format) {
			// формат обрывается внутри директивы
			out = append(out, format[i:]...)
			break
		}

		verb := format[j]
		if verb == '%' {
			out = append(out, '%')
			i = j + 1
			continue
		}
		if next >= len(args) {
			out = append(out, format[i:j+1]...)
			i = j + 1
			continue
		}
		arg := args[next]

		var field []byte
		switch verb {
		case 'd', 'i':
			field = strconv.AppendInt(nil, int64(int32(arg)), 10)
		case 'u':
			field = strconv.AppendUint(nil, uint64(arg), 10)
		case 'x':
			field = strconv.AppendUint(nil, uint64(arg), 16)
		case 'c':
			field = []byte{byte(arg)}
		case 's':
			str, fault := l.m.LoadCString(arg)
			if fault != nil {
				return nil, fault
			}
			field = str
		case 'p':
			field = append([]byte("0x"), strconv.AppendUint(nil, uint64(arg), 16)...)
		default:
			// неизвестный глагол — копия как есть, аргумент не тратим
			out = append(out, format[i:j+1]...)
			i = j + 1
			continue
		}
		next++
		out = appendPadded(out, field, width, leftAlign, zeroPad && !leftAlign)
		i = j + 1
	}
	return out, nil
}

// appendPadded pads a field out to width. Zero padding keeps a
// leading sign in front of the zeros.
func appendPadded(out, field []byte, width int, leftAlign, zeroPad bool) []byte {
	pad := width - len(field)
	if pad <= 0 {
		return append(out, field...)
	}
	if leftAlign {
		out = append(out, field...)
		for i := 0; i < pad; i++ {
			out = append(out, ' ')
		}
		return out
	}
	fill := byte(' ')
	if zeroPad {
		fill = '0'
		if len(field) > 0 && field[0] == '-' {
			out = append(out, '-')
			field = field[1:]
			pad = width - len(field) - 1
		}
	}
	for i := 0; i < pad; i++ {
		out = append(out, fill)
	}
	return append(out, field...)
}
