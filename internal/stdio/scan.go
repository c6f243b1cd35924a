package stdio

import "tci/internal/vm"

// Sscanf parses values out of a NUL-terminated string in program
// memory (sscanf). The supported verbs are %d %i %u %x %c %s and %%,
// with an optional field width. Returns the conversion count, or EOF
// when the input ends before the first conversion.
func (l *Lib) Sscanf(srcAddr, formatAddr uint32, args ...uint32) (int32, *vm.Fault) {
	src, fault := l.m.LoadCString(srcAddr)
	if fault != nil {
		return EOF, fault
	}
	format, fault := l.m.LoadCString(formatAddr)
	if fault != nil {
		return EOF, fault
	}

	stored := int32(0)
	next := 0
	pos := 0
	i := 0
	for i < len(format) {
		c := format[i]
		switch {
		case isSpaceByte(c):
			for pos < len(src) && isSpaceByte(src[pos]) {
				pos++
			}
			i++
			continue
		case c != '%':
			if pos >= len(src) || src[pos] != c {
				return scanResult(stored, pos, len(src)), nil
			}
			pos++
			i++
			continue
		}

		// директива %[width]verb
		j := i + 1
		width := 0
		for j < len(format) && format[j] >= '0' && format[j] <= '9' {
			width = width*10 + int(format[j]-'0')
			j++
		}
		if j >= len(format) {
			return scanResult(stored, pos, len(src)), nil
		}
		verb := format[j]
		i = j + 1

		if verb == '%' {
			if pos >= len(src) || src[pos] != '%' {
				return scanResult(stored, pos, len(src)), nil
			}
			pos++
			continue
		}
		if next >= len(args) {
			return stored, nil
		}
		dst := args[next]

		// все глаголы, кроме %c, пропускают пробелы перед полем
		if verb != 'c' {
			for pos < len(src) && isSpaceByte(src[pos]) {
				pos++
			}
		}
		if pos >= len(src) {
			return scanResult(stored, pos, len(src)), nil
		}

		switch verb {
		case 'd', 'i', 'u':
			val, n := scanDecimal(src[pos:], width, verb != 'u')
			if n == 0 {
				return stored, nil
			}
			pos += n
			if fault := l.m.StoreWord(dst, val); fault != nil {
				return EOF, fault
			}
		case 'x':
			val, n := scanHex(src[pos:], width)
			if n == 0 {
				return stored, nil
			}
			pos += n
			if fault := l.m.StoreWord(dst, val); fault != nil {
				return EOF, fault
			}
		case 'c':
			n := 1
			if width > 0 {
				n = width
			}
			if pos+n > len(src) {
				return scanResult(stored, pos, len(src)), nil
			}
			if fault := l.m.Store(dst, src[pos:pos+n]); fault != nil {
				return EOF, fault
			}
			pos += n
		case 's':
			start := pos
			for pos < len(src) && !isSpaceByte(src[pos]) {
				if width > 0 && pos-start == width {
					break
				}
				pos++
			}
			if pos == start {
				return stored, nil
			}
			word := append(append([]byte(nil), src[start:pos]...), 0)
			if fault := l.m.Store(dst, word); fault != nil {
				return EOF, fault
			}
		default:
			// неизвестный глагол прекращает разбор
			return stored, nil
		}
		next++
		stored++
	}
	return stored, nil
}

// scanResult applies the C rule: running out of input before the
// first conversion reports EOF, any later stop reports the count.
func scanResult(stored int32, pos, srcLen int) int32 {
	if stored == 0 && pos >= srcLen {
		return EOF
	}
	return stored
}

func scanDecimal(data []byte, width int, signed bool) (uint32, int) {
	limit := len(data)
	if width > 0 && width < limit {
		limit = width
	}
	i := 0
	neg := false
	if signed && i < limit && (data[i] == '+' || data[i] == '-') {
		neg = data[i] == '-'
		i++
	}
	start := i
	var val uint64
	for i < limit && data[i] >= '0' && data[i] <= '9' {
		val = val*10 + uint64(data[i]-'0')
		i++
	}
	if i == start {
		return 0, 0
	}
	bits := uint32(val)
	if neg {
		bits = -bits
	}
	return bits, i
}

func scanHex(data []byte, width int) (uint32, int) {
	limit := len(data)
	if width > 0 && width < limit {
		limit = width
	}
	i := 0
	// принимаем префикс 0x, только если за ним идёт hex-цифра
	if i+2 < limit && data[i] == '0' && (data[i+1] == 'x' || data[i+1] == 'X') && isHexByte(data[i+2]) {
		i += 2
	}
	start := i
	var val uint64
	for i < limit && isHexByte(data[i]) {
		val = val*16 + uint64(hexByteVal(data[i]))
		i++
	}
	if i == start {
		return 0, 0
	}
	return uint32(val), i
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isHexByte(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func hexByteVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
