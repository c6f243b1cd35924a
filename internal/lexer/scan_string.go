package lexer

import (
	"tci/internal/token"
)

type charResult uint8

const (
	charOK      charResult = iota // обычный символ
	charClosing                   // закрывающая кавычка
	charBad                       // испорченный ввод
)

// readQuotedChar reads one logical character of a quoted literal: handles
// the escape set (\n \' \" \0), line continuations (backslash before a real
// newline), and flags everything else broken: bare newlines, non-ASCII
// bytes, unknown escapes, EOF.
func (lx *Lexer) readQuotedChar(surround byte) (byte, charResult) {
	for {
		if lx.cursor.EOF() {
			return 0, charBad
		}
		b := lx.cursor.Bump()
		if b >= 0x80 {
			return 0, charBad
		}
		if b == surround {
			return 0, charClosing
		}
		if b == '\n' || b == '\r' {
			return 0, charBad
		}
		if b != '\\' {
			return b, charOK
		}

		if lx.cursor.EOF() {
			return 0, charBad
		}
		switch e := lx.cursor.Bump(); e {
		case 'n':
			return '\n', charOK
		case '\n':
			// перенос литерала на следующую строку
			continue
		case '\'':
			return '\'', charOK
		case '"':
			return '"', charOK
		case '0':
			return 0, charOK
		default:
			return 0, charBad
		}
	}
}

// scanString scans "...". Значение не сохраняется — токену достаточно
// span, текст при необходимости перечитывается из файла.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // открывающая '"'

	for {
		_, res := lx.readQuotedChar('"')
		switch res {
		case charClosing:
			return token.Token{Kind: token.StringLit, Span: lx.cursor.SpanFrom(start)}
		case charBad:
			return lx.invalid(start)
		case charOK:
			// продолжаем
		}
	}
}

// scanChar scans 'x'. Пустой литерал, несколько символов и незакрытая
// кавычка — всё Invalid.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // открывающая '\''

	_, res := lx.readQuotedChar('\'')
	if res != charOK {
		return lx.invalid(start)
	}

	if lx.cursor.EOF() || lx.cursor.Bump() != '\'' {
		return lx.invalid(start)
	}
	return token.Token{Kind: token.CharLit, Span: lx.cursor.SpanFrom(start)}
}
