package parser

import (
	"fmt"
	"strings"

	"tci/internal/diag"
	"tci/internal/source"
)

// ClassifyInvalid даёт код и формулировку для Invalid-токена. Дамп
// токенов в драйвере сообщает о мусоре теми же словами, что и парсер.
func ClassifyInvalid(src *source.File, sp source.Span) (diag.Code, string) {
	return classifyInvalid(src, sp)
}

// classifyInvalid восстанавливает по байтам под спаном, что именно не
// понравилось лексеру. Лексер сам молчит; контекст и формулировка —
// зона ответственности парсера.
func classifyInvalid(src *source.File, sp source.Span) (diag.Code, string) {
	text := src.Slice(sp)
	if len(text) == 0 {
		return diag.LexInvalidToken, "invalid token"
	}
	last := text[len(text)-1]
	atEOF := sp.End >= uint32(len(src.Content))

	switch {
	case text[0] == '"':
		switch {
		case last == '\n' || last == '\r':
			return diag.LexUnterminatedString, "string literal is not closed before end of line"
		case atEOF:
			return diag.LexUnterminatedString, "string literal is not terminated"
		case last >= 0x80:
			return diag.LexUnterminatedString, "non-ASCII byte in string literal"
		case len(text) >= 2 && text[len(text)-2] == '\\':
			return diag.LexUnterminatedString, fmt.Sprintf("unknown escape sequence '\\%c' in string literal", last)
		default:
			return diag.LexUnterminatedString, "malformed string literal"
		}
	case text[0] == '\'':
		switch {
		case string(text) == "''":
			return diag.LexBadCharLiteral, "empty character literal"
		case last == '\n' || last == '\r':
			return diag.LexBadCharLiteral, "character literal is not closed before end of line"
		case atEOF:
			return diag.LexBadCharLiteral, "character literal is not terminated"
		case last >= 0x80:
			return diag.LexBadCharLiteral, "non-ASCII byte in character literal"
		case len(text) >= 2 && text[len(text)-2] == '\\':
			return diag.LexBadCharLiteral, fmt.Sprintf("unknown escape sequence '\\%c' in character literal", last)
		default:
			return diag.LexBadCharLiteral, "character literal holds more than one character"
		}
	case len(text) >= 2 && text[0] == '/' && text[1] == '*':
		return diag.LexUnterminatedComment, "block comment is not terminated"
	case string(text) == "..":
		return diag.LexInvalidToken, "'..' is not an operator"
	case isAllDigits(text):
		return diag.LexIntOutOfRange, fmt.Sprintf("integer literal %s does not fit in a 32-bit Int", text)
	case text[0] >= 0x80:
		return diag.LexUnknownChar, fmt.Sprintf("stray byte 0x%02X in source", text[0])
	default:
		return diag.LexUnknownChar, fmt.Sprintf("stray character %q in source", rune(text[0]))
	}
}

func isAllDigits(b []byte) bool {
	for _, c := range b {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(b) > 0
}

// reservedNote — подсказка к зарезервированному слову в позиции типа.
func reservedNote(text string) string {
	switch text {
	case "int":
		return "'int' is reserved; the integer type is spelled 'Int'"
	case "char":
		return "'char' is reserved; the character type is spelled 'Char'"
	default:
		return "'" + text + "' is a reserved keyword"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
