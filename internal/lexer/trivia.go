package lexer

import (
	"tci/internal/token"
)

// skipTrivia consumes whitespace and comments in front of the next token.
// Никаких токенов для trivia нет — они просто исчезают. The single failure
// case is a block comment that never closes: the whole tail of the input
// turns into one Invalid token.
func (lx *Lexer) skipTrivia() (token.Token, bool) {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			lx.cursor.Bump()
			continue
		}

		if b == '/' {
			b0, b1, ok := lx.cursor.Peek2()
			if !ok || b0 != '/' {
				break
			}
			switch b1 {
			case '/':
				// строчный комментарий до конца строки
				lx.cursor.Bump()
				lx.cursor.Bump()
				for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
					lx.cursor.Bump()
				}
				continue
			case '*':
				start := lx.cursor.Mark()
				lx.cursor.Bump()
				lx.cursor.Bump()
				if !lx.skipBlockComment() {
					return lx.invalid(start), true
				}
				continue
			default:
				// одиночный '/' — это оператор, не trivia
			}
		}
		break
	}
	return token.Token{}, false
}

// skipBlockComment consumes up to and including the closing */.
// C-style: блочные комментарии не вкладываются.
func (lx *Lexer) skipBlockComment() bool {
	for {
		b0, b1, ok := lx.cursor.Peek2()
		if !ok {
			// добираем последний байт, если он есть
			for !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			return false
		}
		if b0 == '*' && b1 == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return true
		}
		lx.cursor.Bump()
	}
}
