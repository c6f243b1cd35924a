package lexer

import (
	"math"

	"tci/internal/token"
)

// scanNumber scans a run of decimal digits. Литерал обязан помещаться в
// int32; переполнение даёт Invalid по всему литералу, а не молчаливый
// перенос через ноль.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	var value int64
	overflow := false
	for isDec(lx.cursor.Peek()) {
		d := lx.cursor.Bump() - '0'
		if !overflow {
			value = value*10 + int64(d)
			if value > math.MaxInt32 {
				overflow = true
			}
		}
	}

	sp := lx.cursor.SpanFrom(start)
	if overflow {
		return token.Token{Kind: token.Invalid, Span: sp}
	}
	return token.Token{Kind: token.IntLit, Span: sp}
}
