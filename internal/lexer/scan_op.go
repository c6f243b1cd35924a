package lexer

import (
	"tci/internal/token"
)

// scanOperatorOrPunct scans the operator and punctuation set. Жадность:
// try3 раньше try2, try2 раньше одиночного байта.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	mk := func(k token.Kind) token.Token {
		return token.Token{Kind: k, Span: lx.cursor.SpanFrom(start)}
	}

	switch b := lx.cursor.Peek(); b {
	case '(', ')', '{', '}', '[', ']', ';', ':', ',', '?', '~':
		lx.cursor.Bump()
		switch b {
		case '(':
			return mk(token.LParen)
		case ')':
			return mk(token.RParen)
		case '{':
			return mk(token.LBrace)
		case '}':
			return mk(token.RBrace)
		case '[':
			return mk(token.LBracket)
		case ']':
			return mk(token.RBracket)
		case ';':
			return mk(token.Semicolon)
		case ':':
			return mk(token.Colon)
		case ',':
			return mk(token.Comma)
		case '?':
			return mk(token.Question)
		default:
			return mk(token.Tilde)
		}

	case '.':
		if lx.try3('.', '.', '.') {
			return mk(token.DotDotDot)
		}
		if lx.try2('.', '.') {
			// ".." сам по себе не токен
			return lx.invalid(start)
		}
		lx.cursor.Bump()
		return mk(token.Dot)

	case '+':
		if lx.try2('+', '+') {
			return mk(token.PlusPlus)
		}
		if lx.try2('+', '=') {
			return mk(token.PlusAssign)
		}
		lx.cursor.Bump()
		return mk(token.Plus)

	case '-':
		if lx.try2('-', '-') {
			return mk(token.MinusMinus)
		}
		if lx.try2('-', '=') {
			return mk(token.MinusAssign)
		}
		if lx.try2('-', '>') {
			return mk(token.Arrow)
		}
		lx.cursor.Bump()
		return mk(token.Minus)

	case '*':
		if lx.try2('*', '=') {
			return mk(token.StarAssign)
		}
		lx.cursor.Bump()
		return mk(token.Star)

	case '/':
		// комментарии уже сняты в skipTrivia
		if lx.try2('/', '=') {
			return mk(token.SlashAssign)
		}
		lx.cursor.Bump()
		return mk(token.Slash)

	case '%':
		if lx.try2('%', '=') {
			return mk(token.PercentAssign)
		}
		lx.cursor.Bump()
		return mk(token.Percent)

	case '<':
		if lx.try3('<', '<', '=') {
			return mk(token.ShlAssign)
		}
		if lx.try2('<', '<') {
			return mk(token.Shl)
		}
		if lx.try2('<', '=') {
			return mk(token.LtEq)
		}
		lx.cursor.Bump()
		return mk(token.Lt)

	case '>':
		if lx.try3('>', '>', '=') {
			return mk(token.ShrAssign)
		}
		if lx.try2('>', '>') {
			return mk(token.Shr)
		}
		if lx.try2('>', '=') {
			return mk(token.GtEq)
		}
		lx.cursor.Bump()
		return mk(token.Gt)

	case '!':
		if lx.try2('!', '=') {
			return mk(token.BangEq)
		}
		lx.cursor.Bump()
		return mk(token.Bang)

	case '=':
		if lx.try2('=', '=') {
			return mk(token.EqEq)
		}
		lx.cursor.Bump()
		return mk(token.Assign)

	case '&':
		if lx.try2('&', '&') {
			return mk(token.AndAnd)
		}
		if lx.try2('&', '=') {
			return mk(token.AmpAssign)
		}
		lx.cursor.Bump()
		return mk(token.Amp)

	case '|':
		if lx.try2('|', '|') {
			return mk(token.OrOr)
		}
		if lx.try2('|', '=') {
			return mk(token.PipeAssign)
		}
		lx.cursor.Bump()
		return mk(token.Pipe)

	case '^':
		if lx.try2('^', '=') {
			return mk(token.CaretAssign)
		}
		lx.cursor.Bump()
		return mk(token.Caret)

	default:
		// неизвестный байт (в т.ч. не-ASCII)
		lx.cursor.Bump()
		return lx.invalid(start)
	}
}
