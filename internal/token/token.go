package token

import (
	"tci/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Sym  source.StringID // only for Ident / TypeIdent
}

// IsIdent reports whether the token is a value-namespace identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsTypeName reports whether the token can begin a non-struct type:
// a user type reference or one of the builtins.
func (t Token) IsTypeName() bool {
	switch t.Kind {
	case TypeIdent, KwInt, KwChar:
		return true
	default:
		return false
	}
}

// IsLiteral reports whether the token is an integer, character, or string
// literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, CharLit, StringLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword, the reserved
// marker included.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwInt, KwChar, KwStruct, KwReturn, KwIf, KwElse, KwWhile, KwFor,
		KwDo, KwBreak, KwContinue, KwSizeof, KwReserved:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is punctuation or an operator.
func (t Token) IsPunctOrOp() bool {
	switch t.Kind {
	case LParen, RParen, LBrace, RBrace, LBracket, RBracket,
		Semicolon, Colon, Comma, Dot, DotDotDot, Arrow, Question,
		Plus, Minus, Star, Slash, Percent, PlusPlus, MinusMinus,
		Assign, PlusAssign, MinusAssign, StarAssign, SlashAssign,
		PercentAssign, AmpAssign, PipeAssign, CaretAssign, ShlAssign,
		ShrAssign, EqEq, BangEq, Lt, LtEq, Gt, GtEq,
		Bang, Amp, Pipe, Caret, Tilde, AndAnd, OrOr, Shl, Shr:
		return true
	default:
		return false
	}
}
