package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid marks a span the lexer could not classify; the parser owns
	// the error message.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident is a value-namespace identifier (lowercase or '_' first letter).
	Ident
	// TypeIdent is a type-namespace identifier (uppercase first letter).
	TypeIdent

	// KwInt is the 'Int' builtin type keyword.
	KwInt // Int
	// KwChar is the 'Char' builtin type keyword.
	KwChar // Char
	// KwStruct is the 'struct' keyword.
	KwStruct // struct
	// KwReturn is the 'return' keyword.
	KwReturn // return
	// KwIf is the 'if' keyword.
	KwIf // if
	// KwElse is the 'else' keyword.
	KwElse // else
	// KwWhile is the 'while' keyword.
	KwWhile // while
	// KwFor is the 'for' keyword.
	KwFor // for
	// KwDo is the 'do' keyword.
	KwDo // do
	// KwBreak is the 'break' keyword.
	KwBreak // break
	// KwContinue is the 'continue' keyword.
	KwContinue // continue
	// KwSizeof is the 'sizeof' keyword.
	KwSizeof // sizeof
	// KwReserved is any recognized C keyword the teaching subset does not
	// support (int, void, static, typedef, ...).
	KwReserved

	// IntLit is a decimal integer literal (fits in int32).
	IntLit
	// CharLit is a single-byte character literal.
	CharLit
	// StringLit is a double-quoted string literal.
	StringLit

	// LParen is the left parenthesis token.
	LParen // (
	// RParen is the right parenthesis token.
	RParen // )
	// LBrace is the left brace token.
	LBrace // {
	// RBrace is the right brace token.
	RBrace // }
	// LBracket is the left bracket token.
	LBracket // [
	// RBracket is the right bracket token.
	RBracket // ]
	// Semicolon is the ';' token.
	Semicolon // ;
	// Colon is the ':' token.
	Colon // :
	// Comma is the ',' token.
	Comma // ,
	// Dot is the '.' member access token.
	Dot // .
	// DotDotDot is the '...' token.
	DotDotDot // ...
	// Arrow is the '->' member access token.
	Arrow // ->
	// Question is the '?' token.
	Question // ?

	// Plus is the '+' operator token.
	Plus // +
	// Minus is the '-' operator token.
	Minus // -
	// Star is the '*' operator token (also pointer indirection).
	Star // *
	// Slash is the '/' operator token.
	Slash // /
	// Percent is the '%' operator token.
	Percent // %
	// PlusPlus is the '++' operator token.
	PlusPlus // ++
	// MinusMinus is the '--' operator token.
	MinusMinus // --

	// Assign is the '=' operator token.
	Assign // =
	// PlusAssign is the '+=' operator token.
	PlusAssign // +=
	// MinusAssign is the '-=' operator token.
	MinusAssign // -=
	// StarAssign is the '*=' operator token.
	StarAssign // *=
	// SlashAssign is the '/=' operator token.
	SlashAssign // /=
	// PercentAssign is the '%=' operator token.
	PercentAssign // %=
	// AmpAssign is the '&=' operator token.
	AmpAssign // &=
	// PipeAssign is the '|=' operator token.
	PipeAssign // |=
	// CaretAssign is the '^=' operator token.
	CaretAssign // ^=
	// ShlAssign is the '<<=' operator token.
	ShlAssign // <<=
	// ShrAssign is the '>>=' operator token.
	ShrAssign // >>=

	// EqEq is the '==' operator token.
	EqEq // ==
	// BangEq is the '!=' operator token.
	BangEq // !=
	// Lt is the '<' operator token.
	Lt // <
	// LtEq is the '<=' operator token.
	LtEq // <=
	// Gt is the '>' operator token.
	Gt // >
	// GtEq is the '>=' operator token.
	GtEq // >=

	// Bang is the '!' operator token.
	Bang // !
	// Amp is the '&' operator token (also address-of).
	Amp // &
	// Pipe is the '|' operator token.
	Pipe // |
	// Caret is the '^' operator token.
	Caret // ^
	// Tilde is the '~' operator token.
	Tilde // ~
	// AndAnd is the '&&' operator token.
	AndAnd // &&
	// OrOr is the '||' operator token.
	OrOr // ||
	// Shl is the '<<' operator token.
	Shl // <<
	// Shr is the '>>' operator token.
	Shr // >>
)
