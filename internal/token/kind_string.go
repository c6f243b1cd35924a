package token

import "strconv"

var kindNames = [...]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	TypeIdent:     "TypeIdent",
	KwInt:         "KwInt",
	KwChar:        "KwChar",
	KwStruct:      "KwStruct",
	KwReturn:      "KwReturn",
	KwIf:          "KwIf",
	KwElse:        "KwElse",
	KwWhile:       "KwWhile",
	KwFor:         "KwFor",
	KwDo:          "KwDo",
	KwBreak:       "KwBreak",
	KwContinue:    "KwContinue",
	KwSizeof:      "KwSizeof",
	KwReserved:    "KwReserved",
	IntLit:        "IntLit",
	CharLit:       "CharLit",
	StringLit:     "StringLit",
	LParen:        "LParen",
	RParen:        "RParen",
	LBrace:        "LBrace",
	RBrace:        "RBrace",
	LBracket:      "LBracket",
	RBracket:      "RBracket",
	Semicolon:     "Semicolon",
	Colon:         "Colon",
	Comma:         "Comma",
	Dot:           "Dot",
	DotDotDot:     "DotDotDot",
	Arrow:         "Arrow",
	Question:      "Question",
	Plus:          "Plus",
	Minus:         "Minus",
	Star:          "Star",
	Slash:         "Slash",
	Percent:       "Percent",
	PlusPlus:      "PlusPlus",
	MinusMinus:    "MinusMinus",
	Assign:        "Assign",
	PlusAssign:    "PlusAssign",
	MinusAssign:   "MinusAssign",
	StarAssign:    "StarAssign",
	SlashAssign:   "SlashAssign",
	PercentAssign: "PercentAssign",
	AmpAssign:     "AmpAssign",
	PipeAssign:    "PipeAssign",
	CaretAssign:   "CaretAssign",
	ShlAssign:     "ShlAssign",
	ShrAssign:     "ShrAssign",
	EqEq:          "EqEq",
	BangEq:        "BangEq",
	Lt:            "Lt",
	LtEq:          "LtEq",
	Gt:            "Gt",
	GtEq:          "GtEq",
	Bang:          "Bang",
	Amp:           "Amp",
	Pipe:          "Pipe",
	Caret:         "Caret",
	Tilde:         "Tilde",
	AndAnd:        "AndAnd",
	OrOr:          "OrOr",
	Shl:           "Shl",
	Shr:           "Shr",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}
