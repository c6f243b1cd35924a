package token

// Value-namespace keywords of the teaching subset (регистрозависимые,
// только lowercase).
var keywords = map[string]Kind{
	"struct":   KwStruct,
	"return":   KwReturn,
	"if":       KwIf,
	"else":     KwElse,
	"while":    KwWhile,
	"for":      KwFor,
	"do":       KwDo,
	"break":    KwBreak,
	"continue": KwContinue,
	"sizeof":   KwSizeof,
}

// C keywords the subset does not support. They still lex as KwReserved so
// the parser can say so instead of reading them as variable names.
var reserved = map[string]struct{}{
	"auto": {}, "case": {}, "char": {}, "const": {}, "default": {},
	"double": {}, "enum": {}, "extern": {}, "float": {}, "goto": {},
	"inline": {}, "int": {}, "long": {}, "register": {}, "restrict": {},
	"short": {}, "signed": {}, "static": {}, "switch": {}, "typedef": {},
	"union": {}, "unsigned": {}, "void": {}, "volatile": {},
}

// Type-namespace builtins (uppercase by the case convention).
var typeKeywords = map[string]Kind{
	"Int":  KwInt,
	"Char": KwChar,
}

// LookupKeyword classifies a value-namespace word: a subset keyword, a
// reserved C keyword (KwReserved), or not a keyword at all.
func LookupKeyword(ident string) (Kind, bool) {
	if k, ok := keywords[ident]; ok {
		return k, true
	}
	if _, ok := reserved[ident]; ok {
		return KwReserved, true
	}
	return Invalid, false
}

// LookupTypeKeyword classifies a type-namespace word as a builtin type.
func LookupTypeKeyword(ident string) (Kind, bool) {
	k, ok := typeKeywords[ident]
	return k, ok
}
