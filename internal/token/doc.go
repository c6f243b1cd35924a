// Package token defines the lexical token kinds of the teaching language.
// Invariants:
//   - Token.Span covers the lexeme exactly (half-open byte range).
//   - Token.Sym is an interned handle, set only for Ident and TypeIdent.
//   - The identifier namespace is split by case: an uppercase first letter
//     puts the word in the type namespace (TypeIdent, or the Int/Char
//     builtins), anything else in the value namespace (Ident or a keyword).
//   - Lowercase C keywords outside the teaching subset lex as KwReserved,
//     never as Ident.
package token
