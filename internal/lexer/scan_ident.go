package lexer

import (
	"tci/internal/dialect"
	"tci/internal/token"
)

// scanIdentOrKeyword scans [A-Za-z_][A-Za-z0-9_]* and classifies it.
// Namespace определяется первым символом: прописная буква — пространство
// типов (Int/Char или TypeIdent), иначе — пространство значений (ключевое
// слово или Ident).
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	first := lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	lex := lx.file.Content[sp.Start:sp.End]

	if isUpper(first) {
		if k, ok := token.LookupTypeKeyword(string(lex)); ok {
			return token.Token{Kind: k, Span: sp}
		}
		dialect.RecordIdent(lx.opts.DialectEvidence, string(lex), sp)
		return token.Token{Kind: token.TypeIdent, Span: sp, Sym: lx.opts.Interner.InternBytes(lex)}
	}

	if k, ok := token.LookupKeyword(string(lex)); ok {
		return token.Token{Kind: k, Span: sp}
	}
	dialect.RecordIdent(lx.opts.DialectEvidence, string(lex), sp)
	return token.Token{Kind: token.Ident, Span: sp, Sym: lx.opts.Interner.InternBytes(lex)}
}
