package lexer

import (
	"tci/internal/dialect"
	"tci/internal/source"
	"tci/internal/token"
)

// Lexer produces tokens lazily, one Next() at a time. Malformed input is
// classified as token.Invalid instead of being reported here.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // однотокенный буфер для Peek
	prev   token.Token  // последний произведённый токен, окно для пар улик
}

// New creates a lexer over the whole file.
func New(file *source.File, opts Options) *Lexer {
	if opts.Interner == nil {
		opts.Interner = source.NewInterner()
	}
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// NewSlice creates a lexer bounded to [start, end) of the file. Phase two
// re-lexes a captured function body exactly this way.
func NewSlice(file *source.File, start, end uint32, opts Options) *Lexer {
	if opts.Interner == nil {
		opts.Interner = source.NewInterner()
	}
	return &Lexer{
		file:   file,
		cursor: NewSliceCursor(file, start, end),
		opts:   opts,
	}
}

// Next returns the next significant token. Past the end of input it keeps
// returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		// Повтор из буфера Peek: токен уже наблюдался при производстве.
		tok := *lx.look
		lx.look = nil
		return tok
	}
	return lx.produce()
}

func (lx *Lexer) produce() token.Token {
	// Пробелы и комментарии пропускаются молча; незакрытый /* становится
	// токеном Invalid.
	if bad, found := lx.skipTrivia(); found {
		return lx.observe(bad)
	}

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	var tok token.Token
	switch {
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanString()
	case ch == '\'':
		tok = lx.scanChar()
	default:
		tok = lx.scanOperatorOrPunct()
	}
	return lx.observe(tok)
}

// observe feeds the fresh token into dialect-evidence collection and
// slides the two-token window.
func (lx *Lexer) observe(tok token.Token) token.Token {
	if lx.opts.DialectEvidence != nil {
		dialect.ObserveTokenPair(lx.opts.DialectEvidence, lx.opts.Interner, lx.prev, tok)
	}
	lx.prev = tok
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Interner exposes the interner identifiers were added to.
func (lx *Lexer) Interner() *source.Interner {
	return lx.opts.Interner
}

// File exposes the file being lexed.
func (lx *Lexer) File() *source.File {
	return lx.file
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) invalid(start Mark) token.Token {
	return token.Token{Kind: token.Invalid, Span: lx.cursor.SpanFrom(start)}
}
