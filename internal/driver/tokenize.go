package driver

import (
	"fmt"
	"math"

	"fortio.org/safecast"

	"tci/internal/diag"
	"tci/internal/lexer"
	"tci/internal/parser"
	"tci/internal/project"
	"tci/internal/source"
	"tci/internal/token"
)

// TokenizeResult — всё, что нужно потребителю дампа токенов: сами
// токены, интернер для текстов идентификаторов и bag с диагностиками
// по Invalid-токенам.
type TokenizeResult struct {
	FileSet   *source.FileSet
	File      *source.File
	Interner  *source.Interner
	Tokens    []token.Token
	Bag       *diag.Bag
	FromCache bool
}

// Tokenize lexes a single file. When cache is non-nil and holds an
// entry for the current content hash, the token stream is restored
// from disk instead of re-lexing.
func Tokenize(path string, maxDiagnostics int, cache *DiskCache) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	file := fs.Get(id)

	interner := source.NewInterner()
	bag := diag.NewBag(diagCap(maxDiagnostics))

	toks, fromCache := tokenizeFile(file, interner, cache)
	// Диагностики не кешируются: классификация дешёвая и всегда
	// работает по живому содержимому файла.
	reportInvalid(file, toks, bag)

	return &TokenizeResult{
		FileSet:   fs,
		File:      file,
		Interner:  interner,
		Tokens:    toks,
		Bag:       bag,
		FromCache: fromCache,
	}, nil
}

// tokenizeFile отдаёт поток токенов файла: из кеша по хешу содержимого
// или свежей лексацией (с записью в кеш). Ошибки кеша считаются
// промахом — это оптимизация, а не источник истины.
func tokenizeFile(file *source.File, interner *source.Interner, cache *DiskCache) (toks []token.Token, fromCache bool) {
	key := keyFor(file.Hash)

	var payload tokenPayload
	if hit, err := cache.get(key, &payload); err == nil && hit {
		return payload.tokens(file.ID, interner), true
	}

	lx := lexer.New(file, lexer.Options{Interner: interner})
	toks = lexAll(lx)
	_ = cache.put(key, payloadFromTokens(toks, interner))
	return toks, false
}

// lexAll drains the lexer, the final EOF token included.
func lexAll(lx *lexer.Lexer) []token.Token {
	toks := make([]token.Token, 0, 64)
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			return toks
		}
	}
}

// reportInvalid превращает Invalid-токены в диагностики теми же
// словами, что и парсер.
func reportInvalid(src *source.File, toks []token.Token, bag *diag.Bag) {
	for _, t := range toks {
		if t.Kind != token.Invalid {
			continue
		}
		code, msg := parser.ClassifyInvalid(src, t.Span)
		if !bag.Add(diag.NewError(code, t.Span, msg)) {
			return
		}
	}
}

// diagCap нормализует лимит диагностик: ноль и отрицательные значения
// дают дефолт проекта, переполнение uint16 упирается в максимум.
func diagCap(maxDiagnostics int) uint16 {
	if maxDiagnostics <= 0 {
		maxDiagnostics = project.DefaultMaxDiagnostics
	}
	cap16, err := safecast.Conv[uint16](maxDiagnostics)
	if err != nil {
		return math.MaxUint16
	}
	return cap16
}

func payloadFromTokens(toks []token.Token, in *source.Interner) *tokenPayload {
	n := len(toks)
	p := &tokenPayload{
		Schema:  tokenCacheSchema,
		Kinds:   make([]uint8, n),
		Starts:  make([]uint32, n),
		Ends:    make([]uint32, n),
		Syms:    make([]uint32, n),
		Strings: in.Snapshot(),
	}
	for i, t := range toks {
		p.Kinds[i] = uint8(t.Kind)
		p.Starts[i] = t.Span.Start
		p.Ends[i] = t.Span.End
		p.Syms[i] = uint32(t.Sym)
	}
	return p
}

// tokens восстанавливает поток. Снимок интернера проигрывается в
// свежий интернер в исходном порядке, поэтому сохранённые StringID
// остаются действительными.
func (p *tokenPayload) tokens(fileID source.FileID, in *source.Interner) []token.Token {
	if len(p.Strings) > 0 {
		for _, s := range p.Strings[1:] {
			in.Intern(s)
		}
	}
	toks := make([]token.Token, len(p.Kinds))
	for i := range p.Kinds {
		toks[i] = token.Token{
			Kind: token.Kind(p.Kinds[i]),
			Span: source.Span{File: fileID, Start: p.Starts[i], End: p.Ends[i]},
			Sym:  source.StringID(p.Syms[i]),
		}
	}
	return toks
}
