package driver

import (
	"fmt"

	"tci/internal/ast"
	"tci/internal/diag"
	"tci/internal/lexer"
	"tci/internal/parser"
	"tci/internal/source"
)

// ParseResult — итог первой фазы: AST сигнатур с захваченными телами.
type ParseResult struct {
	FileSet  *source.FileSet
	File     *source.File
	Interner *source.Interner
	Builder  *ast.Builder
	AST      ast.FileID
	Bag      *diag.Bag
}

// Parse runs phase one over a single file. Function bodies stay
// captured as raw byte ranges; resolving them is Check's job.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	file := fs.Get(id)

	interner := source.NewInterner()
	bag := diag.NewBag(diagCap(maxDiagnostics))
	builder := ast.NewBuilder(ast.Hints{})

	lx := lexer.New(file, lexer.Options{Interner: interner})
	res := parser.ParseFile(lx, builder, bag)

	return &ParseResult{
		FileSet:  fs,
		File:     file,
		Interner: interner,
		Builder:  builder,
		AST:      res.File,
		Bag:      bag,
	}, nil
}
