package driver

import (
	"fmt"

	"tci/internal/ast"
	"tci/internal/diag"
	"tci/internal/dialect"
	"tci/internal/lexer"
	"tci/internal/observ"
	"tci/internal/parser"
	"tci/internal/source"
)

// CheckOptions настраивают один прогон проверки.
type CheckOptions struct {
	MaxDiagnostics int  // 0 = дефолт проекта
	Timings        bool // собирать пофазные тайминги
}

// CheckResult — итог полного конвейера: AST, реестр глобалов и все
// диагностики обеих фаз.
type CheckResult struct {
	FileSet  *source.FileSet
	File     *source.File
	Interner *source.Interner
	Builder  *ast.Builder
	AST      ast.FileID
	Globals  *parser.Globals
	Bag      *diag.Bag
	Timing   *observ.Timer // nil, если тайминги не запрашивали
}

// Check runs the full pipeline over one file: phase one, the global
// registry, body resolution.
func Check(path string, opts CheckOptions) (*CheckResult, error) {
	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}
	begin := func(name string) int {
		if timer == nil {
			return -1
		}
		return timer.Begin(name)
	}
	end := func(idx int, note string) {
		if timer == nil {
			return
		}
		timer.End(idx, note)
	}

	fs := source.NewFileSet()
	ph := begin("load_file")
	id, err := fs.Load(path)
	end(ph, path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	file := fs.Get(id)

	interner := source.NewInterner()
	bag := diag.NewBag(diagCap(opts.MaxDiagnostics))
	builder := ast.NewBuilder(ast.Hints{})

	ph = begin("parse")
	evidence := dialect.NewEvidence()
	lx := lexer.New(file, lexer.Options{Interner: interner, DialectEvidence: evidence})
	res := parser.ParseFile(lx, builder, bag)
	end(ph, "")

	ph = begin("resolve")
	globals := parser.CollectGlobals(builder, res.File, bag, interner)
	parser.ResolveBodies(file, builder, res.File, globals, bag, interner)
	emitAlienHint(bag, evidence)
	end(ph, "")

	return &CheckResult{
		FileSet:  fs,
		File:     file,
		Interner: interner,
		Builder:  builder,
		AST:      res.File,
		Globals:  globals,
		Bag:      bag,
		Timing:   timer,
	}, nil
}

