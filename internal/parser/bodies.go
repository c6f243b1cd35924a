package parser

import (
	"tci/internal/ast"
	"tci/internal/diag"
	"tci/internal/lexer"
	"tci/internal/source"
	"tci/internal/token"
)

// ResolveBodies — вторая фаза: захваченные тела перечитываются тем же
// лексером по сохранённым байтовым диапазонам. Реестр глобалов к
// этому моменту полон, поэтому упоминание типа, объявленного ниже по
// файлу, здесь уже не ошибка — ошибка только имя, которого нет совсем.
func ResolveBodies(src *source.File, arenas *ast.Builder, file ast.FileID, globals *Globals, bag *diag.Bag, interner *source.Interner) {
	r := diag.BagReporter{Bag: bag}
	f := arenas.Files.Get(file)

	for _, sid := range f.Stmts {
		fn, ok := arenas.Stmts.Func(sid)
		if !ok || !fn.IsDefn || fn.Body.Empty() {
			continue
		}

		lx := lexer.NewSlice(src, fn.Body.Start, fn.Body.End, lexer.Options{Interner: interner})
		prev := token.Invalid
		for {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
			// `struct X` в теле — позиция тега, её резолвит интерпретатор
			if tok.Kind == token.TypeIdent && prev != token.KwStruct {
				if _, known := globals.Types[tok.Sym]; !known {
					var notes []diag.Note
					if !fn.NameSpan.Empty() {
						notes = []diag.Note{{Span: fn.NameSpan, Msg: "inside the body of '" + interner.MustLookup(fn.Name) + "'"}}
					}
					r.Report(diag.SemUnknownTypeName, diag.SevError, tok.Span,
						"unknown type name '"+interner.MustLookup(tok.Sym)+"'", notes)
				}
			}
			prev = tok.Kind
		}
	}
}
