package parser

import (
	"tci/internal/ast"
	"tci/internal/diag"
	"tci/internal/source"
)

// Globals — реестр глобальных имён одного файла. Регистр имени сам
// разводит пространства: типы начинаются с прописной буквы, значения
// со строчной, так что пересечься они не могут.
type Globals struct {
	Types  map[source.StringID]ast.TypeID
	Values map[source.StringID]ast.StmtID
}

// CollectGlobals собирает реестр по готовому AST первой фазы и
// заодно проверяет то, что без полного реестра проверить нельзя:
// повторные объявления и ссылки на необъявленные типы. Форвардные
// ссылки легальны — сначала регистрируется весь файл, потом
// резолвятся упоминания.
func CollectGlobals(arenas *ast.Builder, file ast.FileID, bag *diag.Bag, interner *source.Interner) *Globals {
	g := &Globals{
		Types:  make(map[source.StringID]ast.TypeID),
		Values: make(map[source.StringID]ast.StmtID),
	}
	r := diag.BagReporter{Bag: bag}
	f := arenas.Files.Get(file)

	for _, sid := range f.Stmts {
		stmt := arenas.Stmts.Get(sid)
		switch stmt.Kind {
		case ast.StmtDecl:
			decl, _ := arenas.Stmts.Decl(sid)
			g.registerStructs(arenas, decl.Type, r, interner)
			g.registerValue(arenas, decl.Name, decl.NameSpan, sid, r, interner)
		case ast.StmtTypeDecl:
			td, _ := arenas.Stmts.TypeDecl(sid)
			g.registerStructs(arenas, td.Type, r, interner)
		case ast.StmtFunc:
			fn, _ := arenas.Stmts.Func(sid)
			g.registerStructs(arenas, fn.ReturnType, r, interner)
			for _, prm := range arenas.Stmts.CollectParams(fn.ParamsStart, fn.ParamsCount) {
				g.registerStructs(arenas, prm.Type, r, interner)
			}
			if fn.Name != source.NoStringID {
				g.registerFunc(arenas, fn, sid, r, interner)
			}
		}
	}

	// второй проход: все ссылки на именованные типы обязаны резолвиться
	for _, sid := range f.Stmts {
		stmt := arenas.Stmts.Get(sid)
		switch stmt.Kind {
		case ast.StmtDecl:
			decl, _ := arenas.Stmts.Decl(sid)
			g.checkNamedRefs(arenas, decl.Type, r, interner)
		case ast.StmtTypeDecl:
			td, _ := arenas.Stmts.TypeDecl(sid)
			g.checkNamedRefs(arenas, td.Type, r, interner)
		case ast.StmtFunc:
			fn, _ := arenas.Stmts.Func(sid)
			g.checkNamedRefs(arenas, fn.ReturnType, r, interner)
			for _, prm := range arenas.Stmts.CollectParams(fn.ParamsStart, fn.ParamsCount) {
				g.checkNamedRefs(arenas, prm.Type, r, interner)
			}
		}
	}
	return g
}

// walkType обходит узел типа вместе с типами полей вложенных структур.
func walkType(arenas *ast.Builder, ty ast.TypeID, visit func(*ast.Type, ast.TypeID)) {
	node := arenas.Types.Get(ty)
	if node == nil {
		return
	}
	visit(node, ty)
	if node.Kind != ast.TypeStruct {
		return
	}
	if sdecl, ok := arenas.Types.Struct(ty); ok {
		for _, fld := range arenas.Types.CollectFields(sdecl.FieldsStart, sdecl.FieldsCount) {
			walkType(arenas, fld.Type, visit)
		}
	}
}

func (g *Globals) registerStructs(arenas *ast.Builder, ty ast.TypeID, r diag.BagReporter, interner *source.Interner) {
	walkType(arenas, ty, func(node *ast.Type, id ast.TypeID) {
		if node.Kind != ast.TypeStruct || node.Name == source.NoStringID {
			return
		}
		prev, exists := g.Types[node.Name]
		if !exists {
			g.Types[node.Name] = id
			return
		}
		prevNode := arenas.Types.Get(prev)
		r.Report(diag.SemDuplicateGlobal, diag.SevError, node.NameSpan,
			"'"+interner.MustLookup(node.Name)+"' is declared more than once",
			[]diag.Note{{Span: prevNode.NameSpan, Msg: "first declared here"}})
	})
}

func (g *Globals) registerValue(arenas *ast.Builder, name source.StringID, nameSpan source.Span, sid ast.StmtID, r diag.BagReporter, interner *source.Interner) {
	if name == source.NoStringID {
		return
	}
	prev, exists := g.Values[name]
	if !exists {
		g.Values[name] = sid
		return
	}
	r.Report(diag.SemDuplicateGlobal, diag.SevError, nameSpan,
		"'"+interner.MustLookup(name)+"' is declared more than once",
		[]diag.Note{{Span: g.nameSpanOf(arenas, prev), Msg: "first declared here"}})
}

// registerFunc учитывает форвард-объявления: пара "форвард +
// определение" в любом порядке легальна, два определения — нет.
func (g *Globals) registerFunc(arenas *ast.Builder, fn *ast.FuncStmt, sid ast.StmtID, r diag.BagReporter, interner *source.Interner) {
	prev, exists := g.Values[fn.Name]
	if !exists {
		g.Values[fn.Name] = sid
		return
	}
	if prevFn, ok := arenas.Stmts.Func(prev); ok {
		switch {
		case !prevFn.IsDefn && fn.IsDefn:
			g.Values[fn.Name] = sid // определение вытесняет форвард
			return
		case !fn.IsDefn:
			return // повторный форвард безвреден
		}
	}
	r.Report(diag.SemDuplicateGlobal, diag.SevError, fn.NameSpan,
		"'"+interner.MustLookup(fn.Name)+"' is declared more than once",
		[]diag.Note{{Span: g.nameSpanOf(arenas, prev), Msg: "first declared here"}})
}

func (g *Globals) checkNamedRefs(arenas *ast.Builder, ty ast.TypeID, r diag.BagReporter, interner *source.Interner) {
	walkType(arenas, ty, func(node *ast.Type, _ ast.TypeID) {
		if node.Kind != ast.TypeNamed {
			return
		}
		if _, known := g.Types[node.Name]; known {
			return
		}
		r.Report(diag.SemUnknownTypeName, diag.SevError, node.NameSpan,
			"unknown type name '"+interner.MustLookup(node.Name)+"'", nil)
	})
}

func (g *Globals) nameSpanOf(arenas *ast.Builder, sid ast.StmtID) source.Span {
	if decl, ok := arenas.Stmts.Decl(sid); ok {
		return decl.NameSpan
	}
	if fn, ok := arenas.Stmts.Func(sid); ok {
		return fn.NameSpan
	}
	return arenas.Stmts.Get(sid).Span
}
