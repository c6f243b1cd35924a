package ast

import (
	"testing"

	"tci/internal/diag"
	"tci/internal/source"
)

func testSpan(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

func TestArenaHandlesAreOneBased(t *testing.T) {
	a := NewArena[int](4)
	if a.Len() != 0 {
		t.Fatalf("fresh arena Len = %d", a.Len())
	}
	first := a.Allocate(10)
	second := a.Allocate(20)
	if first != 1 || second != 2 {
		t.Fatalf("indices = %d, %d; want 1, 2", first, second)
	}
	if a.Get(0) != nil {
		t.Fatalf("Get(0) must be nil")
	}
	if got := *a.Get(first); got != 10 {
		t.Fatalf("Get(1) = %d, want 10", got)
	}
	if a.Get(99) != nil {
		t.Fatalf("Get past end must be nil")
	}
}

func TestVarDeclRoundTrip(t *testing.T) {
	interner := source.NewInterner()
	b := NewBuilder(Hints{})

	ty := b.Types.NewInt(testSpan(0, 3))
	name := interner.Intern("x")
	id := b.Stmts.NewDecl(ty, name, testSpan(4, 5), InitUninitialized, testSpan(0, 6))

	stmt := b.Stmts.Get(id)
	if stmt == nil || stmt.Kind != StmtDecl {
		t.Fatalf("stmt = %+v, want StmtDecl", stmt)
	}
	decl, ok := b.Stmts.Decl(id)
	if !ok {
		t.Fatalf("Decl accessor failed")
	}
	if decl.Name != name || decl.Init != InitUninitialized {
		t.Fatalf("decl = %+v", decl)
	}
	tyNode := b.Types.Get(decl.Type)
	if tyNode.Kind != TypeInt || tyNode.Stars != 0 {
		t.Fatalf("type = %+v, want plain Int", tyNode)
	}
}

func TestStructTypeFieldsRun(t *testing.T) {
	interner := source.NewInterner()
	b := NewBuilder(Hints{})

	intA := b.Types.NewInt(testSpan(15, 18))
	intB := b.Types.NewInt(testSpan(22, 25))
	fields := []FieldSpec{
		{Type: intA, Name: interner.Intern("x"), Span: testSpan(15, 20)},
		{Type: intB, Name: interner.Intern("y"), Span: testSpan(22, 27)},
	}
	id := b.Types.NewStruct(interner.Intern("Point"), testSpan(7, 12), fields, testSpan(13, 29), testSpan(0, 29))

	node := b.Types.Get(id)
	if node.Kind != TypeStruct {
		t.Fatalf("kind = %v, want TypeStruct", node.Kind)
	}
	decl, ok := b.Types.Struct(id)
	if !ok {
		t.Fatalf("Struct accessor failed")
	}
	if decl.FieldsCount != 2 {
		t.Fatalf("FieldsCount = %d, want 2", decl.FieldsCount)
	}
	got := b.Types.CollectFields(decl.FieldsStart, decl.FieldsCount)
	if len(got) != 2 {
		t.Fatalf("CollectFields = %d fields, want 2", len(got))
	}
	if got[0].Name == got[1].Name {
		t.Fatalf("field names must differ")
	}
	if b.Types.Get(got[0].Type).Kind != TypeInt {
		t.Fatalf("first field type is not Int")
	}
}

func TestFuncParamsRun(t *testing.T) {
	interner := source.NewInterner()
	b := NewBuilder(Hints{})

	ret := b.Types.NewInt(testSpan(0, 3))
	params := []ParamSpec{
		{Type: b.Types.NewInt(testSpan(8, 11)), Name: interner.Intern("a"), Span: testSpan(8, 13)},
		{Type: b.Types.NewInt(testSpan(15, 18)), Name: interner.Intern("b"), Span: testSpan(15, 20)},
	}
	body := testSpan(24, 36)
	id := b.Stmts.NewFunc(ret, interner.Intern("add"), testSpan(4, 7), params, true, body, testSpan(0, 38))

	fn, ok := b.Stmts.Func(id)
	if !ok {
		t.Fatalf("Func accessor failed")
	}
	if !fn.IsDefn {
		t.Fatalf("IsDefn = false, want true")
	}
	if fn.ParamsCount != 2 {
		t.Fatalf("ParamsCount = %d, want 2", fn.ParamsCount)
	}
	if fn.Body != body {
		t.Fatalf("Body = %v, want %v", fn.Body, body)
	}
	got := b.Stmts.CollectParams(fn.ParamsStart, fn.ParamsCount)
	if len(got) != 2 {
		t.Fatalf("CollectParams = %d, want 2", len(got))
	}
}

func TestForwardDeclHasNoBody(t *testing.T) {
	b := NewBuilder(Hints{})
	interner := source.NewInterner()

	ret := b.Types.NewInt(testSpan(0, 3))
	id := b.Stmts.NewFunc(ret, interner.Intern("add"), testSpan(4, 7), nil, false, source.Span{}, testSpan(0, 10))

	fn, ok := b.Stmts.Func(id)
	if !ok {
		t.Fatalf("Func accessor failed")
	}
	if fn.IsDefn {
		t.Fatalf("forward declaration must have IsDefn=false")
	}
	if fn.ParamsCount != 0 || fn.ParamsStart.IsValid() {
		t.Fatalf("forward declaration params = %d/%d", fn.ParamsStart, fn.ParamsCount)
	}
	if !fn.Body.Empty() {
		t.Fatalf("forward declaration must have an empty body span")
	}
}

func TestErrorNodesCarryDiagID(t *testing.T) {
	b := NewBuilder(Hints{})

	tyErr := b.Types.NewError(diag.ID(7), testSpan(0, 1))
	if !b.Types.IsError(tyErr) {
		t.Fatalf("IsError(type) = false")
	}
	if got := b.Types.Get(tyErr).Diag; got != diag.ID(7) {
		t.Fatalf("type Diag = %d, want 7", got)
	}

	stmtErr := b.Stmts.NewError(diag.NoID, testSpan(0, 1))
	if !b.Stmts.IsError(stmtErr) {
		t.Fatalf("IsError(stmt) = false")
	}
	if got := b.Stmts.Get(stmtErr).Diag; got != diag.NoID {
		t.Fatalf("dropped diagnostic must leave NoID, got %d", got)
	}
}

func TestAccessorsRejectWrongKind(t *testing.T) {
	b := NewBuilder(Hints{})
	interner := source.NewInterner()

	ty := b.Types.NewInt(testSpan(0, 3))
	declID := b.Stmts.NewDecl(ty, interner.Intern("x"), testSpan(4, 5), InitUninitialized, testSpan(0, 6))

	if _, ok := b.Stmts.Func(declID); ok {
		t.Fatalf("Func accessor accepted a Decl")
	}
	if _, ok := b.Stmts.TypeDecl(declID); ok {
		t.Fatalf("TypeDecl accessor accepted a Decl")
	}
	if _, ok := b.Types.Struct(ty); ok {
		t.Fatalf("Struct accessor accepted an Int")
	}
}

func TestPushStmtKeepsOrder(t *testing.T) {
	b := NewBuilder(Hints{})
	interner := source.NewInterner()

	fileID := b.NewFile(testSpan(0, 100))
	first := b.Stmts.NewDecl(b.Types.NewInt(testSpan(0, 3)), interner.Intern("x"), testSpan(4, 5), InitUninitialized, testSpan(0, 6))
	second := b.Stmts.NewDecl(b.Types.NewChar(testSpan(8, 12)), interner.Intern("y"), testSpan(13, 14), InitUninitialized, testSpan(8, 15))
	b.PushStmt(fileID, first)
	b.PushStmt(fileID, second)

	file := b.Files.Get(fileID)
	if len(file.Stmts) != 2 || file.Stmts[0] != first || file.Stmts[1] != second {
		t.Fatalf("file stmts = %v", file.Stmts)
	}
}
