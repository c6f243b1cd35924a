package ast

import (
	"fmt"

	"fortio.org/safecast"

	"tci/internal/diag"
	"tci/internal/source"
)

type StmtKind uint8

const (
	// StmtError — разбор объявления провалился; Diag указывает на
	// причину. Как и TypeError, вариант терминален.
	StmtError StmtKind = iota
	// StmtDecl - объявление переменной: тип плюс имя
	StmtDecl
	// StmtTypeDecl - голое объявление типа без имени (struct-определение)
	StmtTypeDecl
	// StmtFunc - сигнатура функции, возможно с отложенным телом
	StmtFunc
)

// InitState — состояние инициализатора объявления. Объявления с `=`
// распознаются, но их интерпретация не написана: парсер выдаёт
// диагностику FutAssignInit и ошибочный узел.
type InitState uint8

const InitUninitialized InitState = 0

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
	Diag    diag.ID // StmtError -> запись в Bag
}

// DeclStmt — объявление переменной.
type DeclStmt struct {
	Type     TypeID
	Name     source.StringID
	NameSpan source.Span
	Init     InitState
	Span     source.Span
}

// TypeDeclStmt — объявление типа без связанного имени переменной.
type TypeDeclStmt struct {
	Type TypeID
	Span source.Span
}

// FuncStmt — функция. Body — байтовый диапазон между фигурными
// скобками (сами скобки не входят); у форвард-объявления IsDefn
// false и пустой Body.
type FuncStmt struct {
	ReturnType  TypeID
	Name        source.StringID
	NameSpan    source.Span
	ParamsStart ParamID
	ParamsCount uint32
	IsDefn      bool
	Body        source.Span
	Span        source.Span
}

// Param — параметр функции, структурно тот же simple_decl.
type Param struct {
	Type TypeID
	Name source.StringID
	Span source.Span
}

// ParamSpec — заготовка параметра до размещения в арене.
type ParamSpec struct {
	Type TypeID
	Name source.StringID
	Span source.Span
}

type Stmts struct {
	Arena     *Arena[Stmt]
	Decls     *Arena[DeclStmt]
	TypeDecls *Arena[TypeDeclStmt]
	Funcs     *Arena[FuncStmt]
	Params    *Arena[Param]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:     NewArena[Stmt](capHint),
		Decls:     NewArena[DeclStmt](capHint),
		TypeDecls: NewArena[TypeDeclStmt](capHint),
		Funcs:     NewArena[FuncStmt](capHint),
		Params:    NewArena[Param](capHint),
	}
}

func (s *Stmts) New(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

// IsError сообщает, провалился ли разбор этого объявления.
func (s *Stmts) IsError(id StmtID) bool {
	node := s.Get(id)
	return node == nil || node.Kind == StmtError
}

func (s *Stmts) NewError(id diag.ID, span source.Span) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: StmtError, Span: span, Diag: id}))
}

func (s *Stmts) NewDecl(ty TypeID, name source.StringID, nameSpan source.Span, init InitState, span source.Span) StmtID {
	payload := s.Decls.Allocate(DeclStmt{
		Type:     ty,
		Name:     name,
		NameSpan: nameSpan,
		Init:     init,
		Span:     span,
	})
	return s.New(StmtDecl, span, PayloadID(payload))
}

func (s *Stmts) NewTypeDecl(ty TypeID, span source.Span) StmtID {
	payload := s.TypeDecls.Allocate(TypeDeclStmt{
		Type: ty,
		Span: span,
	})
	return s.New(StmtTypeDecl, span, PayloadID(payload))
}

func (s *Stmts) NewFunc(
	returnType TypeID,
	name source.StringID,
	nameSpan source.Span,
	params []ParamSpec,
	isDefn bool,
	body source.Span,
	span source.Span,
) StmtID {
	var paramsStart ParamID
	paramCount, err := safecast.Conv[uint32](len(params))
	if err != nil {
		panic(fmt.Errorf("param count overflow: %w", err))
	}
	for idx, spec := range params {
		id := ParamID(s.Params.Allocate(Param{
			Type: spec.Type,
			Name: spec.Name,
			Span: spec.Span,
		}))
		if idx == 0 {
			paramsStart = id
		}
	}
	payload := s.Funcs.Allocate(FuncStmt{
		ReturnType:  returnType,
		Name:        name,
		NameSpan:    nameSpan,
		ParamsStart: paramsStart,
		ParamsCount: paramCount,
		IsDefn:      isDefn,
		Body:        body,
		Span:        span,
	})
	return s.New(StmtFunc, span, PayloadID(payload))
}

// Decl возвращает полезную нагрузку объявления переменной.
func (s *Stmts) Decl(id StmtID) (*DeclStmt, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtDecl || !stmt.Payload.IsValid() {
		return nil, false
	}
	return s.Decls.Get(uint32(stmt.Payload)), true
}

// TypeDecl возвращает полезную нагрузку объявления типа.
func (s *Stmts) TypeDecl(id StmtID) (*TypeDeclStmt, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtTypeDecl || !stmt.Payload.IsValid() {
		return nil, false
	}
	return s.TypeDecls.Get(uint32(stmt.Payload)), true
}

// Func возвращает полезную нагрузку функции.
func (s *Stmts) Func(id StmtID) (*FuncStmt, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtFunc || !stmt.Payload.IsValid() {
		return nil, false
	}
	return s.Funcs.Get(uint32(stmt.Payload)), true
}

func (s *Stmts) Param(id ParamID) *Param {
	if !id.IsValid() {
		return nil
	}
	return s.Params.Get(uint32(id))
}

// CollectParams копирует прогон параметров функции.
func (s *Stmts) CollectParams(start ParamID, count uint32) []Param {
	if count == 0 || !start.IsValid() {
		return nil
	}
	result := make([]Param, 0, count)
	base := uint32(start)
	for offset := uint32(0); offset < count; offset++ {
		param := s.Params.Get(base + offset)
		if param == nil {
			continue
		}
		result = append(result, *param)
	}
	return result
}
