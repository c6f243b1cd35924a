package ast

import (
	"fmt"

	"fortio.org/safecast"

	"tci/internal/diag"
	"tci/internal/source"
)

type TypeKind uint8

const (
	// TypeError — разбор типа провалился; Diag указывает на причину.
	// Терминальный вариант: объемлющие узлы не заглядывают внутрь,
	// только распространяют ошибку наверх.
	TypeError TypeKind = iota
	// TypeInt - встроенный Int
	TypeInt
	// TypeChar - встроенный Char
	TypeChar
	// TypeNamed - ссылка на именованный тип (Point)
	TypeNamed
	// TypeStruct - struct-объявление с телом
	TypeStruct
)

// Type — узел типа. Stars — число указательных звёздочек после
// базового типа, Span покрывает базовый тип вместе со звёздочками.
type Type struct {
	Kind     TypeKind
	Span     source.Span
	Stars    uint32
	Name     source.StringID // TypeNamed: имя; TypeStruct: опционально (анонимная структура)
	NameSpan source.Span     // спан токена имени, если имя есть
	Payload  PayloadID       // TypeStruct -> StructDecl
	Diag     diag.ID         // TypeError -> запись в Bag
}

// StructDecl — тело struct-типа: непрерывный прогон полей в арене.
type StructDecl struct {
	FieldsStart FieldID
	FieldsCount uint32
	BodySpan    source.Span // от '{' до '}' включительно
}

// Field — поле структуры. Имя может отсутствовать: грамматика
// допускает голый тип, завершённый точкой с запятой.
type Field struct {
	Type TypeID
	Name source.StringID
	Span source.Span
}

// FieldSpec — заготовка поля до размещения в арене.
type FieldSpec struct {
	Type TypeID
	Name source.StringID
	Span source.Span
}

type Types struct {
	Arena   *Arena[Type]
	Structs *Arena[StructDecl]
	Fields  *Arena[Field]
}

func NewTypes(capHint uint) *Types {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Types{
		Arena:   NewArena[Type](capHint),
		Structs: NewArena[StructDecl](capHint),
		Fields:  NewArena[Field](capHint),
	}
}

func (t *Types) Get(id TypeID) *Type {
	return t.Arena.Get(uint32(id))
}

// IsError сообщает, провалился ли разбор этого типа.
func (t *Types) IsError(id TypeID) bool {
	node := t.Get(id)
	return node == nil || node.Kind == TypeError
}

func (t *Types) NewInt(span source.Span) TypeID {
	return TypeID(t.Arena.Allocate(Type{Kind: TypeInt, Span: span}))
}

func (t *Types) NewChar(span source.Span) TypeID {
	return TypeID(t.Arena.Allocate(Type{Kind: TypeChar, Span: span}))
}

func (t *Types) NewNamed(name source.StringID, span source.Span) TypeID {
	return TypeID(t.Arena.Allocate(Type{Kind: TypeNamed, Span: span, Name: name, NameSpan: span}))
}

func (t *Types) NewStruct(name source.StringID, nameSpan source.Span, fields []FieldSpec, bodySpan, span source.Span) TypeID {
	var fieldsStart FieldID
	fieldCount, err := safecast.Conv[uint32](len(fields))
	if err != nil {
		panic(fmt.Errorf("struct field count overflow: %w", err))
	}
	for idx, spec := range fields {
		id := FieldID(t.Fields.Allocate(Field{
			Type: spec.Type,
			Name: spec.Name,
			Span: spec.Span,
		}))
		if idx == 0 {
			fieldsStart = id
		}
	}
	payload := t.Structs.Allocate(StructDecl{
		FieldsStart: fieldsStart,
		FieldsCount: fieldCount,
		BodySpan:    bodySpan,
	})
	return TypeID(t.Arena.Allocate(Type{
		Kind:     TypeStruct,
		Span:     span,
		Name:     name,
		NameSpan: nameSpan,
		Payload:  PayloadID(payload),
	}))
}

func (t *Types) NewError(id diag.ID, span source.Span) TypeID {
	return TypeID(t.Arena.Allocate(Type{Kind: TypeError, Span: span, Diag: id}))
}

// Struct возвращает тело struct-типа.
func (t *Types) Struct(id TypeID) (*StructDecl, bool) {
	node := t.Get(id)
	if node == nil || node.Kind != TypeStruct || !node.Payload.IsValid() {
		return nil, false
	}
	return t.Structs.Get(uint32(node.Payload)), true
}

func (t *Types) Field(id FieldID) *Field {
	if !id.IsValid() {
		return nil
	}
	return t.Fields.Get(uint32(id))
}

// CollectFields копирует прогон полей структуры.
func (t *Types) CollectFields(start FieldID, count uint32) []Field {
	if count == 0 || !start.IsValid() {
		return nil
	}
	result := make([]Field, 0, count)
	base := uint32(start)
	for offset := uint32(0); offset < count; offset++ {
		field := t.Fields.Get(base + offset)
		if field == nil {
			continue
		}
		result = append(result, *field)
	}
	return result
}
