package diag

import "fmt"

// Code — числовой код диагностики. Диапазоны закреплены за фазами:
//
//	1000–1999 LEX — лексика (парсер классифицирует Invalid-токены)
//	2000–2999 SYN — синтаксис объявлений
//	3000–3999 SEM — имена и типы (реестр глобалов второй фазы)
//	4000–4999 IO  — чтение исходников
//	6000–6999 ALN — файл похож на другой язык, не на учебный C
//	7000–7999 FUT — распознано, но сознательно не реализовано
type Code uint16

const (
	UnknownCode Code = 0

	// Лексические. Сам лексер молчит: он выдаёт Invalid-токен, а код
	// подбирает парсер, глядя на байты под спаном токена.
	LexInvalidToken        Code = 1001
	LexUnknownChar         Code = 1002
	LexUnterminatedString  Code = 1003
	LexBadCharLiteral      Code = 1004
	LexUnterminatedComment Code = 1005
	LexIntOutOfRange       Code = 1006

	// Синтаксис глобальных объявлений.
	SynExpectType      Code = 2001
	SynExpectSemicolon Code = 2002
	SynExpectLBrace    Code = 2003
	SynBadParamEnd     Code = 2004
	SynExpectBody      Code = 2005
	SynBadStmtEnd      Code = 2006
	SynUnclosedBody    Code = 2007
	SynReservedWord    Code = 2008
	SynTypeNameCase    Code = 2009

	// Имена: проверяются во второй фазе, когда реестр глобалов собран.
	SemDuplicateGlobal Code = 3001
	SemUnknownTypeName Code = 3002

	// Ввод-вывод.
	IOFileRead Code = 4001

	// Подсказки «это вообще не C»: файл с ошибками, улики которого
	// указывают на другой исходный язык.
	AlnPythonSource     Code = 6001
	AlnCppSource        Code = 6002
	AlnJavaSource       Code = 6003
	AlnJavaScriptSource Code = 6004

	// Конструкции, которые лексер и парсер узнают, но интерпретация
	// которых ещё не написана.
	FutAssignInit Code = 7001
)

// ID возвращает строковый идентификатор вида "SYN2001".
func (c Code) ID() string {
	switch {
	case c >= 1000 && c < 2000:
		return fmt.Sprintf("LEX%04d", uint16(c))
	case c >= 2000 && c < 3000:
		return fmt.Sprintf("SYN%04d", uint16(c))
	case c >= 3000 && c < 4000:
		return fmt.Sprintf("SEM%04d", uint16(c))
	case c >= 4000 && c < 5000:
		return fmt.Sprintf("IO%04d", uint16(c))
	case c >= 6000 && c < 7000:
		return fmt.Sprintf("ALN%04d", uint16(c))
	case c >= 7000 && c < 8000:
		return fmt.Sprintf("FUT%04d", uint16(c))
	default:
		return fmt.Sprintf("E%04d", uint16(c))
	}
}

// codeDescription — короткий статический заголовок кода. Текст
// конкретного случая живёт в Diagnostic.Message.
var codeDescription = map[Code]string{
	UnknownCode: "unknown diagnostic",

	LexInvalidToken:        "invalid token",
	LexUnknownChar:         "unknown character",
	LexUnterminatedString:  "unterminated string literal",
	LexBadCharLiteral:      "malformed character literal",
	LexUnterminatedComment: "unterminated block comment",
	LexIntOutOfRange:       "integer literal out of range",

	SynExpectType:      "expected a type",
	SynExpectSemicolon: "expected ';'",
	SynExpectLBrace:    "expected '{'",
	SynBadParamEnd:     "malformed parameter list",
	SynExpectBody:      "expected function body",
	SynBadStmtEnd:      "malformed declaration",
	SynUnclosedBody:    "unterminated body",
	SynReservedWord:    "reserved keyword",
	SynTypeNameCase:    "wrong identifier case",

	SemDuplicateGlobal: "duplicate global name",
	SemUnknownTypeName: "unknown type name",

	IOFileRead: "cannot read source file",

	AlnPythonSource:     "source looks like python",
	AlnCppSource:        "source looks like c++",
	AlnJavaSource:       "source looks like java",
	AlnJavaScriptSource: "source looks like javascript",

	FutAssignInit: "initialized declarations are not implemented",
}

// Title возвращает заголовок кода.
func (c Code) Title() string {
	if d, ok := codeDescription[c]; ok {
		return d
	}
	return "unknown diagnostic"
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
