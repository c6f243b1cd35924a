package parser

import (
	"strings"
	"testing"

	"tci/internal/ast"
	"tci/internal/diag"
)

func firstDiag(t *testing.T, bag *diag.Bag) diag.Diagnostic {
	t.Helper()
	if bag.Len() == 0 {
		t.Fatalf("no diagnostics recorded")
	}
	return bag.Items()[0]
}

func TestDeclarationErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode diag.Code
		wantMsg  string
	}{
		{
			name:     "bad type start",
			input:    "+ x;",
			wantCode: diag.SynExpectType,
			wantMsg:  "found unexpected token when parsing type",
		},
		{
			name:     "two names after type",
			input:    "Int x y;",
			wantCode: diag.SynBadStmtEnd,
			wantMsg:  "unexpected token when parsing end of statement",
		},
		{
			name:     "missing comma between params",
			input:    "Int f(Int a Int b) { }",
			wantCode: diag.SynBadParamEnd,
			wantMsg:  "unexpected token when parsing end of parameter",
		},
		{
			name:     "garbage instead of function body",
			input:    "Int f() + 1;",
			wantCode: diag.SynExpectBody,
			wantMsg:  "unexpected token when parsing beginning of function body",
		},
		{
			name:     "struct without opening brace",
			input:    "struct Point Int x;",
			wantCode: diag.SynExpectLBrace,
			wantMsg:  "expected '{' character",
		},
		{
			name:     "struct field without semicolon",
			input:    "struct Point { Int x Int y; };",
			wantCode: diag.SynExpectSemicolon,
			wantMsg:  "expected ';' character",
		},
		{
			name:     "initializer is not implemented",
			input:    "Int x = 3;",
			wantCode: diag.FutAssignInit,
			wantMsg:  "declarations with initializers are not implemented",
		},
		{
			name:     "reserved keyword as type",
			input:    "int x;",
			wantCode: diag.SynReservedWord,
			wantMsg:  "found unexpected token when parsing type",
		},
		{
			name:     "reserved keyword as name",
			input:    "Int int;",
			wantCode: diag.SynReservedWord,
			wantMsg:  "'int' is a reserved keyword and cannot name a declaration",
		},
		{
			name:     "lowercase struct name",
			input:    "struct point { Int x; };",
			wantCode: diag.SynTypeNameCase,
			wantMsg:  "struct name must begin with an uppercase letter",
		},
		{
			name:     "function body never closed",
			input:    "Int main() { if (x) {",
			wantCode: diag.SynUnclosedBody,
			wantMsg:  "function body is never closed",
		},
		{
			name:     "struct body never closed",
			input:    "struct P { Int x;",
			wantCode: diag.SynUnclosedBody,
			wantMsg:  "struct body is never closed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder, fileID, bag, _ := parseSource(t, tt.input)

			d := firstDiag(t, bag)
			if d.Code != tt.wantCode {
				t.Errorf("code: got %s, want %s (all: %s)", d.Code.ID(), tt.wantCode.ID(), diagnosticsSummary(bag))
			}
			if d.Message != tt.wantMsg {
				t.Errorf("message: got %q, want %q", d.Message, tt.wantMsg)
			}
			if d.Severity != diag.SevError {
				t.Errorf("severity: got %v, want error", d.Severity)
			}
			if len(d.Notes) == 0 {
				t.Errorf("diagnostic has no notes")
			}

			file := builder.Files.Get(fileID)
			if len(file.Stmts) == 0 {
				t.Fatalf("no statements recorded")
			}
			if !builder.Stmts.IsError(file.Stmts[0]) {
				t.Errorf("first statement is not an error node")
			}
		})
	}
}

// Узел-ошибка ссылается ровно на ту диагностику, что лежит в Bag.
func TestErrorStmtReferencesItsDiagnostic(t *testing.T) {
	builder, fileID, bag, _ := parseSource(t, "+ x;")

	stmt := builder.Stmts.Get(onlyStmt(t, builder, fileID))
	if stmt.Kind != ast.StmtError {
		t.Fatalf("expected an error statement, got %v", stmt.Kind)
	}
	if stmt.Diag == diag.NoID {
		t.Fatalf("error statement lost its diagnostic reference")
	}
	d := bag.Get(stmt.Diag)
	if d == nil {
		t.Fatalf("diagnostic reference does not resolve")
	}
	if d.Code != diag.SynExpectType {
		t.Errorf("resolved code: got %s, want SYN2001", d.Code.ID())
	}
}

// Ошибка параметра дословно поднимается наверх: одна диагностика,
// одна и та же ссылка на неё, никакого частично построенного узла.
func TestErrorPropagatesWithoutPartialData(t *testing.T) {
	builder, fileID, bag, _ := parseSource(t, "Int add(+ a);")

	file := builder.Files.Get(fileID)
	if len(file.Stmts) == 0 {
		t.Fatalf("no statements recorded")
	}
	sid := file.Stmts[0]
	if !builder.Stmts.IsError(sid) {
		t.Fatalf("expected an error statement")
	}
	if _, ok := builder.Stmts.Func(sid); ok {
		t.Fatalf("failed parse still exposed a function payload")
	}

	errorCount := 0
	for _, d := range bag.Items() {
		if d.Code == diag.SynExpectType {
			errorCount++
		}
	}
	if errorCount != 1 {
		t.Errorf("expected exactly one type error, got %d (%s)", errorCount, diagnosticsSummary(bag))
	}

	stmt := builder.Stmts.Get(sid)
	if d := bag.Get(stmt.Diag); d == nil || d.Code != diag.SynExpectType {
		t.Errorf("statement does not reference the original diagnostic")
	}
}

func TestInvalidTokenClassification(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode diag.Code
		wantMsg  string
	}{
		{
			name:     "unterminated string",
			input:    `"abc`,
			wantCode: diag.LexUnterminatedString,
			wantMsg:  "string literal is not terminated",
		},
		{
			name:     "string with raw newline",
			input:    "\"abc\nInt x;",
			wantCode: diag.LexUnterminatedString,
			wantMsg:  "string literal is not closed before end of line",
		},
		{
			name:     "unknown string escape",
			input:    `"a\q" ;`,
			wantCode: diag.LexUnterminatedString,
			wantMsg:  `unknown escape sequence '\q' in string literal`,
		},
		{
			name:     "empty char literal",
			input:    "'' ;",
			wantCode: diag.LexBadCharLiteral,
			wantMsg:  "empty character literal",
		},
		{
			name:     "char literal with two characters",
			input:    "'ab' ;",
			wantCode: diag.LexBadCharLiteral,
			wantMsg:  "character literal holds more than one character",
		},
		{
			name:     "oversized int literal",
			input:    "2147483648 ;",
			wantCode: diag.LexIntOutOfRange,
			wantMsg:  "integer literal 2147483648 does not fit in a 32-bit Int",
		},
		{
			name:     "stray character",
			input:    "@ ;",
			wantCode: diag.LexUnknownChar,
			wantMsg:  "stray character '@' in source",
		},
		{
			name:     "unterminated block comment",
			input:    "/* no close",
			wantCode: diag.LexUnterminatedComment,
			wantMsg:  "block comment is not terminated",
		},
		{
			name:     "double dot",
			input:    ".. ;",
			wantCode: diag.LexInvalidToken,
			wantMsg:  "'..' is not an operator",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, bag, _ := parseSource(t, tt.input)

			d := firstDiag(t, bag)
			if d.Code != tt.wantCode {
				t.Errorf("code: got %s, want %s (all: %s)", d.Code.ID(), tt.wantCode.ID(), diagnosticsSummary(bag))
			}
			if d.Message != tt.wantMsg {
				t.Errorf("message: got %q, want %q", d.Message, tt.wantMsg)
			}
			found := false
			for _, n := range d.Notes {
				if n.Msg == "token found here" {
					found = true
				}
			}
			if !found {
				t.Errorf("missing the 'token found here' note")
			}
		})
	}
}

func TestBadTypeStartNote(t *testing.T) {
	_, _, bag, _ := parseSource(t, "+ x;")
	d := firstDiag(t, bag)
	want := "this token is not allowed to begin a type in the global context"
	if len(d.Notes) != 1 || d.Notes[0].Msg != want {
		t.Fatalf("notes: got %+v, want one note %q", d.Notes, want)
	}
}

func TestReservedTypeHint(t *testing.T) {
	_, _, bag, _ := parseSource(t, "int x;")
	d := firstDiag(t, bag)
	if len(d.Notes) != 1 || !strings.Contains(d.Notes[0].Msg, "spelled 'Int'") {
		t.Fatalf("notes: got %+v, want a hint about 'Int'", d.Notes)
	}
}

func TestUppercaseVarNameGetsHint(t *testing.T) {
	_, _, bag, _ := parseSource(t, "Int X;")
	d := firstDiag(t, bag)
	if d.Code != diag.SynBadStmtEnd {
		t.Fatalf("code: got %s, want SYN2006 (%s)", d.Code.ID(), diagnosticsSummary(bag))
	}
	hint := false
	for _, n := range d.Notes {
		if strings.Contains(n.Msg, "lowercase letter") {
			hint = true
		}
	}
	if !hint {
		t.Fatalf("notes: got %+v, want a lowercase-name hint", d.Notes)
	}
}

// После ошибки разбор продолжается со следующего объявления.
func TestRecoveryAfterError(t *testing.T) {
	builder, fileID, bag, interner := parseSource(t, "+ garbage; Int x;")

	if !bag.HasErrors() {
		t.Fatalf("expected an error for the first declaration")
	}
	file := builder.Files.Get(fileID)
	if len(file.Stmts) != 2 {
		t.Fatalf("statements: got %d, want 2 (%s)", len(file.Stmts), diagnosticsSummary(bag))
	}
	decl, ok := builder.Stmts.Decl(file.Stmts[1])
	if !ok {
		t.Fatalf("second statement did not recover into a declaration")
	}
	if got := interner.MustLookup(decl.Name); got != "x" {
		t.Errorf("recovered name: got %q, want %q", got, "x")
	}
}
