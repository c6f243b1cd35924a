package token

import (
	"testing"
)

func TestLookupKeywordSubset(t *testing.T) {
	cases := map[string]Kind{
		"struct":   KwStruct,
		"return":   KwReturn,
		"if":       KwIf,
		"else":     KwElse,
		"while":    KwWhile,
		"for":      KwFor,
		"do":       KwDo,
		"break":    KwBreak,
		"continue": KwContinue,
		"sizeof":   KwSizeof,
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeywordReserved(t *testing.T) {
	for _, lexeme := range []string{"int", "char", "void", "static", "typedef", "switch", "goto"} {
		got, ok := LookupKeyword(lexeme)
		if !ok || got != KwReserved {
			t.Errorf("LookupKeyword(%q) = %v, %v, want KwReserved", lexeme, got, ok)
		}
	}
}

func TestLookupKeywordNegative(t *testing.T) {
	// Регистр имеет значение: uppercase версии не из value namespace.
	for _, lexeme := range []string{"main", "Struct", "Return", "INT", "x", "structx"} {
		if _, ok := LookupKeyword(lexeme); ok {
			t.Errorf("LookupKeyword(%q) unexpectedly ok", lexeme)
		}
	}
}

func TestLookupTypeKeyword(t *testing.T) {
	if k, ok := LookupTypeKeyword("Int"); !ok || k != KwInt {
		t.Errorf("LookupTypeKeyword(Int) = %v, %v", k, ok)
	}
	if k, ok := LookupTypeKeyword("Char"); !ok || k != KwChar {
		t.Errorf("LookupTypeKeyword(Char) = %v, %v", k, ok)
	}
	for _, lexeme := range []string{"Point", "int", "char", "Integer"} {
		if _, ok := LookupTypeKeyword(lexeme); ok {
			t.Errorf("LookupTypeKeyword(%q) unexpectedly ok", lexeme)
		}
	}
}
