package token_test

import (
	"testing"

	"tci/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k}
}

func TestIsLiteral(t *testing.T) {
	for _, k := range []token.Kind{token.IntLit, token.CharLit, token.StringLit} {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.KwStruct, token.Plus, token.LParen} {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsKeyword(t *testing.T) {
	kws := []token.Kind{
		token.KwInt, token.KwChar, token.KwStruct, token.KwReturn,
		token.KwIf, token.KwElse, token.KwWhile, token.KwFor, token.KwDo,
		token.KwBreak, token.KwContinue, token.KwSizeof, token.KwReserved,
	}
	for _, k := range kws {
		if !tok(k).IsKeyword() {
			t.Fatalf("%v should be keyword", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.TypeIdent, token.IntLit} {
		if tok(k).IsKeyword() {
			t.Fatalf("%v must NOT be keyword", k)
		}
	}
}

func TestIsTypeName(t *testing.T) {
	for _, k := range []token.Kind{token.TypeIdent, token.KwInt, token.KwChar} {
		if !tok(k).IsTypeName() {
			t.Fatalf("%v should be a type name", k)
		}
	}
	if tok(token.Ident).IsTypeName() {
		t.Fatal("Ident must NOT be a type name")
	}
	if tok(token.KwStruct).IsTypeName() {
		t.Fatal("KwStruct begins a struct type, not a bare type name")
	}
}

func TestIsPunctOrOp(t *testing.T) {
	ops := []token.Kind{
		token.LParen, token.RParen, token.LBrace, token.RBrace,
		token.LBracket, token.RBracket, token.Semicolon, token.Comma,
		token.Dot, token.Arrow, token.Star, token.Plus, token.Minus,
		token.Slash, token.Percent, token.Assign, token.EqEq, token.BangEq,
		token.Lt, token.LtEq, token.Gt, token.GtEq, token.AndAnd, token.OrOr,
		token.Shl, token.Shr, token.ShlAssign, token.ShrAssign,
		token.PlusPlus, token.MinusMinus, token.Tilde, token.Question,
	}
	for _, k := range ops {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.KwIf, token.IntLit, token.EOF} {
		if tok(k).IsPunctOrOp() {
			t.Fatalf("%v must NOT be punct/op", k)
		}
	}
}

func TestKindStringCoversAllKinds(t *testing.T) {
	for k := token.Invalid; k <= token.Shr; k++ {
		s := k.String()
		if s == "" {
			t.Fatalf("kind %d has empty name", k)
		}
		if len(s) > 5 && s[:5] == "Kind(" {
			t.Fatalf("kind %d has no name entry", k)
		}
	}
}
