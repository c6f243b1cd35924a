package parser

import (
	"tci/internal/ast"
	"tci/internal/diag"
	"tci/internal/source"
	"tci/internal/token"
)

// parseTypePrefix — базовый тип без звёздочек: встроенный Int/Char,
// ссылка на именованный тип или struct-объявление.
func (p *Parser) parseTypePrefix() ast.TypeID {
	tok := p.pop()
	switch tok.Kind {
	case token.KwInt:
		return p.arenas.Types.NewInt(tok.Span)
	case token.KwChar:
		return p.arenas.Types.NewChar(tok.Span)
	case token.TypeIdent:
		return p.arenas.Types.NewNamed(tok.Sym, tok.Span)
	case token.KwStruct:
		return p.parseStructType(tok)
	case token.KwReserved:
		d := diag.NewError(diag.SynReservedWord, tok.Span,
			"found unexpected token when parsing type").
			WithNote(tok.Span, reservedNote(p.text(tok.Span)))
		return p.errType(d)
	case token.Invalid:
		return p.errType(p.invalidTokenDiag(tok))
	default:
		d := diag.NewError(diag.SynExpectType, tok.Span,
			"found unexpected token when parsing type").
			WithNote(tok.Span, "this token is not allowed to begin a type in the global context")
		return p.errType(d)
	}
}

// parseStructType — struct [Имя]? '{' (simple_decl ';')* '}'.
func (p *Parser) parseStructType(kw token.Token) ast.TypeID {
	name := source.NoStringID
	var nameSpan source.Span
	switch p.peek().Kind {
	case token.TypeIdent:
		tok := p.pop()
		name = tok.Sym
		nameSpan = tok.Span
	case token.Ident:
		tok := p.pop()
		d := diag.NewError(diag.SynTypeNameCase, tok.Span,
			"struct name must begin with an uppercase letter").
			WithNote(tok.Span, "rename it to '"+capitalize(p.text(tok.Span))+"'")
		return p.errType(d)
	}

	lbrace, derr := p.expect(token.LBrace, diag.SynExpectLBrace, "expected '{' character")
	if derr != nil {
		return p.errType(*derr)
	}

	var fields []ast.FieldSpec
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			d := diag.NewError(diag.SynUnclosedBody, p.peek().Span,
				"struct body is never closed").
				WithNote(lbrace.Span, "body opened here")
			return p.errType(d)
		}
		fld, ok := p.parseSimpleDecl()
		if !ok {
			// ошибка поля дословно становится ошибкой всей структуры
			return fld.ty
		}
		if _, derr := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' character"); derr != nil {
			return p.errType(*derr)
		}
		fields = append(fields, ast.FieldSpec{Type: fld.ty, Name: fld.name, Span: fld.span})
	}
	rbrace := p.pop()

	bodySpan := lbrace.Span.Cover(rbrace.Span)
	return p.arenas.Types.NewStruct(name, nameSpan, fields, bodySpan, kw.Span.Cover(rbrace.Span))
}
