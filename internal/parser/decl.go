package parser

import (
	"tci/internal/ast"
	"tci/internal/diag"
	"tci/internal/source"
	"tci/internal/token"
)

// simpleDecl — результат разбора "тип + звёздочки + необязательное
// имя". Без имени объявление становится голым TypeDecl.
type simpleDecl struct {
	ty       ast.TypeID
	name     source.StringID
	nameSpan source.Span
	span     source.Span
}

// parseGlobalDecl — одно глобальное объявление:
//
//	simple_decl ';'                     переменная или struct-определение
//	simple_decl '(' params ')' ';'      форвард-объявление функции
//	simple_decl '(' params ')' '{..}'   функция с отложенным телом
func (p *Parser) parseGlobalDecl() ast.StmtID {
	sd, ok := p.parseSimpleDecl()
	if !ok {
		return p.stmtFromTypeError(sd.ty)
	}

	tok := p.pop()
	switch tok.Kind {
	case token.Semicolon:
		full := sd.span.Cover(tok.Span)
		if sd.name != source.NoStringID {
			return p.arenas.Stmts.NewDecl(sd.ty, sd.name, sd.nameSpan, ast.InitUninitialized, full)
		}
		return p.arenas.Stmts.NewTypeDecl(sd.ty, full)
	case token.Assign:
		d := diag.NewError(diag.FutAssignInit, tok.Span,
			"declarations with initializers are not implemented").
			WithNote(tok.Span, "initializer starts here")
		return p.errStmt(d)
	case token.LParen:
		return p.parseFuncRest(sd)
	case token.Invalid:
		return p.errStmt(p.invalidTokenDiag(tok))
	default:
		d := diag.NewError(diag.SynBadStmtEnd, tok.Span,
			"unexpected token when parsing end of statement").
			WithNote(tok.Span, "this token is invalid in this context")
		if tok.Kind == token.TypeIdent {
			d = d.WithNote(tok.Span, "a declared name must begin with a lowercase letter")
		}
		return p.errStmt(d)
	}
}

// parseSimpleDecl — префикс типа, указательные звёздочки и имя.
// false означает провал; тогда ty — уже готовый ошибочный узел.
func (p *Parser) parseSimpleDecl() (simpleDecl, bool) {
	ty := p.parseTypePrefix()
	if p.arenas.Types.IsError(ty) {
		return simpleDecl{ty: ty}, false
	}

	node := p.arenas.Types.Get(ty)
	span := node.Span
	stars := uint32(0)
	for p.at(token.Star) {
		st := p.pop()
		stars++
		span = span.Cover(st.Span)
	}
	if stars > 0 {
		node.Stars = stars
		node.Span = span
	}

	sd := simpleDecl{ty: ty, span: span}
	switch p.peek().Kind {
	case token.Ident:
		nameTok := p.pop()
		sd.name = nameTok.Sym
		sd.nameSpan = nameTok.Span
		sd.span = span.Cover(nameTok.Span)
	case token.KwReserved:
		tok := p.pop()
		d := diag.NewError(diag.SynReservedWord, tok.Span,
			"'"+p.text(tok.Span)+"' is a reserved keyword and cannot name a declaration").
			WithNote(tok.Span, "choose a different name")
		return simpleDecl{ty: p.errType(d)}, false
	}
	return sd, true
}

// parseFuncRest — хвост функции после съеденной '('.
func (p *Parser) parseFuncRest(sd simpleDecl) ast.StmtID {
	var params []ast.ParamSpec
	if p.at(token.RParen) {
		p.pop()
	} else {
		for {
			prm, ok := p.parseSimpleDecl()
			if !ok {
				return p.stmtFromTypeError(prm.ty)
			}
			params = append(params, ast.ParamSpec{Type: prm.ty, Name: prm.name, Span: prm.span})

			sep := p.pop()
			if sep.Kind == token.Comma {
				continue
			}
			if sep.Kind == token.RParen {
				break
			}
			if sep.Kind == token.Invalid {
				return p.errStmt(p.invalidTokenDiag(sep))
			}
			d := diag.NewError(diag.SynBadParamEnd, sep.Span,
				"unexpected token when parsing end of parameter").
				WithNote(sep.Span, "this token is invalid for the current context")
			return p.errStmt(d)
		}
	}

	end := p.pop()
	switch end.Kind {
	case token.Semicolon:
		full := sd.span.Cover(end.Span)
		return p.arenas.Stmts.NewFunc(sd.ty, sd.name, sd.nameSpan, params, false, source.Span{}, full)
	case token.LBrace:
		return p.captureBody(sd, params, end)
	case token.Invalid:
		return p.errStmt(p.invalidTokenDiag(end))
	default:
		d := diag.NewError(diag.SynExpectBody, end.Span,
			"unexpected token when parsing beginning of function body").
			WithNote(end.Span, "this token is invalid in this context")
		return p.errStmt(d)
	}
}

// captureBody захватывает тело между сбалансированными скобками как
// сырой байтовый диапазон; сами скобки в диапазон не входят. Глубина
// стартует с единицы за уже съеденной '{'; ноль достигается ровно
// один раз.
func (p *Parser) captureBody(sd simpleDecl, params []ast.ParamSpec, lbrace token.Token) ast.StmtID {
	depth := 1
	body := source.Span{File: lbrace.Span.File, Start: lbrace.Span.End, End: lbrace.Span.End}
	seen := false

	for {
		tok := p.pop()
		switch tok.Kind {
		case token.EOF:
			d := diag.NewError(diag.SynUnclosedBody, tok.Span,
				"function body is never closed").
				WithNote(lbrace.Span, "body opened here")
			return p.errStmt(d)
		case token.Invalid:
			return p.errStmt(p.invalidTokenDiag(tok))
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth == 0 {
				full := sd.span.Cover(tok.Span)
				return p.arenas.Stmts.NewFunc(sd.ty, sd.name, sd.nameSpan, params, true, body, full)
			}
		}
		if !seen {
			body.Start = tok.Span.Start
			seen = true
		}
		body.End = tok.Span.End
	}
}
