package parser

import (
	"tci/internal/ast"
	"tci/internal/diag"
	"tci/internal/source"
	"tci/internal/token"
)

// pop возвращает верхний токен буфера, а при пустом буфере тянет
// свежий из лексера. Вместе с pushBack это даёт неограниченный
// концептуальный возврат токенов в поток.
func (p *Parser) pop() token.Token {
	if n := len(p.buf); n > 0 {
		tok := p.buf[n-1]
		p.buf = p.buf[:n-1]
		return tok
	}
	return p.lx.Next()
}

// peek показывает следующий токен, не съедая его. Идемпотентен.
func (p *Parser) peek() token.Token {
	if len(p.buf) == 0 {
		p.pushBack(p.lx.Next())
	}
	return p.buf[len(p.buf)-1]
}

// pushBack кладёт токен обратно; следующий pop вернёт именно его.
func (p *Parser) pushBack(tok token.Token) {
	p.buf = append(p.buf, tok)
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// text перечитывает лексему из исходника.
func (p *Parser) text(sp source.Span) string {
	return string(p.src.Slice(sp))
}

// expect съедает токен вида k. Иначе съедает виновника и возвращает
// готовую диагностику — вызывающий превращает её в ошибочный узел
// нужного рода.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, *diag.Diagnostic) {
	if p.at(k) {
		return p.pop(), nil
	}
	tok := p.pop()
	if tok.Kind == token.Invalid {
		d := p.invalidTokenDiag(tok)
		return tok, &d
	}
	d := diag.NewError(code, tok.Span, msg).
		WithNote(tok.Span, "this token is invalid in this context")
	return tok, &d
}

// errType записывает диагностику и выпускает ошибочный узел типа,
// ссылающийся на неё.
func (p *Parser) errType(d diag.Diagnostic) ast.TypeID {
	return p.arenas.Types.NewError(p.bag.Append(d), d.Primary)
}

// errStmt — то же для объявления.
func (p *Parser) errStmt(d diag.Diagnostic) ast.StmtID {
	return p.arenas.Stmts.NewError(p.bag.Append(d), d.Primary)
}

// stmtFromTypeError поднимает ошибку типа на уровень объявления,
// не создавая новой диагностики: ссылка остаётся той же.
func (p *Parser) stmtFromTypeError(ty ast.TypeID) ast.StmtID {
	node := p.arenas.Types.Get(ty)
	return p.arenas.Stmts.NewError(node.Diag, node.Span)
}

// invalidTokenDiag строит диагностику для Invalid-токена: по байтам
// под спаном восстанавливается, что именно сломалось в лексике.
func (p *Parser) invalidTokenDiag(tok token.Token) diag.Diagnostic {
	code, msg := classifyInvalid(p.src, tok.Span)
	return diag.NewError(code, tok.Span, msg).
		WithNote(tok.Span, "token found here")
}
