// Package parser разбирает глобальные объявления в две фазы.
//
// Первая фаза строит аренный AST сигнатур: переменные, struct-типы и
// функции, у которых тело не разбирается, а захватывается как сырой
// байтовый диапазон между сбалансированными фигурными скобками.
// Вторая фаза (CollectGlobals + ResolveBodies) собирает реестр
// глобальных имён и перечитывает отложенные тела: к этому моменту все
// имена файла известны, поэтому тела свободно ссылаются на типы и
// функции, объявленные ниже по файлу.
//
// Ошибки никогда не раскручивают стек: каждый распознаватель отдаёт
// ошибочный узел с ссылкой на диагностику, и первый же сбой дословно
// поднимается до верхнего уровня.
package parser

import (
	"tci/internal/ast"
	"tci/internal/diag"
	"tci/internal/lexer"
	"tci/internal/source"
	"tci/internal/token"
)

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser — состояние разбора одного файла.
type Parser struct {
	lx     *lexer.Lexer
	arenas *ast.Builder
	bag    *diag.Bag
	file   ast.FileID
	src    *source.File  // байты исходника: классификация Invalid, тексты токенов
	buf    []token.Token // LIFO-буфер lookahead
}

// ParseFile — первая фаза: глобальные объявления одного файла.
// Все диагностики уходят в bag, ошибочные узлы попадают в AST наравне
// с успешными.
func ParseFile(lx *lexer.Lexer, arenas *ast.Builder, bag *diag.Bag) Result {
	src := lx.File()
	p := Parser{
		lx:     lx,
		arenas: arenas,
		bag:    bag,
		src:    src,
	}
	p.file = arenas.NewFile(source.Span{File: src.ID, Start: 0, End: uint32(len(src.Content))})
	p.parseGlobals()
	return Result{File: p.file, Bag: bag}
}

func (p *Parser) parseGlobals() {
	for !p.at(token.EOF) {
		id := p.parseGlobalDecl()
		p.arenas.PushStmt(p.file, id)
		if p.arenas.Stmts.IsError(id) {
			p.resyncTop()
		}
	}
}

// resyncTop — восстановление после ошибки: прокручиваем вход до
// границы следующего объявления. Терминаторы ';' и '}' съедаются,
// токены, способные начать тип, остаются в потоке.
func (p *Parser) resyncTop() {
	for {
		switch p.peek().Kind {
		case token.EOF:
			return
		case token.Semicolon, token.RBrace:
			p.pop()
			return
		case token.KwInt, token.KwChar, token.KwStruct, token.TypeIdent:
			return
		default:
			p.pop()
		}
	}
}
