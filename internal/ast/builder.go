package ast

import (
	"tci/internal/source"
)

type Hints struct{ Files, Stmts, Types uint }

// Builder держит арены одной единицы компиляции. Никакого общего
// состояния между единицами: каждая получает свой Builder.
type Builder struct {
	Files *Files
	Stmts *Stmts
	Types *Types
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 4
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Types == 0 {
		hints.Types = 1 << 8
	}
	return &Builder{
		Files: NewFiles(hints.Files),
		Stmts: NewStmts(hints.Stmts),
		Types: NewTypes(hints.Types),
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) PushStmt(file FileID, stmt StmtID) {
	b.Files.Get(file).Stmts = append(b.Files.Get(file).Stmts, stmt)
}
