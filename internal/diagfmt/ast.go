package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"tci/internal/ast"
	"tci/internal/diag"
	"tci/internal/source"
)

// ASTPrinter renders the declaration tree of one parsed file. The
// interner resolves names, the bag (optional) lets error nodes name
// the diagnostic behind them.
type ASTPrinter struct {
	Builder  *ast.Builder
	FileSet  *source.FileSet
	Interner *source.Interner
	Bag      *diag.Bag
}

type ASTNodeOutput struct {
	Node     string          `json:"node"`
	Span     source.Span     `json:"span"`
	Fields   map[string]any  `json:"fields,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// Pretty выводит дерево объявлений с псевдографикой.
func (p ASTPrinter) Pretty(w io.Writer, file ast.FileID) error {
	f := p.Builder.Files.Get(file)
	if f == nil {
		return fmt.Errorf("file %d not in the builder", file)
	}

	fmt.Fprintf(w, "File (%d declarations)\n", len(f.Stmts))
	for i, sid := range f.Stmts {
		connector, prefix := "├─ ", "│  "
		if i == len(f.Stmts)-1 {
			connector, prefix = "└─ ", "   "
		}
		fmt.Fprint(w, connector)
		p.writeStmt(w, sid, prefix)
	}
	return nil
}

func (p ASTPrinter) writeStmt(w io.Writer, sid ast.StmtID, prefix string) {
	stmt := p.Builder.Stmts.Get(sid)
	if stmt == nil {
		fmt.Fprintln(w, "<missing>")
		return
	}

	switch stmt.Kind {
	case ast.StmtError:
		fmt.Fprintf(w, "Error%s (%s)\n", p.diagSuffix(stmt.Diag), p.at(stmt.Span))

	case ast.StmtDecl:
		decl, _ := p.Builder.Stmts.Decl(sid)
		fmt.Fprintf(w, "Decl '%s': %s (%s)\n",
			p.name(decl.Name), p.typeLabel(decl.Type), p.at(stmt.Span))
		p.writeTypeBody(w, decl.Type, prefix)

	case ast.StmtTypeDecl:
		td, _ := p.Builder.Stmts.TypeDecl(sid)
		fmt.Fprintf(w, "TypeDecl: %s (%s)\n", p.typeLabel(td.Type), p.at(stmt.Span))
		p.writeTypeBody(w, td.Type, prefix)

	case ast.StmtFunc:
		fn, _ := p.Builder.Stmts.Func(sid)
		role := "forward"
		if fn.IsDefn {
			role = "defn"
		}
		fmt.Fprintf(w, "Func '%s' %s -> %s (%s)\n",
			p.name(fn.Name), role, p.typeLabel(fn.ReturnType), p.at(stmt.Span))

		params := p.Builder.Stmts.CollectParams(fn.ParamsStart, fn.ParamsCount)
		for i, param := range params {
			connector := "├─ "
			if i == len(params)-1 && !fn.IsDefn {
				connector = "└─ "
			}
			fmt.Fprintf(w, "%s%sParam '%s': %s\n",
				prefix, connector, p.name(param.Name), p.typeLabel(param.Type))
		}
		if fn.IsDefn {
			fmt.Fprintf(w, "%s└─ Body [%d..%d) %d bytes\n",
				prefix, fn.Body.Start, fn.Body.End, fn.Body.Len())
		}
	}
}

// writeTypeBody дорисовывает поля, если тип — struct-определение.
func (p ASTPrinter) writeTypeBody(w io.Writer, tid ast.TypeID, prefix string) {
	node := p.Builder.Types.Get(tid)
	if node == nil || node.Kind != ast.TypeStruct {
		return
	}
	st, ok := p.Builder.Types.Struct(tid)
	if !ok {
		return
	}
	fields := p.Builder.Types.CollectFields(st.FieldsStart, st.FieldsCount)
	for i, field := range fields {
		connector := "├─ "
		if i == len(fields)-1 {
			connector = "└─ "
		}
		fmt.Fprintf(w, "%s%sField '%s': %s\n",
			prefix, connector, p.name(field.Name), p.typeLabel(field.Type))
	}
}

// JSON выводит то же дерево в машинном формате.
func (p ASTPrinter) JSON(w io.Writer, file ast.FileID) error {
	root, err := p.Node(file)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}

// Node строит корень JSON-дерева без сериализации; каталожный вывод
// собирает такие корни в одну карту файл -> дерево.
func (p ASTPrinter) Node(file ast.FileID) (ASTNodeOutput, error) {
	f := p.Builder.Files.Get(file)
	if f == nil {
		return ASTNodeOutput{}, fmt.Errorf("file %d not in the builder", file)
	}

	root := ASTNodeOutput{Node: "File", Span: f.Span}
	for _, sid := range f.Stmts {
		root.Children = append(root.Children, p.stmtJSON(sid))
	}
	return root, nil
}

func (p ASTPrinter) stmtJSON(sid ast.StmtID) ASTNodeOutput {
	stmt := p.Builder.Stmts.Get(sid)
	if stmt == nil {
		return ASTNodeOutput{Node: "Missing"}
	}

	switch stmt.Kind {
	case ast.StmtError:
		out := ASTNodeOutput{Node: "Error", Span: stmt.Span}
		if d := p.lookupDiag(stmt.Diag); d != nil {
			out.Fields = map[string]any{
				"code":    d.Code.ID(),
				"message": d.Message,
			}
		}
		return out

	case ast.StmtDecl:
		decl, _ := p.Builder.Stmts.Decl(sid)
		out := ASTNodeOutput{
			Node: "Decl",
			Span: stmt.Span,
			Fields: map[string]any{
				"name": p.name(decl.Name),
				"type": p.typeLabel(decl.Type),
			},
		}
		out.Children = p.typeChildren(decl.Type)
		return out

	case ast.StmtTypeDecl:
		td, _ := p.Builder.Stmts.TypeDecl(sid)
		out := ASTNodeOutput{
			Node:   "TypeDecl",
			Span:   stmt.Span,
			Fields: map[string]any{"type": p.typeLabel(td.Type)},
		}
		out.Children = p.typeChildren(td.Type)
		return out

	case ast.StmtFunc:
		fn, _ := p.Builder.Stmts.Func(sid)
		out := ASTNodeOutput{
			Node: "Func",
			Span: stmt.Span,
			Fields: map[string]any{
				"name":    p.name(fn.Name),
				"returns": p.typeLabel(fn.ReturnType),
				"defn":    fn.IsDefn,
			},
		}
		for _, param := range p.Builder.Stmts.CollectParams(fn.ParamsStart, fn.ParamsCount) {
			out.Children = append(out.Children, ASTNodeOutput{
				Node: "Param",
				Span: param.Span,
				Fields: map[string]any{
					"name": p.name(param.Name),
					"type": p.typeLabel(param.Type),
				},
			})
		}
		if fn.IsDefn {
			out.Children = append(out.Children, ASTNodeOutput{
				Node: "Body",
				Span: fn.Body,
			})
		}
		return out
	}
	return ASTNodeOutput{Node: "Unknown", Span: stmt.Span}
}

func (p ASTPrinter) typeChildren(tid ast.TypeID) []ASTNodeOutput {
	node := p.Builder.Types.Get(tid)
	if node == nil || node.Kind != ast.TypeStruct {
		return nil
	}
	st, ok := p.Builder.Types.Struct(tid)
	if !ok {
		return nil
	}
	var children []ASTNodeOutput
	for _, field := range p.Builder.Types.CollectFields(st.FieldsStart, st.FieldsCount) {
		children = append(children, ASTNodeOutput{
			Node: "Field",
			Span: field.Span,
			Fields: map[string]any{
				"name": p.name(field.Name),
				"type": p.typeLabel(field.Type),
			},
		})
	}
	return children
}

func (p ASTPrinter) name(id source.StringID) string {
	if id == source.NoStringID {
		return "_"
	}
	if s, ok := p.Interner.Lookup(id); ok {
		return s
	}
	return "_"
}

// typeLabel — короткая подпись типа: базовое имя плюс звёздочки.
func (p ASTPrinter) typeLabel(tid ast.TypeID) string {
	node := p.Builder.Types.Get(tid)
	if node == nil {
		return "<missing>"
	}
	var base string
	switch node.Kind {
	case ast.TypeError:
		return "<error>"
	case ast.TypeInt:
		base = "Int"
	case ast.TypeChar:
		base = "Char"
	case ast.TypeNamed:
		base = p.name(node.Name)
	case ast.TypeStruct:
		if node.Name != source.NoStringID {
			base = "struct " + p.name(node.Name)
		} else {
			base = "struct"
		}
	}
	if node.Stars > 0 {
		base += strings.Repeat("*", int(node.Stars))
	}
	return base
}

func (p ASTPrinter) lookupDiag(id diag.ID) *diag.Diagnostic {
	if p.Bag == nil {
		return nil
	}
	return p.Bag.Get(id)
}

func (p ASTPrinter) diagSuffix(id diag.ID) string {
	if d := p.lookupDiag(id); d != nil {
		return " " + d.Code.ID()
	}
	return ""
}

func (p ASTPrinter) at(span source.Span) string {
	start, _ := p.FileSet.Resolve(span)
	return fmt.Sprintf("at %d:%d", start.Line, start.Col)
}
