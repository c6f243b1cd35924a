package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"tci/internal/ast"
	"tci/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span stamps the whole content range of the source file
// 2) every declaration span is fully contained in file.Span; successful
// declarations are non-empty, error nodes may collapse to a point (EOF)
// 3) file.Span covers the union of declaration spans (if any exist)
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	// 1) file span sanity
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.Start != 0 || f.Span.End != lenContent {
		return fmt.Errorf("file span %v does not match content bounds [0, %d)", f.Span, lenContent)
	}

	// 2) decl spans within file span; 3) file covers union
	var union source.Span
	var haveDecl bool
	for _, id := range f.Stmts {
		stmt := b.Stmts.Get(id)
		if stmt == nil {
			return fmt.Errorf("nil declaration for id=%d", id)
		}
		sp := stmt.Span
		if sp.End < sp.Start {
			return fmt.Errorf("inverted declaration span: %v", sp)
		}
		if sp.End == sp.Start && stmt.Kind != ast.StmtError {
			return fmt.Errorf("empty span on successful declaration: %v", sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("declaration span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		// decl inside file
		if sp.Start < f.Span.Start || sp.End > f.Span.End {
			return fmt.Errorf("declaration span %v is outside file span %v", sp, f.Span)
		}
		if !haveDecl {
			union = sp
			haveDecl = true
		} else {
			union = union.Cover(sp)
		}
	}

	if haveDecl {
		// file covers union
		if union.Start < f.Span.Start || union.End > f.Span.End {
			return fmt.Errorf("file span %v does not cover union of declarations %v", f.Span, union)
		}
	}
	return nil
}
