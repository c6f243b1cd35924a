package dialect

import (
	"tci/internal/source"
	"tci/internal/token"
)

// ObserveTokenPair records token-pattern evidence from a sliding two-token
// window. The caller feeds freshly produced tokens in source order; tokens
// replayed from a lookahead buffer must not be fed twice.
func ObserveTokenPair(e *Evidence, in *source.Interner, prev, tok token.Token) {
	if e == nil {
		return
	}

	adjacent := prev.Span.File == tok.Span.File && prev.Span.End == tok.Span.Start

	// Python block syntax: `):` и `else:`. В C после `)` и `else`
	// двоеточие не встречается никогда.
	if tok.Kind == token.Colon && adjacent {
		switch prev.Kind {
		case token.RParen:
			e.Add(Hint{
				Kind:   Python,
				Score:  5,
				Reason: "python block syntax `):`",
				Span:   prev.Span.Cover(tok.Span),
			})
		case token.KwElse:
			e.Add(Hint{
				Kind:   Python,
				Score:  6,
				Reason: "python block syntax `else:`",
				Span:   prev.Span.Cover(tok.Span),
			})
		}
	}

	// C++ scope syntax: `::` lexes as two adjacent colons here.
	if prev.Kind == token.Colon && tok.Kind == token.Colon && adjacent {
		e.Add(Hint{
			Kind:   Cpp,
			Score:  5,
			Reason: "c++ scope syntax `::`",
			Span:   prev.Span.Cover(tok.Span),
		})
	}

	// JavaScript arrow: `=>` lexes as `=` immediately followed by `>`.
	if prev.Kind == token.Assign && tok.Kind == token.Gt && adjacent {
		e.Add(Hint{
			Kind:   JavaScript,
			Score:  5,
			Reason: "javascript arrow `=>`",
			Span:   prev.Span.Cover(tok.Span),
		})
	}

	// Python f-string: идентификатор f, прилепленный к строковому литералу.
	if prev.Kind == token.Ident && tok.Kind == token.StringLit && adjacent && identText(in, prev) == "f" {
		e.Add(Hint{
			Kind:   Python,
			Score:  3,
			Reason: "python f-string",
			Span:   prev.Span.Cover(tok.Span),
		})
	}

	// Stream I/O: `cout << ...`, `cin >> ...` (adjacency not required,
	// these are normally spaced).
	if prev.Kind == token.Ident && tok.Kind == token.Shl {
		switch identText(in, prev) {
		case "cout", "cerr":
			e.Add(Hint{
				Kind:   Cpp,
				Score:  6,
				Reason: "c++ stream output `" + identText(in, prev) + " <<`",
				Span:   prev.Span.Cover(tok.Span),
			})
		}
	}
	if prev.Kind == token.Ident && tok.Kind == token.Shr && identText(in, prev) == "cin" {
		e.Add(Hint{
			Kind:   Cpp,
			Score:  5,
			Reason: "c++ stream input `cin >>`",
			Span:   prev.Span.Cover(tok.Span),
		})
	}

	// Member-access giveaways: console.log, System.out, self.field.
	if tok.Kind == token.Dot {
		switch {
		case prev.Kind == token.Ident && identText(in, prev) == "console":
			e.Add(Hint{
				Kind:   JavaScript,
				Score:  5,
				Reason: "javascript `console.` call",
				Span:   prev.Span.Cover(tok.Span),
			})
		case prev.Kind == token.TypeIdent && identText(in, prev) == "System":
			e.Add(Hint{
				Kind:   Java,
				Score:  5,
				Reason: "java `System.` call",
				Span:   prev.Span.Cover(tok.Span),
			})
		case prev.Kind == token.Ident && identText(in, prev) == "self":
			e.Add(Hint{
				Kind:   Python,
				Score:  3,
				Reason: "python `self.` access",
				Span:   prev.Span.Cover(tok.Span),
			})
		}
	}
}

func identText(in *source.Interner, tok token.Token) string {
	if in == nil || tok.Sym == source.NoStringID {
		return ""
	}
	text, ok := in.Lookup(tok.Sym)
	if !ok {
		return ""
	}
	return text
}
