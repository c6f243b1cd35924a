package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"tci/internal/source"
	"tci/internal/token"
)

type TokenOutput struct {
	Kind string      `json:"kind"`
	Text string      `json:"text,omitempty"`
	Span source.Span `json:"span"`
}

// tokenText вырезает текст токена из исходника; для EOF он пуст.
func tokenText(tok token.Token, fs *source.FileSet) string {
	if tok.Kind == token.EOF || int(tok.Span.File) >= fs.Len() {
		return ""
	}
	return string(fs.Get(tok.Span.File).Slice(tok.Span))
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		fmt.Fprintf(w, "%3d: %-12s", i+1, tok.Kind.String())

		if text := tokenText(tok, fs); text != "" {
			fmt.Fprintf(w, " %q", text)
		}

		fmt.Fprintf(w, " at %d:%d-%d:%d",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)

		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokensOutput(tokens, fs))
}

// BuildTokensOutput собирает JSON-представление потока без
// сериализации; каталожный вывод кладёт такие срезы в карту
// файл -> токены.
func BuildTokensOutput(tokens []token.Token, fs *source.FileSet) []TokenOutput {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind: tok.Kind.String(),
			Text: tokenText(tok, fs),
			Span: tok.Span,
		})

		if tok.Kind == token.EOF {
			break
		}
	}
	return output
}
