package lexer

import (
	"tci/internal/dialect"
	"tci/internal/source"
)

// Options configure a Lexer.
//
// Лексер сам НИКОГДА не сообщает об ошибках: испорченный ввод становится
// токеном Invalid, а текст ошибки подбирает парсер, у которого есть контекст.
type Options struct {
	// Interner receives every identifier. When nil, the lexer creates a
	// private one (удобно в тестах).
	Interner *source.Interner

	// DialectEvidence, when non-nil, collects foreign-language signals
	// (Python/C++/Java/JavaScript words and token patterns) as a side
	// channel. Collection never changes the produced tokens.
	DialectEvidence *dialect.Evidence
}
