package fuzztests

import (
	"testing"

	"tci/internal/dialect"
	"tci/internal/lexer"
	"tci/internal/source"
	"tci/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(_ *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.c", input)
		file := fs.Get(fileID)

		// сбор улик включён: окно пар токенов тоже должно переживать
		// произвольные байты
		evidence := dialect.NewEvidence()
		lx := lexer.New(file, lexer.Options{DialectEvidence: evidence})
		for {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
		}
		_ = dialect.Classifier{}.Classify(evidence)
	})
}
