package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addSnippetSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.c файлы
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".c" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
	// добавляем хотя бы один минимальный пример на случай пустого testdata
	f.Add([]byte{})
	f.Add([]byte("Int main() { return 0; }\n"))
}

// addSnippetSeeds подмешивает короткие фрагменты, бьющие по углам
// грамматики: учебный минимум, обрывки посреди объявления и входы на
// другом языке для сборщика улик.
func addSnippetSeeds(f *testing.F) {
	snippets := []string{
		"Int x;\n",
		"Int *p;\n",
		"Char **argv;\n",
		"struct Point { Int x; Int y; };\n",
		"struct Point { Int x; } origin;\n",
		"struct { Int anon; };\n",
		"struct Node { Int value; Node *next; };\n",
		"Int twice(Int x);\n",
		"Int add(Int a, Int b) { return a + b; }\n",
		"Int main() { printf(\"hi\\n\"); return 0; }\n",
		// обрывки: парсер обязан пережить их без паники
		"Int",
		"Int ;",
		"Int x",
		"struct",
		"struct Point {",
		"struct Point { Int",
		"Int main() {",
		"int x;\n",
		"Int x = 5;\n",
		"\"unterminated",
		"'x",
		"/* unterminated",
		// не-C входы кормят сборщик улик о диалекте
		"def greet(name):\n    print(name)\n",
		"std::cout << x << std::endl;\n",
		"console.log(42);\n",
	}
	for _, snippet := range snippets {
		f.Add([]byte(snippet))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
