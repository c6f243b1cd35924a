package driver

import (
	"os"
	"path/filepath"
	"testing"

	"tci/internal/diag"
	"tci/internal/source"
	"tci/internal/token"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func newTestCache(t *testing.T) *DiskCache {
	t.Helper()
	c, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	return c
}

func TestTokenizeProducesTokens(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.c", "Int x;\n")

	res, err := Tokenize(path, 0, nil)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	want := []token.Kind{token.KwInt, token.Ident, token.Semicolon, token.EOF}
	if len(res.Tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(res.Tokens), len(want))
	}
	for i, kind := range want {
		if res.Tokens[i].Kind != kind {
			t.Errorf("token %d: got %v, want %v", i, res.Tokens[i].Kind, kind)
		}
	}
	if res.FromCache {
		t.Error("run without a cache cannot report FromCache")
	}
	if res.Bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", res.Bag.Items())
	}
}

func TestTokenizeCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	path := writeFile(t, t.TempDir(), "main.c", "Int main() { return answer; }\n")

	first, err := Tokenize(path, 0, cache)
	if err != nil {
		t.Fatalf("cold run: %v", err)
	}
	if first.FromCache {
		t.Fatal("cold run must lex")
	}

	second, err := Tokenize(path, 0, cache)
	if err != nil {
		t.Fatalf("warm run: %v", err)
	}
	if !second.FromCache {
		t.Fatal("warm run must hit the cache")
	}

	if len(first.Tokens) != len(second.Tokens) {
		t.Fatalf("token count changed: %d vs %d", len(first.Tokens), len(second.Tokens))
	}
	for i := range first.Tokens {
		a, b := first.Tokens[i], second.Tokens[i]
		if a.Kind != b.Kind || a.Span != b.Span || a.Sym != b.Sym {
			t.Errorf("token %d differs: %+v vs %+v", i, a, b)
		}
	}

	// восстановленные StringID указывают на те же тексты
	for i, tok := range second.Tokens {
		if tok.Sym == source.NoStringID {
			continue
		}
		want := first.Interner.MustLookup(first.Tokens[i].Sym)
		if got := second.Interner.MustLookup(tok.Sym); got != want {
			t.Errorf("token %d text: got %q, want %q", i, got, want)
		}
	}
}

func TestTokenizeCacheMissesOnEdit(t *testing.T) {
	cache := newTestCache(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "main.c", "Int x;\n")

	if _, err := Tokenize(path, 0, cache); err != nil {
		t.Fatalf("cold run: %v", err)
	}
	writeFile(t, dir, "main.c", "Int y;\n")

	res, err := Tokenize(path, 0, cache)
	if err != nil {
		t.Fatalf("run after edit: %v", err)
	}
	if res.FromCache {
		t.Fatal("changed content must miss the cache")
	}
	if got := res.Interner.MustLookup(res.Tokens[1].Sym); got != "y" {
		t.Errorf("identifier: got %q, want %q", got, "y")
	}
}

func TestTokenizeReportsInvalid(t *testing.T) {
	cache := newTestCache(t)
	path := writeFile(t, t.TempDir(), "main.c", "Int x @ 3;\n")

	for _, warm := range []bool{false, true} {
		res, err := Tokenize(path, 0, cache)
		if err != nil {
			t.Fatalf("warm=%v: %v", warm, err)
		}
		if res.FromCache != warm {
			t.Fatalf("warm=%v: FromCache=%v", warm, res.FromCache)
		}
		items := res.Bag.Items()
		if len(items) != 1 {
			t.Fatalf("warm=%v: got %d diagnostics, want 1: %v", warm, len(items), items)
		}
		d := items[0]
		if d.Code != diag.LexUnknownChar {
			t.Errorf("warm=%v: code %s, want %s", warm, d.Code.ID(), diag.LexUnknownChar.ID())
		}
		if d.Severity != diag.SevError {
			t.Errorf("warm=%v: severity %v", warm, d.Severity)
		}
		if d.Primary.Start != 6 || d.Primary.End != 7 {
			t.Errorf("warm=%v: span %d..%d, want 6..7", warm, d.Primary.Start, d.Primary.End)
		}
	}
}

func TestTokenizeHonorsDiagnosticCap(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.c", "@ @ @ @;\n")

	res, err := Tokenize(path, 2, nil)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if res.Bag.Len() != 2 {
		t.Errorf("got %d diagnostics, want the cap of 2", res.Bag.Len())
	}
}

func TestTokenizeMissingFile(t *testing.T) {
	_, err := Tokenize(filepath.Join(t.TempDir(), "ghost.c"), 0, nil)
	if err == nil {
		t.Fatal("want an error for a missing file")
	}
}
