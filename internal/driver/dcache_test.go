package driver

import (
	"os"
	"path/filepath"
	"testing"

	"tci/internal/project"
)

func samplePayload() *tokenPayload {
	return &tokenPayload{
		Schema:  tokenCacheSchema,
		Kinds:   []uint8{3, 17},
		Starts:  []uint32{0, 4},
		Ends:    []uint32{3, 5},
		Syms:    []uint32{0, 1},
		Strings: []string{"", "x"},
	}
}

func TestPayloadValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*tokenPayload)
		want   bool
	}{
		{"intact", func(*tokenPayload) {}, true},
		{"wrong schema", func(p *tokenPayload) { p.Schema = 99 }, false},
		{"length mismatch", func(p *tokenPayload) { p.Starts = p.Starts[:1] }, false},
		{"sym out of range", func(p *tokenPayload) { p.Syms[1] = 42 }, false},
		{"reserved slot taken", func(p *tokenPayload) { p.Strings[0] = "oops" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := samplePayload()
			tt.mutate(p)
			if got := p.valid(); got != tt.want {
				t.Errorf("valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCachePutGet(t *testing.T) {
	c := newTestCache(t)
	key := project.OfBytes([]byte("content"))

	if err := c.put(key, samplePayload()); err != nil {
		t.Fatalf("put: %v", err)
	}

	var out tokenPayload
	hit, err := c.get(key, &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !hit {
		t.Fatal("stored key must hit")
	}
	if out.Kinds[0] != 3 || out.Ends[1] != 5 || out.Strings[1] != "x" {
		t.Errorf("payload mangled: %+v", out)
	}

	var miss tokenPayload
	hit, err = c.get(project.OfBytes([]byte("other")), &miss)
	if err != nil || hit {
		t.Fatalf("want a clean miss, got hit=%v err=%v", hit, err)
	}
}

func TestCacheRejectsForeignSchema(t *testing.T) {
	c := newTestCache(t)
	key := project.OfBytes([]byte("old"))

	stale := samplePayload()
	stale.Schema = tokenCacheSchema + 1
	if err := c.put(key, stale); err != nil {
		t.Fatalf("put: %v", err)
	}

	var out tokenPayload
	hit, err := c.get(key, &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if hit {
		t.Error("foreign schema must read as a miss")
	}
}

func TestCacheSurvivesGarbageFile(t *testing.T) {
	c := newTestCache(t)
	key := project.OfBytes([]byte("junk"))

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("not msgpack"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out tokenPayload
	hit, err := c.get(key, &out)
	if err != nil || hit {
		t.Errorf("corrupt record: want a clean miss, got hit=%v err=%v", hit, err)
	}
}

func TestCacheNilReceiver(t *testing.T) {
	var c *DiskCache

	if err := c.put(project.Digest{}, samplePayload()); err != nil {
		t.Errorf("nil put: %v", err)
	}
	var out tokenPayload
	hit, err := c.get(project.Digest{}, &out)
	if hit || err != nil {
		t.Errorf("nil get: hit=%v err=%v", hit, err)
	}
	if err := c.DropAll(); err != nil {
		t.Errorf("nil DropAll: %v", err)
	}
}

func TestDropAll(t *testing.T) {
	c := newTestCache(t)
	key := project.OfBytes([]byte("doomed"))
	if err := c.put(key, samplePayload()); err != nil {
		t.Fatalf("put: %v", err)
	}

	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}

	var out tokenPayload
	hit, err := c.get(key, &out)
	if err != nil {
		t.Fatalf("get after drop: %v", err)
	}
	if hit {
		t.Error("dropped cache must miss")
	}
}

func TestOpenDiskCacheHonorsXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	c, err := OpenDiskCache("tci-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	want := filepath.Join(base, "tci-test")
	if c.dir != want {
		t.Errorf("dir = %q, want %q", c.dir, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("cache dir not created: %v", err)
	}
}

func TestKeyForMixesSchema(t *testing.T) {
	var hash [32]byte
	hash[0] = 7
	if keyFor(hash) == project.Digest(hash) {
		t.Error("cache key must not equal the raw content hash")
	}
}
