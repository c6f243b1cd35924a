package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"tci/internal/project"
)

// Current schema version - increment when tokenPayload format changes
const tokenCacheSchema uint16 = 1

// tokenCacheTag подмешивается в ключ, чтобы новая схема даже не
// заглядывала в старые файлы.
var tokenCacheTag = project.OfBytes([]byte(fmt.Sprintf("tci-tokens-v%d", tokenCacheSchema)))

// DiskCache хранит токенизированные файлы по хешу содержимого.
// Чистая оптимизация: промах или битая запись просто означают
// повторную токенизацию. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// tokenPayload — плоское представление потока токенов одного файла.
// Спаны хранятся без FileID: при чтении они переносятся на файл,
// загруженный в текущий FileSet.
type tokenPayload struct {
	Schema  uint16
	Kinds   []uint8
	Starts  []uint32
	Ends    []uint32
	Syms    []uint32
	Strings []string // снимок интернера, индекс = StringID
}

func (p *tokenPayload) valid() bool {
	if p.Schema != tokenCacheSchema {
		return false
	}
	n := len(p.Kinds)
	if len(p.Starts) != n || len(p.Ends) != n || len(p.Syms) != n {
		return false
	}
	if len(p.Strings) > 0 && p.Strings[0] != "" {
		return false
	}
	for _, s := range p.Syms {
		if s != 0 && int(s) >= len(p.Strings) {
			return false
		}
	}
	return true
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt returns a cache rooted at an explicit directory.
// Tests point this at t.TempDir().
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	// Подкаталог "tokens" — чтобы будущие виды артефактов не
	// перемешивались в одном каталоге.
	return filepath.Join(c.dir, "tokens", fmt.Sprintf("%x.mp", key[:]))
}

// keyFor строит ключ кеша для содержимого файла.
func keyFor(contentHash [32]byte) project.Digest {
	return project.Combine(project.Digest(contentHash), tokenCacheTag)
}

// put serializes and writes a payload, replacing atomically.
func (c *DiskCache) put(key project.Digest, payload *tokenPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// get reads a payload; ok=false on miss, schema mismatch, or a
// malformed record.
func (c *DiskCache) get(key project.Digest, out *tokenPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, nil // битая запись = промах
	}
	if !out.valid() {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
