package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, dir, data string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write tci.toml: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root, `# test manifest
[package]
name = "demo"

[sources]
entry = "main.c"
include = ["src", "lib"]

[check]
max-diagnostics = 25

[runtime]
memory-limit = 65536
argv = ["demo", "--fast"]
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Package.Name != "demo" {
		t.Fatalf("name = %q, want demo", cfg.Package.Name)
	}
	if cfg.Sources.Entry != "main.c" {
		t.Fatalf("entry = %q, want main.c", cfg.Sources.Entry)
	}
	if len(cfg.Sources.Include) != 2 || cfg.Sources.Include[0] != "src" {
		t.Fatalf("include = %v, want [src lib]", cfg.Sources.Include)
	}
	if cfg.Check.MaxDiagnostics != 25 {
		t.Fatalf("max-diagnostics = %d, want 25", cfg.Check.MaxDiagnostics)
	}
	if cfg.Runtime.MemoryLimit != 65536 {
		t.Fatalf("memory-limit = %d, want 65536", cfg.Runtime.MemoryLimit)
	}
	if len(cfg.Runtime.Argv) != 2 || cfg.Runtime.Argv[1] != "--fast" {
		t.Fatalf("argv = %v", cfg.Runtime.Argv)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root, `[package]
name = "demo"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Check.MaxDiagnostics != DefaultMaxDiagnostics {
		t.Fatalf("max-diagnostics = %d, want default %d", cfg.Check.MaxDiagnostics, DefaultMaxDiagnostics)
	}
	if cfg.Runtime.MemoryLimit != 0 {
		t.Fatalf("memory-limit = %d, want 0 (machine default)", cfg.Runtime.MemoryLimit)
	}
	if cfg.Sources.Entry != "" || cfg.Sources.Include != nil {
		t.Fatalf("sources: got %q %v, want empty", cfg.Sources.Entry, cfg.Sources.Include)
	}
}

func TestLoadConfigRejectsBadManifests(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "no package section",
			data:    "[check]\nmax-diagnostics = 5\n",
			wantErr: "missing [package]",
		},
		{
			name:    "empty name",
			data:    "[package]\nname = \"  \"\n",
			wantErr: "missing [package].name",
		},
		{
			name:    "negative diagnostics cap",
			data:    "[package]\nname = \"demo\"\n\n[check]\nmax-diagnostics = -1\n",
			wantErr: "must not be negative",
		},
		{
			name:    "broken TOML",
			data:    "[package\nname = demo\n",
			wantErr: "failed to parse TOML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tt.data)
			_, err := LoadConfig(path)
			if err == nil {
				t.Fatalf("LoadConfig accepted bad manifest")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

// Load поднимается по каталогам до первого tci.toml.
func TestLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `[package]
name = "demo"

[sources]
entry = "src/main.c"
include = ["src"]
`)
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	m, ok, err := Load(nested)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !ok {
		t.Fatalf("manifest not found from nested dir")
	}
	if m.Root != root {
		t.Fatalf("root = %q, want %q", m.Root, root)
	}
	if want := filepath.Join(root, "src", "main.c"); m.EntryPath() != want {
		t.Fatalf("entry = %q, want %q", m.EntryPath(), want)
	}
	dirs := m.IncludePaths()
	if len(dirs) != 1 || dirs[0] != filepath.Join(root, "src") {
		t.Fatalf("include dirs = %v", dirs)
	}
}

func TestLoadWithoutManifest(t *testing.T) {
	m, ok, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok || m != nil {
		t.Fatalf("expected no manifest, got ok=%v m=%v", ok, m)
	}
}

func TestCombineDependsOnAllParts(t *testing.T) {
	content := OfBytes([]byte("Int main() { return 0; }"))
	schema := OfBytes([]byte("tokens-v1"))

	plain := Combine(content)
	keyed := Combine(content, schema)
	if plain == keyed {
		t.Fatalf("schema digest did not change the key")
	}
	if keyed != Combine(content, schema) {
		t.Fatalf("Combine is not deterministic")
	}
}
