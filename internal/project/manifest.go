package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultMaxDiagnostics — потолок диагностик на прогон, когда ни
// манифест, ни флаг его не задали.
const DefaultMaxDiagnostics = 100

// Manifest — загруженный tci.toml вместе с местом, где он найден.
// Root служит базой для относительных путей манифеста.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package PackageConfig `toml:"package"`
	Sources SourcesConfig `toml:"sources"`
	Check   CheckConfig   `toml:"check"`
	Runtime RuntimeConfig `toml:"runtime"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

// SourcesConfig задаёт, что проверять, когда команда вызвана без
// аргументов: головной файл и дополнительные каталоги.
type SourcesConfig struct {
	Entry   string   `toml:"entry"`
	Include []string `toml:"include"`
}

type CheckConfig struct {
	MaxDiagnostics int `toml:"max-diagnostics"`
}

// RuntimeConfig — настройки машины. Нулевой memory-limit означает
// встроенный лимит самой машины.
type RuntimeConfig struct {
	MemoryLimit uint32   `toml:"memory-limit"`
	Argv        []string `toml:"argv"`
}

// Load ищет tci.toml вверх от startDir и разбирает его.
// Отсутствие манифеста — не ошибка: ok будет false.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifestPath(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// LoadConfig разбирает манифест по точному пути.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Config{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return Config{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if cfg.Check.MaxDiagnostics < 0 {
		return Config{}, fmt.Errorf("%s: [check].max-diagnostics must not be negative", path)
	}
	if cfg.Check.MaxDiagnostics == 0 {
		cfg.Check.MaxDiagnostics = DefaultMaxDiagnostics
	}
	return cfg, nil
}

// EntryPath возвращает абсолютный путь головного файла, пустую
// строку, если [sources].entry не задан.
func (m *Manifest) EntryPath() string {
	entry := strings.TrimSpace(m.Config.Sources.Entry)
	if entry == "" {
		return ""
	}
	return filepath.Join(m.Root, filepath.FromSlash(entry))
}

// IncludePaths возвращает абсолютные пути каталогов [sources].include.
func (m *Manifest) IncludePaths() []string {
	if len(m.Config.Sources.Include) == 0 {
		return nil
	}
	dirs := make([]string, 0, len(m.Config.Sources.Include))
	for _, dir := range m.Config.Sources.Include {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		dirs = append(dirs, filepath.Join(m.Root, filepath.FromSlash(dir)))
	}
	return dirs
}
