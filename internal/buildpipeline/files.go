package buildpipeline

import (
	"path/filepath"
	"sort"
	"strings"
)

// NormalizeFile приводит один путь к каноничному виду показа:
// относительно baseDir, с прямыми слэшами. События прогресса и
// списки файлов в TUI обязаны совпадать строка в строку, поэтому обе
// стороны зовут именно эту функцию.
func NormalizeFile(file, baseDir string) string {
	if file == "" {
		return ""
	}
	path := filepath.Clean(file)
	base := strings.TrimSpace(baseDir)
	if base != "" {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if rel, err := filepath.Rel(base, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}

// NormalizeFiles готовит список файлов к показу: пути относительно
// baseDir, прямые слэши, без дублей, в алфавитном порядке.
func NormalizeFiles(files []string, baseDir string) []string {
	if len(files) == 0 {
		return files
	}
	normalized := make([]string, 0, len(files))
	seen := make(map[string]struct{}, len(files))

	for _, file := range files {
		path := NormalizeFile(file, baseDir)
		if path == "" {
			continue
		}
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		normalized = append(normalized, path)
	}
	sort.Strings(normalized)
	return normalized
}
