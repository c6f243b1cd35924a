package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"tci/internal/driver"
	"tci/internal/project"
)

// resolveColor определяет, красить ли вывод в f, по флагу --color.
func resolveColor(cmd *cobra.Command, f *os.File) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.TrimSpace(strings.ToLower(mode)) {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "", "auto":
		return isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|always|never)", mode)
	}
}

// resolveMaxDiagnostics собирает эффективный потолок диагностик:
// явный флаг сильнее tci.toml, tci.toml сильнее дефолта.
func resolveMaxDiagnostics(cmd *cobra.Command, targetPath string) (int, error) {
	flags := cmd.Root().PersistentFlags()
	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if flags.Changed("max-diagnostics") {
		return maxDiagnostics, nil
	}

	manifest, ok, err := project.Load(startDirFor(targetPath))
	if err != nil {
		// Битый манифест — ошибка конфигурации, а не повод для дефолта.
		return 0, err
	}
	if ok {
		return manifest.Config.Check.MaxDiagnostics, nil
	}
	return project.DefaultMaxDiagnostics, nil
}

// startDirFor — каталог, от которого искать tci.toml для цели.
func startDirFor(target string) string {
	st, err := os.Stat(target)
	if err == nil && st.IsDir() {
		return target
	}
	return filepath.Dir(target)
}

// openCache открывает дисковый кеш токенов, если его не выключили
// флагом --no-cache. Недоступный кеш не срывает команду: без него
// просто лексим заново.
func openCache(cmd *cobra.Command) (*driver.DiskCache, error) {
	noCache, err := cmd.Root().PersistentFlags().GetBool("no-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if noCache {
		return nil, nil
	}
	cache, err := driver.OpenDiskCache("tci")
	if err != nil {
		quiet, qerr := cmd.Root().PersistentFlags().GetBool("quiet")
		if qerr == nil && !quiet {
			fmt.Fprintf(os.Stderr, "warning: token cache disabled: %v\n", err)
		}
		return nil, nil
	}
	return cache, nil
}

// silentExit — диагностики уже напечатаны, нужен только ненулевой
// код возврата без повторного вывода от cobra.
func silentExit(cmd *cobra.Command) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return fmt.Errorf("")
}
