package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tci/internal/diagfmt"
	"tci/internal/driver"
	"tci/internal/project"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.c|directory]",
	Short: "Check C sources for lexical, syntax and naming errors",
	Long: `Check runs the full front end: tokens, declarations, the global name
registry and function bodies. Without an argument the targets come from
tci.toml ([sources].entry and [sources].include).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().String("progress", "auto", "progress TUI for directories (auto|on|off)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	progressStr, err := cmd.Flags().GetString("progress")
	if err != nil {
		return fmt.Errorf("failed to get progress flag: %w", err)
	}
	progress, err := readProgressMode(progressStr)
	if err != nil {
		return err
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	targets := args
	if len(targets) == 0 {
		manifest, ok, err := project.Load(".")
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no tci.toml found\nspecify a file or directory, e.g.:\n  tci check src/main.c")
		}
		if entry := manifest.EntryPath(); entry != "" {
			targets = append(targets, entry)
		}
		targets = append(targets, manifest.IncludePaths()...)
		if len(targets) == 0 {
			return fmt.Errorf("%s: [sources] names nothing to check", manifest.Path)
		}
	}

	exit := 0
	for _, target := range targets {
		maxDiagnostics, err := resolveMaxDiagnostics(cmd, target)
		if err != nil {
			return err
		}
		opts := driver.CheckOptions{
			MaxDiagnostics: maxDiagnostics,
			Timings:        showTimings,
		}

		st, err := os.Stat(target)
		if err != nil {
			return fmt.Errorf("failed to stat path: %w", err)
		}

		var code int
		if st.IsDir() {
			code, err = runCheckDir(cmd, target, opts, format, progress, quiet)
		} else {
			code, err = runCheckFile(cmd, target, opts, format)
		}
		if err != nil {
			return err
		}
		if code != 0 {
			exit = code
		}
	}

	if exit != 0 {
		return silentExit(cmd)
	}
	return nil
}

func runCheckFile(cmd *cobra.Command, path string, opts driver.CheckOptions, format string) (int, error) {
	result, err := driver.Check(path, opts)
	if err != nil {
		return 0, fmt.Errorf("check failed: %w", err)
	}

	exit := 0
	if result.Bag.HasErrors() {
		exit = 1
	}

	// Дерево больше не нужно, можно упорядочить перед показом.
	result.Bag.Sort()

	useColor, err := resolveColor(cmd, os.Stdout)
	if err != nil {
		return 0, err
	}

	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stdout, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:     useColor,
			Context:   2,
			ShowNotes: true,
		})
	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		}
		if err := diagfmt.JSON(os.Stdout, result.Bag, result.FileSet, jsonOpts); err != nil {
			return 0, fmt.Errorf("failed to format diagnostics: %w", err)
		}
	default:
		return 0, fmt.Errorf("unknown format: %s", format)
	}

	if result.Timing != nil {
		fmt.Fprint(os.Stderr, result.Timing.Summary())
	}
	return exit, nil
}

func runCheckDir(cmd *cobra.Command, dir string, opts driver.CheckOptions, format string, progress progressMode, quiet bool) (int, error) {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return 0, fmt.Errorf("failed to get jobs flag: %w", err)
	}

	// TUI рисует в stdout, поэтому несовместим с машинным выводом
	useTUI := format == "pretty" && shouldShowProgress(progress)

	var out *driver.CheckDirOutput
	if useTUI {
		out, err = runCheckDirWithUI(cmd, dir, opts, jobs)
	} else {
		out, err = driver.CheckDir(cmd.Context(), dir, opts, jobs, nil)
	}
	if err != nil {
		return 0, fmt.Errorf("check failed: %w", err)
	}

	exit := 0
	for _, r := range out.Results {
		if r.Bag.HasErrors() {
			exit = 1
			break
		}
	}

	useColor, err := resolveColor(cmd, os.Stdout)
	if err != nil {
		return 0, err
	}

	switch format {
	case "pretty":
		prettyOpts := diagfmt.PrettyOpts{
			Color:     useColor,
			Context:   2,
			ShowNotes: true,
		}
		printed := false
		for _, r := range out.Results {
			if !r.Bag.HasErrors() && !r.Bag.HasWarnings() {
				continue
			}
			r.Bag.Sort()
			if printed && !quiet {
				fmt.Fprintln(os.Stdout)
			}
			if !quiet {
				fmt.Fprintf(os.Stdout, "== %s ==\n", r.Path)
			}
			diagfmt.Pretty(os.Stdout, r.Bag, out.FileSet, prettyOpts)
			printed = true
		}
	case "json":
		jsonOpts := diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		}
		output := make(map[string]diagfmt.DiagnosticsOutput, len(out.Results))
		for _, r := range out.Results {
			r.Bag.Sort()
			output[r.Path] = diagfmt.BuildDiagnosticsOutput(r.Bag, out.FileSet, jsonOpts)
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return 0, fmt.Errorf("failed to encode diagnostics output: %w", err)
		}
	default:
		return 0, fmt.Errorf("unknown format: %s", format)
	}

	if out.Timing != nil {
		fmt.Fprint(os.Stderr, out.Timing.Summary())
	}
	return exit, nil
}
