package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tci/internal/diagfmt"
	"tci/internal/driver"
	"tci/internal/observ"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.c|directory>",
	Short: "Tokenize a C source file or directory",
	Long:  `Tokenize breaks a source file (or every *.c file in a directory) into its token stream`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	maxDiagnostics, err := resolveMaxDiagnostics(cmd, filePath)
	if err != nil {
		return err
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	cache, err := openCache(cmd)
	if err != nil {
		return err
	}

	useColor, err := resolveColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	prettyOpts := diagfmt.PrettyOpts{
		Color:   useColor,
		Context: 2,
	}

	st, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}

	if !st.IsDir() {
		ph := -1
		if timer != nil {
			ph = timer.Begin("tokenize")
		}
		result, err := driver.Tokenize(filePath, maxDiagnostics, cache)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}
		if timer != nil {
			note := ""
			if result.FromCache {
				note = "cache hit"
			}
			timer.End(ph, note)
		}

		// Диагностика в stderr, токены в stdout
		if result.Bag.HasErrors() || result.Bag.HasWarnings() {
			diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, prettyOpts)
		}

		switch format {
		case "pretty":
			err = diagfmt.FormatTokensPretty(os.Stdout, result.Tokens, result.FileSet)
		case "json":
			err = diagfmt.FormatTokensJSON(os.Stdout, result.Tokens, result.FileSet)
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
		if err != nil {
			return err
		}
		if timer != nil {
			fmt.Fprint(os.Stderr, timer.Summary())
		}
		return nil
	}

	// Каталог
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	ph := -1
	if timer != nil {
		ph = timer.Begin("tokenize")
	}
	fs, results, err := driver.TokenizeDir(cmd.Context(), filePath, maxDiagnostics, jobs, cache)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if timer != nil {
		timer.End(ph, fmt.Sprintf("%d files", len(results)))
	}

	for _, r := range results {
		if r.Bag.HasErrors() || r.Bag.HasWarnings() {
			diagfmt.Pretty(os.Stderr, r.Bag, fs, prettyOpts)
		}
	}

	switch format {
	case "pretty":
		for idx, r := range results {
			if !quiet {
				fmt.Fprintf(os.Stdout, "== %s ==\n", r.Path)
			}
			if err := diagfmt.FormatTokensPretty(os.Stdout, r.Tokens, fs); err != nil {
				return err
			}
			if !quiet && idx < len(results)-1 {
				fmt.Fprintln(os.Stdout)
			}
		}
	case "json":
		output := make(map[string][]diagfmt.TokenOutput, len(results))
		for _, r := range results {
			output[r.Path] = diagfmt.BuildTokensOutput(r.Tokens, fs)
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if timer != nil {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	return nil
}
