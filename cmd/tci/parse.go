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

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.c|directory>",
	Short: "Parse a C source file or directory and output the AST",
	Long:  `Parse builds the declaration tree of a source file (or every *.c file in a directory); function bodies stay captured as byte ranges`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

func runParse(cmd *cobra.Command, args []string) error {
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

	useColor, err := resolveColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	prettyOpts := diagfmt.PrettyOpts{
		Color:   useColor,
		Context: 2,
	}

	cleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

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
			ph = timer.Begin("parse")
		}
		result, err := driver.Parse(filePath, maxDiagnostics)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		if timer != nil {
			timer.End(ph, "")
		}

		// Bag не сортируем: узлы Error держат ссылки на диагностики,
		// и дамп AST читает их по живым ID.
		if result.Bag.HasErrors() || result.Bag.HasWarnings() {
			diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, prettyOpts)
		}

		printer := diagfmt.ASTPrinter{
			Builder:  result.Builder,
			FileSet:  result.FileSet,
			Interner: result.Interner,
			Bag:      result.Bag,
		}
		switch format {
		case "pretty":
			err = printer.Pretty(os.Stdout, result.AST)
		case "json":
			err = printer.JSON(os.Stdout, result.AST)
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
		ph = timer.Begin("parse")
	}
	fs, results, err := driver.ParseDir(cmd.Context(), filePath, maxDiagnostics, jobs)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
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
			if r.Builder != nil {
				printer := diagfmt.ASTPrinter{
					Builder:  r.Builder,
					FileSet:  fs,
					Interner: r.Interner,
					Bag:      r.Bag,
				}
				if err := printer.Pretty(os.Stdout, r.AST); err != nil {
					return err
				}
			}
			if !quiet && idx < len(results)-1 {
				fmt.Fprintln(os.Stdout)
			}
		}
	case "json":
		output := make(map[string]*diagfmt.ASTNodeOutput, len(results))
		for _, r := range results {
			if r.Builder == nil {
				// файл не прочитался — дерева нет
				output[r.Path] = nil
				continue
			}
			printer := diagfmt.ASTPrinter{
				Builder:  r.Builder,
				FileSet:  fs,
				Interner: r.Interner,
				Bag:      r.Bag,
			}
			node, err := printer.Node(r.AST)
			if err != nil {
				return err
			}
			output[r.Path] = &node
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
