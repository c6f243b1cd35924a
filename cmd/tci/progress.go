package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tci/internal/buildpipeline"
	"tci/internal/driver"
	"tci/internal/ui"
)

type progressMode string

const (
	progressAuto progressMode = "auto"
	progressOn   progressMode = "on"
	progressOff  progressMode = "off"
)

func readProgressMode(value string) (progressMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return progressAuto, nil
	case "on":
		return progressOn, nil
	case "off":
		return progressOff, nil
	default:
		return "", fmt.Errorf("invalid --progress value %q (expected auto|on|off)", value)
	}
}

func shouldShowProgress(mode progressMode) bool {
	switch mode {
	case progressOn:
		return true
	case progressOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}

type checkOutcome struct {
	out *driver.CheckDirOutput
	err error
}

func runCheckDirWithUI(cmd *cobra.Command, dir string, opts driver.CheckOptions, jobs int) (*driver.CheckDirOutput, error) {
	files, err := driver.ListFiles(dir)
	if err != nil {
		return nil, err
	}
	// Список в модели и имена в событиях обязаны совпадать строка в
	// строку, иначе TUI не найдёт файл.
	names := buildpipeline.NormalizeFiles(files, dir)

	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		out, runErr := driver.CheckDir(cmd.Context(), dir, opts, jobs, buildpipeline.ChannelSink{Ch: events})
		outcomeCh <- checkOutcome{out: out, err: runErr}
		close(events)
	}()

	model := ui.NewProgressModel(fmt.Sprintf("check %s", dir), names, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.out, uiErr
	}
	return outcome.out, outcome.err
}
