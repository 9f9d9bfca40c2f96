package controller

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "github.com/mouse-blink/smartcache/internal/model"
)

var (
	tuiTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	tuiValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	tuiDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	tuiErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	tuiHitStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplayConcurrencyInfo shows concurrency settings.
func (t *TUI) DisplayConcurrencyInfo(threads int, shardIndex int, shardCount int) {
	if threads <= 1 && shardCount <= 1 {
		return
	}

	_, _ = fmt.Fprintf(t.output, "%s %s worker(s), shard %s\n",
		tuiDimStyle.Render("Analyzing with"),
		tuiValueStyle.Render(fmt.Sprintf("%d", threads)),
		tuiValueStyle.Render(fmt.Sprintf("%d/%d", shardIndex, shardCount)))
}

// DisplayVerdicts opens a scrollable verdict list. Lists that fit on the
// screen, and output that is not a terminal, are printed once instead.
func (t *TUI) DisplayVerdicts(results []m.FileResult, err error) error {
	if err != nil {
		_, _ = fmt.Fprintf(t.output, "%s %v\n", tuiErrorStyle.Render("analysis error:"), err)

		return err
	}

	model := newVerdictModel()
	interactive := false

	if f, ok := t.output.(*os.File); ok && IsTTY(f) {
		width, height, sizeErr := term.GetSize(int(f.Fd()))
		if sizeErr == nil {
			model.width = width
			model.height = height
			interactive = true
		}
	}

	model = model.handleVerdictsMsg(verdictsMsg{rows: flattenResults(results)})

	if !interactive || model.fits() {
		_, err := fmt.Fprintln(t.output, model.View())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// DisplayExecution prints the result with one line per run.
func (t *TUI) DisplayExecution(exec m.Execution) error {
	if exec.Err != nil {
		_, _ = fmt.Fprintf(t.output, "%s %s %v\n",
			tuiTitleStyle.Render(executionTitle(exec)), tuiErrorStyle.Render("failed:"), exec.Err)

		return nil
	}

	_, _ = fmt.Fprintf(t.output, "%s = %s\n", tuiTitleStyle.Render(executionTitle(exec)), tuiValueStyle.Render(exec.Result))

	for i, d := range exec.Durations {
		_, _ = fmt.Fprintf(t.output, "  %s %s\n", tuiDimStyle.Render(fmt.Sprintf("run %d", i+1)), formatDuration(d))
	}

	line := fmt.Sprintf("  %s %d hits, %d misses", tuiDimStyle.Render("cache"), exec.Hits, exec.Misses)
	if s := speedup(exec.Durations); s != "" {
		line += " " + tuiHitStyle.Render(s+" faster")
	}

	_, err := fmt.Fprintln(t.output, line)

	return err
}

// DisplaySource prints src under a header naming path.
func (t *TUI) DisplaySource(path m.Path, src []byte) error {
	_, _ = fmt.Fprintln(t.output, tuiDimStyle.Render("// instrumented "+string(path)))
	_, err := t.output.Write(src)

	return err
}
