package controller

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/smartcache/internal/model"
)

// SimpleUI implements UI using cobra Command's output as plain tables.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayConcurrencyInfo prints the worker and shard settings when they matter.
func (s *SimpleUI) DisplayConcurrencyInfo(threads int, shardIndex int, shardCount int) {
	if threads <= 1 && shardCount <= 1 {
		return
	}

	s.printf("Analyzing with %d worker(s), shard %d/%d\n", threads, shardIndex, shardCount)
}

// DisplayVerdicts prints one row per routine or the error.
func (s *SimpleUI) DisplayVerdicts(results []m.FileResult, err error) error {
	if err != nil {
		s.printf("analysis error: %v\n", err)
		return err
	}

	rows := flattenResults(results)
	sum := summarize(rows)

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Line", "Routine", "Functional", "Reason"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	for _, row := range rows {
		table.Append([]string{row.path, fmt.Sprintf("%d", row.line), row.routine, functionalMark(row.functional), row.reason})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", sum.files),
		"",
		fmt.Sprintf("%d routines", sum.routines),
		fmt.Sprintf("%d functional", sum.functional),
		fmt.Sprintf("%d wrapped calls", sum.wrapped),
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayExecution prints the result and timing of every run.
func (s *SimpleUI) DisplayExecution(exec m.Execution) error {
	if exec.Err != nil {
		s.printf("%s: execution error: %v\n", executionTitle(exec), exec.Err)
		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Run", "Duration"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT})

	for i, d := range exec.Durations {
		table.Append([]string{fmt.Sprintf("%d", i+1), formatDuration(d)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("%d hits %d misses", exec.Hits, exec.Misses),
		speedup(exec.Durations),
	})

	table.Render()
	s.printf("%s = %s\n%s\n", executionTitle(exec), exec.Result, tableBuffer.String())

	return nil
}

// DisplaySource prints src unchanged.
func (s *SimpleUI) DisplaySource(_ m.Path, src []byte) error {
	_, err := s.cmd.OutOrStdout().Write(src)
	return err
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
