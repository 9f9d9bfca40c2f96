// Package controller renders analysis and execution results for the CLI.
package controller

import (
	"fmt"
	"sort"
	"strings"
	"time"

	m "github.com/mouse-blink/smartcache/internal/model"
)

// UI defines how workflow results reach the user.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayConcurrencyInfo(threads int, shardIndex int, shardCount int)
	DisplayVerdicts(results []m.FileResult, err error) error
	DisplayExecution(exec m.Execution) error
	DisplaySource(path m.Path, src []byte) error
}

// verdictRow is one routine of one file, flattened for display.
type verdictRow struct {
	path       string
	routine    string
	line       int
	functional bool
	reason     string
	wrapped    int
}

func flattenResults(results []m.FileResult) []verdictRow {
	var rows []verdictRow

	for _, result := range results {
		for _, report := range result.Reports {
			rows = append(rows, verdictRow{
				path:       string(report.Source),
				routine:    report.Routine,
				line:       report.Line,
				functional: report.Functional,
				reason:     summarizeReasons(report.Reasons),
				wrapped:    countWrapped(report.CallSites),
			})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].path != rows[j].path {
			return rows[i].path < rows[j].path
		}

		return rows[i].line < rows[j].line
	})

	return rows
}

func summarizeReasons(reasons []m.Reason) string {
	switch len(reasons) {
	case 0:
		return ""
	case 1:
		return reasons[0].Message
	default:
		return fmt.Sprintf("%s (+%d more)", reasons[0].Message, len(reasons)-1)
	}
}

func countWrapped(sites []m.CallSite) int {
	n := 0

	for _, site := range sites {
		if site.Wrapped {
			n++
		}
	}

	return n
}

type verdictSummary struct {
	files      int
	routines   int
	functional int
	wrapped    int
}

func summarize(rows []verdictRow) verdictSummary {
	files := make(map[string]struct{})
	s := verdictSummary{routines: len(rows)}

	for _, row := range rows {
		files[row.path] = struct{}{}
		s.wrapped += row.wrapped

		if row.functional {
			s.functional++
		}
	}

	s.files = len(files)

	return s
}

func functionalMark(functional bool) string {
	if functional {
		return "yes"
	}

	return "no"
}

// formatDuration rounds d to a readable precision.
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return d.Round(time.Millisecond).String()
	case d >= time.Millisecond:
		return d.Round(time.Microsecond).String()
	default:
		return d.String()
	}
}

// speedup compares the first run with the fastest later run.
func speedup(durations []time.Duration) string {
	if len(durations) < 2 || durations[0] <= 0 {
		return ""
	}

	fastest := durations[1]
	for _, d := range durations[2:] {
		if d < fastest {
			fastest = d
		}
	}

	if fastest <= 0 {
		return ""
	}

	return fmt.Sprintf("%.1fx", float64(durations[0])/float64(fastest))
}

func executionTitle(exec m.Execution) string {
	var b strings.Builder

	b.WriteString(exec.Routine)

	if exec.Source != "" {
		b.WriteString(" (")
		b.WriteString(string(exec.Source))
		b.WriteString(")")
	}

	return b.String()
}
