package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/smartcache/internal/domain"
	m "github.com/mouse-blink/smartcache/internal/model"
)

var repeatFlag int

const runLongDescription = `Load a Go file, instrument its call sites and execute the named routines
in an embedded interpreter. Each routine is run several times so the first,
uncached run can be compared with the cached ones.

Without routine names every routine that takes no parameters and returns
at most one value is run.`

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <file> [routines...]",
		Short: "Execute routines of the instrumented program",
		Long:  runLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Run(cmd.Context(), domain.RunArgs{
				Path:     m.Path(args[0]),
				Routines: args[1:],
				Repeat:   repeatFlag,
			})
		},
	}
	cmd.Flags().IntVarP(&repeatFlag, "repeat", "n", domain.DefaultRepeat, "number of times each routine is run")

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}
