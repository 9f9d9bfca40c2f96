package cmd

import (
	"github.com/spf13/cobra"
)

const listLongDescription = `List every top-level routine of the selected Go files with its purity
verdict and the reasons that disqualified it.

Reports are written to the reports directory. Files whose content hash
matches a stored report are not parsed again.`

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "List routines and their purity verdicts",
		Long:  listLongDescription,
		RunE: func(_ *cobra.Command, args []string) error {
			return analyze(args, true)
		},
	}
	addAnalyzeFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
