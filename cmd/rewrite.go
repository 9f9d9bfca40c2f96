package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/smartcache/internal/domain"
	m "github.com/mouse-blink/smartcache/internal/model"
)

// rewriteCmd represents the rewrite command.
var rewriteCmd = newRewriteCmd()

func newRewriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rewrite <file>",
		Short: "Print the instrumented source of a Go file",
		Long:  "Print a Go file with every call to a functional routine routed through the result cache.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Rewrite(domain.RewriteArgs{Path: m.Path(args[0])})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(rewriteCmd)
}
