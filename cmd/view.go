package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/smartcache/internal/domain"
	m "github.com/mouse-blink/smartcache/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View previously generated purity reports",
		Long:  "View previously generated purity reports from a reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			return workflow.View(domain.ViewArgs{Reports: m.Path(settings.Reports)})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
