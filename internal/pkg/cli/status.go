package cli

import (
	"github.com/spf13/cobra"

	statusOp "github.com/canvastools/canvas-as-code/pkg/lib/operation/status"
)

func statusCommand(root *rootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show information about the project directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return statusOp.Run(root.Dependencies())
		},
	}
}
