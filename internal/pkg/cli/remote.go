package cli

import (
	"github.com/spf13/cobra"
)

func remoteCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Commands modifying the course directly",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		remoteFileCommand(root),
		remoteAssignmentCommand(root),
		remoteQuizCommand(root),
		remotePageCommand(root),
	)
	return cmd
}
