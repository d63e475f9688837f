package cli

import (
	"github.com/spf13/cobra"

	pullOp "github.com/canvastools/canvas-as-code/pkg/lib/operation/project/sync/pull"
)

const pullLongDescription = `Command "sync pull"

Pull the url state of the course.

Ids and urls of the remote files, assignments and quizzes
are written to the local state file, so the course pages
can link them and duplicates are not created.
`

func syncCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Synchronization between the project directory and the course",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(pullCommand(root))
	return cmd
}

func pullCommand(root *rootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Pull the url state of the course",
		Long:  pullLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := root.ValidateOptions([]string{"ApiToken"}); err != nil {
				return err
			}
			return pullOp.Run(root.Dependencies())
		},
	}
}
