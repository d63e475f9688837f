package cli

import (
	"github.com/spf13/cobra"

	pageUpdateOp "github.com/canvastools/canvas-as-code/pkg/lib/operation/project/remote/page/update"
)

const pageUpdateLongDescription = `Command "remote page update"

Update the front page of the course.

The course index is converted to html and uploaded as the
front page. The url state is exported for the "href.lua"
filter first, so the page links the current remote ids.
`

func remotePageCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Course pages commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(remotePageUpdateCommand(root))
	return cmd
}

func remotePageUpdateCommand(root *rootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update the front page from the course index",
		Long:  pageUpdateLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := root.ValidateOptions([]string{"ApiToken"}); err != nil {
				return err
			}
			return pageUpdateOp.Run(root.Dependencies())
		},
	}
}
