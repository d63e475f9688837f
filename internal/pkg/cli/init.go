package cli

import (
	"github.com/spf13/cobra"

	initOp "github.com/canvastools/canvas-as-code/pkg/lib/operation/project/sync/init"
)

const initShortDescription = `Initialize a new project directory`
const initLongDescription = `Command "init"

Initialize a new project directory.
The metadata dir with the manifest and the starter
Lua hooks is created and the url state of the course
is pulled, so an existing course can be linked right away.

You will be prompted for the Canvas host, the API token
and the course id, unless they are set by flags or ENVs.
`

func initCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: initShortDescription,
		Long:  initLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := root.Dependencies()

			// Require empty dir
			if _, err := d.EmptyDir(); err != nil {
				return err
			}

			courseId, _ := cmd.Flags().GetInt("course-id")
			options, err := d.Dialogs().AskInitOptions(d, courseId)
			if err != nil {
				return err
			}

			return initOp.Run(options, d)
		},
	}

	// Flags
	cmd.Flags().SortFlags = true
	cmd.Flags().IntP("course-id", "c", 0, "id of the Canvas course, it is the number in the course url")
	return cmd
}
