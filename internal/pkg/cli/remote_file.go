package cli

import (
	"github.com/spf13/cobra"

	uploadOp "github.com/canvastools/canvas-as-code/pkg/lib/operation/project/remote/file/upload"
)

const uploadLongDescription = `Command "remote file upload"

Upload files to the course.

A bare file name is resolved against the local dir of the
manifest naming section and uploaded to the remote dir.
The urls of the uploaded files are written to the state,
so the course pages can link them.
`

func remoteFileCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file",
		Short: "Course files commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(remoteFileUploadCommand(root))
	return cmd
}

func remoteFileUploadCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload files to the course",
		Long:  uploadLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := root.ValidateOptions([]string{"ApiToken"}); err != nil {
				return err
			}

			options := uploadOp.Options{Paths: args}
			options.RemoteDir, _ = cmd.Flags().GetString("remote-dir")
			options.Name, _ = cmd.Flags().GetString("name")
			return uploadOp.Run(options, root.Dependencies())
		},
	}

	// Flags
	cmd.Flags().SortFlags = true
	cmd.Flags().String("remote-dir", "", "target folder path, defaults to the manifest naming")
	cmd.Flags().String("name", "", "remote name of the file, a single file only")
	return cmd
}
