package cli

import (
	"github.com/spf13/cobra"

	validateOp "github.com/canvastools/canvas-as-code/pkg/lib/operation/project/local/validate"
)

func manifestCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Manifest commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(manifestValidateCommand(root))
	return cmd
}

func manifestValidateCommand(root *rootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the manifest and the pandoc setup",
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateOp.Run(root.Dependencies())
		},
	}
}
