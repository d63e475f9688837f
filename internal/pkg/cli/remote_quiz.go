package cli

import (
	"github.com/spf13/cobra"

	quizCreateOp "github.com/canvastools/canvas-as-code/pkg/lib/operation/project/remote/quiz/create"
)

const quizCreateLongDescription = `Command "remote quiz create"

Create quizzes from a definition file.

The yaml file may hold several quizzes separated by "---".
The question and answer texts are converted by pandoc,
then the quizzes are created with all groups and questions.
`

func remoteQuizCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Course quizzes commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(remoteQuizCreateCommand(root))
	return cmd
}

func remoteQuizCreateCommand(root *rootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "create <file>",
		Short: "Create quizzes from a definition file",
		Long:  quizCreateLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := root.ValidateOptions([]string{"ApiToken"}); err != nil {
				return err
			}
			return quizCreateOp.Run(quizCreateOp.Options{Path: args[0]}, root.Dependencies())
		},
	}
}
