package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
	createOp "github.com/canvastools/canvas-as-code/pkg/lib/operation/project/remote/assignment/create"
	deleteOp "github.com/canvastools/canvas-as-code/pkg/lib/operation/project/remote/assignment/delete"
	publishOp "github.com/canvastools/canvas-as-code/pkg/lib/operation/project/remote/assignment/publish"
)

const assignmentCreateLongDescription = `Command "remote assignment create"

Create an assignment from exercises.

Each "--pool" flag names a pool of interchangeable exercise ids,
one assignment variant is created per combination. With more
than one variant the students are shuffled and divided, every
variant is visible only to its own chunk.

The exercise texts are cut out by the "extract.lua" hook and
converted by pandoc, referenced images are uploaded first.
`

func remoteAssignmentCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assignment",
		Short: "Course assignments commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		remoteAssignmentCreateCommand(root),
		remoteAssignmentPublishCommand(root),
		remoteAssignmentDeleteCommand(root),
	)
	return cmd
}

func remoteAssignmentCreateCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an assignment from exercises",
		Long:  assignmentCreateLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := root.ValidateOptions([]string{"ApiToken"}); err != nil {
				return err
			}

			options := createOp.Options{}
			options.Name, _ = cmd.Flags().GetString("name")
			options.GroupName, _ = cmd.Flags().GetString("group")
			options.Prefix, _ = cmd.Flags().GetString("prefix")
			options.Points, _ = cmd.Flags().GetFloat64("points")
			options.Seed, _ = cmd.Flags().GetInt64("seed")
			if len(options.Name) == 0 {
				return errors.New(`missing assignment name, use the "--name" flag`)
			}
			if len(options.GroupName) == 0 {
				return errors.New(`missing assignment group, use the "--group" flag`)
			}

			pools, _ := cmd.Flags().GetStringArray("pool")
			for _, pool := range pools {
				options.Pools = append(options.Pools, strings.Split(pool, ","))
			}
			if len(options.Pools) == 0 {
				return errors.New(`missing exercises, use the "--pool" flag`)
			}

			if value, _ := cmd.Flags().GetString("due"); len(value) > 0 {
				dueAt, err := parseDate(value)
				if err != nil {
					return err
				}
				options.DueAt = dueAt
			}

			return createOp.Run(options, root.Dependencies())
		},
	}

	// Flags
	cmd.Flags().SortFlags = true
	cmd.Flags().StringP("name", "n", "", "name of the assignment")
	cmd.Flags().StringP("group", "g", "", "name of the assignment group")
	cmd.Flags().StringArrayP("pool", "p", nil, `comma separated exercise ids, repeat the flag for more variants`)
	cmd.Flags().String("due", "", `due date, eg. "2026-02-01 23:59"`)
	cmd.Flags().Float64("points", 0, "points possible")
	cmd.Flags().String("prefix", "", "prefix passed to the extract hook")
	cmd.Flags().Int64("seed", 0, "shuffle seed for reproducible variants")
	return cmd
}

func remoteAssignmentPublishCommand(root *rootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <search>",
		Short: "Publish the assignments matching the search term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := root.ValidateOptions([]string{"ApiToken"}); err != nil {
				return err
			}
			return publishOp.Run(publishOp.Options{SearchTerm: args[0]}, root.Dependencies())
		},
	}
}

func remoteAssignmentDeleteCommand(root *rootCommand) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <search>",
		Short: "Delete the assignments matching the search term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := root.ValidateOptions([]string{"ApiToken"}); err != nil {
				return err
			}
			d := root.Dependencies()
			options := deleteOp.Options{
				SearchTerm: args[0],
				Confirm:    d.Dialogs().ConfirmAssignmentDelete,
			}
			return deleteOp.Run(options, d)
		},
	}
}
