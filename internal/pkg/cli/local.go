package cli

import (
	"github.com/spf13/cobra"

	renderOp "github.com/canvastools/canvas-as-code/pkg/lib/operation/project/local/section/render"
)

const sectionRenderLongDescription = `Command "local section render"

Render the schedule into the course index.

Sections after the "--until" date are hidden, by default
the date is today, so the rendered page always shows the
already held sections only. Everything runs locally, the
html variant resolves links against the last pulled state.
`

func localCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "local",
		Short: "Commands working with the local directory only",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(localSectionCommand(root))
	return cmd
}

func localSectionCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "section",
		Short: "Schedule sections commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(localSectionRenderCommand(root))
	return cmd
}

func localSectionRenderCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <schedule>",
		Short: "Render the schedule into the course index",
		Long:  sectionRenderLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			options := renderOp.Options{Path: args[0]}
			options.Output, _ = cmd.Flags().GetString("output")
			options.Html, _ = cmd.Flags().GetBool("html")

			if value, _ := cmd.Flags().GetString("until"); len(value) > 0 {
				until, err := parseDate(value)
				if err != nil {
					return err
				}
				options.Until = until
			}

			return renderOp.Run(options, root.Dependencies())
		},
	}

	// Flags
	cmd.Flags().SortFlags = true
	cmd.Flags().StringP("output", "o", "", "target file, defaults to the manifest naming")
	cmd.Flags().String("until", "", `hide sections after the date, eg. "2026-05-30"`)
	cmd.Flags().Bool("html", false, "render html instead of markdown")
	return cmd
}
