package cli

import (
	"github.com/spf13/cobra"

	"github.com/canvastools/canvas-as-code/internal/pkg/workflows"
	hooksOp "github.com/canvastools/canvas-as-code/pkg/lib/operation/ci/hooks"
	releaseOp "github.com/canvastools/canvas-as-code/pkg/lib/operation/ci/release"
	workflowsOp "github.com/canvastools/canvas-as-code/pkg/lib/operation/ci/workflows/generate"
)

const ciReleaseLongDescription = `Command "ci release"

Dispatch the release workflow of the project repository.

The workflow pulls the url state and updates the front page,
so a merged change goes live without a local checkout.
A GitHub token with the "workflow" scope is read from the
GITHUB_TOKEN env.
`

func ciCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ci",
		Short: "Continuous integration commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		ciWorkflowsCommand(root),
		ciHooksCommand(root),
		ciReleaseCommand(root),
	)
	return cmd
}

func ciWorkflowsCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workflows",
		Short: "Generate workflows files for GitHub Actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			options := workflows.Options{}
			options.Validate, _ = cmd.Flags().GetBool("ci-validate")
			options.Release, _ = cmd.Flags().GetBool("ci-release")
			options.MainBranch, _ = cmd.Flags().GetString("ci-main-branch")
			return workflowsOp.Run(options, root.Dependencies())
		},
	}

	// Flags
	cmd.Flags().SortFlags = true
	cmd.Flags().Bool("ci-validate", true, "create workflow to validate the project on change")
	cmd.Flags().Bool("ci-release", true, "create manual workflow to publish the material")
	cmd.Flags().String("ci-main-branch", "main", "name of the main branch")
	return cmd
}

func ciHooksCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Install the git pre-commit hook",
		RunE: func(cmd *cobra.Command, args []string) error {
			options := hooksOp.Options{}
			options.Run, _ = cmd.Flags().GetBool("run")
			return hooksOp.Run(options, root.Dependencies())
		},
	}

	// Flags
	cmd.Flags().SortFlags = true
	cmd.Flags().Bool("run", false, "run the installed hook instead of installing it")
	return cmd
}

func ciReleaseCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "release",
		Short: "Dispatch the release workflow of the project repository",
		Long:  ciReleaseLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			options := releaseOp.Options{}
			options.Repository, _ = cmd.Flags().GetString("repository")
			options.Ref, _ = cmd.Flags().GetString("ref")
			return releaseOp.Run(options, root.Dependencies())
		},
	}

	// Flags
	cmd.Flags().SortFlags = true
	cmd.Flags().StringP("repository", "r", "", `GitHub repository, eg. "owner/name"`)
	cmd.Flags().String("ref", "main", "branch or tag the workflow runs on")
	return cmd
}
