package cli

import (
	"context"
	"io"
	"os"
	"path"
	"regexp"
	"time"

	"github.com/spf13/cobra"

	"github.com/canvastools/canvas-as-code/internal/pkg/build"
	"github.com/canvastools/canvas-as-code/internal/pkg/cli/dependencies"
	"github.com/canvastools/canvas-as-code/internal/pkg/cli/dialog"
	"github.com/canvastools/canvas-as-code/internal/pkg/cli/prompt"
	"github.com/canvastools/canvas-as-code/internal/pkg/env"
	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/options"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
	"github.com/canvastools/canvas-as-code/internal/pkg/version"
)

const description = `
Canvas course CLI

Manage the material of a Canvas LMS course
from your local directory or CI pipeline.

The local directory is the source of truth,
uploads update the course and the url state
is pulled back, so pages can link the files.

Start by running the "init" sub-command in a new empty directory.
`

const usageTemplate = `Usage:{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{else if .Runnable}}
  {{.UseLine}}{{end}}{{if gt (len .Aliases) 0}}

Aliases:`

type rootCommand struct {
	cmd         *cobra.Command
	fsFactory   filesystem.Factory
	fs          filesystem.Fs    // filesystem abstraction
	envs        *env.Map         // ENVs from OS
	options     *options.Options // parsed flags and env variables
	prompt      prompt.Prompt    // user interaction
	dialogs     *dialog.Dialogs
	ctx         context.Context
	deps        *dependencies.Container
	start       time.Time // cmd start time
	initialized bool      // init method was called
	logFile     *log.File // log to console and logFile
	logger      log.Logger
}

// NewRootCommand creates parent of all sub-commands.
func NewRootCommand(stdin io.ReadCloser, stdout io.WriteCloser, stderr io.WriteCloser, p prompt.Prompt, envs *env.Map, fsFactory filesystem.Factory) *rootCommand {
	root := &rootCommand{
		fsFactory: fsFactory,
		envs:      envs,
		options:   options.NewOptions(),
		prompt:    p,
		dialogs:   dialog.New(p),
		ctx:       context.Background(),
		start:     time.Now(),
	}

	// Command definition
	root.cmd = &cobra.Command{
		Use:          path.Base(os.Args[0]), // name of the binary
		Version:      version.Version(),
		Short:        description,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Print help if no command specified
			return root.cmd.Help()
		},
	}

	// Setup in/out
	root.cmd.SetIn(stdin)
	root.cmd.SetOut(stdout)
	root.cmd.SetErr(stderr)

	// Setup templates
	root.cmd.SetVersionTemplate("{{.Version}}")
	root.cmd.SetUsageTemplate(
		regexp.MustCompile(`Usage:(.|\n)*Aliases:`).ReplaceAllString(root.cmd.UsageTemplate(), usageTemplate),
	)

	// Persistent flags for all sub-commands
	root.options.BindPersistentFlags(root.cmd.PersistentFlags())

	// Root command flags
	root.cmd.Flags().SortFlags = true
	root.cmd.Flags().BoolP("version", "V", false, "print version")

	// Init when flags are parsed
	root.cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := root.init(cmd); err != nil {
			return err
		}

		versionChecker := version.NewGitHubChecker(root.ctx, root.logger, root.envs)
		if err := versionChecker.CheckIfLatest(build.BuildVersion); err != nil {
			// Ignore error, send to logs
			root.logger.Debugf(`Version check: %s.`, err.Error())
		}

		return nil
	}

	// Sub-commands
	root.cmd.AddCommand(
		statusCommand(root),
		initCommand(root),
		manifestCommand(root),
		syncCommand(root),
		remoteCommand(root),
		localCommand(root),
		ciCommand(root),
	)

	return root
}

// Execute command or sub-command.
func (root *rootCommand) Execute() (exitCode int) {
	defer root.tearDown()
	if err := root.cmd.Execute(); err != nil {
		// Init, it can be uninitialized, if an error occurred before the PersistentPreRun call
		_ = root.init(root.cmd)
		// Error is already logged
		return 1
	}
	return 0
}

// Dependencies returns the container of the command dependencies,
// the sub-commands ask for it after the flags are parsed.
func (root *rootCommand) Dependencies() *dependencies.Container {
	if root.deps == nil {
		root.deps = dependencies.NewContainer(root.ctx, root.envs, root.fs, root.dialogs, root.logger, root.options)
	}
	return root.deps
}

func (root *rootCommand) ValidateOptions(required []string) error {
	if err := root.options.Validate(required); len(err) > 0 {
		root.logger.Warn("Invalid parameters:\n", err)
		return errors.New("invalid parameters, see output above")
	}
	return nil
}

// tearDown makes clean-up after command execution.
func (root *rootCommand) tearDown() {
	if err := recover(); err != nil {
		exitCode := utils.ProcessPanic(err, root.logger, root.options.LogFilePath)
		root.logFile.TearDown(true)
		os.Exit(exitCode)
	} else {
		root.logFile.TearDown(false)
	}
}

// init sets logger, options and filesystem after flags are parsed.
func (root *rootCommand) init(cmd *cobra.Command) (err error) {
	if root.initialized {
		return
	}

	// Run only once
	root.initialized = true

	// Logger must always be set up, even if there is a panic somewhere
	defer func() {
		if root.logger == nil {
			root.setupLogger()
		}
	}()

	// Load values from flags, ENVs and ".env" files
	warnings, err := root.options.Load(cmd.Flags())
	if err != nil {
		return err
	}

	// Setup logger and log options load warnings
	root.setupLogger()
	root.logDebugInfo()
	for _, warning := range warnings {
		root.logger.Warn(warning)
	}

	// Create filesystem abstraction
	root.fs, err = root.fsFactory(root.logger, root.options.WorkingDirectory())
	return err
}

// setupLogger according to the options.
func (root *rootCommand) setupLogger() {
	logFile, logFileErr := log.NewLogFile(root.options.LogFilePath)
	if logFile != nil {
		root.options.LogFilePath = logFile.Path()
	}

	root.logger = log.NewCliLogger(root.cmd.OutOrStdout(), root.cmd.ErrOrStderr(), logFile, root.options.Verbose)
	root.logFile = logFile
	root.cmd.SetOut(root.logger.InfoWriter())
	root.cmd.SetErr(root.logger.WarnWriter())

	// Warn if user specified log file and it cannot be opened
	if logFileErr != nil {
		root.logger.Warnf("Cannot open log file: %s", logFileErr)
	}
}

func (root *rootCommand) logDebugInfo() {
	root.logger.DebugWriter().WriteString(root.cmd.Version)
	root.logger.Debugf("Running command %v", os.Args)
	root.logger.Debug(root.options.Dump())
}
