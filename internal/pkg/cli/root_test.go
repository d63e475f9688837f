package cli

import (
	"regexp"
	"runtime"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canvastools/canvas-as-code/internal/pkg/cli/prompt/nop"
	"github.com/canvastools/canvas-as-code/internal/pkg/env"
	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem/aferofs"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/ioutil"
	"github.com/canvastools/canvas-as-code/internal/pkg/version"
)

func newTestRootCommand() (*rootCommand, *ioutil.AtomicWriter) {
	in := ioutil.NewBufferedReader()
	out := ioutil.NewAtomicWriter()
	fsFactory := func(logger log.Logger, workingDir string) (filesystem.Fs, error) {
		return aferofs.NewMemoryFs(logger, workingDir)
	}

	envs := env.Empty()
	envs.Set(version.EnvVersionCheck, "false")

	return NewRootCommand(in, out, out, nop.New(), envs, fsFactory), out
}

func TestRootSubCommands(t *testing.T) {
	t.Parallel()
	root, _ := newTestRootCommand()

	// Map commands to names
	var names []string
	for _, cmd := range root.cmd.Commands() {
		names = append(names, cmd.Name())
	}

	assert.Equal(t, []string{
		"ci",
		"init",
		"local",
		"manifest",
		"remote",
		"status",
		"sync",
	}, names)
}

func TestRootCmdPersistentFlags(t *testing.T) {
	t.Parallel()
	root, _ := newTestRootCommand()

	// Map flags to names
	var names []string
	root.cmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
		names = append(names, flag.Name)
	})

	expected := []string{
		"access-token",
		"base-url",
		"help",
		"log-file",
		"verbose",
		"verbose-api",
		"working-dir",
	}
	assert.Equal(t, expected, names)
}

func TestRootCmdFlags(t *testing.T) {
	t.Parallel()
	root, _ := newTestRootCommand()

	// Map flags to names
	var names []string
	root.cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		names = append(names, flag.Name)
	})

	assert.Equal(t, []string{"version"}, names)
}

func TestExecute(t *testing.T) {
	t.Parallel()
	root, out := newTestRootCommand()

	// Running without a sub-command prints the help
	assert.Equal(t, 0, root.Execute())
	assert.Contains(t, out.String(), "Available Commands:")
}

func TestInit(t *testing.T) {
	t.Parallel()
	root, _ := newTestRootCommand()
	assert.False(t, root.initialized)
	assert.Nil(t, root.logger)

	require.NoError(t, root.init(root.cmd))
	assert.True(t, root.initialized)
	assert.NotNil(t, root.logger)
	assert.NotNil(t, root.fs)
}

func TestInitOnlyOnce(t *testing.T) {
	t.Parallel()
	root, _ := newTestRootCommand()

	require.NoError(t, root.init(root.cmd))
	logger := root.logger
	require.NoError(t, root.init(root.cmd))
	assert.Same(t, logger, root.logger)
}

func TestLogDebugInfo(t *testing.T) {
	t.Parallel()
	root, _ := newTestRootCommand()
	logger := log.NewDebugLogger()

	require.NoError(t, root.init(root.cmd))
	root.logger = logger
	root.logDebugInfo()

	assert.Regexp(
		t,
		`^`+
			`DEBUG  Version:.*\n`+
			`DEBUG  Git commit:.*\n`+
			`DEBUG  Build date:.*\n`+
			`DEBUG  Go version:\s+`+regexp.QuoteMeta(runtime.Version())+`\n`+
			`DEBUG  Os/Arch:\s+`+regexp.QuoteMeta(runtime.GOOS)+`/`+regexp.QuoteMeta(runtime.GOARCH)+`\n`+
			`DEBUG  Running command \[.+\]\n`+
			`DEBUG  Parsed options: .+\n`+
			`$`,
		logger.AllMessages(),
	)
}

func TestSetupLoggerTempFile(t *testing.T) {
	t.Parallel()
	root, _ := newTestRootCommand()

	root.setupLogger()
	assert.NotNil(t, root.logFile)
	assert.True(t, root.logFile.IsTemp())
	assert.Equal(t, root.logFile.Path(), root.options.LogFilePath)
	root.logFile.TearDown(false)
}

func TestSetupLoggerFromFlags(t *testing.T) {
	t.Parallel()
	root, _ := newTestRootCommand()

	// Log file can be outside the project directory, so a real temp dir is used
	tempDir := t.TempDir()
	root.options.LogFilePath = filesystem.Join(tempDir, "log-file.txt")
	root.setupLogger()
	assert.NotNil(t, root.logFile)
	assert.False(t, root.logFile.IsTemp())
	assert.FileExists(t, root.options.LogFilePath)
	root.logFile.TearDown(false)
}
