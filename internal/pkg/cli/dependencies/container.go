// Package dependencies provides the container of the command dependencies.
// Expensive dependencies are created lazily, on the first use, so a command
// pays only for what it touches.
package dependencies

import (
	"context"

	"github.com/jonboulle/clockwork"

	"github.com/canvastools/canvas-as-code/internal/pkg/api"
	"github.com/canvastools/canvas-as-code/internal/pkg/cli/dialog"
	"github.com/canvastools/canvas-as-code/internal/pkg/env"
	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/options"
	"github.com/canvastools/canvas-as-code/internal/pkg/pandoc"
	"github.com/canvastools/canvas-as-code/internal/pkg/project"
	"github.com/canvastools/canvas-as-code/internal/pkg/project/manifest"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

var (
	ErrMissingApiHost     = errors.New("missing Canvas host, use the --base-url flag or the CANVAS_BASE_URL env")
	ErrMissingApiToken    = errors.New("missing Canvas API token, use the --access-token flag or the CANVAS_ACCESS_TOKEN env")
	ErrProjectDirNotFound = errors.New(`none of the parent directories contain the ".canvas" metadata dir, run "cvc init" first`)
	ErrProjectDirFound    = errors.New(`the ".canvas" metadata dir already exists, the directory is an initialized project`)
)

// Provider is implemented by the root command, sub-commands ask it for
// the container after the flags are parsed.
type Provider interface {
	Dependencies() *Container
}

type Container struct {
	ctx          context.Context
	envs         *env.Map
	fs           filesystem.Fs
	dialogs      *dialog.Dialogs
	logger       log.Logger
	options      *options.Options
	clock        clockwork.Clock
	canvasApi    *api.CanvasApi
	project      *project.Project
	pandocBinary *pandoc.Binary
}

func NewContainer(ctx context.Context, envs *env.Map, fs filesystem.Fs, dialogs *dialog.Dialogs, logger log.Logger, o *options.Options) *Container {
	return &Container{
		ctx:     ctx,
		envs:    envs,
		fs:      fs,
		dialogs: dialogs,
		logger:  logger,
		options: o,
		clock:   clockwork.NewRealClock(),
	}
}

func (c *Container) Ctx() context.Context {
	return c.ctx
}

func (c *Container) Envs() *env.Map {
	return c.envs
}

func (c *Container) Fs() filesystem.Fs {
	return c.fs
}

func (c *Container) Dialogs() *dialog.Dialogs {
	return c.dialogs
}

func (c *Container) Logger() log.Logger {
	return c.logger
}

func (c *Container) Options() *options.Options {
	return c.options
}

func (c *Container) Clock() clockwork.Clock {
	return c.clock
}

// WithClock replaces the clock in tests.
func (c *Container) WithClock(clock clockwork.Clock) *Container {
	c.clock = clock
	return c
}

// CanvasApi returns the authorized API, the token is verified on the first call.
// The host falls back to the project manifest when the flag and the env are empty.
func (c *Container) CanvasApi() (*api.CanvasApi, error) {
	if c.canvasApi == nil {
		if len(c.options.ApiHost) == 0 {
			if prj, err := c.LocalProject(); err == nil {
				c.options.ApiHost = prj.Manifest().Project.ApiHost
			}
		}
		if len(c.options.ApiHost) == 0 {
			return nil, ErrMissingApiHost
		}
		if len(c.options.ApiToken) == 0 {
			return nil, ErrMissingApiToken
		}

		canvasApi, err := api.NewCanvasApiFromOptions(c.ctx, c.options, c.logger)
		if err != nil {
			return nil, err
		}
		c.canvasApi = canvasApi
	}
	return c.canvasApi, nil
}

// LocalProject returns the project of the current directory.
func (c *Container) LocalProject() (*project.Project, error) {
	if c.project == nil {
		fs, err := c.ProjectDir()
		if err != nil {
			return nil, err
		}

		m, err := project.LoadManifest(fs)
		if err != nil {
			return nil, err
		}

		c.project = project.New(fs, m, c)
	}
	return c.project, nil
}

// ProjectDir returns the filesystem of an initialized project.
func (c *Container) ProjectDir() (filesystem.Fs, error) {
	if !c.fs.IsDir(filesystem.MetadataDir) {
		return nil, ErrProjectDirNotFound
	}
	return c.fs, nil
}

// EmptyDir returns the filesystem for the init command,
// an already initialized project is refused.
func (c *Container) EmptyDir() (filesystem.Fs, error) {
	if c.fs.IsDir(filesystem.MetadataDir) {
		return nil, ErrProjectDirFound
	}
	return c.fs, nil
}

// PandocBinary discovers the pandoc binary, once.
func (c *Container) PandocBinary() (*pandoc.Binary, error) {
	if c.pandocBinary == nil {
		binary, err := pandoc.Detect(c.ctx, c.logger)
		if err != nil {
			return nil, err
		}
		c.pandocBinary = binary
	}
	return c.pandocBinary, nil
}

// PandocConverter builds the converter from the manifest pandoc section.
// The project macros are loaded when the expand-macros.lua hook exists.
func (c *Container) PandocConverter() (*pandoc.Converter, error) {
	prj, err := c.LocalProject()
	if err != nil {
		return nil, err
	}

	binary, err := c.PandocBinary()
	if err != nil {
		return nil, err
	}

	cfg := prj.Manifest().Pandoc
	if err := binary.CheckConstraint(cfg.Version); err != nil {
		return nil, err
	}

	filtersDir := filesystem.Join(filesystem.MetadataDir, manifest.FiltersDir)
	var filters []string
	for _, filter := range cfg.Filters {
		filters = append(filters, filesystem.Join(filtersDir, filter))
	}

	converter, err := pandoc.NewConverter(c.logger, binary, c.fs.BasePath(), filters, cfg.Options)
	if err != nil {
		return nil, err
	}

	macrosPath := filesystem.Join(filtersDir, pandoc.MacrosFile)
	if c.fs.IsFile(macrosPath) {
		file, err := c.fs.ReadFile(macrosPath, "macros")
		if err != nil {
			return nil, err
		}
		macros, err := pandoc.NewMacroExpander(macrosPath, file.Content)
		if err != nil {
			return nil, err
		}
		converter.WithMacros(macros)
	}

	return converter, nil
}
