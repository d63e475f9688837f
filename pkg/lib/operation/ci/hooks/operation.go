package hooks

import (
	"context"

	"github.com/canvastools/canvas-as-code/internal/pkg/ci"
	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
)

type Options struct {
	Run bool // run the installed hook instead of installing it
}

type dependencies interface {
	Ctx() context.Context
	Logger() log.Logger
	ProjectDir() (filesystem.Fs, error)
}

func Run(o Options, d dependencies) error {
	fs, err := d.ProjectDir()
	if err != nil {
		return err
	}

	if o.Run {
		return ci.RunPreCommitHook(d.Ctx(), d.Logger(), fs.BasePath())
	}
	return ci.InstallPreCommitHook(d.Logger(), fs.BasePath())
}
