package generate

import (
	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/workflows"
)

type dependencies interface {
	Logger() log.Logger
	ProjectDir() (filesystem.Fs, error)
}

func Run(o workflows.Options, d dependencies) error {
	fs, err := d.ProjectDir()
	if err != nil {
		return err
	}

	return workflows.GenerateFiles(d.Logger(), fs, &o)
}
