package status

import (
	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/project"
	"github.com/canvastools/canvas-as-code/internal/pkg/project/manifest"
)

type dependencies interface {
	Fs() filesystem.Fs
	Logger() log.Logger
	LocalProject() (*project.Project, error)
}

func Run(d dependencies) error {
	logger := d.Logger()

	prj, err := d.LocalProject()
	if err != nil {
		logger.Warnf(`Directory "%s" is not a project.`, d.Fs().BasePath())
		return err
	}

	m := prj.Manifest()
	logger.Infof("Project directory:  %s", prj.Fs().BasePath())
	logger.Infof("Working directory:  %s", prj.Fs().WorkingDir())
	logger.Infof("Manifest path:      %s", manifest.Path())
	logger.Infof("Canvas host:        %s", m.Project.ApiHost)
	logger.Infof("Course id:          %d", m.Project.Id)
	return nil
}
