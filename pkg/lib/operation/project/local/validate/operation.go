package validate

import (
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/pandoc"
	"github.com/canvastools/canvas-as-code/internal/pkg/project"
)

type dependencies interface {
	Logger() log.Logger
	LocalProject() (*project.Project, error)
	PandocBinary() (*pandoc.Binary, error)
}

// Run validates the project manifest: the declared version constraint must be
// satisfiable, every listed Lua filter must exist, and when a pandoc binary
// is installed it must satisfy the constraint.
func Run(d dependencies) error {
	logger := d.Logger()

	prj, err := d.LocalProject()
	if err != nil {
		return err
	}

	m := prj.Manifest()
	if err := m.CheckConsistency(prj.Fs()); err != nil {
		return err
	}

	// A missing binary is not a manifest defect, it is only reported
	if binary, err := d.PandocBinary(); err != nil {
		logger.Warnf(`Pandoc binary not checked: %s`, err)
	} else if err := binary.CheckConstraint(m.Pandoc.Version); err != nil {
		return err
	}

	logger.Info("Everything is good.")
	return nil
}
