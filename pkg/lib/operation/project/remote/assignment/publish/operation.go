package publish

import (
	"github.com/canvastools/canvas-as-code/internal/pkg/api"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/project"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

type Options struct {
	SearchTerm string
}

type dependencies interface {
	Logger() log.Logger
	LocalProject() (*project.Project, error)
	CanvasApi() (*api.CanvasApi, error)
}

// Run publishes every assignment matching the search term.
func Run(o Options, d dependencies) error {
	logger := d.Logger()

	if len(o.SearchTerm) == 0 {
		return errors.New("missing search term")
	}

	prj, err := d.LocalProject()
	if err != nil {
		return err
	}

	canvasApi, err := d.CanvasApi()
	if err != nil {
		return err
	}

	assignments, err := canvasApi.ListAssignments(prj.CourseId(), o.SearchTerm)
	if err != nil {
		return err
	}
	if len(assignments) == 0 {
		logger.Warnf(`No assignment matches "%s".`, o.SearchTerm)
		return nil
	}

	for _, assignment := range assignments {
		if assignment.Published {
			logger.Infof(`Assignment %d ("%s") is already published.`, assignment.Id, assignment.Name)
			continue
		}
		values := map[string]string{"assignment[published]": "true"}
		if _, err := canvasApi.EditAssignment(prj.CourseId(), assignment.Id, values, nil); err != nil {
			return err
		}
		logger.Infof(`Published assignment %d ("%s").`, assignment.Id, assignment.Name)
	}
	return nil
}
