package delete

import (
	"github.com/canvastools/canvas-as-code/internal/pkg/api"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/model"
	"github.com/canvastools/canvas-as-code/internal/pkg/project"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

type Options struct {
	SearchTerm string
	// Confirm is asked once per assignment, a false answer skips it.
	Confirm func(assignment *model.Assignment) bool
}

type dependencies interface {
	Logger() log.Logger
	LocalProject() (*project.Project, error)
	CanvasApi() (*api.CanvasApi, error)
}

// Run deletes the confirmed assignments matching the search term.
// An assignment with submitted submissions is never deleted.
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

	projectState := prj.State()
	for _, assignment := range assignments {
		if assignment.HasSubmittedSubmissions {
			logger.Warnf(`Assignment %d ("%s") has submitted submissions, it is kept.`, assignment.Id, assignment.Name)
			continue
		}
		if o.Confirm != nil && !o.Confirm(assignment) {
			logger.Infof(`Assignment %d ("%s") is kept.`, assignment.Id, assignment.Name)
			continue
		}

		if err := canvasApi.DeleteAssignment(prj.CourseId(), assignment.Id); err != nil {
			return err
		}

		groupName, err := canvasApi.GetAssignmentGroupName(prj.CourseId(), assignment.AssignmentGroupId)
		if err != nil {
			return err
		}
		key := model.AssignmentKey{GroupName: groupName, Name: assignment.Name}
		if err := projectState.Delete(key); err != nil {
			return err
		}
		logger.Infof(`Deleted assignment %d ("%s").`, assignment.Id, assignment.Name)
	}

	return projectState.Save()
}
