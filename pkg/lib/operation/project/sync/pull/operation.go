package pull

import (
	"context"

	"github.com/canvastools/canvas-as-code/internal/pkg/api"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/model"
	"github.com/canvastools/canvas-as-code/internal/pkg/project"
	"github.com/canvastools/canvas-as-code/internal/pkg/state"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/orderedmap"
)

type dependencies interface {
	Ctx() context.Context
	Logger() log.Logger
	LocalProject() (*project.Project, error)
	CanvasApi() (*api.CanvasApi, error)
}

// Run refreshes the state maps from the course: files, assignments and quizzes.
func Run(d dependencies) error {
	logger := d.Logger()

	prj, err := d.LocalProject()
	if err != nil {
		return err
	}

	canvasApi, err := d.CanvasApi()
	if err != nil {
		return err
	}

	projectState := prj.State()
	if err := RegisterUpdaters(logger, projectState, canvasApi, prj.CourseId()); err != nil {
		return err
	}

	logger.Infof(`Pulling state of the course "%d".`, prj.CourseId())
	if err := projectState.UpdateFromRemote(d.Ctx()); err != nil {
		return err
	}

	if err := projectState.Save(); err != nil {
		return err
	}

	logger.Info("Pull done.")
	return nil
}

// RegisterUpdaters binds the remote listings to the state fields.
func RegisterUpdaters(logger log.Logger, projectState *state.State, canvasApi *api.CanvasApi, courseId int) error {
	updaters := map[string]state.Updater{
		model.FilesField: func(ctx context.Context) (*orderedmap.OrderedMap, error) {
			folders, err := canvasApi.ListFolders(courseId)
			if err != nil {
				return nil, err
			}
			files, err := canvasApi.ListFiles(courseId)
			if err != nil {
				return nil, err
			}
			quizzes, err := canvasApi.ListQuizzes(courseId, "")
			if err != nil {
				return nil, err
			}
			return state.UrlMap(logger, canvasApi.WebUrl(), courseId, files, folders, quizzes)
		},
		model.AssignmentsField: func(ctx context.Context) (*orderedmap.OrderedMap, error) {
			assignments, err := canvasApi.ListAssignments(courseId, "")
			if err != nil {
				return nil, err
			}
			return state.AssignmentMap(assignments, func(groupId int) (string, error) {
				return canvasApi.GetAssignmentGroupName(courseId, groupId)
			})
		},
		model.QuizzesField: func(ctx context.Context) (*orderedmap.OrderedMap, error) {
			quizzes, err := canvasApi.ListQuizzes(courseId, "")
			if err != nil {
				return nil, err
			}
			return state.QuizMap(quizzes), nil
		},
	}

	for field, updater := range updaters {
		if err := projectState.RegisterUpdater(field, updater); err != nil {
			return err
		}
	}
	return nil
}
