package create

import (
	"context"

	"github.com/canvastools/canvas-as-code/internal/pkg/api"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/model"
	"github.com/canvastools/canvas-as-code/internal/pkg/pandoc"
	"github.com/canvastools/canvas-as-code/internal/pkg/project"
	"github.com/canvastools/canvas-as-code/internal/pkg/quiz"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

type Options struct {
	Path string // quiz definition file, may hold several quizzes
}

type dependencies interface {
	Ctx() context.Context
	Logger() log.Logger
	LocalProject() (*project.Project, error)
	CanvasApi() (*api.CanvasApi, error)
	PandocConverter() (*pandoc.Converter, error)
}

// Run parses the quiz definitions, converts the question texts
// and creates the quizzes with all groups and questions.
func Run(o Options, d dependencies) error {
	logger := d.Logger()

	if len(o.Path) == 0 {
		return errors.New("missing quiz definition file")
	}

	prj, err := d.LocalProject()
	if err != nil {
		return err
	}

	canvasApi, err := d.CanvasApi()
	if err != nil {
		return err
	}

	converter, err := d.PandocConverter()
	if err != nil {
		return err
	}

	file, err := prj.Fs().ReadFile(o.Path, "quiz definition")
	if err != nil {
		return err
	}

	docs, err := quiz.Parse(o.Path, []byte(file.Content))
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		logger.Warnf(`No quiz found in "%s".`, o.Path)
		return nil
	}

	if err := quiz.ConvertTexts(d.Ctx(), converter, docs); err != nil {
		return err
	}

	importer := quiz.NewImporter(logger, canvasApi, prj.CourseId())
	projectState := prj.State()
	for _, doc := range docs {
		created, err := importer.Import(doc)
		if err != nil {
			return err
		}
		if err := projectState.Set(model.QuizKey{Title: created.Title}, created.Id); err != nil {
			return err
		}
		logger.Infof(`Created quiz %d ("%s") with %d questions, %v points.`, created.Id, created.Title, created.QuestionCount, created.PointsPossible)
	}

	return projectState.Save()
}
