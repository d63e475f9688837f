package quiz

import (
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/canvastools/canvas-as-code/internal/pkg/api"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/model"
)

// Importer uploads parsed quizzes through the Canvas API.
type Importer struct {
	logger    log.Logger
	canvasApi *api.CanvasApi
	courseId  int
	progress  io.Writer
}

// NewImporter creates an importer for the course,
// progress bars are shown only on a terminal.
func NewImporter(logger log.Logger, canvasApi *api.CanvasApi, courseId int) *Importer {
	progress := io.Writer(io.Discard)
	if isatty.IsTerminal(os.Stderr.Fd()) {
		progress = os.Stderr
	}
	return &Importer{logger: logger, canvasApi: canvasApi, courseId: courseId, progress: progress}
}

// WithProgress overrides the progress output.
func (i *Importer) WithProgress(w io.Writer) *Importer {
	i.progress = w
	return i
}

// Import creates the quiz, its question groups and all questions, and
// writes the question count and the total points back to the quiz.
func (i *Importer) Import(doc *Document) (*model.Quiz, error) {
	quiz, err := i.canvasApi.CreateQuiz(i.courseId, doc.Quiz)
	if err != nil {
		return nil, err
	}

	var groups []*Item
	for _, item := range doc.Items {
		if item.Group != nil {
			groups = append(groups, item)
		}
	}
	bar := i.bar(len(groups), "creating groups")
	for _, item := range groups {
		if _, err := i.canvasApi.CreateQuizGroup(i.courseId, quiz.Id, item.Group); err != nil {
			return nil, err
		}
		for _, question := range item.Questions {
			question.QuizGroupId = item.Group.Id
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	questions := doc.AllQuestions()
	bar = i.bar(len(questions), "creating questions")
	for _, question := range questions {
		if _, err := i.canvasApi.CreateQuizQuestion(i.courseId, quiz.Id, question); err != nil {
			return nil, err
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	values := map[string]string{
		"quiz[question_count]":  strconv.Itoa(len(doc.Items)),
		"quiz[points_possible]": strconv.FormatFloat(doc.Points(), 'f', -1, 64),
	}
	if _, err := i.canvasApi.EditQuiz(i.courseId, quiz.Id, values, nil); err != nil {
		return nil, err
	}

	i.logger.Infof(`creating quiz: %d ("%s")`, quiz.Id, quiz.Title)
	return quiz, nil
}

func (i *Importer) bar(count int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(count,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(i.progress),
		progressbar.OptionShowCount(),
	)
}
