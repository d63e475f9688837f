package api

import (
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/canvastools/canvas-as-code/internal/pkg/client"
	"github.com/canvastools/canvas-as-code/internal/pkg/model"
)

// quizGroupsEnvelope, the API wraps created question groups in a list.
// https://canvas.instructure.com/doc/api/quiz_question_groups.html
type quizGroupsEnvelope struct {
	QuizGroups []*model.QuizGroup `json:"quiz_groups"`
}

// ListQuizzes returns quizzes of the course,
// the optional search term filters them by title.
func (a *CanvasApi) ListQuizzes(courseId int, searchTerm string) ([]*model.Quiz, error) {
	var quizzes []*model.Quiz
	response := a.ListQuizzesRequest(courseId, searchTerm, func(page []*model.Quiz) {
		quizzes = append(quizzes, page...)
	}).Send().Response
	if response.HasError() {
		return nil, response.Err()
	}
	return quizzes, nil
}

func (a *CanvasApi) CreateQuiz(courseId int, quiz *model.Quiz) (*model.Quiz, error) {
	response := a.CreateQuizRequest(courseId, quiz).Send().Response
	if response.HasResult() {
		return response.Result().(*model.Quiz), nil
	}
	return nil, response.Err()
}

// CreateQuizGroup creates the question group and sets its id back to the group.
func (a *CanvasApi) CreateQuizGroup(courseId, quizId int, group *model.QuizGroup) (*model.QuizGroup, error) {
	response := a.CreateQuizGroupRequest(courseId, quizId, group).Send().Response
	if response.HasError() {
		return nil, response.Err()
	}
	return group, nil
}

func (a *CanvasApi) CreateQuizQuestion(courseId, quizId int, question *model.QuizQuestion) (*model.QuizQuestion, error) {
	response := a.CreateQuizQuestionRequest(courseId, quizId, question).Send().Response
	if response.HasResult() {
		return response.Result().(*model.QuizQuestion), nil
	}
	return nil, response.Err()
}

func (a *CanvasApi) EditQuiz(courseId, quizId int, values map[string]string, changed []string) (*model.Quiz, error) {
	response := a.EditQuizRequest(courseId, quizId, values, changed).Send().Response
	if response.HasResult() {
		return response.Result().(*model.Quiz), nil
	}
	return nil, response.Err()
}

// ListQuizzesRequest https://canvas.instructure.com/doc/api/quizzes.html#method.quizzes/quizzes_api.index
func (a *CanvasApi) ListQuizzesRequest(courseId int, searchTerm string, onPage func(page []*model.Quiz)) *client.Request {
	request := a.
		NewRequest(resty.MethodGet, "courses/{courseId}/quizzes").
		SetPathParam("courseId", strconv.Itoa(courseId)).
		SetQueryParam("per_page", strconv.Itoa(PerPage))
	if len(searchTerm) > 0 {
		request.SetQueryParam("search_term", searchTerm)
	}
	return onEachPage(a, request, onPage)
}

// CreateQuizRequest https://canvas.instructure.com/doc/api/quizzes.html#method.quizzes/quizzes_api.create
func (a *CanvasApi) CreateQuizRequest(courseId int, quiz *model.Quiz) *client.Request {
	return a.
		NewRequest(resty.MethodPost, "courses/{courseId}/quizzes").
		SetPathParam("courseId", strconv.Itoa(courseId)).
		SetFormBody(Params("quiz", quiz)).
		SetResult(&model.Quiz{})
}

// CreateQuizGroupRequest https://canvas.instructure.com/doc/api/quiz_question_groups.html#method.quizzes/quiz_groups.create
func (a *CanvasApi) CreateQuizGroupRequest(courseId, quizId int, group *model.QuizGroup) *client.Request {
	result := &quizGroupsEnvelope{}
	return a.
		NewRequest(resty.MethodPost, "courses/{courseId}/quizzes/{quizId}/groups").
		SetPathParam("courseId", strconv.Itoa(courseId)).
		SetPathParam("quizId", strconv.Itoa(quizId)).
		SetFormBody(Params("quiz_groups", []*model.QuizGroup{group})).
		SetResult(result).
		OnSuccess(func(response *client.Response) {
			if len(result.QuizGroups) > 0 {
				*group = *result.QuizGroups[0]
			}
		})
}

// CreateQuizQuestionRequest https://canvas.instructure.com/doc/api/quiz_questions.html#method.quizzes/quiz_questions.create
func (a *CanvasApi) CreateQuizQuestionRequest(courseId, quizId int, question *model.QuizQuestion) *client.Request {
	return a.
		NewRequest(resty.MethodPost, "courses/{courseId}/quizzes/{quizId}/questions").
		SetPathParam("courseId", strconv.Itoa(courseId)).
		SetPathParam("quizId", strconv.Itoa(quizId)).
		SetFormBody(Params("question", question)).
		SetResult(&model.QuizQuestion{})
}

// EditQuizRequest https://canvas.instructure.com/doc/api/quizzes.html#method.quizzes/quizzes_api.update
func (a *CanvasApi) EditQuizRequest(courseId, quizId int, values map[string]string, changed []string) *client.Request {
	return a.
		NewRequest(resty.MethodPut, "courses/{courseId}/quizzes/{quizId}").
		SetPathParam("courseId", strconv.Itoa(courseId)).
		SetPathParam("quizId", strconv.Itoa(quizId)).
		SetFormBody(getChangedValues(values, changed)).
		SetResult(&model.Quiz{})
}
