package quiz

import (
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canvastools/canvas-as-code/internal/pkg/model"
	"github.com/canvastools/canvas-as-code/internal/pkg/testapi"
)

func formValues(t *testing.T, req *http.Request) url.Values {
	t.Helper()
	body, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	values, err := url.ParseQuery(string(body))
	require.NoError(t, err)
	return values
}

func TestImport(t *testing.T) {
	t.Parallel()
	a, transport, logger := testapi.NewMockedCanvasApi()
	transport.RegisterResponder(
		"POST",
		`https://canvas.example.com/api/v1/courses/123/quizzes`,
		func(req *http.Request) (*http.Response, error) {
			values := formValues(t, req)
			assert.Equal(t, "Vizsga", values.Get("quiz[title]"))
			return httpmock.NewJsonResponse(200, map[string]any{"id": 9, "title": "Vizsga"})
		},
	)
	transport.RegisterResponder(
		"POST",
		`https://canvas.example.com/api/v1/courses/123/quizzes/9/groups`,
		func(req *http.Request) (*http.Response, error) {
			values := formValues(t, req)
			assert.Equal(t, "group 1", values.Get("quiz_groups[0][name]"))
			return httpmock.NewJsonResponse(200, map[string]any{
				"quiz_groups": []map[string]any{
					{"id": 33, "name": "group 1", "pick_count": 2, "question_points": 3},
				},
			})
		},
	)
	var created []string
	transport.RegisterResponder(
		"POST",
		`https://canvas.example.com/api/v1/courses/123/quizzes/9/questions`,
		func(req *http.Request) (*http.Response, error) {
			values := formValues(t, req)
			name := values.Get("question[question_name]")
			created = append(created, name)
			if name == "g1" || name == "g2" {
				// members carry the id of the created group
				assert.Equal(t, "33", values.Get("question[quiz_group_id]"))
			} else {
				assert.Empty(t, values.Get("question[quiz_group_id]"))
			}
			return httpmock.NewJsonResponse(200, map[string]any{"id": 44, "question_name": name})
		},
	)
	transport.RegisterResponder(
		"PUT",
		`https://canvas.example.com/api/v1/courses/123/quizzes/9`,
		func(req *http.Request) (*http.Response, error) {
			values := formValues(t, req)
			assert.Equal(t, "2", values.Get("quiz[question_count]"))
			assert.Equal(t, "8", values.Get("quiz[points_possible]"))
			return httpmock.NewJsonResponse(200, map[string]any{"id": 9, "title": "Vizsga"})
		},
	)

	group := &model.QuizGroup{Name: "group 1", PickCount: 2, QuestionPoints: 3}
	doc := &Document{
		Quiz: &model.Quiz{Title: "Vizsga"},
		Items: []*Item{
			{Questions: []*model.QuizQuestion{
				{QuestionName: "warmup", QuestionType: "essay_question", PointsPossible: 5},
			}},
			{Group: group, Questions: []*model.QuizQuestion{
				{QuestionName: "g1", QuestionType: "multiple_choice_question"},
				{QuestionName: "g2", QuestionType: "short_answer_question"},
			}},
		},
	}

	quiz, err := NewImporter(logger, a, 123).WithProgress(io.Discard).Import(doc)
	require.NoError(t, err)
	assert.Equal(t, 9, quiz.Id)
	assert.Equal(t, []string{"warmup", "g1", "g2"}, created)
	assert.Equal(t, 33, group.Id)
	assert.Contains(t, logger.InfoMessages(), `creating quiz: 9 ("Vizsga")`)
}

func TestImportCreateFailed(t *testing.T) {
	t.Parallel()
	a, transport, logger := testapi.NewMockedCanvasApi()
	transport.RegisterResponder(
		"POST",
		`https://canvas.example.com/api/v1/courses/123/quizzes`,
		httpmock.NewJsonResponderOrPanic(401, map[string]any{
			"errors": []map[string]any{{"message": "Invalid access token."}},
		}),
	)

	_, err := NewImporter(logger, a, 123).WithProgress(io.Discard).Import(&Document{Quiz: &model.Quiz{Title: "T"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid access token.")
}
