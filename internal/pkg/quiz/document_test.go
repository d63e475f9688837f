package quiz

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJson = `
[
  {"type": "quiz", "title": "Vizsga", "description": "\\(x^2\\)", "quiz_type": "assignment", "due_at": "2023-01-05T10:00:00Z"},
  {"question_name": "warmup", "question_text": "easy?", "question_type": "essay_question", "points_possible": 5},
  {"type": "quizgroup", "name": "group 1", "pick_count": 2, "question_points": 3},
  {"question_name": "g1", "question_text": "t1", "question_type": "multiple_choice_question",
   "answers": [{"answer_text": "yes", "answer_weight": 100}, {"answer_text": "no", "answer_weight": 0}]},
  {"question_name": "g2", "question_text": "t2", "question_type": "short_answer_question"}
]
`

func TestParseJson(t *testing.T) {
	t.Parallel()
	docs, err := Parse("quizzes.json", []byte(testJson))
	require.NoError(t, err)
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, "Vizsga", doc.Quiz.Title)
	assert.Equal(t, "assignment", doc.Quiz.QuizType)
	assert.Equal(t, `\(x^2\)`, doc.Quiz.Description)
	assert.Equal(t, time.Date(2023, 1, 5, 10, 0, 0, 0, time.UTC), *doc.Quiz.DueAt)

	// the quiz has two children, an ungrouped question and a group
	require.Len(t, doc.Items, 2)
	assert.Nil(t, doc.Items[0].Group)
	require.Len(t, doc.Items[0].Questions, 1)
	assert.Equal(t, "warmup", doc.Items[0].Questions[0].QuestionName)

	group := doc.Items[1]
	require.NotNil(t, group.Group)
	assert.Equal(t, "group 1", group.Group.Name)
	assert.Equal(t, 2, group.Group.PickCount)
	assert.Equal(t, 3.0, group.Group.QuestionPoints)
	require.Len(t, group.Questions, 2)
	assert.Equal(t, "g1", group.Questions[0].QuestionName)
	assert.Equal(t, 100, group.Questions[0].Answers[0].AnswerWeight)
	assert.Equal(t, "g2", group.Questions[1].QuestionName)

	names := []string{}
	for _, q := range doc.AllQuestions() {
		names = append(names, q.QuestionName)
	}
	assert.Equal(t, []string{"warmup", "g1", "g2"}, names)

	// group points + ungrouped question points
	assert.Equal(t, 8.0, doc.Points())
}

func TestParseYamlStream(t *testing.T) {
	t.Parallel()
	docs, err := Parse("quizzes.yaml", []byte(`
type: quiz
title: Kis kvíz
description: intro
due_at: 2023-01-05T10:00:00Z
---
question_name: q1
question_text: really?
question_type: true_false_question
points_possible: 1
`))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Kis kvíz", docs[0].Quiz.Title)
	assert.Equal(t, time.Date(2023, 1, 5, 10, 0, 0, 0, time.UTC), *docs[0].Quiz.DueAt)
	require.Len(t, docs[0].Items, 1)
	assert.Equal(t, "q1", docs[0].Items[0].Questions[0].QuestionName)
	assert.Equal(t, 1.0, docs[0].Points())
}

func TestParseYamlList(t *testing.T) {
	t.Parallel()
	docs, err := Parse("quizzes.yml", []byte(`
- type: quiz
  title: Lista
- question_name: q
  question_text: t
  question_type: essay_question
`))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Lista", docs[0].Quiz.Title)
	require.Len(t, docs[0].Items, 1)
}

func TestParseYamlMatchesJson(t *testing.T) {
	t.Parallel()
	fromYaml, err := Parse("quizzes.yaml", []byte(`
type: quiz
title: Vizsga
---
question_name: q1
question_text: t1
question_type: essay_question
points_possible: 2
`))
	require.NoError(t, err)

	fromJson, err := Parse("quizzes.json", []byte(`[
		{"type": "quiz", "title": "Vizsga"},
		{"question_name": "q1", "question_text": "t1", "question_type": "essay_question", "points_possible": 2}
	]`))
	require.NoError(t, err)

	// Both formats decode through the same field names
	assert.Empty(t, cmp.Diff(fromJson, fromYaml))
}

func TestParseBlankId(t *testing.T) {
	t.Parallel()
	docs, err := Parse("quizzes.json", []byte(`
[
  {"type": "quiz", "title": "T"},
  {"question_name": "q", "question_text": "t", "question_type": "fill_in_multiple_blanks_question",
   "answers": [{"answer_text": "red", "answer_weight": 100, "blank_id": "[color]"}]}
]
`))
	require.NoError(t, err)
	assert.Equal(t, "color", docs[0].Items[0].Questions[0].Answers[0].BlankId)
}

func TestParseQuestionBeforeQuiz(t *testing.T) {
	t.Parallel()
	_, err := Parse("quizzes.json", []byte(`[{"question_name": "q1", "question_text": "t"}]`))
	require.Error(t, err)
	assert.Equal(t, `question "q1" before the first quiz node`, err.Error())
}

func TestParseGroupBeforeQuiz(t *testing.T) {
	t.Parallel()
	_, err := Parse("quizzes.json", []byte(`[{"type": "quizgroup", "name": "g"}]`))
	require.Error(t, err)
	assert.Equal(t, `question group "g" before the first quiz node`, err.Error())
}

func TestParseUnsupportedFormat(t *testing.T) {
	t.Parallel()
	_, err := Parse("quizzes.txt", []byte(``))
	require.Error(t, err)
	assert.Equal(t, `unsupported format of the quiz file "quizzes.txt"`, err.Error())
}

func TestParseInvalidJson(t *testing.T) {
	t.Parallel()
	_, err := Parse("quizzes.json", []byte(`{`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `quiz file "quizzes.json" is invalid`)
}

func TestParseInvalidYamlNode(t *testing.T) {
	t.Parallel()
	_, err := Parse("quizzes.yaml", []byte(`just text`))
	require.Error(t, err)
	assert.Equal(t, `quiz file "quizzes.yaml" is invalid: expected a mapping, found string`, err.Error())
}
