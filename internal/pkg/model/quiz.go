package model

import (
	"time"
)

// Quiz https://canvas.instructure.com/doc/api/quizzes.html
type Quiz struct {
	Id             int        `json:"id,omitempty"`
	Title          string     `json:"title"`
	HtmlUrl        string     `json:"html_url,omitempty"`
	Description    string     `json:"description,omitempty"`
	QuizType       string     `json:"quiz_type,omitempty"`
	PointsPossible float64    `json:"points_possible,omitempty"`
	QuestionCount  int        `json:"question_count,omitempty"`
	Published      bool       `json:"published,omitempty"`
	DueAt          *time.Time `json:"due_at,omitempty"`
}

// QuizGroup https://canvas.instructure.com/doc/api/quiz_question_groups.html
type QuizGroup struct {
	Id             int     `json:"id,omitempty"`
	Name           string  `json:"name"`
	PickCount      int     `json:"pick_count,omitempty"`
	QuestionPoints float64 `json:"question_points,omitempty"`
}

// QuizQuestion https://canvas.instructure.com/doc/api/quiz_questions.html
type QuizQuestion struct {
	Id             int          `json:"id,omitempty"`
	QuizGroupId    int          `json:"quiz_group_id,omitempty"`
	QuestionName   string       `json:"question_name"`
	QuestionText   string       `json:"question_text"`
	QuestionType   string       `json:"question_type"`
	PointsPossible float64      `json:"points_possible,omitempty"`
	Answers        []QuizAnswer `json:"answers,omitempty"`
}

// QuizAnswer https://canvas.instructure.com/doc/api/quiz_questions.html#Answer
type QuizAnswer struct {
	AnswerText   string `json:"answer_text,omitempty"`
	AnswerHtml   string `json:"answer_html,omitempty"`
	AnswerWeight int    `json:"answer_weight"`
	BlankId      string `json:"blank_id,omitempty"`
}

// Question types whose answers go through the pandoc conversion.
var PandocAnswerTypes = []string{"multiple_answers_question", "multiple_choice_question"}

func (q *QuizQuestion) HasHtmlAnswers() bool {
	for _, t := range PandocAnswerTypes {
		if q.QuestionType == t {
			return true
		}
	}
	return false
}

// QuizKey is the key of a quiz in the project state, it is the quiz title.
type QuizKey struct {
	Title string
}

func (k QuizKey) Field() string {
	return QuizzesField
}

func (k QuizKey) String() string {
	return k.Title
}
