// Package quiz imports authored quizzes into Canvas. The source file is
// a flat stream of typed nodes, a "quiz" node opens a quiz, a
// "quizgroup" node opens a question group inside it and any other node
// is a question of the last opened group, or of the quiz itself when no
// group was opened yet.
package quiz

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"github.com/canvastools/canvas-as-code/internal/pkg/json"
	"github.com/canvastools/canvas-as-code/internal/pkg/model"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

// Node types in the authored file, everything else is a question.
const (
	TypeQuiz      = "quiz"
	TypeQuizGroup = "quizgroup"
)

// Document is one quiz with its direct children in authoring order.
type Document struct {
	Quiz  *model.Quiz
	Items []*Item
}

// Item is one direct child of a quiz, either a question group with its
// member questions, or a single ungrouped question.
type Item struct {
	Group     *model.QuizGroup
	Questions []*model.QuizQuestion
}

// AllQuestions returns every question in authoring order.
func (d *Document) AllQuestions() []*model.QuizQuestion {
	var questions []*model.QuizQuestion
	for _, item := range d.Items {
		questions = append(questions, item.Questions...)
	}
	return questions
}

// Points returns the value of the quiz. A question group counts its
// per-question points, an ungrouped question its own points.
func (d *Document) Points() float64 {
	total := 0.0
	for _, item := range d.Items {
		switch {
		case item.Group != nil:
			total += item.Group.QuestionPoints
		case len(item.Questions) > 0:
			total += item.Questions[0].PointsPossible
		}
	}
	return total
}

// Parse builds the quiz trees from the authored file,
// JSON and YAML sources are supported.
func Parse(path string, content []byte) ([]*Document, error) {
	nodes, err := parseNodes(path, content)
	if err != nil {
		return nil, err
	}

	var docs []*Document
	var doc *Document
	var group *Item
	for _, node := range nodes {
		switch cast.ToString(node["type"]) {
		case TypeQuiz:
			quiz := &model.Quiz{}
			if err := decodeNode(node, quiz); err != nil {
				return nil, errors.PrefixErrorf(err, `cannot parse quiz "%s"`, cast.ToString(node["title"]))
			}
			doc = &Document{Quiz: quiz}
			group = nil
			docs = append(docs, doc)
		case TypeQuizGroup:
			if doc == nil {
				return nil, errors.Errorf(`question group "%s" before the first quiz node`, cast.ToString(node["name"]))
			}
			g := &model.QuizGroup{}
			if err := decodeNode(node, g); err != nil {
				return nil, errors.PrefixErrorf(err, `cannot parse question group "%s"`, cast.ToString(node["name"]))
			}
			group = &Item{Group: g}
			doc.Items = append(doc.Items, group)
		default:
			if doc == nil {
				return nil, errors.Errorf(`question "%s" before the first quiz node`, cast.ToString(node["question_name"]))
			}
			question := &model.QuizQuestion{}
			if err := decodeNode(node, question); err != nil {
				return nil, errors.PrefixErrorf(err, `cannot parse question "%s"`, cast.ToString(node["question_name"]))
			}
			for i := range question.Answers {
				question.Answers[i].BlankId = trimBlankId(question.Answers[i].BlankId)
			}
			if group != nil {
				group.Questions = append(group.Questions, question)
			} else {
				doc.Items = append(doc.Items, &Item{Questions: []*model.QuizQuestion{question}})
			}
		}
	}
	return docs, nil
}

func parseNodes(path string, content []byte) ([]map[string]any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		var nodes []map[string]any
		if err := json.Decode(content, &nodes); err != nil {
			return nil, errors.PrefixErrorf(err, `quiz file "%s" is invalid`, path)
		}
		return nodes, nil
	case ".yaml", ".yml":
		var nodes []map[string]any
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		for {
			var doc any
			err := decoder.Decode(&doc)
			if errors.Is(err, io.EOF) {
				return nodes, nil
			}
			if err != nil {
				return nil, errors.PrefixErrorf(err, `quiz file "%s" is invalid`, path)
			}
			switch v := doc.(type) {
			case map[string]any:
				nodes = append(nodes, v)
			case []any:
				for _, item := range v {
					node, ok := item.(map[string]any)
					if !ok {
						return nil, errors.Errorf(`quiz file "%s" is invalid: expected a mapping, found %T`, path, item)
					}
					nodes = append(nodes, node)
				}
			default:
				return nil, errors.Errorf(`quiz file "%s" is invalid: expected a mapping, found %T`, path, doc)
			}
		}
	default:
		return nil, errors.Errorf(`unsupported format of the quiz file "%s"`, path)
	}
}

// decodeNode converts the raw node to the typed struct through the JSON
// encoding, so YAML sources follow the "json" field names too.
func decodeNode(node map[string]any, target any) error {
	data, err := json.Encode(node, false)
	if err != nil {
		return err
	}
	return json.Decode(data, target)
}

// trimBlankId drops the brackets of an authored blank id, "[color]" is
// sent to the API as "color".
func trimBlankId(id string) string {
	if strings.HasPrefix(id, "[") && strings.HasSuffix(id, "]") && len(id) >= 2 {
		return id[1 : len(id)-1]
	}
	return id
}
