package quiz

import (
	"context"

	"github.com/canvastools/canvas-as-code/internal/pkg/pandoc"
)

// SourceFormat of the authored quiz texts.
const SourceFormat = "latex"

// ConvertTexts rewrites every human text of the documents from LaTeX to
// HTML in a single pandoc run: quiz descriptions, question texts and
// the answers of multiple choice and multiple answers questions. The
// converted answer text moves to the html answer field.
func ConvertTexts(ctx context.Context, converter *pandoc.Converter, docs []*Document) error {
	var targets []*string
	var texts []string
	collect := func(target *string) {
		targets = append(targets, target)
		texts = append(texts, *target)
	}

	for _, doc := range docs {
		collect(&doc.Quiz.Description)
		for _, question := range doc.AllQuestions() {
			collect(&question.QuestionText)
			if !question.HasHtmlAnswers() {
				continue
			}
			for i := range question.Answers {
				answer := &question.Answers[i]
				answer.AnswerHtml = answer.AnswerText
				answer.AnswerText = ""
				collect(&answer.AnswerHtml)
			}
		}
	}

	converted, err := converter.ConvertList(ctx, texts, SourceFormat, "")
	if err != nil {
		return err
	}
	for i, target := range targets {
		*target = converted[i]
	}
	return nil
}
