// Package interactive implements the prompt on a real terminal, using the survey library.
package interactive

import (
	"fmt"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"

	"github.com/canvastools/canvas-as-code/internal/pkg/cli/prompt"
)

type Prompt struct {
	stdin       terminal.FileReader
	stdout      terminal.FileWriter
	stderr      io.Writer
	interactive bool
}

func New(stdin terminal.FileReader, stdout terminal.FileWriter, stderr io.Writer) *Prompt {
	return &Prompt{
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
		interactive: isInteractiveTerminal(stdin, stdout),
	}
}

func (p *Prompt) IsInteractive() bool {
	return p.interactive
}

// SetInteractive overrides the terminal detection, used with a virtual terminal in tests.
func (p *Prompt) SetInteractive(value bool) {
	p.interactive = value
}

// Printf writes to the terminal directly, outside a question.
func (p *Prompt) Printf(format string, args ...any) {
	fmt.Fprintf(p.stdout, format+"\n", args...)
}

func (p *Prompt) Confirm(c *prompt.Confirm) bool {
	if !p.interactive {
		return c.Default
	}

	if len(c.Description) > 0 {
		p.Printf("\n%s", c.Description)
	}

	result := c.Default
	opts := p.askOpts()
	if err := survey.AskOne(&survey.Confirm{Message: c.Label, Default: c.Default}, &result, opts...); err != nil {
		p.error(err)
	}
	return result
}

func (p *Prompt) Ask(q *prompt.Question) (string, bool) {
	if !p.interactive {
		return q.Default, len(q.Default) > 0
	}

	if len(q.Description) > 0 {
		p.Printf("\n%s", q.Description)
	}

	opts := p.askOpts()
	if q.Validator != nil {
		opts = append(opts, survey.WithValidator(survey.Validator(q.Validator)))
	}

	var question survey.Prompt
	if q.Hidden {
		question = &survey.Password{Message: q.Label, Help: q.Help}
	} else {
		question = &survey.Input{Message: q.Label, Help: q.Help, Default: q.Default}
	}

	result := ""
	err := survey.AskOne(question, &result, opts...)
	if err != nil {
		p.error(err)
		return "", false
	}
	return result, true
}

func (p *Prompt) askOpts() []survey.AskOpt {
	return []survey.AskOpt{
		survey.WithStdio(p.stdin, p.stdout, p.stderr),
		survey.WithShowCursor(true),
	}
}

func (p *Prompt) error(err error) {
	fmt.Fprintf(p.stderr, "\n%s\n", err.Error())
}

func isInteractiveTerminal(stdin terminal.FileReader, stdout terminal.FileWriter) bool {
	return isatty.IsTerminal(stdin.Fd()) && isatty.IsTerminal(stdout.Fd())
}
