// Package nop implements the prompt for a non-interactive run, every
// question resolves to its default value.
package nop

import (
	"github.com/canvastools/canvas-as-code/internal/pkg/cli/prompt"
)

type Prompt struct{}

func New() *Prompt {
	return &Prompt{}
}

func (p *Prompt) IsInteractive() bool {
	return false
}

func (p *Prompt) Printf(_ string, _ ...any) {
	// nop
}

func (p *Prompt) Confirm(c *prompt.Confirm) bool {
	return c.Default
}

func (p *Prompt) Ask(q *prompt.Question) (result string, ok bool) {
	return q.Default, len(q.Default) > 0
}
