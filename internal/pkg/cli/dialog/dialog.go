// Package dialog implements the interactive questions of the commands.
// Answers already present in the options are never asked again.
package dialog

import (
	"github.com/canvastools/canvas-as-code/internal/pkg/cli/prompt"
)

type Dialogs struct {
	prompt.Prompt
}

func New(p prompt.Prompt) *Dialogs {
	return &Dialogs{Prompt: p}
}
