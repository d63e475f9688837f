// Package prompt abstracts the user interaction,
// so dialogs can run against a real terminal or a test double.
package prompt

import (
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

type Prompt interface {
	IsInteractive() bool
	Printf(format string, args ...any)
	Confirm(c *Confirm) bool
	Ask(q *Question) (result string, ok bool)
}

type Confirm struct {
	Label       string
	Description string
	Default     bool
}

type Question struct {
	Label       string
	Description string
	Help        string
	Default     string
	Hidden      bool
	Validator   func(value any) error
}

// ValueRequired validator.
func ValueRequired(value any) error {
	str := value.(string)
	if len(str) == 0 {
		return errors.New("value is required")
	}
	return nil
}
