package dialog_test

import (
	"testing"

	"github.com/Netflix/go-expect"
	"github.com/stretchr/testify/require"

	"github.com/canvastools/canvas-as-code/internal/pkg/cli/dialog"
	"github.com/canvastools/canvas-as-code/internal/pkg/cli/prompt/interactive"
	"github.com/canvastools/canvas-as-code/internal/pkg/cli/prompt/nop"
	"github.com/canvastools/canvas-as-code/internal/pkg/options"
	"github.com/canvastools/canvas-as-code/internal/pkg/testhelper"
)

type testDeps struct {
	options *options.Options
}

func (d *testDeps) Options() *options.Options {
	return d.options
}

// createDialogs returns dialogs attached to a virtual terminal,
// or to the nop prompt when no interaction is expected.
func createDialogs(t *testing.T, interactiveTerminal bool) (*dialog.Dialogs, *expect.Console) {
	t.Helper()

	if !interactiveTerminal {
		return dialog.New(nop.New()), nil
	}

	console, _, err := testhelper.NewVirtualTerminal(t)
	require.NoError(t, err)

	p := interactive.New(console.Tty(), console.Tty(), console.Tty())
	p.SetInteractive(true)
	return dialog.New(p), console
}
