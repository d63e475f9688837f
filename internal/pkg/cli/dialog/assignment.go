package dialog

import (
	"fmt"

	"github.com/canvastools/canvas-as-code/internal/pkg/cli/prompt"
	"github.com/canvastools/canvas-as-code/internal/pkg/model"
)

// ConfirmAssignmentDelete is asked once per matched assignment.
// A non-interactive terminal answers the default, nothing is deleted.
func (p *Dialogs) ConfirmAssignmentDelete(a *model.Assignment) bool {
	return p.Confirm(&prompt.Confirm{
		Label:   fmt.Sprintf(`Delete assignment %d ("%s")?`, a.Id, a.Name),
		Default: false,
	})
}
