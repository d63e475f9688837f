package dialog

import (
	"github.com/canvastools/canvas-as-code/internal/pkg/cli/prompt"
	"github.com/canvastools/canvas-as-code/internal/pkg/options"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
	"github.com/canvastools/canvas-as-code/internal/pkg/workflows"
	initOp "github.com/canvastools/canvas-as-code/pkg/lib/operation/project/sync/init"
)

type initDeps interface {
	Options() *options.Options
}

// AskInitOptions collects everything the init command needs,
// values already set by flags or ENVs are not asked again.
func (p *Dialogs) AskInitOptions(d initDeps, defaultCourseId int) (initOp.Options, error) {
	out := initOp.Options{}
	o := d.Options()

	errs := errors.NewMultiError()
	if _, err := p.AskApiHost(o); err != nil {
		errs.Append(err)
	}
	if _, err := p.AskApiToken(o); err != nil {
		errs.Append(err)
	}
	if err := errs.ErrorOrNil(); err != nil {
		return out, err
	}

	out.CourseId = defaultCourseId
	if out.CourseId <= 0 {
		courseId, err := p.AskCourseId(0)
		if err != nil {
			return out, err
		}
		out.CourseId = courseId
	}

	if p.Confirm(&prompt.Confirm{Label: "Generate workflows files for GitHub Actions?", Default: true}) {
		out.Workflows = p.AskWorkflowsOptions()
	}

	return out, nil
}

// AskWorkflowsOptions for the "ci workflows" and "init" commands.
func (p *Dialogs) AskWorkflowsOptions() workflows.Options {
	p.Printf("\nPlease confirm the GitHub Actions you want to generate.\n")
	return workflows.Options{
		Validate:   p.Confirm(&prompt.Confirm{Label: `Generate "validate" workflow?`, Default: true}),
		Release:    p.Confirm(&prompt.Confirm{Label: `Generate "release" workflow?`, Default: true}),
		MainBranch: "main",
	}
}
