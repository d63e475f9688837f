package release

import (
	"context"

	"github.com/canvastools/canvas-as-code/internal/pkg/ci"
	"github.com/canvastools/canvas-as-code/internal/pkg/env"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
	"github.com/canvastools/canvas-as-code/internal/pkg/workflows"
)

type Options struct {
	Repository string // "owner/name" of the GitHub repository
	Ref        string // branch or tag the workflow runs on
}

type dependencies interface {
	Ctx() context.Context
	Logger() log.Logger
	Envs() *env.Map
}

// Run dispatches the release workflow of the project repository.
func Run(o Options, d dependencies) error {
	if len(o.Repository) == 0 {
		return errors.New(`missing repository, use the --repository flag, eg. "owner/name"`)
	}

	token := d.Envs().Get(ci.EnvGitHubToken)
	if len(token) == 0 {
		return errors.Errorf(`missing GitHub token, set the %s env`, ci.EnvGitHubToken)
	}

	dispatcher := ci.NewDispatcher(d.Ctx(), d.Logger(), token)
	return dispatcher.Dispatch(o.Repository, workflows.ReleaseWorkflowFile, o.Ref)
}
