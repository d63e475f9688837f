package ci

import (
	"context"
	"net/http"
	"strings"

	"github.com/canvastools/canvas-as-code/internal/pkg/client"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

const githubApiUrl = "https://api.github.com"

// EnvGitHubToken authorizes the workflow dispatch.
const EnvGitHubToken = "GITHUB_TOKEN"

// Dispatcher triggers GitHub Actions workflows of the project repository.
type Dispatcher struct {
	client *client.Client
	logger log.Logger
}

func NewDispatcher(ctx context.Context, logger log.Logger, token string) *Dispatcher {
	c := client.NewClient(ctx, logger, false).WithHostUrl(githubApiUrl)
	c.SetHeader("Accept", "application/vnd.github+json")
	c.SetHeader("Authorization", "Bearer "+token)
	return &Dispatcher{client: c, logger: logger}
}

// HttpClient getter, the transport is mocked in tests.
func (d *Dispatcher) HttpClient() *http.Client {
	return d.client.HttpClient()
}

// Dispatch starts the workflow on the ref.
// Repository is the "owner/name" form, workflow is the file name under
// ".github/workflows". GitHub returns "204 No Content" on success.
// https://docs.github.com/en/rest/actions/workflows#create-a-workflow-dispatch-event
func (d *Dispatcher) Dispatch(repository, workflow, ref string) error {
	if strings.Count(repository, "/") != 1 {
		return errors.Errorf(`repository must be in the "owner/name" form, found "%s"`, repository)
	}

	response := d.client.
		NewRequest("POST", "repos/{repository}/actions/workflows/{workflow}/dispatches").
		SetRawPathParam("repository", repository).
		SetPathParam("workflow", workflow).
		SetJsonBody(map[string]any{"ref": ref}).
		Send().
		Response

	if response.HasError() {
		return errors.PrefixErrorf(response.Err(), `cannot dispatch workflow "%s" in "%s"`, workflow, repository)
	}

	d.logger.Infof(`Workflow "%s" dispatched on "%s" in "%s".`, workflow, ref, repository)
	return nil
}
