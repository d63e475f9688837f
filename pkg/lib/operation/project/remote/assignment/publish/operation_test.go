package publish

import (
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canvastools/canvas-as-code/internal/pkg/api"
	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem/aferofs"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/project"
	"github.com/canvastools/canvas-as-code/internal/pkg/project/manifest"
	"github.com/canvastools/canvas-as-code/internal/pkg/testapi"
)

type testDeps struct {
	logger    log.DebugLogger
	project   *project.Project
	canvasApi *api.CanvasApi
}

func (d *testDeps) Logger() log.Logger {
	return d.logger
}

func (d *testDeps) LocalProject() (*project.Project, error) {
	return d.project, nil
}

func (d *testDeps) CanvasApi() (*api.CanvasApi, error) {
	return d.canvasApi, nil
}

func newTestDeps(t *testing.T) (*testDeps, *httpmock.MockTransport) {
	t.Helper()
	canvasApi, transport, logger := testapi.NewMockedCanvasApi()
	fs, err := aferofs.NewMemoryFs(logger, "/")
	require.NoError(t, err)
	d := &testDeps{logger: logger, canvasApi: canvasApi}
	d.project = project.New(fs, manifest.New(123, "canvas.example.com"), d)
	return d, transport
}

func TestPublishMissingSearchTerm(t *testing.T) {
	t.Parallel()
	d, _ := newTestDeps(t)

	err := Run(Options{}, d)
	require.Error(t, err)
	assert.Equal(t, "missing search term", err.Error())
}

func TestPublishNoMatch(t *testing.T) {
	t.Parallel()
	d, transport := newTestDeps(t)
	transport.RegisterResponder(
		"GET",
		`https://canvas.example.com/api/v1/courses/123/assignments`,
		httpmock.NewJsonResponderOrPanic(200, []map[string]any{}),
	)

	require.NoError(t, Run(Options{SearchTerm: "hw99"}, d))
	assert.Equal(t, "WARN  No assignment matches \"hw99\".\n", d.logger.WarnMessages())
}

func TestPublish(t *testing.T) {
	t.Parallel()
	d, transport := newTestDeps(t)
	transport.RegisterResponder(
		"GET",
		`https://canvas.example.com/api/v1/courses/123/assignments`,
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "hw", req.URL.Query().Get("search_term"))
			return httpmock.NewJsonResponse(200, []map[string]any{
				{"id": 10, "name": "hw01", "published": true},
				{"id": 11, "name": "hw02"},
			})
		},
	)
	transport.RegisterResponder(
		"PUT",
		`https://canvas.example.com/api/v1/courses/123/assignments/11`,
		func(req *http.Request) (*http.Response, error) {
			require.NoError(t, req.ParseForm())
			assert.Equal(t, "true", req.Form.Get("assignment[published]"))
			return httpmock.NewJsonResponse(200, map[string]any{"id": 11, "name": "hw02", "published": true})
		},
	)

	require.NoError(t, Run(Options{SearchTerm: "hw"}, d))

	// The already published assignment is left untouched
	assert.Equal(t, 1, transport.GetCallCountInfo()["PUT https://canvas.example.com/api/v1/courses/123/assignments/11"])
	expected := "INFO  Assignment 10 (\"hw01\") is already published.\nINFO  Published assignment 11 (\"hw02\").\n"
	assert.Equal(t, expected, d.logger.InfoMessages())
}
