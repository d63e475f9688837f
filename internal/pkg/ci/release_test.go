package ci

import (
	"context"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canvastools/canvas-as-code/internal/pkg/log"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, *httpmock.MockTransport, log.DebugLogger) {
	t.Helper()
	logger := log.NewDebugLogger()
	dispatcher := NewDispatcher(context.Background(), logger, "my-token")
	transport := httpmock.NewMockTransport()
	dispatcher.HttpClient().Transport = transport
	return dispatcher, transport, logger
}

func TestDispatch(t *testing.T) {
	t.Parallel()
	dispatcher, transport, logger := newTestDispatcher(t)
	transport.RegisterResponder(
		"POST",
		"https://api.github.com/repos/acme/course/actions/workflows/release.yml/dispatches",
		httpmock.NewStringResponder(204, ""),
	)

	require.NoError(t, dispatcher.Dispatch("acme/course", "release.yml", "main"))
	assert.Equal(t, 1, transport.GetTotalCallCount())
	assert.Contains(t, logger.InfoMessages(), `Workflow "release.yml" dispatched on "main" in "acme/course".`)
}

func TestDispatchInvalidRepository(t *testing.T) {
	t.Parallel()
	dispatcher, transport, _ := newTestDispatcher(t)

	err := dispatcher.Dispatch("not-a-repository", "release.yml", "main")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"owner/name" form`)
	assert.Equal(t, 0, transport.GetTotalCallCount())
}

func TestDispatchApiError(t *testing.T) {
	t.Parallel()
	dispatcher, transport, _ := newTestDispatcher(t)
	transport.RegisterResponder(
		"POST",
		"https://api.github.com/repos/acme/course/actions/workflows/release.yml/dispatches",
		httpmock.NewStringResponder(404, `{"message":"Not Found"}`),
	)

	err := dispatcher.Dispatch("acme/course", "release.yml", "main")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `cannot dispatch workflow "release.yml" in "acme/course"`)
}
