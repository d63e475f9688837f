package version

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canvastools/canvas-as-code/internal/pkg/env"
	"github.com/canvastools/canvas-as-code/internal/pkg/json"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
)

func TestCheckIfLatestVersionDev(t *testing.T) {
	t.Parallel()
	c, _ := createMockedChecker(t, env.Empty())
	err := c.CheckIfLatest(DevVersionValue)
	require.Error(t, err)
	assert.Equal(t, `skipped, found dev build`, err.Error())
}

func TestCheckIfLatestVersionDisabled(t *testing.T) {
	t.Parallel()
	envs := env.Empty()
	envs.Set(EnvVersionCheck, `false`)
	c, _ := createMockedChecker(t, envs)
	err := c.CheckIfLatest(`v1.2.2`)
	require.Error(t, err)
	assert.Equal(t, `skipped, disabled by CANVAS_VERSION_CHECK`, err.Error())
}

func TestCheckIfLatestVersionEqual(t *testing.T) {
	t.Parallel()
	c, logs := createMockedChecker(t, env.Empty())
	err := c.CheckIfLatest(`v1.2.3`)
	require.NoError(t, err)
	assert.NotContains(t, logs.AllMessages(), `WARN`)
}

func TestCheckIfLatestVersionGreater(t *testing.T) {
	t.Parallel()
	c, logs := createMockedChecker(t, env.Empty())
	err := c.CheckIfLatest(`v1.2.5`)
	require.NoError(t, err)
	assert.NotContains(t, logs.AllMessages(), `WARN`)
}

func TestCheckIfLatestVersionLess(t *testing.T) {
	t.Parallel()
	c, logs := createMockedChecker(t, env.Empty())
	err := c.CheckIfLatest(`v1.2.2`)
	require.NoError(t, err)
	expected := `
WARN  *******************************************************
WARN  WARNING: A new version "v1.2.3" is available.
WARN  You are currently using the version "1.2.2".
WARN  Please update to get the latest features and bug fixes.
WARN  Read more: https://github.com/canvastools/canvas-as-code/releases
WARN  *******************************************************
WARN
`
	assert.Equal(t, strings.TrimSpace(expected), strings.TrimSpace(logs.WarnMessages()))
}

func createMockedChecker(t *testing.T, envs env.Provider) (*checker, log.DebugLogger) {
	t.Helper()

	logger := log.NewDebugLogger()
	c := NewGitHubChecker(context.Background(), logger, envs)
	resty := c.api.GetRestyClient()

	// Set short retry delay in tests
	resty.RetryWaitTime = 1 * time.Millisecond
	resty.RetryMaxWaitTime = 1 * time.Millisecond

	// Mocked resty transport
	httpTransport := httpmock.NewMockTransport()
	resty.GetClient().Transport = httpTransport

	// The latest release is without assets, so the previous one is reported
	body := `
[
  {
    "tag_name": "v1.2.4",
    "assets": []
  },
  {
    "tag_name": "v1.2.3",
    "assets": [
      {
         "id": 123
      }
    ]
  }
]
`
	// Mocked response
	bodyJson := make([]any, 0)
	json.MustDecodeString(body, &bodyJson)
	responder, err := httpmock.NewJsonResponder(200, bodyJson)
	assert.NoError(t, err)
	httpTransport.RegisterResponder("GET", `=~.+repos/canvastools/canvas-as-code/releases.+`, responder)

	return c, logger
}
