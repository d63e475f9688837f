package client

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"

	"github.com/canvastools/canvas-as-code/internal/pkg/build"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/testhelper"
)

func getMockedClientAndLogs(t *testing.T, verbose bool) (*Client, *httpmock.MockTransport, log.DebugLogger) {
	t.Helper()
	logger := log.NewDebugLogger()
	c := NewClient(context.Background(), logger, verbose)

	// Set short retry delay in tests
	c.SetRetry(RetryCount, 1*time.Millisecond, 1*time.Millisecond)

	// Mocked resty transport
	transport := httpmock.NewMockTransport()
	c.HttpClient().Transport = transport
	return c, transport, logger
}

func TestNewClient(t *testing.T) {
	t.Parallel()
	logger := log.NewDebugLogger()
	c := NewClient(context.Background(), logger, false)
	assert.NotNil(t, c)
	assert.Equal(t, RetryCount, c.GetRestyClient().RetryCount)
	assert.Equal(t, fmt.Sprintf("canvas-as-code/%s", build.BuildVersion), c.Header().Get("User-Agent"))
}

func TestSimpleRequest(t *testing.T) {
	t.Parallel()
	c, transport, logger := getMockedClientAndLogs(t, false)
	transport.RegisterResponder("GET", `=~.+`, httpmock.NewStringResponder(200, `test`))

	successCaught := false
	request := c.Request(c.NewRequest(resty.MethodGet, "https://example.com")).
		OnSuccess(func(response *Response) {
			successCaught = true
			assert.Equal(t, "test", response.String())
		}).
		OnError(func(response *Response) {
			assert.Fail(t, "error not expected")
		}).
		Send()

	assert.True(t, request.IsSent())
	assert.True(t, request.IsDone())
	assert.False(t, request.HasError())
	assert.True(t, successCaught)
	assert.Equal(t, 1, transport.GetCallCountInfo()["GET https://example.com"])
	testhelper.AssertWildcards(t, "DEBUG  HTTP\tGET https://example.com | 200 | %s", logger.DebugMessages(), "Unexpected log")
}

func TestRetryOnHttpError(t *testing.T) {
	t.Parallel()
	c, transport, _ := getMockedClientAndLogs(t, false)
	transport.RegisterResponder("GET", `=~.+`, httpmock.NewStringResponder(504, `test`))

	errorCaught := false
	request := c.Request(c.NewRequest(resty.MethodGet, "https://example.com")).
		OnSuccess(func(response *Response) {
			assert.Fail(t, "success not expected")
		}).
		OnError(func(response *Response) {
			errorCaught = true
		}).
		Send()

	assert.True(t, request.IsDone())
	assert.True(t, request.HasError())
	assert.True(t, errorCaught)
	assert.Equal(t, `GET https://example.com | returned http code 504`, request.Err().Error())
	assert.Equal(t, 1+RetryCount, transport.GetCallCountInfo()["GET https://example.com"])
}

func TestDoNotRetryOnClientError(t *testing.T) {
	t.Parallel()
	c, transport, _ := getMockedClientAndLogs(t, false)
	transport.RegisterResponder("GET", `=~.+`, httpmock.NewStringResponder(404, `not found`))

	request := c.Request(c.NewRequest(resty.MethodGet, "https://example.com")).Send()

	assert.True(t, request.IsDone())
	assert.True(t, request.HasError())
	assert.Equal(t, `GET https://example.com | returned http code 404`, request.Err().Error())
	assert.Equal(t, 1, transport.GetCallCountInfo()["GET https://example.com"])
}

func TestRetryOnNetworkError(t *testing.T) {
	t.Parallel()
	c, transport, _ := getMockedClientAndLogs(t, false)
	transport.RegisterResponder("GET", `=~.+`, httpmock.NewErrorResponder(errors.New("network error")))

	errorCaught := false
	request := c.Request(c.NewRequest(resty.MethodGet, "https://example.com")).
		OnError(func(response *Response) {
			errorCaught = true
		}).
		Send()

	assert.True(t, request.IsDone())
	assert.True(t, request.HasError())
	assert.True(t, errorCaught)
	assert.Contains(t, request.Err().Error(), "network error")
	assert.Equal(t, 1+RetryCount, transport.GetCallCountInfo()["GET https://example.com"])
}

func TestWithHostUrl(t *testing.T) {
	t.Parallel()
	c, transport, _ := getMockedClientAndLogs(t, false)
	cHost := c.WithHostUrl("https://canvas.example.com")
	transport.RegisterResponder("GET", `https://canvas.example.com/api/v1/users/self`, httpmock.NewStringResponder(200, `{}`))

	assert.Equal(t, "https://canvas.example.com", cHost.HostUrl())
	request := cHost.Request(cHost.NewRequest(resty.MethodGet, "/api/v1/users/self")).Send()
	assert.True(t, request.IsDone())
	assert.False(t, request.HasError())
	assert.Equal(t, 1, transport.GetCallCountInfo()["GET https://canvas.example.com/api/v1/users/self"])
}

func TestVerboseHideSecret(t *testing.T) {
	t.Parallel()
	c, transport, logger := getMockedClientAndLogs(t, true)
	transport.RegisterResponder("GET", `=~.+`, httpmock.NewStringResponder(200, `test`))

	request := c.Request(c.NewRequest(resty.MethodGet, "https://example.com")).
		SetHeader("Authorization", "Bearer my-secret-token").
		Send()
	assert.True(t, request.IsDone())
	assert.False(t, request.HasError())

	expected := `
DEBUG  HTTP
==============================================================================
~~~ REQUEST ~~~
GET  /  HTTP/1.1
HOST   : example.com
HEADERS:
	Authorization: *****
	User-Agent: canvas-as-code/dev
BODY   :
***** NO CONTENT *****
------------------------------------------------------------------------------
~~~ RESPONSE ~~~
STATUS       : 200
PROTO        : %S
RECEIVED AT  : %s
TIME DURATION: %s
HEADERS      :
%A`
	testhelper.AssertWildcards(t, expected, logger.DebugMessages(), "Unexpected log")
}

func TestMaskSecrets(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Authorization: *****", maskSecrets("Authorization: Bearer my-token"))
	assert.Equal(t, "\tAuthorization: *****\n\tUser-Agent: foo", maskSecrets("\tAuthorization: Bearer my-token\n\tUser-Agent: foo"))
	assert.Equal(t, `"access_token": "*****`, maskSecrets(`"access_token": "12345"`))
	assert.Equal(t, "no secret", maskSecrets("no secret"))
}
