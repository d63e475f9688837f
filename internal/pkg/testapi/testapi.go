package testapi

import (
	"context"
	"os"
	"time"

	"github.com/jarcoal/httpmock"

	"github.com/canvastools/canvas-as-code/internal/pkg/api"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
)

// NewMockedCanvasApi for tests, the transport is mocked, no request leaves the process.
func NewMockedCanvasApi() (*api.CanvasApi, *httpmock.MockTransport, log.DebugLogger) {
	logger := log.NewDebugLogger()

	// Set short retry delay in tests
	canvasApi := api.NewCanvasApi(context.Background(), "canvas.example.com", logger, false).WithToken("my-secret")
	canvasApi.SetRetry(3, 1*time.Millisecond, 1*time.Millisecond)

	// Mocked resty transport, shared by the API and upload clients
	transport := httpmock.NewMockTransport()
	canvasApi.HttpClient().Transport = transport
	canvasApi.UploadHttpClient().Transport = transport
	return canvasApi, transport, logger
}

func NewCanvasApi(host string, verbose bool) (*api.CanvasApi, log.DebugLogger) {
	logger := log.NewDebugLogger()
	if verbose {
		logger.ConnectTo(os.Stdout)
	}
	a := api.NewCanvasApi(context.Background(), host, logger, false)
	a.SetRetry(3, 100*time.Millisecond, 100*time.Millisecond)
	return a, logger
}

func NewCanvasApiWithToken(host, token string, verbose bool) (*api.CanvasApi, log.DebugLogger) {
	a, logger := NewCanvasApi(host, verbose)
	return a.WithToken(token), logger
}
