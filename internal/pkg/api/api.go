package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/canvastools/canvas-as-code/internal/pkg/client"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/options"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

// CanvasApi is a facade for the Canvas LMS REST API.
// https://canvas.instructure.com/doc/api/
type CanvasApi struct {
	apiHost      string
	apiHostUrl   string
	client       *client.Client
	uploadClient *client.Client // for pre-signed upload URLs, without the bearer token
	logger       log.Logger
	token        string

	groupNamesLock *sync.Mutex
	groupNames     map[int]string // assignment group id -> name cache
}

// NewCanvasApiFromOptions verifies the token and returns the authorized API.
func NewCanvasApiFromOptions(ctx context.Context, o *options.Options, logger log.Logger) (*CanvasApi, error) {
	if len(o.ApiHost) == 0 {
		panic(errors.New("api host is not set"))
	}
	if len(o.ApiToken) == 0 {
		panic(errors.New("api token is not set"))
	}

	canvasApi := NewCanvasApi(ctx, o.ApiHost, logger, o.VerboseApi).WithToken(o.ApiToken)
	user, err := canvasApi.GetCurrentUser()
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
			return nil, errors.New("the specified Canvas API token is not valid")
		}
		return nil, errors.PrefixError(err, "token verification failed")
	}

	logger.Debugf("Canvas API token is valid.")
	logger.Debugf(`User id: "%d", user name: "%s".`, user.Id, user.Name)
	return canvasApi, nil
}

func NewCanvasApi(ctx context.Context, apiHost string, logger log.Logger, verbose bool) *CanvasApi {
	apiHostUrl := "https://" + apiHost + "/api/v1"
	c := client.NewClient(ctx, logger, verbose).WithHostUrl(apiHostUrl)
	c.SetError(&Error{})
	return &CanvasApi{
		apiHost:        apiHost,
		apiHostUrl:     apiHostUrl,
		client:         c,
		uploadClient:   client.NewClient(ctx, logger, verbose),
		logger:         logger,
		groupNamesLock: &sync.Mutex{},
		groupNames:     make(map[int]string),
	}
}

// WithToken sets the bearer token for all API requests.
func (a *CanvasApi) WithToken(token string) *CanvasApi {
	a.token = token
	a.client.SetHeader("Authorization", "Bearer "+token)
	return a
}

func (a *CanvasApi) Token() string {
	return a.token
}

func (a *CanvasApi) Host() string {
	if len(a.apiHost) == 0 {
		panic(errors.New("api host is not set"))
	}
	return a.apiHost
}

func (a *CanvasApi) HostUrl() string {
	if len(a.apiHost) == 0 {
		panic(errors.New("api host is not set"))
	}
	return a.apiHostUrl
}

// WebUrl returns the base URL without the API prefix, for user-facing links.
func (a *CanvasApi) WebUrl() string {
	return "https://" + a.Host()
}

func (a *CanvasApi) NewPool() *client.Pool {
	return a.client.NewPool(a.logger)
}

func (a *CanvasApi) NewRequest(method string, url string) *client.Request {
	return a.client.NewRequest(method, url)
}

func (a *CanvasApi) Send(request *client.Request) {
	a.client.Send(request)
}

func (a *CanvasApi) SetRetry(count int, waitTime time.Duration, maxWaitTime time.Duration) {
	a.client.SetRetry(count, waitTime, maxWaitTime)
	a.uploadClient.SetRetry(count, waitTime, maxWaitTime)
}

func (a *CanvasApi) HttpClient() *http.Client {
	return a.client.HttpClient()
}

func (a *CanvasApi) UploadHttpClient() *http.Client {
	return a.uploadClient.HttpClient()
}

func getChangedValues(all map[string]string, changed []string) map[string]string {
	if len(changed) == 0 {
		return all
	}

	// Filter
	data := map[string]string{}
	for _, key := range changed {
		if v, ok := all[key]; ok {
			data[key] = v
		} else {
			panic(errors.Errorf(`key "%s" cannot be updated`, key))
		}
	}
	return data
}
