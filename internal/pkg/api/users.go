package api

import (
	"github.com/go-resty/resty/v2"

	"github.com/canvastools/canvas-as-code/internal/pkg/client"
	"github.com/canvastools/canvas-as-code/internal/pkg/model"
)

// GetCurrentUser returns the owner of the token, it verifies that the token works.
func (a *CanvasApi) GetCurrentUser() (*model.User, error) {
	response := a.CurrentUserRequest().Send().Response
	if response.HasResult() {
		return response.Result().(*model.User), nil
	}
	return nil, response.Err()
}

// CurrentUserRequest https://canvas.instructure.com/doc/api/users.html#method.users.api_show
func (a *CanvasApi) CurrentUserRequest() *client.Request {
	return a.
		NewRequest(resty.MethodGet, "users/self").
		SetResult(&model.User{})
}
