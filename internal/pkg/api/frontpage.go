package api

import (
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/canvastools/canvas-as-code/internal/pkg/client"
	"github.com/canvastools/canvas-as-code/internal/pkg/model"
)

// UpdateFrontPage replaces the content of the course front page.
func (a *CanvasApi) UpdateFrontPage(courseId int, page *model.Page) (*model.Page, error) {
	response := a.UpdateFrontPageRequest(courseId, page).Send().Response
	if response.HasResult() {
		return response.Result().(*model.Page), nil
	}
	return nil, response.Err()
}

// UpdateFrontPageRequest https://canvas.instructure.com/doc/api/pages.html#method.wiki_pages_api.update_front_page
func (a *CanvasApi) UpdateFrontPageRequest(courseId int, page *model.Page) *client.Request {
	return a.
		NewRequest(resty.MethodPut, "courses/{courseId}/front_page").
		SetPathParam("courseId", strconv.Itoa(courseId)).
		SetFormBody(Params("wiki_page", page)).
		SetResult(&model.Page{})
}
