package api

import (
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/canvastools/canvas-as-code/internal/pkg/client"
	"github.com/canvastools/canvas-as-code/internal/pkg/model"
)

func (a *CanvasApi) GetCourse(courseId int) (*model.Course, error) {
	response := a.GetCourseRequest(courseId).Send().Response
	if response.HasResult() {
		return response.Result().(*model.Course), nil
	}
	return nil, response.Err()
}

// GetCourseRequest https://canvas.instructure.com/doc/api/courses.html#method.courses.show
func (a *CanvasApi) GetCourseRequest(courseId int) *client.Request {
	return a.
		NewRequest(resty.MethodGet, "courses/{courseId}").
		SetPathParam("courseId", strconv.Itoa(courseId)).
		SetResult(&model.Course{})
}
