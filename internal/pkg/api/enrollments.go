package api

import (
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/canvastools/canvas-as-code/internal/pkg/client"
	"github.com/canvastools/canvas-as-code/internal/pkg/model"
)

// ListStudents returns enrollments of the "StudentEnrollment" type.
func (a *CanvasApi) ListStudents(courseId int) ([]*model.Enrollment, error) {
	var enrollments []*model.Enrollment
	response := a.ListStudentsRequest(courseId, func(page []*model.Enrollment) {
		enrollments = append(enrollments, page...)
	}).Send().Response
	if response.HasError() {
		return nil, response.Err()
	}
	return enrollments, nil
}

// ListStudentIds returns user ids of all enrolled students.
func (a *CanvasApi) ListStudentIds(courseId int) ([]int, error) {
	enrollments, err := a.ListStudents(courseId)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(enrollments))
	for _, enrollment := range enrollments {
		ids = append(ids, enrollment.UserId)
	}
	return ids, nil
}

// ListStudentsRequest https://canvas.instructure.com/doc/api/enrollments.html#method.enrollments_api.index
func (a *CanvasApi) ListStudentsRequest(courseId int, onPage func(page []*model.Enrollment)) *client.Request {
	request := a.
		NewRequest(resty.MethodGet, "courses/{courseId}/enrollments").
		SetPathParam("courseId", strconv.Itoa(courseId)).
		SetQueryParam("type", model.StudentEnrollment).
		SetQueryParam("per_page", strconv.Itoa(PerPage))
	return onEachPage(a, request, onPage)
}
