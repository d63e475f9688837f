package api

import (
	"strconv"

	"github.com/go-resty/resty/v2"

	"github.com/canvastools/canvas-as-code/internal/pkg/client"
	"github.com/canvastools/canvas-as-code/internal/pkg/model"
)

// ListAssignments returns assignments of the course,
// the optional search term filters them by name.
func (a *CanvasApi) ListAssignments(courseId int, searchTerm string) ([]*model.Assignment, error) {
	var assignments []*model.Assignment
	response := a.ListAssignmentsRequest(courseId, searchTerm, func(page []*model.Assignment) {
		assignments = append(assignments, page...)
	}).Send().Response
	if response.HasError() {
		return nil, response.Err()
	}
	return assignments, nil
}

func (a *CanvasApi) CreateAssignment(courseId int, assignment *model.Assignment) (*model.Assignment, error) {
	response := a.CreateAssignmentRequest(courseId, assignment).Send().Response
	if response.HasResult() {
		return response.Result().(*model.Assignment), nil
	}
	return nil, response.Err()
}

func (a *CanvasApi) EditAssignment(courseId, assignmentId int, values map[string]string, changed []string) (*model.Assignment, error) {
	response := a.EditAssignmentRequest(courseId, assignmentId, values, changed).Send().Response
	if response.HasResult() {
		return response.Result().(*model.Assignment), nil
	}
	return nil, response.Err()
}

func (a *CanvasApi) DeleteAssignment(courseId, assignmentId int) error {
	return a.DeleteAssignmentRequest(courseId, assignmentId).Send().Err()
}

// GetAssignmentGroupName returns the name of the assignment group, the names are cached.
func (a *CanvasApi) GetAssignmentGroupName(courseId, groupId int) (string, error) {
	a.groupNamesLock.Lock()
	if name, found := a.groupNames[groupId]; found {
		a.groupNamesLock.Unlock()
		return name, nil
	}
	a.groupNamesLock.Unlock()

	group, err := a.GetAssignmentGroup(courseId, groupId)
	if err != nil {
		return "", err
	}

	a.groupNamesLock.Lock()
	a.groupNames[groupId] = group.Name
	a.groupNamesLock.Unlock()
	return group.Name, nil
}

func (a *CanvasApi) GetAssignmentGroup(courseId, groupId int) (*model.AssignmentGroup, error) {
	response := a.GetAssignmentGroupRequest(courseId, groupId).Send().Response
	if response.HasResult() {
		return response.Result().(*model.AssignmentGroup), nil
	}
	return nil, response.Err()
}

// ListAssignmentsRequest https://canvas.instructure.com/doc/api/assignments.html#method.assignments_api.index
func (a *CanvasApi) ListAssignmentsRequest(courseId int, searchTerm string, onPage func(page []*model.Assignment)) *client.Request {
	request := a.
		NewRequest(resty.MethodGet, "courses/{courseId}/assignments").
		SetPathParam("courseId", strconv.Itoa(courseId)).
		SetQueryParam("per_page", strconv.Itoa(PerPage))
	if len(searchTerm) > 0 {
		request.SetQueryParam("search_term", searchTerm)
	}
	return onEachPage(a, request, onPage)
}

// CreateAssignmentRequest https://canvas.instructure.com/doc/api/assignments.html#method.assignments_api.create
func (a *CanvasApi) CreateAssignmentRequest(courseId int, assignment *model.Assignment) *client.Request {
	return a.
		NewRequest(resty.MethodPost, "courses/{courseId}/assignments").
		SetPathParam("courseId", strconv.Itoa(courseId)).
		SetFormBody(Params("assignment", assignment)).
		SetResult(&model.Assignment{})
}

// EditAssignmentRequest https://canvas.instructure.com/doc/api/assignments.html#method.assignments_api.update
func (a *CanvasApi) EditAssignmentRequest(courseId, assignmentId int, values map[string]string, changed []string) *client.Request {
	return a.
		NewRequest(resty.MethodPut, "courses/{courseId}/assignments/{assignmentId}").
		SetPathParam("courseId", strconv.Itoa(courseId)).
		SetPathParam("assignmentId", strconv.Itoa(assignmentId)).
		SetFormBody(getChangedValues(values, changed)).
		SetResult(&model.Assignment{})
}

// DeleteAssignmentRequest https://canvas.instructure.com/doc/api/assignments.html#method.assignments.destroy
func (a *CanvasApi) DeleteAssignmentRequest(courseId, assignmentId int) *client.Request {
	return a.
		NewRequest(resty.MethodDelete, "courses/{courseId}/assignments/{assignmentId}").
		SetPathParam("courseId", strconv.Itoa(courseId)).
		SetPathParam("assignmentId", strconv.Itoa(assignmentId))
}

// GetAssignmentGroupRequest https://canvas.instructure.com/doc/api/assignment_groups.html#method.assignment_groups_api.show
func (a *CanvasApi) GetAssignmentGroupRequest(courseId, groupId int) *client.Request {
	return a.
		NewRequest(resty.MethodGet, "courses/{courseId}/assignment_groups/{groupId}").
		SetPathParam("courseId", strconv.Itoa(courseId)).
		SetPathParam("groupId", strconv.Itoa(groupId)).
		SetResult(&model.AssignmentGroup{})
}
