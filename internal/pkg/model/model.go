package model

// User https://canvas.instructure.com/doc/api/users.html
type User struct {
	Id           int    `json:"id" validate:"required,min=1"`
	Name         string `json:"name"`
	SortableName string `json:"sortable_name,omitempty"`
	LoginId      string `json:"login_id,omitempty"`
}

// Course https://canvas.instructure.com/doc/api/courses.html
type Course struct {
	Id            int    `json:"id" validate:"required,min=1"`
	Name          string `json:"name"`
	CourseCode    string `json:"course_code,omitempty"`
	WorkflowState string `json:"workflow_state,omitempty"`
}

// Enrollment https://canvas.instructure.com/doc/api/enrollments.html
type Enrollment struct {
	Id     int    `json:"id"`
	UserId int    `json:"user_id"`
	Type   string `json:"type"`
	State  string `json:"enrollment_state,omitempty"`
	User   *User  `json:"user,omitempty"`
}

const StudentEnrollment = "StudentEnrollment"
