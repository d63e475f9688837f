package model

import (
	"fmt"
	"time"
)

// AssignmentGroup https://canvas.instructure.com/doc/api/assignment_groups.html
type AssignmentGroup struct {
	Id   int    `json:"id" validate:"required,min=1"`
	Name string `json:"name"`
}

// Assignment https://canvas.instructure.com/doc/api/assignments.html
type Assignment struct {
	Id                      int                  `json:"id,omitempty"`
	Name                    string               `json:"name"`
	Description             string               `json:"description,omitempty"`
	DueAt                   *time.Time           `json:"due_at,omitempty"`
	PointsPossible          float64              `json:"points_possible,omitempty"`
	AssignmentGroupId       int                  `json:"assignment_group_id,omitempty"`
	AllowedExtensions       []string             `json:"allowed_extensions,omitempty"`
	SubmissionTypes         []string             `json:"submission_types,omitempty"`
	Published               bool                 `json:"published,omitempty"`
	HasSubmittedSubmissions bool                 `json:"has_submitted_submissions,omitempty"`
	Overrides               []AssignmentOverride `json:"assignment_overrides,omitempty"`
	OnlyVisibleToOverrides  bool                 `json:"only_visible_to_overrides,omitempty"`
	HtmlUrl                 string               `json:"html_url,omitempty"`
}

// AssignmentOverride https://canvas.instructure.com/doc/api/assignments.html#AssignmentOverride
type AssignmentOverride struct {
	Title      string     `json:"title,omitempty"`
	DueAt      *time.Time `json:"due_at,omitempty"`
	StudentIds []int      `json:"student_ids,omitempty"`
}

// AssignmentKey is the key of an assignment in the project state,
// for example "Homework/1. problem set".
type AssignmentKey struct {
	GroupName string
	Name      string
}

func (k AssignmentKey) Field() string {
	return AssignmentsField
}

func (k AssignmentKey) String() string {
	return fmt.Sprintf("%s/%s", k.GroupName, k.Name)
}
