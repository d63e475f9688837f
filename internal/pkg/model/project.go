package model

// Project binds a local directory to one Canvas course.
// Id is the Canvas course id.
type Project struct {
	Id      int    `json:"id" validate:"required,min=1"`
	ApiHost string `json:"apiHost" validate:"required"`
}
