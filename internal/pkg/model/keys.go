package model

// State fields, each one is a map "key -> remote object id".
const (
	FilesField       = "files"
	AssignmentsField = "assignments"
	QuizzesField     = "quizzes"
)

// StateFields in the fixed order.
func StateFields() []string {
	return []string{FilesField, AssignmentsField, QuizzesField}
}

// StateKey identifies a remote object in the project state.
type StateKey interface {
	Field() string  // state field, for example "files"
	String() string // unique key in the field map
}
