package validator

import (
	"context"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type courseSettings struct {
	Name           string           `json:"name" validate:"required"`
	Term           string           `yaml:"term" validate:"required"`
	Token          string           `json:"-" validate:"required"`
	Code           string           `validate:"required"`
	Modules        []moduleSettings `validate:"dive"`
	moduleSettings                  // anonymous
}

type moduleSettings struct {
	Title string `json:"title" validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()
	err := New().Validate(context.Background(), courseSettings{Modules: []moduleSettings{{}, {}}})
	expected := `
- "name" is a required field
- "term" is a required field
- "Token" is a required field
- "Code" is a required field
- "Modules[0].title" is a required field
- "Modules[1].title" is a required field
- "title" is a required field
`
	require.Error(t, err)
	assert.Equal(t, strings.TrimSpace(expected), err.Error())
}

func TestValidateStructWithNamespace(t *testing.T) {
	t.Parallel()
	err := New().ValidateCtx(context.Background(), courseSettings{Modules: []moduleSettings{{}, {}}}, "dive", "course.settings")
	expected := `
- "course.settings.name" is a required field
- "course.settings.term" is a required field
- "course.settings.Token" is a required field
- "course.settings.Code" is a required field
- "course.settings.Modules[0].title" is a required field
- "course.settings.Modules[1].title" is a required field
- "course.settings.title" is a required field
`
	require.Error(t, err)
	assert.Equal(t, strings.TrimSpace(expected), err.Error())
}

func TestValidateSlice(t *testing.T) {
	t.Parallel()
	err := New().Validate(context.Background(), []moduleSettings{{}, {}})
	expected := `
- "[0].title" is a required field
- "[1].title" is a required field
`
	require.Error(t, err)
	assert.Equal(t, strings.TrimSpace(expected), err.Error())
}

func TestValidateSliceWithNamespace(t *testing.T) {
	t.Parallel()
	err := New().ValidateCtx(context.Background(), []moduleSettings{{}, {}}, "dive", "course.modules")
	expected := `
- "course.modules.[0].title" is a required field
- "course.modules.[1].title" is a required field
`
	require.Error(t, err)
	assert.Equal(t, strings.TrimSpace(expected), err.Error())
}

func TestValidateValue(t *testing.T) {
	t.Parallel()
	err := New().ValidateValue("", "required")
	require.Error(t, err)
	assert.Equal(t, `is a required field`, err.Error())
}

func TestValidateValueAddNamespace(t *testing.T) {
	t.Parallel()
	err := New().ValidateCtx(context.Background(), "", "required", "course.name")
	require.Error(t, err)
	assert.Equal(t, `"course.name" is a required field`, err.Error())
}

func TestValidateErrorMsgFunc(t *testing.T) {
	t.Parallel()
	rule := Rule{
		Tag: "course_state",
		Func: func(fl validator.FieldLevel) bool {
			return false
		},
		ErrorMsgFunc: func(fe validator.FieldError) string {
			if fe.Value() == "archived" {
				return "the course is archived"
			}
			return "the course is not available"
		},
	}

	err := New(rule).ValidateCtx(context.Background(), "archived", "course_state", "course.state")
	require.Error(t, err)
	assert.Equal(t, `"course.state" the course is archived`, err.Error())

	err = New(rule).ValidateCtx(context.Background(), "deleted", "course_state", "course.state")
	require.Error(t, err)
	assert.Equal(t, `"course.state" the course is not available`, err.Error())
}

func TestValidatorRequiredNotEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	v := New()

	// String
	err := v.ValidateCtx(ctx, `CS101`, `required_not_empty`, `course.code`)
	require.NoError(t, err)
	err = v.ValidateCtx(ctx, ``, `required_not_empty`, `course.code`)
	require.Error(t, err)
	assert.Equal(t, `"course.code" is a required field`, err.Error())

	// Array
	err = v.ValidateCtx(ctx, []string{`week-1`, `week-2`}, `required_not_empty`, `course.modules`)
	require.NoError(t, err)
	err = v.ValidateCtx(ctx, []string{}, `required_not_empty`, `course.modules`)
	require.Error(t, err)
	assert.Equal(t, `"course.modules" is a required field`, err.Error())
	err = v.ValidateCtx(ctx, nil, `required_not_empty`, `course.modules`)
	require.Error(t, err)
	assert.Equal(t, `"course.modules" is a required field`, err.Error())
}

func TestValidatorAlphaNumDash(t *testing.T) {
	t.Parallel()
	cases := []struct{ value, error string }{
		{"123", ""},
		{"intro", ""},
		{"week-1", ""},
		{"week-1-exercises", ""},
		{"#week-1", "module_slug can only contain alphanumeric characters and dash"},
		{"week_1", "module_slug can only contain alphanumeric characters and dash"},
		{"week-1#", "module_slug can only contain alphanumeric characters and dash"},
	}

	v := New()
	for i, c := range cases {
		err := v.ValidateCtx(context.Background(), c.value, `alphanumdash`, `module_slug`)
		if c.error == "" {
			require.NoError(t, err, `case: %d`, i+1)
		} else {
			require.Error(t, err, c.error, `case: %d`, i+1)
		}
	}
}
