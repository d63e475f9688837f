package manifest

import (
	"context"

	"github.com/Masterminds/semver"
	goValidator "github.com/go-playground/validator/v10"

	"github.com/canvastools/canvas-as-code/internal/pkg/build"
	"github.com/canvastools/canvas-as-code/internal/pkg/model"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
	"github.com/canvastools/canvas-as-code/internal/pkg/validator"
)

// Content of the project manifest.
// The manifest binds the local directory to one Canvas course
// and keeps the naming and rendering defaults.
type Content struct {
	Version int           `json:"version" validate:"required,min=1,max=1"`
	Project model.Project `json:"project" validate:"required"`
	Naming  *Naming       `json:"naming" validate:"required"`
	Pandoc  *Pandoc       `json:"pandoc" validate:"required"`
}

// Naming defines where bare file names are resolved and how the front page is named.
type Naming struct {
	LocalDir       string `json:"localDir"`
	RemoteDir      string `json:"remoteDir"`
	IndexFile      string `json:"indexFile" validate:"required"`
	FrontPageTitle string `json:"frontPageTitle" validate:"required"`
}

// Pandoc configures the external pandoc binary.
// Version is a semver range the discovered binary must satisfy.
// Filters are Lua filter file names from the metadata filters dir.
// Options is appended to every pandoc call, shell-style quoting applies.
type Pandoc struct {
	Version string   `json:"version" validate:"required,semverconstraint"`
	Filters []string `json:"filters"`
	Options string   `json:"options"`
}

func newContent(courseId int, apiHost string) *Content {
	return &Content{
		Version: build.MajorVersion,
		Project: model.Project{Id: courseId, ApiHost: apiHost},
		Naming:  defaultNaming(),
		Pandoc:  defaultPandoc(),
	}
}

func defaultNaming() *Naming {
	// Empty dirs resolve bare names against the working directory
	// and the course root folder.
	return &Naming{IndexFile: "index.md", FrontPageTitle: "Kurzusleírás"}
}

func defaultPandoc() *Pandoc {
	return &Pandoc{Version: ">= 2.0.0", Filters: []string{"href.lua"}}
}

func (c *Content) validate() error {
	if err := newValidator().Validate(context.Background(), c); err != nil {
		return errors.PrefixError(err, "manifest is not valid")
	}
	return nil
}

// newValidator adds the "semverconstraint" rule for the pandoc version range.
func newValidator() validator.Validator {
	return validator.New(validator.Rule{
		Tag: "semverconstraint",
		Func: func(fl goValidator.FieldLevel) bool {
			_, err := semver.NewConstraint(fl.Field().String())
			return err == nil
		},
		ErrorMsg: "is not a valid version constraint",
	})
}
