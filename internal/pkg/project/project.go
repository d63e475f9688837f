// Package project represents one local directory bound to a Canvas course.
package project

import (
	"github.com/canvastools/canvas-as-code/internal/pkg/api"
	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	projectManifest "github.com/canvastools/canvas-as-code/internal/pkg/project/manifest"
	"github.com/canvastools/canvas-as-code/internal/pkg/state"
)

type Manifest = projectManifest.Manifest

func LoadManifest(fs filesystem.Fs) (*Manifest, error) {
	return projectManifest.Load(fs)
}

type dependencies interface {
	Logger() log.Logger
	CanvasApi() (*api.CanvasApi, error)
}

type Project struct {
	dependencies
	fs       filesystem.Fs
	manifest *Manifest
	state    *state.State
}

func New(fs filesystem.Fs, manifest *Manifest, d dependencies) *Project {
	return &Project{
		dependencies: d,
		fs:           fs,
		manifest:     manifest,
		state:        state.New(fs, d.Logger()),
	}
}

func (p *Project) Fs() filesystem.Fs {
	return p.fs
}

func (p *Project) Manifest() *Manifest {
	return p.manifest
}

// State of the project, loaded lazily on the first access.
func (p *Project) State() *state.State {
	return p.state
}

func (p *Project) CourseId() int {
	return p.manifest.Project.Id
}
