package init

import (
	"context"
	"embed"
	"io/fs"

	"github.com/canvastools/canvas-as-code/internal/pkg/api"
	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/project"
	"github.com/canvastools/canvas-as-code/internal/pkg/project/manifest"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
	"github.com/canvastools/canvas-as-code/internal/pkg/workflows"
	ciWorkflows "github.com/canvastools/canvas-as-code/pkg/lib/operation/ci/workflows/generate"
	pullOp "github.com/canvastools/canvas-as-code/pkg/lib/operation/project/sync/pull"
)

// Starter Lua hooks, the user is expected to edit them.
//
//go:embed filters/*
var starterFiles embed.FS

type Options struct {
	CourseId  int
	Workflows workflows.Options
}

type dependencies interface {
	Ctx() context.Context
	Logger() log.Logger
	EmptyDir() (filesystem.Fs, error)
	ProjectDir() (filesystem.Fs, error)
	LocalProject() (*project.Project, error)
	CanvasApi() (*api.CanvasApi, error)
}

// Run initializes the directory: verifies the course, writes the metadata
// dir with the manifest and the starter Lua hooks, pulls the first state
// and optionally generates the CI workflows.
func Run(o Options, d dependencies) error {
	logger := d.Logger()

	emptyDir, err := d.EmptyDir()
	if err != nil {
		return err
	}

	canvasApi, err := d.CanvasApi()
	if err != nil {
		return err
	}

	course, err := canvasApi.GetCourse(o.CourseId)
	if err != nil {
		return errors.PrefixErrorf(err, `cannot use course "%d"`, o.CourseId)
	}
	logger.Infof(`Course "%d" found, name "%s".`, course.Id, course.Name)

	// Metadata dir marks the project root
	if err := emptyDir.Mkdir(filesystem.MetadataDir); err != nil {
		return err
	}
	logger.Infof(`Created metadata dir "%s".`, filesystem.MetadataDir)

	if err := writeStarterFiles(logger, emptyDir); err != nil {
		return err
	}

	m := manifest.New(o.CourseId, canvasApi.Host())
	if err := m.Save(emptyDir); err != nil {
		return err
	}
	logger.Infof(`Created manifest file "%s".`, manifest.Path())

	// First pull
	if err := pullOp.Run(d); err != nil {
		return err
	}

	// CI workflows
	if o.Workflows.Enabled() {
		return ciWorkflows.Run(o.Workflows, d)
	}
	return nil
}

func writeStarterFiles(logger log.Logger, targetFs filesystem.Fs) error {
	filtersDir := filesystem.Join(filesystem.MetadataDir, manifest.FiltersDir)
	if err := targetFs.Mkdir(filtersDir); err != nil {
		return err
	}

	entries, err := starterFiles.ReadDir("filters")
	if err != nil {
		panic(err)
	}
	for _, entry := range entries {
		content, err := fs.ReadFile(starterFiles, "filters/"+entry.Name())
		if err != nil {
			panic(err)
		}
		path := filesystem.Join(filtersDir, entry.Name())
		file := filesystem.CreateFile(path, string(content)).SetDescription("starter hook")
		if err := targetFs.WriteFile(file); err != nil {
			return err
		}
		logger.Infof(`Created file "%s".`, path)
	}
	return nil
}
