package create

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/canvastools/canvas-as-code/internal/pkg/api"
	"github.com/canvastools/canvas-as-code/internal/pkg/exercises"
	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/model"
	"github.com/canvastools/canvas-as-code/internal/pkg/pandoc"
	"github.com/canvastools/canvas-as-code/internal/pkg/project"
	"github.com/canvastools/canvas-as-code/internal/pkg/project/manifest"
	"github.com/canvastools/canvas-as-code/internal/pkg/state"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

type Options struct {
	Name      string     // assignment name, the variant letter is appended
	GroupName string     // title of the visibility overrides
	DueAt     time.Time  //
	Points    float64    //
	Pools     [][]string // exercise id pools, one variant per combination
	Prefix    string     // passed to the extract hook of each exercise spec
	Seed      int64      // shuffle seed, zero means time-seeded
}

type dependencies interface {
	Ctx() context.Context
	Logger() log.Logger
	LocalProject() (*project.Project, error)
	CanvasApi() (*api.CanvasApi, error)
	PandocConverter() (*pandoc.Converter, error)
}

// Run generates one assignment per exercise pool combination.
// With more than one variant the students are shuffled and divided,
// every variant is visible only to its own chunk.
func Run(o Options, d dependencies) error {
	logger := d.Logger()

	prj, err := d.LocalProject()
	if err != nil {
		return err
	}

	canvasApi, err := d.CanvasApi()
	if err != nil {
		return err
	}

	converter, err := d.PandocConverter()
	if err != nil {
		return err
	}

	extractor, err := loadExtractor(prj.Fs())
	if err != nil {
		return err
	}

	specs := exercises.Specs(o.Pools, o.Prefix)
	var students []int
	if len(specs) > 1 {
		students, err = canvasApi.ListStudentIds(prj.CourseId())
		if err != nil {
			return err
		}
	}

	var rnd *rand.Rand
	if o.Seed != 0 {
		rnd = rand.New(rand.NewSource(o.Seed)) // nolint: gosec
	}
	variants := exercises.Assign(specs, students, rnd)

	builder := exercises.NewBuilder(extractor, converter)
	projectState := prj.State()
	for _, variant := range variants {
		assignment, err := buildOne(d, prj, canvasApi, builder, variant, o, len(variants) > 1)
		if err != nil {
			return err
		}

		groupName, err := canvasApi.GetAssignmentGroupName(prj.CourseId(), assignment.AssignmentGroupId)
		if err != nil {
			return err
		}
		key := model.AssignmentKey{GroupName: groupName, Name: assignment.Name}
		if err := projectState.Set(key, assignment.Id); err != nil {
			return err
		}
		logger.Infof(`Created assignment %d ("%s").`, assignment.Id, assignment.Name)
	}

	return projectState.Save()
}

func buildOne(d dependencies, prj *project.Project, canvasApi *api.CanvasApi, builder *exercises.Builder, variant exercises.Variant, o Options, titled bool) (*model.Assignment, error) {
	opts := exercises.Options{
		Name:      o.Name,
		GroupName: o.GroupName,
		DueAt:     o.DueAt,
		Points:    o.Points,
	}
	if titled {
		opts.Name = fmt.Sprintf("%s %s", o.Name, variant.Title)
		opts.GroupName = fmt.Sprintf("%s %s", o.GroupName, variant.Title)
	}

	assignment, resources, err := builder.Build(d.Ctx(), variant, opts)
	if err != nil {
		return nil, err
	}

	// Referenced images are uploaded first, the description links the Canvas urls
	uploader := func(folderPath, name string) (*model.File, error) {
		folder, err := canvasApi.GetOrCreateFolder(prj.CourseId(), folderPath)
		if err != nil {
			return nil, err
		}
		file, err := uploadResource(prj.Fs(), canvasApi, folder.Id, name)
		if err != nil {
			return nil, err
		}
		key := model.FileKey{FolderPath: folder.FullName, DisplayName: file.DisplayName}
		if err := prj.State().Set(key, state.FileEntry(canvasApi.WebUrl(), prj.CourseId(), file.Id)); err != nil {
			return nil, err
		}
		return file, nil
	}
	if err := exercises.UploadResources(assignment, resources, uploader); err != nil {
		return nil, err
	}

	return canvasApi.CreateAssignment(prj.CourseId(), assignment)
}

func uploadResource(fs filesystem.Fs, canvasApi *api.CanvasApi, folderId int, name string) (*model.File, error) {
	info, err := fs.Stat(name)
	if err != nil {
		return nil, errors.Wrapf(err, `cannot read resource "%s"`, name)
	}
	reader, err := fs.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, `cannot read resource "%s"`, name)
	}
	defer reader.Close()
	return canvasApi.UploadFile(folderId, filesystem.Base(name), reader, info.Size())
}

func loadExtractor(fs filesystem.Fs) (*exercises.Extractor, error) {
	path := filesystem.Join(filesystem.MetadataDir, manifest.FiltersDir, exercises.ExtractFile)
	file, err := fs.ReadFile(path, "extract hook")
	if err != nil {
		return nil, errors.PrefixError(err, "the assignment generator needs the extract hook")
	}
	return exercises.NewExtractor(path, file.Content)
}
