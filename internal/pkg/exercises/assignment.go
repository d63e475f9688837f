package exercises

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/canvastools/canvas-as-code/internal/pkg/model"
	"github.com/canvastools/canvas-as-code/internal/pkg/pandoc"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

// SourceFormat of the extracted exercises.
const SourceFormat = "latex+raw_tex"

// ResourceSeparator ends each resource block in the extract hook output.
// The last two lines of a block name a local file and its type, the text
// after the last separator is the LaTeX source of the problem set.
const ResourceSeparator = "----0123456789----\n"

// Resource is a local file referenced from an exercise, announced by
// the extract hook in front of the LaTeX source.
type Resource struct {
	Filename string
	Type     string
}

// resourceTypes maps a resource type announced by the extract hook to
// the course folder it is uploaded to and to the html attribute whose
// value is rewritten to the Canvas url after the upload.
var resourceTypes = map[string]struct{ folder, attribute string }{
	"image": {folder: "images", attribute: `<img src=`},
}

// Options for one generated assignment.
type Options struct {
	Name      string
	GroupName string
	DueAt     time.Time
	Points    float64
}

// Builder renders exercise variants into Canvas assignment payloads.
type Builder struct {
	extractor *Extractor
	converter *pandoc.Converter
}

func NewBuilder(extractor *Extractor, converter *pandoc.Converter) *Builder {
	return &Builder{extractor: extractor, converter: converter}
}

// Build extracts the variant source, converts it to HTML and fills the
// assignment payload. Submissions are accepted as text or as pdf/png/jpg
// uploads. A variant with a student list is published as invisible to
// everyone else, the override carries the group name and the due date.
// Resources announced by the extract hook are returned for upload.
func (b *Builder) Build(ctx context.Context, variant Variant, opts Options) (*model.Assignment, []Resource, error) {
	source, err := b.extractor.Extract(variant.Spec)
	if err != nil {
		return nil, nil, err
	}

	source, resources, err := splitResources(source)
	if err != nil {
		return nil, nil, err
	}

	description, err := b.converter.Convert(ctx, source, SourceFormat, pandoc.DefaultOutFormat)
	if err != nil {
		return nil, nil, err
	}

	dueAt := opts.DueAt
	assignment := &model.Assignment{
		Name:              opts.Name,
		Description:       description,
		DueAt:             &dueAt,
		PointsPossible:    opts.Points,
		AllowedExtensions: []string{"pdf", "png", "jpg"},
		SubmissionTypes:   []string{"online_text_entry", "online_upload"},
	}
	if variant.StudentIds != nil {
		assignment.Overrides = []model.AssignmentOverride{{
			Title:      opts.GroupName,
			DueAt:      &dueAt,
			StudentIds: variant.StudentIds,
		}}
		assignment.OnlyVisibleToOverrides = true
	}
	return assignment, resources, nil
}

// splitResources separates the resource blocks from the LaTeX source.
// The split runs before the pandoc conversion, so the announced file
// names are not subject to pandoc's own rewriting.
func splitResources(source string) (string, []Resource, error) {
	chunks := strings.Split(source, ResourceSeparator)
	var resources []Resource
	for _, chunk := range chunks[:len(chunks)-1] {
		lines := strings.Split(strings.TrimRight(chunk, "\n"), "\n")
		if len(lines) < 2 {
			return "", nil, errors.Errorf(`cannot parse resource block "%s"`, strings.TrimSpace(chunk))
		}
		resources = append(resources, Resource{
			Filename: lines[len(lines)-2],
			Type:     lines[len(lines)-1],
		})
	}
	return chunks[len(chunks)-1], resources, nil
}

// Uploader sends a local file to a course folder and returns the
// created Canvas file.
type Uploader func(folderPath, name string) (*model.File, error)

// UploadResources uploads the files referenced by the assignment and
// rewrites their links in the description to the Canvas urls.
func UploadResources(assignment *model.Assignment, resources []Resource, upload Uploader) error {
	for _, resource := range resources {
		rt, found := resourceTypes[resource.Type]
		if !found {
			return errors.Errorf(`unknown resource type "%s" of the file "%s"`, resource.Type, resource.Filename)
		}
		file, err := upload(rt.folder, resource.Filename)
		if err != nil {
			return err
		}
		assignment.Description = strings.ReplaceAll(
			assignment.Description,
			fmt.Sprintf(`%s"%s"`, rt.attribute, resource.Filename),
			fmt.Sprintf(`%s"%s"`, rt.attribute, file.Url),
		)
	}
	return nil
}
