package render

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/model"
	"github.com/canvastools/canvas-as-code/internal/pkg/pandoc"
	"github.com/canvastools/canvas-as-code/internal/pkg/project"
	"github.com/canvastools/canvas-as-code/internal/pkg/schedule"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

type Options struct {
	Path   string    // schedule definition
	Output string    // target file, empty means the naming index file
	Until  time.Time // sections after this date are hidden, zero means now
	Html   bool      // render html instead of markdown
}

type dependencies interface {
	Ctx() context.Context
	Logger() log.Logger
	Clock() clockwork.Clock
	LocalProject() (*project.Project, error)
	PandocConverter() (*pandoc.Converter, error)
}

// Run renders the schedule into the course index.
// Everything runs locally, the html variant resolves links
// against the last pulled url state.
func Run(o Options, d dependencies) error {
	logger := d.Logger()

	if len(o.Path) == 0 {
		return errors.New("missing schedule file")
	}

	prj, err := d.LocalProject()
	if err != nil {
		return err
	}
	fs := prj.Fs()

	file, err := fs.ReadFile(o.Path, "schedule")
	if err != nil {
		return err
	}

	header, sections, err := schedule.Parse(file.Content)
	if err != nil {
		return err
	}

	until := o.Until
	if until.IsZero() {
		until = d.Clock().Now()
	}

	text, err := schedule.Render(header, sections, until)
	if err != nil {
		return err
	}

	if o.Html {
		text, err = toHtml(d, prj, text)
		if err != nil {
			return err
		}
	}

	output := o.Output
	if output == "" {
		output = prj.Manifest().Naming.IndexFile
	}
	if err := fs.WriteFile(filesystem.CreateFile(output, text).SetDescription("rendered schedule")); err != nil {
		return err
	}

	logger.Infof(`Rendered "%s" to "%s".`, o.Path, output)
	return nil
}

func toHtml(d dependencies, prj *project.Project, text string) (string, error) {
	converter, err := d.PandocConverter()
	if err != nil {
		return "", err
	}

	filesField, err := prj.State().Field(model.FilesField)
	if err != nil {
		return "", err
	}
	if err := pandoc.WriteLuaTable(prj.Fs(), filesField); err != nil {
		return "", err
	}

	webUrl := "https://" + prj.Manifest().Project.ApiHost
	text, err = schedule.MetaBlock(webUrl, prj.CourseId(), filesField, text)
	if err != nil {
		return "", err
	}

	return converter.Convert(d.Ctx(), text, schedule.SrcFormat, schedule.OutFormat)
}
