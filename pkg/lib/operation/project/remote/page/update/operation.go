package update

import (
	"context"

	"github.com/canvastools/canvas-as-code/internal/pkg/api"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/model"
	"github.com/canvastools/canvas-as-code/internal/pkg/pandoc"
	"github.com/canvastools/canvas-as-code/internal/pkg/project"
	"github.com/canvastools/canvas-as-code/internal/pkg/schedule"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

type dependencies interface {
	Ctx() context.Context
	Logger() log.Logger
	LocalProject() (*project.Project, error)
	CanvasApi() (*api.CanvasApi, error)
	PandocConverter() (*pandoc.Converter, error)
}

// Run converts the course index to html and uploads it as the front page.
// The url state is exported for the href.lua filter first, so the page
// links the current remote ids.
func Run(d dependencies) error {
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

	filesField, err := prj.State().Field(model.FilesField)
	if err != nil {
		return err
	}
	if err := pandoc.WriteLuaTable(prj.Fs(), filesField); err != nil {
		return err
	}

	naming := prj.Manifest().Naming
	file, err := prj.Fs().ReadFile(naming.IndexFile, "course index")
	if err != nil {
		return errors.PrefixError(err, "cannot read the course index")
	}

	text, err := schedule.MetaBlock(canvasApi.WebUrl(), prj.CourseId(), filesField, file.Content)
	if err != nil {
		return err
	}

	body, err := converter.Convert(d.Ctx(), text, schedule.SrcFormat, schedule.OutFormat)
	if err != nil {
		return err
	}

	page := &model.Page{Title: naming.FrontPageTitle, Body: body, Published: true}
	updated, err := canvasApi.UpdateFrontPage(prj.CourseId(), page)
	if err != nil {
		return err
	}

	logger.Infof(`Updated front page "%s".`, updated.Title)
	return nil
}
