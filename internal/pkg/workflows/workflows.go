// Package workflows generates the GitHub Actions files of the project,
// so the course material is validated on push and released on demand.
package workflows

import (
	"bufio"
	"bytes"
	"embed"
	"text/template"

	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

//go:embed template/*
var templates embed.FS

// ReleaseWorkflowFile is the workflow the "ci release" command dispatches.
const ReleaseWorkflowFile = "release.yml"

type Options struct {
	Validate   bool   // validate the manifest and the rendered material on push
	Release    bool   // manual workflow publishing the material to Canvas
	MainBranch string // branch the workflows run on
}

func (o Options) Enabled() bool {
	return o.Validate || o.Release
}

type generator struct {
	fs      filesystem.Fs
	options *Options
	logger  log.Logger
	errors  errors.MultiError
}

func GenerateFiles(logger log.Logger, fs filesystem.Fs, options *Options) error {
	if options.MainBranch == "" {
		options.MainBranch = "main"
	}
	g := &generator{fs: fs, options: options, logger: logger, errors: errors.NewMultiError()}
	return g.generateFiles()
}

func (g *generator) generateFiles() error {
	if !g.options.Enabled() {
		g.logger.Info("")
		g.logger.Info("No continuous integration action selected.")
		return nil
	}

	// Common files
	g.logger.Info("")
	g.logger.Info("Generating CI workflows ...")
	workflowsDir := filesystem.Join(".github", "workflows")
	installActDir := filesystem.Join(".github", "actions", "install")
	g.handleError(g.fs.Mkdir(workflowsDir))
	g.handleError(g.fs.Mkdir(installActDir))
	g.renderTemplate("template/install.yml.tmpl", filesystem.Join(installActDir, "action.yml"))

	// Validate operation
	if g.options.Validate {
		g.renderTemplate("template/validate.yml.tmpl", filesystem.Join(workflowsDir, "validate.yml"))
	}

	// Release operation
	if g.options.Release {
		g.renderTemplate("template/release.yml.tmpl", filesystem.Join(workflowsDir, ReleaseWorkflowFile))
	}

	if err := g.errors.ErrorOrNil(); err != nil {
		return err
	}

	g.logger.Info("")
	g.logger.Info("CI workflows have been generated.")
	g.logger.Info("Feel free to modify them.")
	g.logger.Info("")
	g.logger.Info("Please set the secret CANVAS_ACCESS_TOKEN in the GitHub settings.")
	g.logger.Info("See: https://docs.github.com/en/actions/reference/encrypted-secrets")
	return nil
}

func (g *generator) handleError(err error) {
	if err != nil {
		g.errors.Append(err)
	}
}

func (g *generator) renderTemplate(templatePath, targetPath string) {
	// Load
	content, err := templates.ReadFile(templatePath)
	if err != nil {
		panic(err)
	}

	// Parse, "[[ ]]" delimiters keep the GitHub "${{ }}" expressions intact
	tmpl, err := template.New(templatePath).Delims("[[", "]]").Parse(string(content))
	if err != nil {
		panic(err)
	}

	// Render
	var buffer bytes.Buffer
	writer := bufio.NewWriter(&buffer)
	if err := tmpl.Execute(writer, g.options); err != nil {
		panic(err)
	}
	if err := writer.Flush(); err != nil {
		panic(err)
	}

	// Write
	file := filesystem.CreateFile(targetPath, buffer.String()).SetDescription("workflow")
	if err := g.fs.WriteFile(file); err == nil {
		g.logger.Infof(`Created file "%s".`, targetPath)
	} else {
		g.errors.Append(err)
	}
}
