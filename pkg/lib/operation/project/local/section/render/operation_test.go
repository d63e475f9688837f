package render

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canvastools/canvas-as-code/internal/pkg/api"
	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem/aferofs"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/pandoc"
	"github.com/canvastools/canvas-as-code/internal/pkg/project"
	"github.com/canvastools/canvas-as-code/internal/pkg/project/manifest"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

const scheduleYaml = `---
Első óra: 2022-09-01
Utolsó óra: 2022-09-08
Csoport: Analízis gyakorlat
template: |-
    # {{ .Header.Title }}
    {{ range .Sections }}{{ if not (.Date.After $.Until) }}{{ .Week }}. hét: {{ .Get "exs" }}
    {{ end }}{{ end }}
---
feladatok: 1129 1146
---
feladatok: 2524
`

type testDeps struct {
	logger  log.DebugLogger
	clock   clockwork.Clock
	project *project.Project
}

func (d *testDeps) Ctx() context.Context {
	return context.Background()
}

func (d *testDeps) Logger() log.Logger {
	return d.logger
}

func (d *testDeps) Clock() clockwork.Clock {
	return d.clock
}

func (d *testDeps) LocalProject() (*project.Project, error) {
	return d.project, nil
}

func (d *testDeps) CanvasApi() (*api.CanvasApi, error) {
	return nil, errors.New("unexpected call")
}

func (d *testDeps) PandocConverter() (*pandoc.Converter, error) {
	return nil, errors.New("pandoc not found")
}

func newTestDeps(t *testing.T, now time.Time) *testDeps {
	t.Helper()
	logger := log.NewDebugLogger()
	fs, err := aferofs.NewMemoryFs(logger, "/")
	require.NoError(t, err)
	d := &testDeps{logger: logger, clock: clockwork.NewFakeClockAt(now)}
	d.project = project.New(fs, manifest.New(123, "canvas.example.com"), d)
	require.NoError(t, fs.WriteFile(filesystem.CreateFile("schedule.yml", scheduleYaml)))
	return d
}

func TestRenderMissingPath(t *testing.T) {
	t.Parallel()
	d := newTestDeps(t, time.Now())

	err := Run(Options{}, d)
	require.Error(t, err)
	assert.Equal(t, "missing schedule file", err.Error())
}

func TestRenderUntilNow(t *testing.T) {
	t.Parallel()
	now := time.Date(2022, 9, 2, 10, 0, 0, 0, time.UTC)
	d := newTestDeps(t, now)

	require.NoError(t, Run(Options{Path: "schedule.yml"}, d))
	assert.Equal(t, "INFO  Rendered \"schedule.yml\" to \"index.md\".\n", d.logger.InfoMessages())

	// The clock hides the sections after "now"
	file, err := d.project.Fs().ReadFile("index.md", "rendered schedule")
	require.NoError(t, err)
	assert.Equal(t, "# Analízis gyakorlat\n1. hét: 1129 1146\n", file.Content)
}

func TestRenderUntilFlagAndOutput(t *testing.T) {
	t.Parallel()
	d := newTestDeps(t, time.Date(2022, 9, 1, 0, 0, 0, 0, time.UTC))

	opts := Options{
		Path:   "schedule.yml",
		Output: "out.md",
		Until:  time.Date(2022, 9, 8, 23, 0, 0, 0, time.UTC),
	}
	require.NoError(t, Run(opts, d))

	file, err := d.project.Fs().ReadFile("out.md", "rendered schedule")
	require.NoError(t, err)
	assert.Equal(t, "# Analízis gyakorlat\n1. hét: 1129 1146\n2. hét: 2524\n", file.Content)
}
