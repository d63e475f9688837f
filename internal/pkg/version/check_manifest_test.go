package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem/aferofs"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
)

func newTestFs(t *testing.T) filesystem.Fs {
	t.Helper()
	fs, err := aferofs.NewMemoryFs(log.NewNopLogger(), "")
	require.NoError(t, err)
	return fs
}

func TestCheckManifestVersionValid(t *testing.T) {
	t.Parallel()
	fs := newTestFs(t)
	require.NoError(t, fs.WriteFile(filesystem.CreateFile(`foo.json`, `{"version": 1}`)))
	require.NoError(t, CheckManifestVersion(fs, `foo.json`))
}

func TestCheckManifestVersionUnknown(t *testing.T) {
	t.Parallel()
	fs := newTestFs(t)
	require.NoError(t, fs.WriteFile(filesystem.CreateFile(`foo.json`, `{"version": 123}`)))
	err := CheckManifestVersion(fs, `foo.json`)
	require.Error(t, err)
	assert.Equal(t, `unknown version "123" found in "foo.json"`, err.Error())
}

func TestCheckManifestVersionMissing(t *testing.T) {
	t.Parallel()
	fs := newTestFs(t)
	require.NoError(t, fs.WriteFile(filesystem.CreateFile(`foo.json`, `{}`)))
	err := CheckManifestVersion(fs, `foo.json`)
	require.Error(t, err)
	assert.Equal(t, `version field not found in "foo.json"`, err.Error())
}

func TestCheckManifestVersionInvalidJson(t *testing.T) {
	t.Parallel()
	fs := newTestFs(t)
	require.NoError(t, fs.WriteFile(filesystem.CreateFile(`foo.json`, `{`)))
	err := CheckManifestVersion(fs, `foo.json`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `manifest file "foo.json" is invalid`)
}

func TestCheckManifestVersionFileNotFound(t *testing.T) {
	t.Parallel()
	fs := newTestFs(t)
	err := CheckManifestVersion(fs, `foo.json`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `foo.json`)
}
