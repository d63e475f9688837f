package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem/aferofs"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
)

func TestLoadDotEnv(t *testing.T) {
	t.Parallel()
	logger := log.NewDebugLogger()
	fs, err := aferofs.NewMemoryFs(logger, `/`)
	require.NoError(t, err)

	// Write envs to files
	osEnvs := Empty()
	osEnvs.Set(`FOO1`, `BAR1`)
	osEnvs.Set(`OS_ONLY`, `123`)
	require.NoError(t, fs.WriteFile(filesystem.CreateFile(".env.local", "FOO1=BAR2\nFOO2=BAR2\n")))
	require.NoError(t, fs.WriteFile(filesystem.CreateFile(".env", "FOO1=BAZ\nFOO3=BAR3\n")))

	// Load envs
	logger.Truncate()
	envs := LoadDotEnv(logger, osEnvs, fs, []string{"."})

	// OS envs take precedence, then ".env.local", then ".env"
	assert.Equal(t, map[string]string{
		"OS_ONLY": "123",
		"FOO1":    "BAR1",
		"FOO2":    "BAR2",
		"FOO3":    "BAR3",
	}, envs.ToMap())
	expected := "INFO  Loaded env file \".env.local\"\nINFO  Loaded env file \".env\"\n"
	assert.Equal(t, expected, logger.InfoMessages())
}

func TestLoadDotEnvYaml(t *testing.T) {
	t.Parallel()
	logger := log.NewDebugLogger()
	fs, err := aferofs.NewMemoryFs(logger, `/`)
	require.NoError(t, err)

	require.NoError(t, fs.WriteFile(filesystem.CreateFile(".env.yml", "canvas_access_token: secret\ncanvas_base_url: https://canvas.example.com\n")))

	envs := LoadDotEnv(logger, Empty(), fs, []string{"."})
	assert.Equal(t, map[string]string{
		"CANVAS_ACCESS_TOKEN": "secret",
		"CANVAS_BASE_URL":     "https://canvas.example.com",
	}, envs.ToMap())
}

func TestLoadDotEnvYamlLowestPriority(t *testing.T) {
	t.Parallel()
	logger := log.NewDebugLogger()
	fs, err := aferofs.NewMemoryFs(logger, `/`)
	require.NoError(t, err)

	require.NoError(t, fs.WriteFile(filesystem.CreateFile(".env", "CANVAS_ACCESS_TOKEN=dotenv\n")))
	require.NoError(t, fs.WriteFile(filesystem.CreateFile(".env.yml", "canvas_access_token: yaml\ncanvas_course_id: '123'\n")))

	envs := LoadDotEnv(logger, Empty(), fs, []string{"."})
	assert.Equal(t, "dotenv", envs.Get("CANVAS_ACCESS_TOKEN"))
	assert.Equal(t, "123", envs.Get("CANVAS_COURSE_ID"))
}

func TestLoadEnvString(t *testing.T) {
	t.Parallel()
	envs, err := LoadEnvString("FOO=bar\n")
	require.NoError(t, err)
	assert.Equal(t, "bar", envs.Get("FOO"))

	// A bare word must not inject an empty-key variable
	_, err = LoadEnvString("invalid")
	require.Error(t, err)
	assert.Equal(t, `"invalid" is not a valid KEY=VALUE pair`, err.Error())
}

func TestLoadDotEnvInvalid(t *testing.T) {
	t.Parallel()
	logger := log.NewDebugLogger()
	fs, err := aferofs.NewMemoryFs(logger, `/`)
	require.NoError(t, err)

	require.NoError(t, fs.WriteFile(filesystem.CreateFile(".env.local", "invalid")))

	logger.Truncate()
	envs := LoadDotEnv(logger, Empty(), fs, []string{"."})
	assert.Equal(t, map[string]string{}, envs.ToMap())
	assert.Contains(t, logger.WarnMessages(), `cannot parse env file ".env.local"`)
}
