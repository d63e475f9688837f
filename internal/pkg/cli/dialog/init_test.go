package dialog_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canvastools/canvas-as-code/internal/pkg/options"
	"github.com/canvastools/canvas-as-code/internal/pkg/workflows"
)

func TestAskInitOptionsNonInteractive(t *testing.T) {
	t.Parallel()
	dialogs, _ := createDialogs(t, false)

	o := options.NewOptions()
	o.ApiHost = "canvas.example.com"
	o.ApiToken = "my-secret"
	d := &testDeps{options: o}

	// All defaults, workflows are generated
	out, err := dialogs.AskInitOptions(d, 55)
	require.NoError(t, err)
	assert.Equal(t, 55, out.CourseId)
	assert.Equal(t, workflows.Options{Validate: true, Release: true, MainBranch: "main"}, out.Workflows)
}

func TestAskInitOptionsMissingHost(t *testing.T) {
	t.Parallel()
	dialogs, _ := createDialogs(t, false)

	_, err := dialogs.AskInitOptions(&testDeps{options: options.NewOptions()}, 55)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing Canvas host")
	assert.Contains(t, err.Error(), "missing Canvas API token")
}

func TestAskInitOptionsInteractive(t *testing.T) {
	t.Parallel()
	dialogs, console := createDialogs(t, true)

	o := options.NewOptions()
	o.ApiHost = "canvas.example.com"
	o.ApiToken = "my-secret"
	d := &testDeps{options: o}

	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()

		_, err := console.ExpectString("Please enter the id of the Canvas course, it is the number in the course url.")
		assert.NoError(t, err)

		_, err = console.ExpectString("Course id ")
		assert.NoError(t, err)

		time.Sleep(20 * time.Millisecond)
		_, err = console.SendLine("123")
		assert.NoError(t, err)

		_, err = console.ExpectString("Generate workflows files for GitHub Actions?")
		assert.NoError(t, err)

		time.Sleep(20 * time.Millisecond)
		_, err = console.SendLine("Y")
		assert.NoError(t, err)

		_, err = console.ExpectString(`Generate "validate" workflow?`)
		assert.NoError(t, err)

		time.Sleep(20 * time.Millisecond)
		_, err = console.SendLine("Y")
		assert.NoError(t, err)

		_, err = console.ExpectString(`Generate "release" workflow?`)
		assert.NoError(t, err)

		time.Sleep(20 * time.Millisecond)
		_, err = console.SendLine("n")
		assert.NoError(t, err)

		_, err = console.ExpectEOF()
		assert.NoError(t, err)
	}()

	// Run
	out, err := dialogs.AskInitOptions(d, 0)
	require.NoError(t, err)
	assert.NoError(t, console.Tty().Close())
	wg.Wait()
	assert.NoError(t, console.Close())

	// Assert
	assert.Equal(t, 123, out.CourseId)
	assert.Equal(t, workflows.Options{Validate: true, Release: false, MainBranch: "main"}, out.Workflows)
}
