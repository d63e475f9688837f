// nolint: forbidigo
package aferofs

import (
	"os"
	"path/filepath"

	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem/aferofs/localfs"
	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem/aferofs/memoryfs"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

// NewLocalFsFindProjectDir creates a local filesystem rooted in the project dir.
// The project dir is the working dir or its nearest parent with the metadata dir.
func NewLocalFsFindProjectDir(logger log.Logger, workingDir string) (fs filesystem.Fs, err error) {
	if workingDir == "" {
		workingDir, err = os.Getwd()
		if err != nil {
			return nil, errors.Errorf(`cannot get working dir from OS: %w`, err)
		}
	}

	// Convert working dir path to absolute
	workingDir, err = filepath.Abs(workingDir)
	if err != nil {
		return nil, err
	}

	// Find project dir
	projectDir, err := localfs.FindProjectDir(logger, workingDir)
	if err != nil {
		return nil, err
	}

	workingDirRel, err := filepath.Rel(projectDir, workingDir)
	if err != nil {
		return nil, errors.Errorf(`cannot determine working dir relative path: %w`, err)
	}

	// Create filesystem abstraction
	return New(logger, localfs.New(projectDir), workingDirRel), nil
}

func NewLocalFs(logger log.Logger, projectDir string, workingDirRel string) (fs filesystem.Fs, err error) {
	// Create filesystem abstraction
	return New(logger, localfs.New(projectDir), workingDirRel), nil
}

func NewMemoryFs(logger log.Logger, workingDir string) (fs filesystem.Fs, err error) {
	// Create filesystem abstraction
	return New(logger, memoryfs.New(), workingDir), nil
}
