// nolint: forbidigo
package localfs

import (
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/spf13/afero"

	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

type fs = afero.Fs

// LocalFs is abstraction of the local filesystem implemented by the "os" package.
// All paths are relative to the basePath.
type LocalFs struct {
	fs
	utils    *afero.Afero
	basePath string
}

func New(basePath string) *LocalFs {
	if !filepath.IsAbs(basePath) {
		panic(errors.Errorf(`base path "%s" must be absolute`, basePath))
	}

	backend := afero.NewBasePathFs(afero.NewOsFs(), basePath)
	return &LocalFs{
		fs:       backend,
		utils:    &afero.Afero{Fs: backend},
		basePath: basePath,
	}
}

func (l *LocalFs) Name() string {
	return `local`
}

func (l *LocalFs) BasePath() string {
	return l.basePath
}

func (l *LocalFs) FromSlash(path string) string {
	return filepath.FromSlash(path)
}

func (l *LocalFs) ToSlash(path string) string {
	return filepath.ToSlash(path)
}

func (l *LocalFs) Walk(root string, walkFn filesystem.WalkFunc) error {
	return l.utils.Walk(root, walkFn)
}

func (l *LocalFs) ReadDir(path string) ([]filesystem.FileInfo, error) {
	return l.utils.ReadDir(path)
}

// WriteFile writes the file atomically, via a temp file and rename.
func (l *LocalFs) WriteFile(path string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(filepath.Join(l.basePath, l.FromSlash(path)), data, perm)
}

// FindProjectDir -> working dir or its parent that contains the metadata dir.
func FindProjectDir(logger log.Logger, workingDir string) (string, error) {
	// Working dir must be absolute
	workingDir, err := filepath.Abs(workingDir)
	if err != nil {
		return "", errors.Errorf(`cannot get absolute path of the working dir: %w`, err)
	}

	// Process working dir and parents
	actualDir := workingDir
	for {
		metadataDir := filepath.Join(actualDir, filesystem.MetadataDir)
		if stat, err := os.Stat(metadataDir); err == nil {
			if stat.IsDir() {
				return actualDir, nil
			}
			logger.Debugf(`Expected dir, but found file at "%s"`, metadataDir)
		} else if !os.IsNotExist(err) {
			logger.Debugf(`Cannot check if path "%s" exists: %s`, metadataDir, err)
		}

		// Check parent dir
		parentDir := filepath.Dir(actualDir)
		if parentDir == actualDir {
			break
		}
		actualDir = parentDir
	}

	// Metadata dir not found -> working dir is used
	return workingDir, nil
}
