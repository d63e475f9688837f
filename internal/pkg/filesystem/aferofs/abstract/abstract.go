package abstract

import (
	"os"

	"github.com/spf13/afero"

	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
)

type Backend interface {
	afero.Fs
	Name() string
	BasePath() string
	FromSlash(path string) string // returns OS representation of the path
	ToSlash(path string) string   // returns internal representation of the path
	Walk(root string, walkFn filesystem.WalkFunc) error
	ReadDir(path string) ([]filesystem.FileInfo, error)
	// WriteFile writes the whole file, the write is atomic if the backend allows it.
	WriteFile(path string, data []byte, perm os.FileMode) error
}

type BackendProvider interface {
	Backend() Backend
}
