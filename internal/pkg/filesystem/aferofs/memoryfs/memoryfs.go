package memoryfs

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
)

type fs = afero.Fs

// MemoryFs is abstraction of the filesystem in the memory, used in tests.
type MemoryFs struct {
	fs
	utils *afero.Afero
}

func New() *MemoryFs {
	backend := afero.NewMemMapFs()
	return &MemoryFs{
		fs:    backend,
		utils: &afero.Afero{Fs: backend},
	}
}

func (m *MemoryFs) Name() string {
	return `memory`
}

func (m *MemoryFs) BasePath() string {
	return `__memory__`
}

func (m *MemoryFs) FromSlash(path string) string {
	return path
}

func (m *MemoryFs) ToSlash(path string) string {
	return path
}

func (m *MemoryFs) Walk(root string, walkFn filesystem.WalkFunc) error {
	return m.utils.Walk(root, walkFn)
}

func (m *MemoryFs) ReadDir(path string) ([]filesystem.FileInfo, error) {
	return m.utils.ReadDir(path)
}

func (m *MemoryFs) WriteFile(path string, data []byte, perm os.FileMode) error {
	if err := m.utils.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return m.utils.WriteFile(path, data, perm)
}
