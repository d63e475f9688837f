// nolint: forbidigo
package testhelper

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem/aferofs"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
)

func NewMemoryFs() filesystem.Fs {
	fs, err := aferofs.NewMemoryFs(log.NewNopLogger(), `/`)
	if err != nil {
		panic(err)
	}
	return fs
}

func NewMemoryFsFrom(localDir string) filesystem.Fs {
	memoryFs := NewMemoryFs()
	if err := aferofs.CopyFs2Fs(nil, localDir, memoryFs, ``); err != nil {
		panic(fmt.Errorf(`cannot init memory fs from local dir "%s": %w`, localDir, err))
	}
	return memoryFs
}

func IsIgnoredFile(path string, d filesystem.FileInfo) bool {
	base := filepath.Base(path)
	return !d.IsDir() &&
		strings.HasPrefix(base, ".") &&
		!strings.HasPrefix(base, ".env") &&
		base != ".gitignore"
}

// FileExists returns true if file exists.
func FileExists(path string) bool {
	if _, err := os.Stat(path); err == nil {
		return true
	} else if !os.IsNotExist(err) {
		panic(fmt.Errorf("cannot test if file exists \"%s\": %s", path, err))
	}

	return false
}

// GetFileContent in test.
func GetFileContent(path string) string {
	contentBytes, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Errorf("cannot get file \"%s\" content: %s", path, err))
	}

	return string(contentBytes)
}
