package version

import (
	"github.com/canvastools/canvas-as-code/internal/pkg/build"
	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
	"github.com/canvastools/canvas-as-code/internal/pkg/json"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

// manifestVersion is the only field read before the manifest is parsed,
// a project written by a newer cli generation gets a targeted error.
type manifestVersion struct {
	Version int `json:"version"`
}

func CheckManifestVersion(fs filesystem.Fs, manifestPath string) error {
	file, err := fs.ReadFile(manifestPath, "manifest")
	if err != nil {
		return err
	}

	content := &manifestVersion{}
	if err := json.DecodeString(file.Content, content); err != nil {
		return errors.PrefixErrorf(err, `manifest file "%s" is invalid`, manifestPath)
	}

	if content.Version == 0 {
		return errors.Errorf(`version field not found in "%s"`, manifestPath)
	}
	if content.Version < 1 || content.Version > build.MajorVersion {
		return errors.Errorf(`unknown version "%d" found in "%s"`, content.Version, manifestPath)
	}
	return nil
}
