package manifest

import (
	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
	"github.com/canvastools/canvas-as-code/internal/pkg/json"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

const FileName = "manifest.json"

// FiltersDir with the project Lua filters, relative to the metadata dir.
const FiltersDir = "filters"

// Path returns the manifest path inside the project directory.
func Path() string {
	return filesystem.Join(filesystem.MetadataDir, FileName)
}

type Manifest struct {
	*Content
}

func New(courseId int, apiHost string) *Manifest {
	return &Manifest{Content: newContent(courseId, apiHost)}
}

func Load(fs filesystem.Fs) (*Manifest, error) {
	path := Path()
	if !fs.IsFile(path) {
		return nil, errors.Errorf(`manifest "%s" not found`, path)
	}

	file, err := fs.ReadFile(path, "manifest")
	if err != nil {
		return nil, err
	}

	// Unknown keys are rejected, so a typo cannot silently disable an option.
	// Missing keys keep the default value.
	content := newContent(0, "")
	if err := json.DecodeStrict([]byte(file.Content), content); err != nil {
		return nil, errors.PrefixErrorf(err, `manifest file "%s" is invalid`, path)
	}

	if err := content.validate(); err != nil {
		return nil, err
	}

	return &Manifest{Content: content}, nil
}

func (m *Manifest) Save(fs filesystem.Fs) error {
	if err := m.validate(); err != nil {
		return err
	}

	content, err := json.EncodeString(m.Content, true)
	if err != nil {
		return errors.PrefixError(err, "cannot encode manifest")
	}
	return fs.WriteFile(filesystem.CreateFile(Path(), content).SetDescription("manifest"))
}
