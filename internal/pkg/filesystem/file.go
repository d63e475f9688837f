package filesystem

import (
	"strings"

	"github.com/canvastools/canvas-as-code/internal/pkg/json"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/orderedmap"
)

// FileLine for CreateOrUpdateFile, the line is added only if it is not already present.
// An existing line is matched by the Regexp.
type FileLine struct {
	Line   string
	Regexp string
}

// File is a plain file, the content is a string.
type File struct {
	Desc    string
	Path    string
	Content string
}

// JsonFile is a file, the content is an ordered JSON map.
type JsonFile struct {
	Desc    string
	Path    string
	Content *orderedmap.OrderedMap
}

func CreateFile(path, content string) *File {
	return &File{Path: path, Content: content}
}

func CreateJsonFile(path string, content *orderedmap.OrderedMap) *JsonFile {
	return &JsonFile{Path: path, Content: content}
}

func (f *File) SetDescription(desc string) *File {
	f.Desc = desc
	return f
}

func (f *File) ToJsonFile() (*JsonFile, error) {
	m := orderedmap.New()
	if err := json.DecodeString(f.Content, m); err != nil {
		fileDesc := strings.TrimSpace(f.Desc + " file")
		return nil, errors.PrefixErrorf(err, `%s "%s" is invalid`, fileDesc, f.Path)
	}

	jsonFile := CreateJsonFile(f.Path, m)
	jsonFile.Desc = f.Desc
	return jsonFile, nil
}

func (f *JsonFile) SetDescription(desc string) *JsonFile {
	f.Desc = desc
	return f
}

func (f *JsonFile) ToFile() (*File, error) {
	content, err := json.EncodeString(f.Content, true)
	if err != nil {
		fileDesc := strings.TrimSpace(f.Desc + " file")
		return nil, errors.PrefixErrorf(err, `cannot encode %s "%s"`, fileDesc, f.Path)
	}

	file := CreateFile(f.Path, content)
	file.Desc = f.Desc
	return file, nil
}
