package aferofs

import (
	"os"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"github.com/umisama/go-regexpcache"
	"gopkg.in/yaml.v3"

	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem/aferofs/abstract"
	"github.com/canvastools/canvas-as-code/internal/pkg/json"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

// Fs implements filesystem.Fs on top of an afero backend.
type Fs struct {
	backend    abstract.Backend
	utils      *afero.Afero
	logger     log.Logger
	workingDir string
}

func New(logger log.Logger, backend abstract.Backend, workingDir string) *Fs {
	return &Fs{
		backend:    backend,
		utils:      &afero.Afero{Fs: backend},
		logger:     logger,
		workingDir: backend.ToSlash(workingDir),
	}
}

// Backend returns the underlying afero backend.
func (f *Fs) Backend() abstract.Backend {
	return f.backend
}

func (f *Fs) Name() string {
	return f.backend.Name()
}

func (f *Fs) BasePath() string {
	return f.backend.BasePath()
}

func (f *Fs) WorkingDir() string {
	return f.workingDir
}

func (f *Fs) Walk(root string, walkFn filesystem.WalkFunc) error {
	return f.backend.Walk(root, walkFn)
}

func (f *Fs) Glob(pattern string) (matches []string, err error) {
	return afero.Glob(f.backend, pattern)
}

func (f *Fs) Stat(path string) (os.FileInfo, error) {
	return f.backend.Stat(path)
}

func (f *Fs) ReadDir(path string) ([]os.FileInfo, error) {
	return f.backend.ReadDir(path)
}

func (f *Fs) Mkdir(path string) error {
	if err := f.utils.MkdirAll(path, 0o755); err != nil {
		return errors.Errorf(`cannot create directory "%s": %w`, path, err)
	}
	return nil
}

func (f *Fs) Exists(path string) bool {
	if _, err := f.backend.Stat(path); err == nil {
		return true
	}
	return false
}

func (f *Fs) IsFile(path string) bool {
	if stat, err := f.backend.Stat(path); err == nil {
		return !stat.IsDir()
	}
	return false
}

func (f *Fs) IsDir(path string) bool {
	if stat, err := f.backend.Stat(path); err == nil {
		return stat.IsDir()
	}
	return false
}

func (f *Fs) Create(name string) (afero.File, error) {
	return f.backend.Create(name)
}

func (f *Fs) Open(name string) (afero.File, error) {
	return f.backend.Open(name)
}

func (f *Fs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	return f.backend.OpenFile(name, flag, perm)
}

func (f *Fs) Copy(src, dst string) error {
	if f.Exists(dst) {
		return errors.Errorf(`cannot copy "%s" -> "%s": destination exists`, src, dst)
	}
	return f.CopyForce(src, dst)
}

func (f *Fs) CopyForce(src, dst string) error {
	file, err := f.ReadFile(src, "")
	if err != nil {
		return err
	}
	if err := f.Remove(dst); err != nil && !os.IsNotExist(err) {
		return err
	}
	return f.WriteFile(filesystem.CreateFile(dst, file.Content))
}

func (f *Fs) Move(src, dst string) error {
	if f.Exists(dst) {
		return errors.Errorf(`cannot move "%s" -> "%s": destination exists`, src, dst)
	}
	return f.MoveForce(src, dst)
}

func (f *Fs) MoveForce(src, dst string) error {
	if err := f.Remove(dst); err != nil && !os.IsNotExist(err) {
		return err
	}
	return f.backend.Rename(src, dst)
}

func (f *Fs) Remove(path string) error {
	return f.utils.RemoveAll(path)
}

func (f *Fs) ReadFile(path, desc string) (*filesystem.File, error) {
	content, err := f.utils.ReadFile(path)
	if err != nil {
		fileDesc := strings.TrimSpace(desc + " file")
		if os.IsNotExist(err) {
			return nil, errors.Errorf(`missing %s "%s"`, fileDesc, path)
		}
		return nil, errors.Errorf(`cannot read %s "%s": %w`, fileDesc, path, err)
	}

	f.logger.Debugf(`Loaded "%s"`, path)
	file := filesystem.CreateFile(path, string(content))
	file.Desc = desc
	return file, nil
}

func (f *Fs) ReadJsonFile(path, desc string) (*filesystem.JsonFile, error) {
	file, err := f.ReadFile(path, desc)
	if err != nil {
		return nil, err
	}
	return file.ToJsonFile()
}

func (f *Fs) ReadJsonFileTo(path, desc string, target any) error {
	file, err := f.ReadFile(path, desc)
	if err != nil {
		return err
	}

	if err := json.DecodeString(file.Content, target); err != nil {
		fileDesc := strings.TrimSpace(desc + " file")
		return errors.PrefixErrorf(err, `%s "%s" is invalid`, fileDesc, path)
	}
	return nil
}

func (f *Fs) ReadYamlFileTo(path, desc string, target any) error {
	file, err := f.ReadFile(path, desc)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal([]byte(file.Content), target); err != nil {
		fileDesc := strings.TrimSpace(desc + " file")
		return errors.PrefixErrorf(err, `%s "%s" is invalid`, fileDesc, path)
	}
	return nil
}

func (f *Fs) WriteFile(file *filesystem.File) error {
	// Create dir
	dir := filesystem.Dir(file.Path)
	if !f.IsDir(dir) {
		if err := f.Mkdir(dir); err != nil {
			return err
		}
	}

	fileDesc := strings.TrimSpace(file.Desc + " file")
	if err := f.backend.WriteFile(file.Path, []byte(file.Content), 0o644); err != nil {
		return errors.Errorf(`cannot write %s "%s": %w`, fileDesc, file.Path, err)
	}

	f.logger.Debugf(`Saved "%s"`, file.Path)
	return nil
}

func (f *Fs) WriteJsonFile(file *filesystem.JsonFile) error {
	rawFile, err := file.ToFile()
	if err != nil {
		return err
	}
	return f.WriteFile(rawFile)
}

// CreateOrUpdateFile makes sure that the file exists and contains the expected lines.
func (f *Fs) CreateOrUpdateFile(path, desc string, lines []filesystem.FileLine) (updated bool, err error) {
	// Load the file if it exists
	updated = f.IsFile(path)
	content := ""
	if updated {
		file, err := f.ReadFile(path, desc)
		if err != nil {
			return false, err
		}
		content = file.Content
	}

	// Process expected lines
	for _, line := range lines {
		newLine := strings.TrimSuffix(line.Line, "\n")
		var pattern string
		if line.Regexp == "" {
			pattern = `(?m)^` + regexp.QuoteMeta(newLine) + `$`
		} else {
			pattern = `(?m)` + line.Regexp
		}

		re := regexpcache.MustCompile(pattern)
		if re.MatchString(content) {
			content = re.ReplaceAllString(content, newLine)
		} else {
			if len(content) > 0 && !strings.HasSuffix(content, "\n") {
				content += "\n"
			}
			content += newLine + "\n"
		}
	}

	file := filesystem.CreateFile(path, content)
	file.Desc = desc
	return updated, f.WriteFile(file)
}
