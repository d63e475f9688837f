package upload

import (
	"strings"

	"github.com/canvastools/canvas-as-code/internal/pkg/api"
	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/model"
	"github.com/canvastools/canvas-as-code/internal/pkg/project"
	"github.com/canvastools/canvas-as-code/internal/pkg/project/manifest"
	"github.com/canvastools/canvas-as-code/internal/pkg/state"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

type Options struct {
	Paths     []string // local files, bare names resolve against the naming defaults
	RemoteDir string   // target folder path, empty means the naming default
	Name      string   // upload a single file under a different name
}

type dependencies interface {
	Logger() log.Logger
	LocalProject() (*project.Project, error)
	CanvasApi() (*api.CanvasApi, error)
}

// Run uploads the files, resolving or creating the target folder chain.
// A duplicate name overwrites the remote file, Canvas keeps the file id.
func Run(o Options, d dependencies) error {
	logger := d.Logger()

	if len(o.Paths) == 0 {
		return errors.New("no file given")
	}
	if len(o.Name) > 0 && len(o.Paths) > 1 {
		return errors.New("the --name flag needs exactly one file")
	}

	prj, err := d.LocalProject()
	if err != nil {
		return err
	}

	canvasApi, err := d.CanvasApi()
	if err != nil {
		return err
	}

	naming := prj.Manifest().Naming
	remoteDir := o.RemoteDir
	if remoteDir == "" {
		remoteDir = naming.RemoteDir
	}

	folder, err := canvasApi.GetOrCreateFolder(prj.CourseId(), remoteDir)
	if err != nil {
		return err
	}

	projectState := prj.State()
	for _, path := range o.Paths {
		localPath := resolveLocalPath(naming, path)
		name := o.Name
		if name == "" {
			name = filesystem.Base(localPath)
		}

		if err := uploadOne(prj, canvasApi, projectState, folder, localPath, name); err != nil {
			return err
		}
		logger.Infof(`Uploaded "%s" to "%s".`, localPath, model.FileKey{FolderPath: folder.FullName, DisplayName: name})
	}

	return projectState.Save()
}

func uploadOne(prj *project.Project, canvasApi *api.CanvasApi, projectState *state.State, folder *model.Folder, localPath, name string) error {
	fs := prj.Fs()
	info, err := fs.Stat(localPath)
	if err != nil {
		return errors.Wrapf(err, `cannot read file "%s"`, localPath)
	}

	reader, err := fs.Open(localPath)
	if err != nil {
		return errors.Wrapf(err, `cannot read file "%s"`, localPath)
	}
	defer reader.Close()

	// The target name is set in the upload declaration,
	// the local file is streamed unchanged.
	file, err := canvasApi.UploadFile(folder.Id, name, reader, info.Size())
	if err != nil {
		return errors.PrefixErrorf(err, `cannot upload "%s"`, localPath)
	}

	key := model.FileKey{FolderPath: folder.FullName, DisplayName: name}
	return projectState.Set(key, state.FileEntry(canvasApi.WebUrl(), prj.CourseId(), file.Id))
}

// resolveLocalPath resolves a bare file name against the naming default dir.
func resolveLocalPath(naming *manifest.Naming, path string) string {
	if !strings.ContainsRune(path, '/') && !strings.ContainsRune(path, '\\') && naming.LocalDir != "" {
		return filesystem.Join(naming.LocalDir, path)
	}
	return path
}
