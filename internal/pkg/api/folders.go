package api

import (
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/canvastools/canvas-as-code/internal/pkg/client"
	"github.com/canvastools/canvas-as-code/internal/pkg/model"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

// ListFolders returns all folders of the course.
func (a *CanvasApi) ListFolders(courseId int) ([]*model.Folder, error) {
	var folders []*model.Folder
	response := a.ListFoldersRequest(courseId, func(page []*model.Folder) {
		folders = append(folders, page...)
	}).Send().Response
	if response.HasError() {
		return nil, response.Err()
	}
	return folders, nil
}

// GetOrCreateFolder returns the folder at the path, a missing folder is created.
func (a *CanvasApi) GetOrCreateFolder(courseId int, folderPath string) (*model.Folder, error) {
	folder, err := a.ResolveFolderPath(courseId, folderPath)
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.IsNotFound() {
		parentPath, name := splitFolderPath(folderPath)
		return a.CreateFolder(courseId, name, parentPath)
	}
	return folder, err
}

// ResolveFolderPath returns the folder at the path, the path is relative to the course root.
func (a *CanvasApi) ResolveFolderPath(courseId int, folderPath string) (*model.Folder, error) {
	response := a.ResolveFolderPathRequest(courseId, folderPath).Send().Response
	if response.HasResult() {
		// The API returns all folders along the path, the last one is the target
		folders := *response.Result().(*[]*model.Folder)
		if len(folders) == 0 {
			return nil, errors.Errorf(`folder "%s" not found in course "%d"`, folderPath, courseId)
		}
		return folders[len(folders)-1], nil
	}
	return nil, response.Err()
}

func (a *CanvasApi) CreateFolder(courseId int, name, parentFolderPath string) (*model.Folder, error) {
	response := a.CreateFolderRequest(courseId, name, parentFolderPath).Send().Response
	if response.HasResult() {
		return response.Result().(*model.Folder), nil
	}
	return nil, response.Err()
}

// ListFoldersRequest https://canvas.instructure.com/doc/api/files.html#method.folders.list_all_folders
func (a *CanvasApi) ListFoldersRequest(courseId int, onPage func(page []*model.Folder)) *client.Request {
	request := a.
		NewRequest(resty.MethodGet, "courses/{courseId}/folders").
		SetPathParam("courseId", strconv.Itoa(courseId)).
		SetQueryParam("per_page", strconv.Itoa(PerPage))
	return onEachPage(a, request, onPage)
}

// ResolveFolderPathRequest https://canvas.instructure.com/doc/api/files.html#method.folders.resolve_path
func (a *CanvasApi) ResolveFolderPathRequest(courseId int, folderPath string) *client.Request {
	return a.
		NewRequest(resty.MethodGet, "courses/{courseId}/folders/by_path/{fullPath}").
		SetPathParam("courseId", strconv.Itoa(courseId)).
		SetRawPathParam("fullPath", escapeFolderPath(folderPath)).
		SetResult(&[]*model.Folder{})
}

// CreateFolderRequest https://canvas.instructure.com/doc/api/files.html#method.folders.create
func (a *CanvasApi) CreateFolderRequest(courseId int, name, parentFolderPath string) *client.Request {
	return a.
		NewRequest(resty.MethodPost, "courses/{courseId}/folders").
		SetPathParam("courseId", strconv.Itoa(courseId)).
		SetFormBody(map[string]string{
			"name":               name,
			"parent_folder_path": parentFolderPath,
		}).
		SetResult(&model.Folder{})
}

// splitFolderPath to the parent path and the folder name.
func splitFolderPath(folderPath string) (parentPath string, name string) {
	parentPath, name = path.Split(strings.Trim(folderPath, "/"))
	return strings.TrimSuffix(parentPath, "/"), name
}

// escapeFolderPath escapes the path segments, the separators are kept.
func escapeFolderPath(folderPath string) string {
	segments := strings.Split(strings.Trim(folderPath, "/"), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
