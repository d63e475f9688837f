package api

import (
	"io"
	"strconv"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"

	"github.com/canvastools/canvas-as-code/internal/pkg/client"
	"github.com/canvastools/canvas-as-code/internal/pkg/model"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

// uploadFileField must be the last field of the multipart form.
const uploadFileField = "file"

// uploadConfirmMaxRetries limits polling of the upload confirmation URL.
const uploadConfirmMaxRetries = 5

// uploadResult is the response of the upload and confirmation steps,
// it contains either the file itself or the URL of the confirmation step.
type uploadResult struct {
	model.File
	Location string `json:"location,omitempty"`
}

// ListFiles returns all files of the course.
func (a *CanvasApi) ListFiles(courseId int) ([]*model.File, error) {
	var files []*model.File
	response := a.ListFilesRequest(courseId, func(page []*model.File) {
		files = append(files, page...)
	}).Send().Response
	if response.HasError() {
		return nil, response.Err()
	}
	return files, nil
}

// ListFolderFiles returns all files in the folder.
func (a *CanvasApi) ListFolderFiles(folderId int) ([]*model.File, error) {
	var files []*model.File
	response := a.ListFolderFilesRequest(folderId, func(page []*model.File) {
		files = append(files, page...)
	}).Send().Response
	if response.HasError() {
		return nil, response.Err()
	}
	return files, nil
}

// UploadFile stores the content as a file in the folder, in three steps:
// the upload is declared first, then the content goes to the pre-signed URL
// without the bearer token, and finally the upload is confirmed until Canvas
// finishes processing the file. A file with the same name is overwritten.
// https://canvas.instructure.com/doc/api/file.file_uploads.html
func (a *CanvasApi) UploadFile(folderId int, name string, reader io.Reader, size int64) (*model.File, error) {
	// Step 1: declare the upload
	target, err := a.DeclareUpload(folderId, name, size)
	if err != nil {
		return nil, err
	}

	// Step 2: send the content, the file field must be the last one
	result := &uploadResult{}
	response := a.uploadClient.
		NewRequest(resty.MethodPost, target.UploadUrl).
		SetMultipartFormData(target.UploadParams).
		SetFileReader(uploadFileField, name, reader).
		SetResult(result).
		Send().Response
	if response.HasError() {
		return nil, errors.PrefixErrorf(response.Err(), `cannot upload the file "%s"`, name)
	}

	// Step 3: confirm the upload, the file can be processed asynchronously
	file, err := a.confirmUpload(result)
	if err != nil {
		return nil, errors.PrefixErrorf(err, `cannot confirm upload of the file "%s"`, name)
	}
	return file, nil
}

func (a *CanvasApi) DeclareUpload(folderId int, name string, size int64) (*model.UploadTarget, error) {
	response := a.DeclareUploadRequest(folderId, name, size).Send().Response
	if response.HasResult() {
		return response.Result().(*model.UploadTarget), nil
	}
	return nil, response.Err()
}

// ListFilesRequest https://canvas.instructure.com/doc/api/files.html#method.files.api_index
func (a *CanvasApi) ListFilesRequest(courseId int, onPage func(page []*model.File)) *client.Request {
	request := a.
		NewRequest(resty.MethodGet, "courses/{courseId}/files").
		SetPathParam("courseId", strconv.Itoa(courseId)).
		SetQueryParam("per_page", strconv.Itoa(PerPage))
	return onEachPage(a, request, onPage)
}

// ListFolderFilesRequest https://canvas.instructure.com/doc/api/files.html#method.files.api_index
func (a *CanvasApi) ListFolderFilesRequest(folderId int, onPage func(page []*model.File)) *client.Request {
	request := a.
		NewRequest(resty.MethodGet, "folders/{folderId}/files").
		SetPathParam("folderId", strconv.Itoa(folderId)).
		SetQueryParam("per_page", strconv.Itoa(PerPage))
	return onEachPage(a, request, onPage)
}

// DeclareUploadRequest https://canvas.instructure.com/doc/api/files.html#method.folders.create_file
func (a *CanvasApi) DeclareUploadRequest(folderId int, name string, size int64) *client.Request {
	return a.
		NewRequest(resty.MethodPost, "folders/{folderId}/files").
		SetPathParam("folderId", strconv.Itoa(folderId)).
		SetFormBody(map[string]string{
			"name":         name,
			"size":         strconv.FormatInt(size, 10),
			"on_duplicate": "overwrite",
		}).
		SetResult(&model.UploadTarget{})
}

// confirmUpload returns the file from the upload response,
// or polls the confirmation URL until the file is ready.
func (a *CanvasApi) confirmUpload(result *uploadResult) (*model.File, error) {
	if result.Id > 0 {
		return &result.File, nil
	}
	if len(result.Location) == 0 {
		return nil, errors.New("upload response contains no file id and no confirmation URL")
	}

	confirmUrl := result.Location
	file := &model.File{}
	retry := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uploadConfirmMaxRetries)
	err := backoff.Retry(func() error {
		confirmed := &uploadResult{}
		response := a.
			NewRequest(resty.MethodPost, confirmUrl).
			SetResult(confirmed).
			Send().Response
		if response.HasError() {
			return response.Err()
		}
		if confirmed.Id == 0 {
			// The file is still processing, a new confirmation URL can be returned
			if len(confirmed.Location) > 0 {
				confirmUrl = confirmed.Location
			}
			return errors.New("the uploaded file is not ready")
		}
		*file = confirmed.File
		return nil
	}, retry)
	if err != nil {
		return nil, err
	}
	return file, nil
}
