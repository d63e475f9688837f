package model

import (
	"fmt"
	"strings"
)

// RootFolderName is the implicit root of the course files tree.
const RootFolderName = "course files"

// Folder https://canvas.instructure.com/doc/api/files.html
type Folder struct {
	Id             int    `json:"id" validate:"required,min=1"`
	Name           string `json:"name"`
	FullName       string `json:"full_name"`
	ParentFolderId int    `json:"parent_folder_id,omitempty"`
	FilesCount     int    `json:"files_count"`
	FoldersCount   int    `json:"folders_count"`
}

// Path returns the folder path without the root folder prefix.
func (f *Folder) Path() string {
	path := strings.TrimPrefix(f.FullName, RootFolderName)
	return strings.TrimPrefix(path, "/")
}

// File https://canvas.instructure.com/doc/api/files.html
type File struct {
	Id          int    `json:"id" validate:"required,min=1"`
	FolderId    int    `json:"folder_id"`
	DisplayName string `json:"display_name"`
	Filename    string `json:"filename"`
	ContentType string `json:"content-type,omitempty"`
	Url         string `json:"url,omitempty"`
	Size        int64  `json:"size,omitempty"`
}

// UploadTarget is the first step of the file upload.
// https://canvas.instructure.com/doc/api/file.file_uploads.html
type UploadTarget struct {
	UploadUrl    string            `json:"upload_url" validate:"required"`
	UploadParams map[string]string `json:"upload_params"`
}

// FileKey is the key of a file in the project state, for example "problems/week1.pdf".
type FileKey struct {
	FolderPath  string
	DisplayName string
}

func (k FileKey) Field() string {
	return FilesField
}

func (k FileKey) String() string {
	folder := strings.TrimPrefix(k.FolderPath, RootFolderName)
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return k.DisplayName
	}
	return fmt.Sprintf("%s/%s", folder, k.DisplayName)
}
