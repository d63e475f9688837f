package state

import (
	"fmt"

	"github.com/canvastools/canvas-as-code/internal/pkg/json"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/model"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/orderedmap"
)

// UrlMap builds the content of the "files" state field.
//
// Each file is keyed by its path without the root folder prefix and maps to
// the course id, the file id, the download url and the preview url.
// Quizzes are merged into the same map under a "quiz/" prefix, so course
// pages can link them the same way as files.
func UrlMap(logger log.Logger, webUrl string, courseId int, files []*model.File, folders []*model.Folder, quizzes []*model.Quiz) (*orderedmap.OrderedMap, error) {
	foldersById := make(map[int]*model.Folder)
	for _, folder := range folders {
		foldersById[folder.Id] = folder
	}

	out := orderedmap.New()
	for _, file := range files {
		folder, found := foldersById[file.FolderId]
		if !found {
			return nil, errors.Errorf(`folder "%d" of the file "%s" not found`, file.FolderId, file.DisplayName)
		}
		key := model.FileKey{FolderPath: folder.FullName, DisplayName: file.DisplayName}
		out.Set(key.String(), FileEntry(webUrl, courseId, file.Id))
	}

	for _, quiz := range quizzes {
		key := fmt.Sprintf("quiz/%s", quiz.Title)
		if old, found := out.Get(key); found {
			logger.Warnf(`%s is already present.`, key)
			logger.Warnf(`Overwriting %s with %s.`, json.MustEncodeString(old, false), quiz.HtmlUrl)
		}
		entry := orderedmap.New()
		entry.Set("url", quiz.HtmlUrl)
		out.Set(key, entry)
	}

	return out, nil
}

// FileEntry builds one "files" state entry.
func FileEntry(webUrl string, courseId, fileId int) *orderedmap.OrderedMap {
	entry := orderedmap.New()
	entry.Set("course_id", courseId)
	entry.Set("id", fileId)
	entry.Set("url", fmt.Sprintf("%s/courses/%d/files/%d/download", webUrl, courseId, fileId))
	entry.Set("preview_url", fmt.Sprintf("%s/courses/%d/files?preview=%d", webUrl, courseId, fileId))
	return entry
}

// AssignmentMap builds the content of the "assignments" state field,
// the key is "<group name>/<assignment name>".
func AssignmentMap(assignments []*model.Assignment, groupName func(groupId int) (string, error)) (*orderedmap.OrderedMap, error) {
	out := orderedmap.New()
	for _, assignment := range assignments {
		name, err := groupName(assignment.AssignmentGroupId)
		if err != nil {
			return nil, err
		}
		key := model.AssignmentKey{GroupName: name, Name: assignment.Name}
		out.Set(key.String(), assignment.Id)
	}
	return out, nil
}

// QuizMap builds the content of the "quizzes" state field, the key is the quiz title.
func QuizMap(quizzes []*model.Quiz) *orderedmap.OrderedMap {
	out := orderedmap.New()
	for _, quiz := range quizzes {
		key := model.QuizKey{Title: quiz.Title}
		out.Set(key.String(), quiz.Id)
	}
	return out
}
