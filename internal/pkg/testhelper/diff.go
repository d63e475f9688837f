//nolint:forbidigo
package testhelper

import (
	"fmt"
	"strings"

	"github.com/stretchr/testify/assert"

	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

// fileNode is one file/dir in expected or actual directory.
type fileNode struct {
	isDir   bool
	absPath string
}

// fileNodeState in expected and actual directory.
type fileNodeState struct {
	relPath  string
	expected *fileNode
	actual   *fileNode
}

// DirectoryContentsSame compares two directories, in expected file content can be used wildcards.
func DirectoryContentsSame(expectedFs filesystem.Fs, expectedDir string, actualFs filesystem.Fs, actualDir string) error {
	nodesState := compareDirectories(expectedFs, expectedDir, actualFs, actualDir)
	var errs []string
	for _, node := range nodesState {
		// Check if present in both dirs (actual/expected) and if has same type (file/dir)
		switch {
		case node.actual == nil:
			errs = append(errs, fmt.Sprintf("only in expected \"%s\"", node.expected.absPath))
		case node.expected == nil:
			errs = append(errs, fmt.Sprintf("only in actual \"%s\"", node.actual.absPath))
		case node.actual.isDir != node.expected.isDir:
			if node.actual.isDir {
				errs = append(errs, fmt.Sprintf("\"%s\" is dir in actual, but file in expected", node.relPath))
			} else {
				errs = append(errs, fmt.Sprintf("\"%s\" is file in actual, but dir in expected", node.relPath))
			}
		default:
			// Compare content
			if !node.actual.isDir {
				expectedFile, err := expectedFs.ReadFile(node.expected.absPath, "expected")
				if err != nil {
					return err
				}
				actualFile, err := actualFs.ReadFile(node.actual.absPath, "actual")
				if err != nil {
					return err
				}

				if err := WildcardsCompare(expectedFile.Content, actualFile.Content); err != nil {
					return errors.Errorf("Different content of the file \"%s\". %s", node.relPath, err.Error())
				}
			}
		}
	}

	if len(errs) > 0 {
		return errors.New("Directories are not same:\n" + strings.Join(errs, "\n"))
	}
	return nil
}

// AssertDirectoryContentsSame compares two directories, in expected file content can be used wildcards.
func AssertDirectoryContentsSame(t assert.TestingT, expectedFs filesystem.Fs, expectedDir string, actualFs filesystem.Fs, actualDir string) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	err := DirectoryContentsSame(expectedFs, expectedDir, actualFs, actualDir)
	if err != nil {
		t.Errorf("%s", err.Error())
	}
}

func compareDirectories(expectedFs filesystem.Fs, expectedDir string, actualFs filesystem.Fs, actualDir string) map[string]*fileNodeState {
	// The filesystems address paths relative to their root,
	// the memory backend cannot walk an absolute "/"
	if expectedDir == `/` || expectedDir == `` {
		expectedDir = `.`
	}
	if actualDir == `/` || actualDir == `` {
		actualDir = `.`
	}

	// relative path -> state
	hashMap := map[string]*fileNodeState{}
	var err error

	// Process actual dir
	err = actualFs.Walk(actualDir, func(path string, info filesystem.FileInfo, err error) error {
		// Stop on error
		if err != nil {
			return err
		}

		// Ignore root
		if path == actualDir {
			return nil
		}

		// Ignore hidden files, except .env*, .gitignore
		if IsIgnoredFile(path, info) {
			return nil
		}

		// Create node
		relPath := filesystem.Rel(actualDir, path)
		hashMap[relPath] = &fileNodeState{
			relPath: relPath,
			actual:  &fileNode{info.IsDir(), path},
		}

		return nil
	})
	if err != nil {
		panic(errors.Errorf(`cannot iterate over directory "%s" in "%s": %w`, actualDir, actualFs.BasePath(), err))
	}

	// Process expected dir
	err = expectedFs.Walk(expectedDir, func(path string, info filesystem.FileInfo, err error) error {
		// Stop on error
		if err != nil {
			return err
		}

		// Ignore root
		if path == expectedDir {
			return nil
		}

		// Ignore hidden files, except .env*, .gitignore
		if IsIgnoredFile(path, info) {
			return nil
		}

		// Create node if not exists
		relPath := filesystem.Rel(expectedDir, path)
		if _, ok := hashMap[relPath]; !ok {
			hashMap[relPath] = &fileNodeState{}
		}
		hashMap[relPath].relPath = relPath
		hashMap[relPath].expected = &fileNode{info.IsDir(), path}

		return nil
	})
	if err != nil {
		panic(errors.Errorf(`cannot iterate over directory "%s" in "%s": %w`, expectedDir, expectedFs.BasePath(), err))
	}

	return hashMap
}
