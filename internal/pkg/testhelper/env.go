// nolint forbidigo
package testhelper

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

type EnvProvider interface {
	MustGet(key string) string
}

func ReplaceEnvsString(str string, provider EnvProvider) string {
	return regexp.
		MustCompile(`%%[a-zA-Z0-9\-_]+%%`).
		ReplaceAllStringFunc(str, func(s string) string {
			return provider.MustGet(strings.Trim(s, `%`))
		})
}

func ReplaceEnvsFile(path string, provider EnvProvider) {
	str := GetFileContent(path)
	str = ReplaceEnvsString(str, provider)
	if err := os.WriteFile(path, []byte(str), 0o655); err != nil {
		panic(fmt.Errorf("cannot write to file \"%s\": %w", path, err))
	}
}

func ReplaceEnvsDir(root string, provider EnvProvider) {
	// Iterate over directory structure
	// nolint: forbidigo
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		// Stop on error
		if err != nil {
			return err
		}

		// Ignore hidden files, except .env*, .gitignore
		if IsIgnoredFile(path, info) {
			return nil
		}

		// Process file
		if !info.IsDir() {
			ReplaceEnvsFile(path, provider)
		}

		return nil
	})
	if err != nil {
		panic(fmt.Errorf("cannot walk over dir \"%s\": %w", root, err))
	}
}
