package options

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

const envPrefix = "canvas_"

// envNamingConvention maps a flag name to an ENV variable name,
// for example "base-url" -> "canvas_base_url".
type envNamingConvention struct{}

func (*envNamingConvention) Replace(flagName string) string {
	if len(flagName) == 0 {
		panic(errors.New("flag name cannot be empty"))
	}

	return envPrefix + strings.ToLower(strings.ReplaceAll(flagName, "-", "_"))
}

// loadDotEnv loads ENV variables from the ".env" and ".env.yml" files in the dir, if any exists.
// The existing ENV variables are not overwritten, so the files have the lowest priority.
func loadDotEnv(dir string) error {
	if len(dir) == 0 {
		return nil
	}

	path := filepath.Join(dir, ".env")
	if fileExists(path) {
		if err := godotenv.Load(path); err != nil {
			return errors.Errorf(`cannot load file "%s": %s`, path, err)
		}
	}

	path = filepath.Join(dir, ".env.yml")
	if fileExists(path) {
		if err := loadYamlEnv(path); err != nil {
			return errors.Errorf(`cannot load file "%s": %s`, path, err)
		}
	}

	return nil
}

// loadYamlEnv loads ENV variables from a YAML file, keys are variable names.
func loadYamlEnv(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	values := make(map[string]string)
	if err := yaml.Unmarshal(content, &values); err != nil {
		return err
	}

	for key, value := range values {
		if _, found := os.LookupEnv(key); !found {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}

	return nil
}

func fileExists(path string) bool {
	stat, err := os.Stat(path)
	return err == nil && !stat.IsDir()
}
