package env

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

// LoadDotEnv loads envs from ".env" files if they exist. Existing envs take precedence.
func LoadDotEnv(logger log.Logger, osEnvs *Map, fs filesystem.Fs, dirs []string) *Map {
	envs := FromMap(osEnvs.ToMap()) // copy

	for _, dir := range dirs {
		for _, file := range append(Files(), YamlFiles()...) {
			// Check if exists
			path := filesystem.Join(dir, file)
			info, err := fs.Stat(path)
			switch {
			case err == nil && info.IsDir():
				// Expected file found dir
				continue
			case err != nil && os.IsNotExist(err):
				// File doesn't exist
				continue
			case err != nil && !os.IsNotExist(err):
				logger.Warnf(`Cannot check if path "%s" exists: %s`, path, err)
				continue
			}

			fileEnvs, err := LoadEnvFile(fs, path)
			if err != nil {
				logger.Warnf(`%s`, err.Error())
				continue
			}
			logger.Infof(`Loaded env file "%s"`, path)

			// Merge ENVs, existing keys take precedence.
			envs.Merge(fileEnvs, false)
		}
	}

	return envs
}

// LoadEnvFile loads envs from the file, the format is detected from the extension.
func LoadEnvFile(fs filesystem.Fs, path string) (*Map, error) {
	file, err := fs.ReadFile(path, "env")
	if err != nil {
		return nil, err
	}

	var envs *Map
	if strings.HasSuffix(path, ".yml") || strings.HasSuffix(path, ".yaml") {
		envs, err = LoadYamlEnvString(file.Content)
	} else {
		envs, err = LoadEnvString(file.Content)
	}
	if err != nil {
		return nil, errors.Errorf(`cannot parse env file "%s": %w`, path, err)
	}

	return envs, nil
}

func LoadEnvString(str string) (*Map, error) {
	envsMap, err := godotenv.Unmarshal(str)
	if err != nil {
		return nil, err
	}

	// A line without "=" is parsed to an empty key instead of an error
	for key, value := range envsMap {
		if key == "" {
			return nil, errors.Errorf(`"%s" is not a valid KEY=VALUE pair`, value)
		}
	}

	return FromMap(envsMap), nil
}

// LoadYamlEnvString parses envs from a YAML mapping, for example "canvas_access_token: secret".
func LoadYamlEnvString(str string) (*Map, error) {
	envsMap := make(map[string]string)
	if err := yaml.Unmarshal([]byte(str), &envsMap); err != nil {
		return nil, err
	}

	return FromMap(envsMap), nil
}

// YamlFiles lists legacy YAML env files, they have the lowest priority.
func YamlFiles() []string {
	return []string{".env.yml", ".env.yaml"}
}
