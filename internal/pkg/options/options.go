package options

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

// Options contains parsed flags and ENV variables.
type Options struct {
	Verbose          bool   `flag:"verbose"`      // verbose mode, print details to console
	VerboseApi       bool   `flag:"verbose-api"`  // log each API request and response
	LogFilePath      string `flag:"log-file"`     // path to the log file
	ApiHost          string `flag:"base-url"`     // Canvas host, eg. "canvas.example.com"
	ApiToken         string `flag:"access-token"` // Canvas API access token
	workingDirectory string // working directory
	projectDirectory string // project directory with the ".canvas" metadata dir
}

func NewOptions() *Options {
	return &Options{}
}

// BindPersistentFlags for all commands.
func (o *Options) BindPersistentFlags(flags *pflag.FlagSet) {
	flags.SortFlags = true
	flags.BoolP("help", "h", false, "print help for command")
	flags.StringP("log-file", "l", "", "path to a log file for details")
	flags.StringP("working-dir", "d", "", "use other working directory")
	flags.StringP("base-url", "u", "", "Canvas base URL, eg. \"https://canvas.example.com\"")
	flags.StringP("access-token", "t", "", "Canvas API access token")
	flags.BoolP("verbose", "v", false, "print details")
	flags.Bool("verbose-api", false, "log each API request and response")
}

func (o *Options) WorkingDirectory() string {
	return o.workingDirectory
}

func (o *Options) ProjectDir() string {
	if !o.HasProjectDirectory() {
		panic(errors.New("project directory not found"))
	}
	return o.projectDirectory
}

func (o *Options) HasProjectDirectory() bool {
	return len(o.projectDirectory) > 0
}

// Validate required options - defined by field name.
func (o *Options) Validate(required []string) string {
	var messages []string
	envNaming := &envNamingConvention{}
	reflection := reflect.Indirect(reflect.ValueOf(o))
	types := reflect.TypeOf(*o)

	// Iterate over required fields
	for _, fieldName := range required {
		fieldType, exists := types.FieldByName(fieldName)
		fieldNameHumanReadable := strcase.ToDelimited(fieldName, ' ')
		if !exists {
			panic(errors.Errorf(`field "%s" doesn't exist in Options struct`, fieldName))
		}

		flag := fieldType.Tag.Get("flag")
		if reflection.FieldByName(fieldName).Len() > 0 {
			continue
		}

		// Create error message by field type
		if fieldName == "projectDirectory" {
			messages = append(
				messages,
				`- None of this and parent directories is project dir.`,
				`  Project directory must contain the ".canvas" metadata directory.`,
				`  Please change working directory to a project directory or use the "init" command.`,
			)
		} else if len(flag) > 0 {
			messages = append(messages, errors.Errorf(
				`- Missing %s. Please use "--%s" flag or ENV variable "%s".`,
				fieldNameHumanReadable,
				flag,
				envNaming.Replace(flag),
			).Error())
		} else {
			messages = append(messages, errors.Errorf(`- Missing %s.`, fieldNameHumanReadable).Error())
		}
	}

	return strings.Join(messages, "\n")
}

// Load all sources of Options - flags, envs and ".env" files.
func (o *Options) Load(flags *pflag.FlagSet) (warnings []string, err error) {
	// Env parser
	envNaming := &envNamingConvention{}
	parser := viper.NewWithOptions(viper.EnvKeyReplacer(envNaming))

	// Bind flags
	if err = parser.BindPFlags(flags); err != nil {
		return
	}

	// Bind ENV variables
	parser.AutomaticEnv()

	// Set working directory + load .env file if present
	o.workingDirectory, err = getWorkingDirectory(parser)
	o.workingDirectory = strings.TrimRight(o.workingDirectory, string(os.PathSeparator))
	if err != nil {
		return
	}
	if err = loadDotEnv(o.workingDirectory); err != nil {
		return
	}

	// Set project directory + load .env file if present
	var projectDirWarnings []string
	o.projectDirectory, projectDirWarnings = getProjectDirectory(o.workingDirectory)
	o.projectDirectory = strings.TrimRight(o.projectDirectory, string(os.PathSeparator))
	warnings = append(warnings, projectDirWarnings...)
	if err = loadDotEnv(o.projectDirectory); err != nil {
		return
	}

	// For each Options struct field with "flag" tag -> load value from parser
	reflection := reflect.Indirect(reflect.ValueOf(o))
	types := reflect.TypeOf(*o)
	for i := 0; i < reflection.NumField(); i++ {
		if flag := types.Field(i).Tag.Get("flag"); len(flag) > 0 {
			if value := parser.Get(flag); value != nil {
				field := reflection.Field(i)
				// The value from an ENV variable is always a string
				switch field.Kind() {
				case reflect.Bool:
					field.SetBool(cast.ToBool(value))
				default:
					field.SetString(cast.ToString(value))
				}
			}
		}
	}

	// Normalize the values into a uniform form
	o.normalize()

	return
}

func (o *Options) normalize() {
	o.ApiHost = strings.TrimRight(o.ApiHost, "/")
	o.ApiHost = strings.TrimPrefix(o.ApiHost, "https://")
	o.ApiToken = strings.TrimSpace(o.ApiToken)
}

// Dump Options for debugging, hide the API token.
func (o *Options) Dump() string {
	data, err := json.Marshal(o)
	if err != nil {
		panic(err)
	}

	re := regexp.MustCompile(`("ApiToken":"[^"]{1,7})[^"]*(")`)
	str := re.ReplaceAllString(string(data), `$1*****$2`)
	return "Parsed options: " + str
}

// getWorkingDirectory from the flag or by default from OS.
func getWorkingDirectory(parser *viper.Viper) (string, error) {
	value := parser.GetString("working-dir")
	if len(value) > 0 {
		return value, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", errors.Errorf("cannot get current working directory: %s", err)
	}
	return dir, nil
}

// getProjectDirectory finds the project directory -> working dir or its parent that contains the ".canvas" metadata dir.
func getProjectDirectory(workingDir string) (projectDir string, warnings []string) {
	sep := string(os.PathSeparator)
	projectDir = workingDir

	for {
		metadataDir := filepath.Join(projectDir, ".canvas")
		if stat, err := os.Stat(metadataDir); err == nil {
			if stat.IsDir() {
				return projectDir, warnings
			} else {
				warnings = append(warnings, errors.Errorf("Expected dir, but found file at \"%s\"", metadataDir).Error())
			}
		} else if !os.IsNotExist(err) {
			warnings = append(warnings, errors.Errorf("Cannot check if path \"%s\" exists: %s", metadataDir, err).Error())
		}

		// Check parent directory
		projectDir = filepath.Dir(projectDir)

		// Is root dir? -> ends with separator, or has no separator -> break
		if strings.HasSuffix(projectDir, sep) || strings.Count(projectDir, sep) == 0 {
			break
		}
	}

	return "", warnings
}
