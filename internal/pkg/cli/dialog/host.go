package dialog

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/canvastools/canvas-as-code/internal/pkg/cli/prompt"
	"github.com/canvastools/canvas-as-code/internal/pkg/options"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

// AskApiHost when it is not set by a flag or an ENV variable.
func (p *Dialogs) AskApiHost(o *options.Options) (string, error) {
	host := o.ApiHost
	if len(host) == 0 {
		host, _ = p.Ask(&prompt.Question{
			Label:       "API host",
			Description: `Please enter the Canvas host, eg. "canvas.example.com".`,
			Validator:   ApiHostValidator,
		})
	}

	host = strings.TrimRight(host, "/")
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	if len(host) == 0 {
		return "", errors.New("missing Canvas host")
	}

	o.ApiHost = host
	return host, nil
}

// AskApiToken when it is not set by a flag or an ENV variable.
func (p *Dialogs) AskApiToken(o *options.Options) (string, error) {
	token := o.ApiToken
	if len(token) == 0 {
		token, _ = p.Ask(&prompt.Question{
			Label:       "API token",
			Description: "Please enter the Canvas API access token of your account.",
			Hidden:      true,
			Validator:   prompt.ValueRequired,
		})
	}

	token = strings.TrimSpace(token)
	if len(token) == 0 {
		return "", errors.New("missing Canvas API token")
	}

	o.ApiToken = token
	return token, nil
}

// AskCourseId returns the Canvas course id.
func (p *Dialogs) AskCourseId(defaultValue int) (int, error) {
	def := ""
	if defaultValue > 0 {
		def = strconv.Itoa(defaultValue)
	}

	value, _ := p.Ask(&prompt.Question{
		Label:       "Course id",
		Description: "Please enter the id of the Canvas course, it is the number in the course url.",
		Default:     def,
		Validator:   CourseIdValidator,
	})

	id, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || id <= 0 {
		return 0, errors.Errorf(`"%s" is not a valid course id`, value)
	}
	return id, nil
}

func ApiHostValidator(val any) error {
	str := strings.TrimSpace(val.(string))
	if len(str) == 0 {
		return errors.New("value is required")
	} else if _, err := url.Parse(str); err != nil {
		return errors.New("invalid host")
	}
	return nil
}

func CourseIdValidator(val any) error {
	str := strings.TrimSpace(val.(string))
	if len(str) == 0 {
		return errors.New("value is required")
	}
	if id, err := strconv.Atoi(str); err != nil || id <= 0 {
		return errors.New("course id must be a positive number")
	}
	return nil
}
