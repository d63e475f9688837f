package schedule

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/orderedmap"
)

// Pandoc formats of the rendered course index, link_attributes keeps
// the Lua filter classes on the generated anchors.
const (
	SrcFormat = "markdown+link_attributes"
	OutFormat = "html5"
)

// Render executes the header's template with the header, the sections and
// the until date. Filtering of sections after "until" is up to the template.
func Render(header *Header, sections []*Section, until time.Time) (string, error) {
	if header.Template == "" {
		return "", errors.New("schedule header has no template")
	}
	if until.IsZero() {
		until = header.LastSection
	}

	tmpl, err := template.New("schedule").Parse(header.Template)
	if err != nil {
		return "", errors.PrefixError(err, "cannot parse schedule template")
	}

	var buffer bytes.Buffer
	writer := bufio.NewWriter(&buffer)
	err = tmpl.Execute(writer, map[string]any{
		"Header":   header,
		"Sections": sections,
		"Until":    until,
	})
	if err != nil {
		return "", errors.PrefixError(err, "cannot render schedule template")
	}
	if err := writer.Flush(); err != nil {
		return "", err
	}
	return buffer.String(), nil
}

// MetaBlock prepends the coursedata metadata block to a markdown document
// without a preamble. The block carries the course base url and the url
// state, the href.lua filter reads it to resolve course links.
func MetaBlock(webUrl string, courseId int, state *orderedmap.OrderedMap, text string) (string, error) {
	coursedata := map[string]any{
		"base_url": fmt.Sprintf("%s/courses/%d/", webUrl, courseId),
	}
	for key, value := range state.ToMap() {
		coursedata[key] = value
	}
	meta, err := yaml.Marshal(map[string]any{"coursedata": coursedata})
	if err != nil {
		return "", errors.PrefixError(err, "cannot encode coursedata block")
	}
	return strings.Join([]string{"", string(meta), text}, "---\n"), nil
}
