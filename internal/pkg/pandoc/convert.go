package pandoc

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/google/shlex"

	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

// Default formats, used when the caller passes an empty string.
const (
	DefaultSrcFormat = "markdown"
	DefaultOutFormat = "html"
)

// listSeparator joins texts of a batch conversion into one document.
// Pandoc renders it as a separate paragraph, the output is split there.
const listSeparator = "0123456789abcdefghijklmnopqrstuvwxyz"

// Converter runs the pandoc binary on texts, stdin to stdout.
type Converter struct {
	logger  log.Logger
	binary  *Binary
	workDir string
	filters []string
	extra   []string
	macros  *MacroExpander
}

// NewConverter creates a converter running in workDir, the Lua filters
// and the url dictionary are resolved relative to it.
// The options string comes from the manifest and is split shell-style.
func NewConverter(logger log.Logger, binary *Binary, workDir string, filters []string, options string) (*Converter, error) {
	extra, err := shlex.Split(options)
	if err != nil {
		return nil, errors.Errorf(`cannot parse pandoc options "%s": %w`, options, err)
	}
	return &Converter{
		logger:  logger,
		binary:  binary,
		workDir: workDir,
		filters: filters,
		extra:   extra,
	}, nil
}

// WithMacros enables macro pre-processing, text is rewritten before pandoc runs.
func (c *Converter) WithMacros(macros *MacroExpander) *Converter {
	c.macros = macros
	return c
}

// Convert runs one text through pandoc.
// A non-zero exit is an error, stderr of a successful run is only a warning.
func (c *Converter) Convert(ctx context.Context, text, srcFormat, outFormat string) (string, error) {
	if srcFormat == "" {
		srcFormat = DefaultSrcFormat
	}
	if outFormat == "" {
		outFormat = DefaultOutFormat
	}
	if c.macros != nil {
		expanded, err := c.macros.Expand(text)
		if err != nil {
			return "", err
		}
		text = expanded
	}

	args := []string{"-f", srcFormat, "-t", outFormat, "--mathml"}
	args = append(args, c.extra...)
	for _, filter := range c.filters {
		args = append(args, "-L", filter)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.binary.Path, args...)
	cmd.Dir = c.workDir
	cmd.Stdin = strings.NewReader(text)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return "", errors.Errorf(`pandoc failed: %s`, strings.TrimSpace(stderr.String()))
		}
		return "", errors.Errorf(`pandoc failed: %w`, err)
	}
	if stderr.Len() > 0 {
		c.logger.Warnf(`pandoc: %s`, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// ConvertList converts all texts in one pandoc run.
// The texts are joined with a separator paragraph and the output is split
// on its rendered form, the order is preserved.
func (c *Converter) ConvertList(ctx context.Context, texts []string, srcFormat, outFormat string) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	joined := strings.Join(texts, "\n\n"+listSeparator+"\n\n")
	converted, err := c.Convert(ctx, joined, srcFormat, outFormat)
	if err != nil {
		return nil, err
	}
	out := strings.Split(converted, fmt.Sprintf("\n<p>%s</p>\n", listSeparator))
	if len(out) != len(texts) {
		return nil, errors.Errorf(`expected %d converted texts, found %d`, len(texts), len(out))
	}
	return out, nil
}
