// Package pandoc converts course texts through an external pandoc binary.
package pandoc

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver"

	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

const binaryName = "pandoc"

// Binary is one usable pandoc executable.
type Binary struct {
	Path    string
	Version *semver.Version
	raw     string
}

// VersionString as printed by the binary, it may have four components.
func (b *Binary) VersionString() string {
	if b.raw != "" {
		return b.raw
	}
	return b.Version.Original()
}

// Detect returns the newest pandoc found on PATH or in "~/local/bin".
// Versions below 2 are rejected, their output differs too much.
func Detect(ctx context.Context, logger log.Logger) (*Binary, error) {
	var newest *Binary
	for _, path := range binaryPaths() {
		version, raw, err := binaryVersion(ctx, path)
		if err != nil {
			logger.Debugf(`Skipped pandoc candidate "%s": %s`, path, err)
			continue
		}
		if newest == nil || version.GreaterThan(newest.Version) {
			newest = &Binary{Path: path, Version: version, raw: raw}
		}
	}
	if newest == nil {
		return nil, errors.New("pandoc not found")
	}
	if newest.Version.Major() < 2 {
		return nil, errors.Errorf("only too old pandoc version (%s) found: %s", newest.VersionString(), newest.Path)
	}
	return newest, nil
}

// CheckConstraint verifies the binary satisfies the version range from the manifest.
func (b *Binary) CheckConstraint(definition string) error {
	constraint, err := semver.NewConstraint(definition)
	if err != nil {
		return errors.Errorf(`invalid pandoc version constraint "%s": %s`, definition, err)
	}
	if !constraint.Check(b.Version) {
		return errors.Errorf(`pandoc version %s found at "%s" does not satisfy "%s"`, b.VersionString(), b.Path, definition)
	}
	return nil
}

func binaryPaths() []string {
	dirs := filepath.SplitList(os.Getenv("PATH"))
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, "local", "bin"))
	}
	var out []string
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, binaryName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			out = append(out, path)
		}
	}
	return out
}

// binaryVersion parses the second word of the first "pandoc --version" line.
func binaryVersion(ctx context.Context, path string) (*semver.Version, string, error) {
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "--version")
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, "", err
	}
	firstLine, _, _ := strings.Cut(stdout.String(), "\n")
	fields := strings.Fields(firstLine)
	if len(fields) < 2 {
		return nil, "", errors.Errorf(`unexpected version output "%s"`, firstLine)
	}
	raw := fields[1]
	version, err := semver.NewVersion(normalizeVersion(raw))
	if err != nil {
		return nil, "", errors.Errorf(`cannot parse version "%s": %w`, raw, err)
	}
	return version, raw, nil
}

// normalizeVersion truncates the occasional fourth version component,
// "1.19.2.4" is compared as "1.19.2".
func normalizeVersion(raw string) string {
	parts := strings.SplitN(raw, ".", 4)
	if len(parts) == 4 {
		return strings.Join(parts[:3], ".")
	}
	return raw
}
