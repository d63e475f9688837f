// Package ci covers the continuous integration helpers of the project:
// the git pre-commit hook and the remote release workflow dispatch.
// nolint: forbidigo
package ci

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

const hookName = "pre-commit"

// preCommitScript validates the project before every commit.
// A project-side failure blocks the commit, git skips it with --no-verify.
const preCommitScript = `#!/bin/sh
# Generated by "cvc ci hooks", feel free to modify.
set -e
cvc manifest validate
`

// InstallPreCommitHook writes the pre-commit hook of the project repository.
// The hook runs outside the project filesystem abstraction, git reads it
// directly from disk, so plain os calls are used.
func InstallPreCommitHook(logger log.Logger, projectDir string) error {
	hooksDir := filepath.Join(projectDir, ".git", "hooks")
	if stat, err := os.Stat(filepath.Join(projectDir, ".git")); err != nil || !stat.IsDir() {
		return errors.Errorf(`project dir "%s" is not a git repository`, projectDir)
	}
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(hooksDir, hookName)
	if err := os.WriteFile(path, []byte(preCommitScript), 0o755); err != nil {
		return errors.Wrapf(err, `cannot write hook "%s"`, path)
	}

	logger.Infof(`Created hook "%s".`, filepath.Join(".git", "hooks", hookName))
	return nil
}

// RunPreCommitHook runs the installed hook on demand.
func RunPreCommitHook(ctx context.Context, logger log.Logger, projectDir string) error {
	path := filepath.Join(projectDir, ".git", "hooks", hookName)
	if stat, err := os.Stat(path); err != nil || stat.IsDir() {
		return errors.Errorf(`hook "%s" not found, run "cvc ci hooks" first`, path)
	}

	logger.Infof(`Running hook "%s" ...`, hookName)
	cmd := exec.CommandContext(ctx, path)
	cmd.Dir = projectDir
	cmd.Stdout = logger.InfoWriter()
	cmd.Stderr = logger.WarnWriter()
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, `hook "%s" failed`, hookName)
	}

	logger.Infof(`Hook "%s" passed.`, hookName)
	return nil
}
