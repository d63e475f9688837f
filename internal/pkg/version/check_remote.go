package version

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/semver"
	"github.com/go-resty/resty/v2"

	"github.com/canvastools/canvas-as-code/internal/pkg/client"
	"github.com/canvastools/canvas-as-code/internal/pkg/env"
	"github.com/canvastools/canvas-as-code/internal/pkg/log"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

// EnvVersionCheck set to "false" disables the GitHub release check.
const EnvVersionCheck = "CANVAS_VERSION_CHECK"

const releasesUrl = "https://github.com/canvastools/canvas-as-code/releases"

type checker struct {
	api    *client.Client
	envs   env.Provider
	cancel context.CancelFunc
	logger log.Logger
}

func NewGitHubChecker(parentCtx context.Context, logger log.Logger, envs env.Provider) *checker {
	// Timeout 3 seconds
	ctx, cancel := context.WithTimeout(parentCtx, 3*time.Second)
	api := client.NewClient(ctx, logger, false).WithHostUrl(`https://api.github.com`)
	return &checker{api: api, envs: envs, cancel: cancel, logger: logger}
}

func (c *checker) CheckIfLatest(currentVersion string) error {
	defer c.cancel()

	if value := c.envs.Get(EnvVersionCheck); value == "false" || value == "0" {
		return errors.Errorf(`skipped, disabled by %s`, EnvVersionCheck)
	}
	if currentVersion == DevVersionValue {
		return errors.New(`skipped, found dev build`)
	}

	current, err := semver.NewVersion(strings.TrimPrefix(currentVersion, "v"))
	if err != nil {
		return errors.Errorf(`cannot parse the current version "%s": %w`, currentVersion, err)
	}

	latestTag, err := c.getLatestVersion()
	if err != nil {
		return err
	}
	latest, err := semver.NewVersion(strings.TrimPrefix(latestTag, "v"))
	if err != nil {
		return errors.Errorf(`cannot parse the latest version "%s": %w`, latestTag, err)
	}

	if current.LessThan(latest) {
		c.logger.Warn(`*******************************************************`)
		c.logger.Warnf(`WARNING: A new version "%s" is available.`, latestTag)
		c.logger.Warnf(`You are currently using the version "%s".`, current.String())
		c.logger.Warn(`Please update to get the latest features and bug fixes.`)
		c.logger.Warn(`Read more: ` + releasesUrl)
		c.logger.Warn(`*******************************************************`)
		c.logger.Warn()
	}

	return nil
}

func (c *checker) getLatestVersion() (string, error) {
	// The last release may be without assets (build in progress),
	// so the last 5 releases are loaded.
	result := make([]any, 0)
	releases := c.api.
		NewRequest(resty.MethodGet, `repos/canvastools/canvas-as-code/releases?per_page=5`).
		SetResult(&result).
		Send().
		Response
	if releases.HasError() {
		return "", releases.Err()
	}

	// Find the latest release with assets
	for _, item := range result {
		release, ok := item.(map[string]any)
		if !ok {
			continue
		}

		assets, ok := release["assets"].([]any)
		if !ok || len(assets) == 0 {
			continue
		}

		if name, ok := release["tag_name"].(string); ok && name != "" {
			return name, nil
		}
	}

	return "", errors.New(`failed to parse the latest version`)
}
