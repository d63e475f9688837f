package manifest

import (
	"strings"

	"github.com/Masterminds/semver"
	"github.com/umisama/go-regexpcache"

	"github.com/canvastools/canvas-as-code/internal/pkg/filesystem"
	"github.com/canvastools/canvas-as-code/internal/pkg/utils/errors"
)

// CheckConsistency verifies properties the validate tags cannot express:
// the pandoc version range must match at least one version
// and every listed filter must exist in the project.
func (m *Manifest) CheckConsistency(fs filesystem.Fs) error {
	errs := errors.NewMultiError()

	if err := checkVersionRange(m.Pandoc.Version); err != nil {
		errs.Append(err)
	}

	for _, filter := range m.Pandoc.Filters {
		if path := filesystem.Join(filesystem.MetadataDir, FiltersDir, filter); !fs.IsFile(path) {
			errs.Append(errors.Errorf(`filter "%s" not found`, path))
		}
	}

	return errs.ErrorOrNil()
}

// checkVersionRange rejects an unsatisfiable range, eg. ">= 3.0, < 2.0".
// The range is checked against the versions mentioned in the definition and their bumps.
func checkVersionRange(definition string) error {
	c, err := semver.NewConstraint(definition)
	if err != nil {
		return errors.Errorf(`invalid pandoc version constraint "%s": %s`, definition, err)
	}

	candidates := []semver.Version{*semver.MustParse("0.0.0")}
	for _, raw := range regexpcache.MustCompile(`\d[^\s,|]*`).FindAllString(definition, -1) {
		v, err := semver.NewVersion(raw)
		if err != nil {
			// Wildcard ranges, eg. "2.x", are checked by their lower bound
			v, err = semver.NewVersion(strings.NewReplacer("x", "0", "X", "0", "*", "0").Replace(raw))
		}
		if err == nil {
			candidates = append(candidates, *v, v.IncPatch(), v.IncMinor(), v.IncMajor())
		}
	}

	for i := range candidates {
		if c.Check(&candidates[i]) {
			return nil
		}
	}
	return errors.Errorf(`pandoc version constraint "%s" matches no version`, definition)
}
