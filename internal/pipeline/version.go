// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
)

var versionPattern = regexp.MustCompile(`\d+(\.\d+){0,2}`)

// ParseRuntimeVersion extracts the first version number from a `--version`
// banner such as "Python 3.10.12".
func ParseRuntimeVersion(banner string) (*semver.Version, error) {
	raw := versionPattern.FindString(banner)
	if raw == "" {
		return nil, fmt.Errorf("no version number in %q", banner)
	}
	return semver.NewVersion(raw)
}

// checkMinVersion returns a non-empty reason when banner is below minimum.
func checkMinVersion(banner string, minimum *semver.Version) (string, error) {
	v, err := ParseRuntimeVersion(banner)
	if err != nil {
		return "", err
	}
	if v.LessThan(minimum) {
		return fmt.Sprintf("version %s is older than the required %s", v, minimum), nil
	}
	return "", nil
}
