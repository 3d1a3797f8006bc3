package gnuplot

import (
	"fmt"
	"os/exec"
	"regexp"

	"github.com/Masterminds/semver/v3"
)

// versionPattern matches "gnuplot 5.4 patchlevel 2" and similar banners
var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)(?:\s+patchlevel\s+(\d+))?`)

// ParseEngineVersion extracts the version from `gnuplot --version` output
func ParseEngineVersion(output string) (*semver.Version, error) {
	m := versionPattern.FindStringSubmatch(output)
	if m == nil {
		return nil, fmt.Errorf("%w: no version in %q", ErrEngineVersion, output)
	}

	patch := m[3]
	if patch == "" {
		patch = "0"
	}

	v, err := semver.NewVersion(fmt.Sprintf("%s.%s.%s", m[1], m[2], patch))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineVersion, err)
	}
	return v, nil
}

// CheckVersion reports whether version satisfies constraint (e.g. ">= 4.6")
func CheckVersion(version *semver.Version, constraint string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}
	if !c.Check(version) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrEngineVersion, version, constraint)
	}
	return nil
}

// ProbeEngineVersion runs `<binary> --version` and checks the result
func ProbeEngineVersion(binary, constraint string) (*semver.Version, error) {
	out, err := exec.Command(binary, "--version").Output()
	if err != nil {
		return nil, fmt.Errorf("%w: %s --version: %v", ErrSpawnFailure, binary, err)
	}

	v, err := ParseEngineVersion(string(out))
	if err != nil {
		return nil, err
	}
	if constraint == "" {
		return v, nil
	}
	return v, CheckVersion(v, constraint)
}
