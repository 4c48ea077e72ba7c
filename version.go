package assist

import (
	_ "embed"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

//go:embed VERSION
var versionFile string

var releaseRE = regexp.MustCompile(`^v?(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?(?:\+([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?$`)

// Release is a SemVer 2.0.0 version of this module.
type Release struct {
	Major, Minor, Patch int
	Pre, Build          string
}

// ParseRelease parses s, with or without a leading "v".
func ParseRelease(s string) (Release, error) {
	m := releaseRE.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Release{}, fmt.Errorf("release %q: not semver", s)
	}
	var r Release
	for i, dst := range []*int{&r.Major, &r.Minor, &r.Patch} {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Release{}, fmt.Errorf("release %q: %w", s, err)
		}
		*dst = n
	}
	r.Pre, r.Build = m[4], m[5]
	return r, nil
}

// CurrentRelease returns the release embedded from the VERSION file.
func CurrentRelease() Release {
	r, err := ParseRelease(versionFile)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Release) String() string {
	s := fmt.Sprintf("%d.%d.%d", r.Major, r.Minor, r.Patch)
	if r.Pre != "" {
		s += "-" + r.Pre
	}
	if r.Build != "" {
		s += "+" + r.Build
	}
	return s
}

// Tag returns the git tag form, "v" + String.
func (r Release) Tag() string { return "v" + r.String() }
