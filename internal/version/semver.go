package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// SemVer is a major.minor.patch release number
type SemVer struct {
	Major uint64
	Minor uint64
	Patch uint64
}

// Parse reads a version of exactly three dot-separated integers. Pre-release
// and build suffixes are rejected.
func Parse(s string) (SemVer, error) {
	v, err := semver.StrictNewVersion(s)
	if err != nil {
		return SemVer{}, fmt.Errorf("%w: %s", ErrInvalidVersion, s)
	}
	if v.Prerelease() != "" || v.Metadata() != "" {
		return SemVer{}, fmt.Errorf("%w: %s", ErrInvalidVersion, s)
	}
	return SemVer{Major: v.Major(), Minor: v.Minor(), Patch: v.Patch()}, nil
}

func (v SemVer) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Rule selects which component of a version to increment
type Rule string

const (
	RuleMajor Rule = "major"
	RuleMinor Rule = "minor"
	RulePatch Rule = "patch"
)

// Rules lists every bump rule in order of significance
var Rules = []Rule{RuleMajor, RuleMinor, RulePatch}

// ParseRule validates a bump rule name
func ParseRule(s string) (Rule, error) {
	for _, r := range Rules {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidRule, s)
}

// Bump returns the version that follows v under rule. Incrementing a
// component resets every less significant component to zero.
func (v SemVer) Bump(rule Rule) (SemVer, error) {
	cur := semver.New(v.Major, v.Minor, v.Patch, "", "")

	var next semver.Version
	switch rule {
	case RuleMajor:
		next = cur.IncMajor()
	case RuleMinor:
		next = cur.IncMinor()
	case RulePatch:
		next = cur.IncPatch()
	default:
		return SemVer{}, fmt.Errorf("%w: %s", ErrInvalidRule, rule)
	}
	return SemVer{Major: next.Major(), Minor: next.Minor(), Patch: next.Patch()}, nil
}
