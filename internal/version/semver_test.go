package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected SemVer
		valid    bool
	}{
		{"1.2.3", SemVer{1, 2, 3}, true},
		{"0.0.0", SemVer{0, 0, 0}, true},
		{"10.20.300", SemVer{10, 20, 300}, true},
		{"1.2", SemVer{}, false},
		{"1.2.3.4", SemVer{}, false},
		{"1", SemVer{}, false},
		{"", SemVer{}, false},
		{"a.b.c", SemVer{}, false},
		{"1.2.x", SemVer{}, false},
		{"-1.2.3", SemVer{}, false},
		{"1.2.3-beta", SemVer{}, false},
		{"1.2.3+build", SemVer{}, false},
		{"v1.2.3", SemVer{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if !tt.valid {
				assert.ErrorIs(t, err, ErrInvalidVersion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestSemVerString(t *testing.T) {
	assert.Equal(t, "1.2.3", SemVer{1, 2, 3}.String())
	assert.Equal(t, "0.10.0", SemVer{0, 10, 0}.String())
}

func TestBump(t *testing.T) {
	versions := []SemVer{{0, 0, 0}, {1, 2, 3}, {0, 9, 9}, {4, 0, 17}}

	for _, v := range versions {
		t.Run(v.String(), func(t *testing.T) {
			major, err := v.Bump(RuleMajor)
			require.NoError(t, err)
			assert.Equal(t, SemVer{v.Major + 1, 0, 0}, major)

			minor, err := v.Bump(RuleMinor)
			require.NoError(t, err)
			assert.Equal(t, SemVer{v.Major, v.Minor + 1, 0}, minor)

			patch, err := v.Bump(RulePatch)
			require.NoError(t, err)
			assert.Equal(t, SemVer{v.Major, v.Minor, v.Patch + 1}, patch)
		})
	}
}

func TestBumpInvalidRule(t *testing.T) {
	_, err := SemVer{1, 2, 3}.Bump(Rule("build"))
	assert.ErrorIs(t, err, ErrInvalidRule)
}

func TestParseRule(t *testing.T) {
	for _, name := range []string{"major", "minor", "patch"} {
		r, err := ParseRule(name)
		require.NoError(t, err)
		assert.Equal(t, Rule(name), r)
	}

	_, err := ParseRule("show")
	assert.ErrorIs(t, err, ErrInvalidRule)
}
