package version

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
)

// Pattern locates a `key = "<version>"` assignment at the start of a line
type Pattern struct {
	Key string
	re  *regexp.Regexp
}

// NewPattern builds a Pattern for key
func NewPattern(key string) Pattern {
	return Pattern{
		Key: key,
		re:  regexp.MustCompile(`(?m)^([ \t]*` + regexp.QuoteMeta(key) + `[ \t]*=[ \t]*")([^"\n]+)(")`),
	}
}

var (
	// InitPattern matches __version__ = "x.y.z"
	InitPattern = NewPattern("__version__")
	// ManifestPattern matches version = "x.y.z"
	ManifestPattern = NewPattern("version")
)

// Find returns the first version string assigned in content
func (p Pattern) Find(content []byte) (string, bool) {
	m := p.re.FindSubmatch(content)
	if m == nil {
		return "", false
	}
	return string(m[2]), true
}

// Replace swaps every matched version for v and leaves all other bytes
// untouched. It reports how many assignments were rewritten.
func (p Pattern) Replace(content []byte, v string) ([]byte, int) {
	n := len(p.re.FindAllIndex(content, -1))
	if n == 0 {
		return content, 0
	}
	return p.re.ReplaceAll(content, []byte("${1}"+v+"${3}")), n
}

// versionFile is a file holding a version assignment
type versionFile struct {
	path    string
	pattern Pattern
	content []byte
	mode    fs.FileMode
}

func readVersionFile(path string, pattern Pattern) (*versionFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &versionFile{path: path, pattern: pattern, content: content, mode: info.Mode().Perm()}, nil
}

// version returns the raw version string assigned in the file
func (f *versionFile) version() (string, error) {
	v, ok := f.pattern.Find(f.content)
	if !ok {
		return "", fmt.Errorf("%w in %s", ErrVersionNotFound, f.path)
	}
	return v, nil
}

// write replaces the version in the file on disk
func (f *versionFile) write(v string) error {
	updated, n := f.pattern.Replace(f.content, v)
	if n == 0 {
		return fmt.Errorf("%w in %s", ErrVersionNotFound, f.path)
	}
	if err := os.WriteFile(f.path, updated, f.mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", f.path, err)
	}
	f.content = updated
	return nil
}
