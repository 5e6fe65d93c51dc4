// Package version keeps a project's release number in sync across its
// canonical source file and its packaging manifest, and publishes release
// tags from the authoritative repository only.
package version

import (
	"context"
	"fmt"

	"github.com/centurytx/jadekit/internal/git"
	"github.com/centurytx/jadekit/internal/logger"
)

// Defaults for the jadepy project layout
const (
	DefaultVersionFile    = "src/jadepy/__init__.py"
	DefaultManifestFile   = "pyproject.toml"
	DefaultRemote         = "origin"
	DefaultExpectedOrigin = "git@github.com:centurytx/JADEpy.git"
)

// Options configures a Manager
type Options struct {
	// VersionFile holds the canonical __version__ assignment
	VersionFile string
	// ManifestFile holds the packaging version assignment
	ManifestFile string
	// Remote is the remote tags are pushed to
	Remote string
	// ExpectedOrigin is the fetch URL Remote must have before tagging
	ExpectedOrigin string
}

// DefaultOptions returns the options for the jadepy repository
func DefaultOptions() Options {
	return Options{
		VersionFile:    DefaultVersionFile,
		ManifestFile:   DefaultManifestFile,
		Remote:         DefaultRemote,
		ExpectedOrigin: DefaultExpectedOrigin,
	}
}

// Manager reads, bumps and tags the project version
type Manager struct {
	opts Options
	git  git.Git
}

// NewManager creates a Manager. Empty options fall back to the defaults.
func NewManager(opts Options, g git.Git) *Manager {
	def := DefaultOptions()
	if opts.VersionFile == "" {
		opts.VersionFile = def.VersionFile
	}
	if opts.ManifestFile == "" {
		opts.ManifestFile = def.ManifestFile
	}
	if opts.Remote == "" {
		opts.Remote = def.Remote
	}
	if opts.ExpectedOrigin == "" {
		opts.ExpectedOrigin = def.ExpectedOrigin
	}
	return &Manager{opts: opts, git: g}
}

// Options returns the effective options
func (m *Manager) Options() Options {
	return m.opts
}

// Show returns the version string recorded in the canonical file. A
// recorded value that is not a major.minor.patch version is an error.
func (m *Manager) Show() (string, error) {
	f, err := readVersionFile(m.opts.VersionFile, InitPattern)
	if err != nil {
		return "", err
	}
	raw, err := f.version()
	if err != nil {
		return "", err
	}
	if _, err := Parse(raw); err != nil {
		return "", err
	}
	return raw, nil
}

// Current returns the parsed version from the canonical file
func (m *Manager) Current() (SemVer, error) {
	raw, err := m.Show()
	if err != nil {
		return SemVer{}, err
	}
	return Parse(raw)
}

// Bump applies rule to the current version and writes the result to both
// the canonical file and the manifest. Both files are read and checked
// before either is written. If the manifest write fails after the canonical
// file was updated the two files disagree; nothing rolls that back.
func (m *Manager) Bump(rule Rule) (SemVer, SemVer, error) {
	initFile, err := readVersionFile(m.opts.VersionFile, InitPattern)
	if err != nil {
		return SemVer{}, SemVer{}, err
	}
	manifest, err := readVersionFile(m.opts.ManifestFile, ManifestPattern)
	if err != nil {
		return SemVer{}, SemVer{}, err
	}

	raw, err := initFile.version()
	if err != nil {
		return SemVer{}, SemVer{}, err
	}
	current, err := Parse(raw)
	if err != nil {
		return SemVer{}, SemVer{}, err
	}
	next, err := current.Bump(rule)
	if err != nil {
		return SemVer{}, SemVer{}, err
	}
	if _, err := manifest.version(); err != nil {
		return SemVer{}, SemVer{}, err
	}

	if err := initFile.write(next.String()); err != nil {
		return SemVer{}, SemVer{}, err
	}
	logger.Debug("Updated %s to %s", initFile.path, next)

	if err := manifest.write(next.String()); err != nil {
		return SemVer{}, SemVer{}, fmt.Errorf("%s already updated to %s: %w", initFile.path, next, err)
	}
	logger.Debug("Updated %s to %s", manifest.path, next)

	return current, next, nil
}

// Tag creates an annotated v<version> tag and pushes it to the configured
// remote. It refuses to do anything unless the remote's fetch URL is the
// expected origin, so forks cannot publish official-looking release tags.
func (m *Manager) Tag(ctx context.Context) (string, error) {
	current, err := m.Current()
	if err != nil {
		return "", err
	}

	if err := m.checkOrigin(ctx); err != nil {
		return "", err
	}

	tag := "v" + current.String()
	message := "Release version " + tag
	if err := m.git.CreateAndPushTag(ctx, m.opts.Remote, tag, message); err != nil {
		return "", fmt.Errorf("%w: %w", ErrTagFailed, err)
	}
	logger.Info("Pushed tag %s to %s", tag, m.opts.Remote)
	return tag, nil
}

func (m *Manager) checkOrigin(ctx context.Context) error {
	output, err := m.git.Remotes(ctx)
	if err != nil {
		logger.Debug("Listing git remotes failed: %v", err)
		return fmt.Errorf("%w: git %s is not %s", ErrOriginMismatch, m.opts.Remote, m.opts.ExpectedOrigin)
	}

	url, ok := git.FetchURL(output, m.opts.Remote)
	if !ok || url != m.opts.ExpectedOrigin {
		return fmt.Errorf("%w: git %s is not %s", ErrOriginMismatch, m.opts.Remote, m.opts.ExpectedOrigin)
	}
	return nil
}
