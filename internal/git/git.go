// Package git wraps the handful of git commands the release tooling needs.
package git

import (
	"context"
	"strings"

	"github.com/magefile/mage/sh"
)

// Git lists remotes and publishes tags. Shell is the real implementation.
type Git interface {
	// Remotes returns the raw output of `git remote -v`
	Remotes(ctx context.Context) (string, error)
	// CreateAndPushTag creates an annotated tag and pushes it to remote
	CreateAndPushTag(ctx context.Context, remote, name, message string) error
}

// Shell runs the git binary found on PATH. Commands block until git exits;
// ctx is not used to cancel them.
type Shell struct{}

// Remotes implements Git
func (Shell) Remotes(_ context.Context) (string, error) {
	return sh.Output("git", "remote", "-v")
}

// CreateAndPushTag implements Git
func (Shell) CreateAndPushTag(_ context.Context, remote, name, message string) error {
	if err := sh.RunV("git", "tag", "-a", name, "-m", message); err != nil {
		return err
	}
	return sh.RunV("git", "push", remote, name)
}

// FetchURL finds the fetch URL of remote in `git remote -v` output
func FetchURL(output, remote string) (string, bool) {
	for _, line := range strings.Split(output, "\n") {
		if !strings.HasPrefix(line, remote) || !strings.Contains(line, "(fetch)") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] != remote {
			continue
		}
		return fields[1], true
	}
	return "", false
}
