// Command bumpversion shows, bumps and tags the jadepy release version.
//
// Usage:
//
//	bumpversion major|minor|patch|show|tag [flags]
package main

import (
	"os"

	"github.com/centurytx/jadekit/internal/git"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, git.Shell{}))
}
