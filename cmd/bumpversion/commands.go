package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/centurytx/jadekit/internal/git"
	"github.com/centurytx/jadekit/internal/logger"
	"github.com/centurytx/jadekit/internal/version"
)

var errNoAction = errors.New("expected one of: major, minor, patch, show, tag")

// app carries the state shared by every subcommand
type app struct {
	v   *viper.Viper
	git git.Git
	out io.Writer
}

// run executes the command line and returns the process exit code
func run(args []string, stdout, stderr io.Writer, g git.Git) int {
	root := newRootCmd(stdout, g)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		printError(stderr, err)
		return 1
	}
	return 0
}

func printError(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold)
	_, _ = red.Fprintf(w, "Error: %v\n", err)
	if errors.Is(err, version.ErrOriginMismatch) {
		_, _ = red.Fprintln(w, "Tagging is only allowed on the main repository to prevent tags on forks.")
	}
}

func newRootCmd(out io.Writer, g git.Git) *cobra.Command {
	a := &app{v: viper.New(), git: g, out: out}

	root := &cobra.Command{
		Use:   "bumpversion",
		Short: "Bump, show or tag the project version",
		Long: `bumpversion keeps the version in the package __init__.py and pyproject.toml
in sync.

  bumpversion major|minor|patch   Increment the version in both files
  bumpversion show                Print the current version
  bumpversion tag                 Create and push a v<version> tag to origin

Flags may also be set with BUMPVERSION_* environment variables or a
.bumpversion.yaml file in the working directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return errNoAction
		},
	}

	flags := root.PersistentFlags()
	flags.String("file", version.DefaultVersionFile, "file holding the canonical __version__")
	flags.String("manifest", version.DefaultManifestFile, "manifest file holding version")
	flags.String("remote", version.DefaultRemote, "remote to check and push tags to")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")

	for _, rule := range version.Rules {
		root.AddCommand(a.newBumpCmd(rule))
	}
	root.AddCommand(a.newShowCmd(), a.newTagCmd())
	return root
}

// loadConfig layers flags over environment over the optional config file
func (a *app) loadConfig(cmd *cobra.Command) error {
	a.v.SetConfigName(".bumpversion")
	a.v.SetConfigType("yaml")
	a.v.AddConfigPath(".")
	a.v.SetEnvPrefix("BUMPVERSION")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	if err := a.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	logger.Initialize(a.v.GetString("log-level"))
	return nil
}

func (a *app) manager() *version.Manager {
	return version.NewManager(version.Options{
		VersionFile:    a.v.GetString("file"),
		ManifestFile:   a.v.GetString("manifest"),
		Remote:         a.v.GetString("remote"),
		ExpectedOrigin: version.DefaultExpectedOrigin,
	}, a.git)
}

func (a *app) newBumpCmd(rule version.Rule) *cobra.Command {
	return &cobra.Command{
		Use:   string(rule),
		Short: fmt.Sprintf("Increment the %s version", rule),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			old, next, err := a.manager().Bump(rule)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Version bumped from %s to %s\n", old, next)
			return nil
		},
	}
}

func (a *app) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.manager().Show()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, v)
			return nil
		},
	}
}

func (a *app) newTagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tag",
		Short: "Create and push a release tag for the current version",
		Long: `Create an annotated v<version> tag and push it to the remote.

The remote's fetch URL must be ` + version.DefaultExpectedOrigin + `.
Tags are never created from forks.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := a.manager().Tag(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created and pushed tag %s\n", tag)
			return nil
		},
	}
}
