package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/centurytx/jadekit/internal/config"
	"github.com/centurytx/jadekit/internal/logger"
	"github.com/centurytx/jadekit/pkg/db"
)

type queryFlags struct {
	dbName   string
	dbURL    string
	params   []string
	envRoot  string
	logLevel string
}

// run executes the command line and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		red := color.New(color.FgRed, color.Bold)
		_, _ = red.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(out io.Writer) *cobra.Command {
	f := &queryFlags{}
	cwd, _ := os.Getwd()

	cmd := &cobra.Command{
		Use:   "jadequery [flags] SQL",
		Short: "Run a query and print the result table",
		Long: `jadequery connects with the same rules as the Python client: an explicit
--url, an explicit --db on localhost, POSTGRES_URL, or DB_DEFAULT_NAME.

Bind named parameters with --param name=value and reference them as :name.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, out, f, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.dbName, "db", "", "database name on localhost")
	flags.StringVar(&f.dbURL, "url", "", "full connection URL")
	flags.StringArrayVarP(&f.params, "param", "p", nil, "named parameter as name=value (repeatable)")
	flags.StringVar(&f.envRoot, "env-root", cwd, "directory searched for a .env file")
	flags.StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	return cmd
}

func runQuery(cmd *cobra.Command, out io.Writer, f *queryFlags, query string) error {
	settings, err := config.Load(f.envRoot)
	if err != nil {
		return err
	}
	level := settings.LogLevel
	if f.logLevel != "" {
		level = f.logLevel
	}
	logger.Initialize(level)

	params, err := parseParams(f.params)
	if err != nil {
		return err
	}

	client, err := db.NewClient(settings, db.Options{DBName: f.dbName, DBURL: f.dbURL})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("error closing database: %v", err)
		}
	}()
	logger.Debug("Querying %s", client.URL())

	var table *db.Table
	if len(params) > 0 {
		table, err = client.QueryToTable(cmd.Context(), query, params)
	} else {
		table, err = client.QueryToTable(cmd.Context(), query)
	}
	if err != nil {
		return err
	}

	render(out, table)
	return nil
}

// parseParams turns name=value pairs into named bindings
func parseParams(pairs []string) (db.Named, error) {
	params := make(db.Named, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected name=value", pair)
		}
		params[name] = value
	}
	return params, nil
}
