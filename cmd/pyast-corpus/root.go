package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/spicery/pyast-json/pkg/corpus"
)

// app holds the global flags of one command tree.
type app struct {
	bundle  string
	migrate bool
	verbose bool
	noColor bool
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "pyast-corpus",
		Short: "Record and check snapshots of Python syntax trees",
		Long: `pyast-corpus keeps serialized syntax trees of Python files in a SQLite
bundle. Recorded snapshots can later be checked against the current
serializer, showing a line diff for every document that has changed.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&a.bundle, "bundle", "b", "corpus.db", "Bundle file path")
	rootCmd.PersistentFlags().BoolVar(&a.migrate, "migrate", false, "Migrate an existing bundle to the current schema")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log progress to stderr")
	rootCmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		newRecordCmd(a),
		newCheckCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func execute(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// open opens the bundle, creating a fresh one with the current schema. An
// existing bundle with an older schema is only migrated when --migrate is
// given.
func (a *app) open(cmd *cobra.Command) (*corpus.Corpus, error) {
	_, err := os.Stat(a.bundle)
	fileExists := err == nil

	var opts []corpus.Option
	if a.verbose {
		opts = append(opts, corpus.WithLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))))
	}
	c, err := corpus.Open(a.bundle, opts...)
	if err != nil {
		return nil, err
	}

	upToDate, err := c.CheckMigration()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to check migration status: %w", err)
	}
	if upToDate {
		return c, nil
	}
	if fileExists && !a.migrate {
		c.Close()
		return nil, fmt.Errorf("database schema is not up to date. Use --migrate to update")
	}
	if err := c.Migrate(); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if fileExists {
		fmt.Fprintf(cmd.ErrOrStderr(), "Database migration completed successfully.\n")
	}
	return c, nil
}
