package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spicery/pyast-json/pkg/corpus"
	"github.com/spicery/pyast-json/pkg/parser"
	"github.com/spicery/pyast-json/pkg/serializer"
)

func newRecordCmd(a *app) *cobra.Command {
	var mode, typeKey string
	var noAttributes bool

	cmd := &cobra.Command{
		Use:   "record <file.py>...",
		Short: "Record snapshots of Python files",
		Long: `The record command parses each file, serializes its syntax tree and
stores both the source and the document in the bundle, replacing any
earlier snapshot of the same path.

Example:
  pyast-corpus record src/*.py
  pyast-corpus record --mode eval expr.py`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parseMode, err := parser.ParseMode(mode)
			if err != nil {
				return err
			}
			options := corpus.Options{
				Mode:       parseMode,
				Serializer: serializer.Options{TypeKey: typeKey, ExcludeAttributes: noAttributes},
			}
			return runRecord(cmd, a, args, options)
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", string(parser.ExecMode), "Parse mode (exec or eval)")
	cmd.Flags().StringVar(&typeKey, "type-key", "", "Name of the member that holds the node kind")
	cmd.Flags().BoolVar(&noAttributes, "no-attributes", false, "Leave out position attributes")
	return cmd
}

func runRecord(cmd *cobra.Command, a *app, paths []string, options corpus.Options) error {
	c, err := a.open(cmd)
	if err != nil {
		return err
	}
	defer c.Close()

	for _, path := range paths {
		if _, err := c.Record(path, options); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "recorded %s\n", path)
	}
	return nil
}
