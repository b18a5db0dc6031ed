package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spicery/pyast-json/pkg/corpus"
	"github.com/spicery/pyast-json/pkg/golden"
)

func newCheckCmd(a *app) *cobra.Command {
	var context int

	cmd := &cobra.Command{
		Use:   "check [file.py]...",
		Short: "Check recorded snapshots against the current serializer",
		Long: `The check command serializes the recorded source of each path again and
compares the result with the recorded document. Without arguments every
recorded path is checked. The command fails if any document differs.

Example:
  pyast-corpus check
  pyast-corpus check --context 10 src/module.py`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, a, args, context)
		},
	}
	cmd.Flags().IntVarP(&context, "context", "C", 3, "Unchanged lines shown around each change; negative shows all")
	return cmd
}

func (a *app) printer(cmd *cobra.Command) *golden.Printer {
	if f, ok := cmd.OutOrStdout().(*os.File); ok && !a.noColor {
		return golden.NewPrinterFor(f)
	}
	return golden.NewPrinter(false)
}

func runCheck(cmd *cobra.Command, a *app, paths []string, context int) error {
	c, err := a.open(cmd)
	if err != nil {
		return err
	}
	defer c.Close()

	var results []*corpus.CheckResult
	if len(paths) == 0 {
		results, err = c.CheckAll()
		if err != nil {
			return err
		}
	} else {
		for _, path := range paths {
			result, err := c.Check(path)
			if err != nil {
				return err
			}
			results = append(results, result)
		}
	}

	out := cmd.OutOrStdout()
	printer := a.printer(cmd)
	printer.Context = context
	changed := 0
	for _, result := range results {
		if result.SourceChanged {
			fmt.Fprintf(cmd.ErrOrStderr(), "note: %s has changed on disk since it was recorded\n", result.Path)
		}
		if !result.Changed() {
			fmt.Fprintf(out, "ok %s\n", result.Path)
			continue
		}
		changed++
		fmt.Fprintf(out, "changed %s\n", result.Path)
		if err := printer.Print(out, golden.Diff(result.Recorded, result.Current)); err != nil {
			return err
		}
	}
	if changed > 0 {
		return fmt.Errorf("%d of %d snapshots differ", changed, len(results))
	}
	return nil
}
