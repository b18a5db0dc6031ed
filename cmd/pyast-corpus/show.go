package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	var showSource bool

	cmd := &cobra.Command{
		Use:   "show <file.py>",
		Short: "Print a recorded snapshot",
		Long: `The show command prints the recorded document of a path, or with
--source the recorded source text.

Example:
  pyast-corpus show src/module.py
  pyast-corpus show --source src/module.py`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			if showSource {
				file, err := c.Source(args[0])
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), file.Contents)
				return nil
			}
			snapshot, err := c.Lookup(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), snapshot.Document)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showSource, "source", false, "Print the recorded source instead of the document")
	return cmd
}
