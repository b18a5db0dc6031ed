package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/spicery/pyast-json/pkg/common"
	"github.com/spicery/pyast-json/pkg/parser"
	"github.com/spicery/pyast-json/pkg/serializer"
)

// Version is injected at build time via ldflags.
var Version = "dev"

const usage = `pyast-json - prints the syntax tree of a Python file as one line of JSON

Usage:
  pyast-json FILE
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the exit status. Wrong usage and a root that is not a node
// fail silently; a syntax error is reported on stderr.
func run(args []string, stdout, stderr io.Writer) int {
	var showHelp, showVersion bool

	flags := flag.NewFlagSet("pyast-json", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.BoolVar(&showHelp, "h", false, "Show help")
	flags.BoolVar(&showHelp, "help", false, "Show help")
	flags.BoolVar(&showVersion, "version", false, "Show version")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	if showHelp {
		fmt.Fprint(stdout, usage)
		return 0
	}

	if showVersion {
		fmt.Fprintf(stdout, "pyast-json version %s\n", Version)
		return 0
	}

	if flags.NArg() != 1 {
		return 1
	}

	root, err := parser.ParseFile(flags.Arg(0), parser.ExecMode)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	doc, err := serializer.Serialize(root)
	if err != nil {
		return 1
	}

	if err := common.PrintJSON(doc, "", stdout, nil); err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return 1
	}
	return 0
}
