package main

import (
	"fmt"
	"io"
	"os"

	pflag "github.com/spf13/pflag"

	"github.com/spicery/pyast-json/pkg/ast"
	"github.com/spicery/pyast-json/pkg/checker"
	"github.com/spicery/pyast-json/pkg/common"
	"github.com/spicery/pyast-json/pkg/parser"
	"github.com/spicery/pyast-json/pkg/serializer"
)

// Version is injected at build time via ldflags.
var Version = "dev"

const usage = `pyast-check-syntax - syntax validation for Python source

This tool parses Python source and validates the rules that the compiler
enforces after parsing, such as 'return' outside a function or duplicate
argument names. If validation fails, it exits with a non-zero status;
otherwise it emits the serialized tree to stdout.

Usage:
  pyast-check-syntax [options]

Options:
`

const DEFAULT_FORMAT = "JSON"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var showHelp, showVersion, noAttributes bool
	var inputFile, outputFile, format, mode string
	var trim int

	flags := pflag.NewFlagSet("pyast-check-syntax", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(stderr, "%s\n", usage)
		flags.PrintDefaults()
	}

	flags.BoolVarP(&showHelp, "help", "h", false, "Show help")
	flags.BoolVar(&showVersion, "version", false, "Show version")
	flags.StringVarP(&inputFile, "input", "i", "", "Input file (defaults to stdin)")
	flags.StringVarP(&outputFile, "output", "o", "", "Output file (defaults to stdout)")
	flags.StringVarP(&format, "format", "f", DEFAULT_FORMAT, "Output format (JSON, INDENTED, YAML, ASCIITREE, DOT)")
	flags.StringVarP(&mode, "mode", "m", string(parser.ExecMode), "Parse mode (exec or eval)")
	flags.IntVar(&trim, "trim", 0, "Trim values for display purposes")
	flags.BoolVar(&noAttributes, "no-attributes", false, "Leave out position attributes")

	if err := flags.Parse(args); err != nil {
		return 1
	}

	if showHelp {
		flags.Usage()
		return 0
	}

	if showVersion {
		fmt.Fprintf(stdout, "pyast-check-syntax version %s\n", Version)
		return 0
	}

	// Reject any positional arguments.
	if flags.NArg() > 0 {
		fmt.Fprintf(stderr, "Error: Unexpected positional arguments. Use --input and --output flags instead.\n\n")
		flags.Usage()
		return 1
	}

	parseMode, err := parser.ParseMode(mode)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	printFunc, err := common.PickPrintFunc(format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// Determine input source.
	input := stdin
	filename := "<stdin>"
	if inputFile != "" {
		file, err := os.Open(inputFile) // #nosec G304 - CLI tool reads user-specified input files
		if err != nil {
			fmt.Fprintf(stderr, "Error opening input file: %v\n", err)
			return 1
		}
		defer file.Close()
		input = file
		filename = inputFile
	}

	source, err := io.ReadAll(input)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading input: %v\n", err)
		return 1
	}

	root, err := parser.Parse(string(source), filename, parseMode)
	if err != nil {
		fmt.Fprintf(stderr, "Error parsing input: %v\n", err)
		return 1
	}

	// Perform syntax checking.
	c := checker.NewChecker()
	if !c.Check(root) {
		c.ReportErrorsTo(stderr)
		return 1
	}

	doc, err := serializer.New(ast.Python, serializer.Options{ExcludeAttributes: noAttributes}).Serialize(root)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// Determine output destination.
	var output io.Writer = stdout
	if outputFile != "" {
		file, err := os.Create(outputFile) // #nosec G304 - CLI tool writes to user-specified output files
		if err != nil {
			fmt.Fprintf(stderr, "Error creating output file: %v\n", err)
			return 1
		}
		defer file.Close()
		output = file
	}

	if err := printFunc(doc, "  ", output, &common.PrintOptions{TrimTokenOnOutput: trim}); err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return 1
	}
	return 0
}
