package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	pflag "github.com/spf13/pflag"

	"github.com/spicery/pyast-json/pkg/ast"
	"github.com/spicery/pyast-json/pkg/common"
	"github.com/spicery/pyast-json/pkg/parser"
	"github.com/spicery/pyast-json/pkg/serializer"
)

// Version is injected at build time via ldflags.
var Version = "dev"

const usage = `pyast-dump - renders the syntax tree of Python source in several formats

This tool parses Python source (a module, or a single expression in eval
mode) and writes its serialized syntax tree as JSON, indented JSON, YAML,
an ASCII tree or a Graphviz digraph. Options may also be read from a YAML
file of option-* keys; flags given on the command line take precedence.

Usage:
  pyast-dump [options]

Options:
`

const DEFAULT_FORMAT = "JSON"

const DEFAULT_INDENT = 2

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var showHelp, showVersion, noAttributes, pythonSeparators bool
	var inputFile, outputFile, configFile, format, mode, typeKey string
	var trim, indent int

	flags := pflag.NewFlagSet("pyast-dump", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(stderr, "%s\n", usage)
		flags.PrintDefaults()
	}

	flags.BoolVarP(&showHelp, "help", "h", false, "Show help")
	flags.BoolVar(&showVersion, "version", false, "Show version")
	flags.StringVarP(&inputFile, "input", "i", "", "Input file (defaults to stdin)")
	flags.StringVarP(&outputFile, "output", "o", "", "Output file (defaults to stdout)")
	flags.StringVarP(&configFile, "config", "c", "", "YAML file of option-* settings")
	flags.StringVarP(&format, "format", "f", DEFAULT_FORMAT, "Output format (JSON, INDENTED, YAML, ASCIITREE, DOT)")
	flags.StringVarP(&mode, "mode", "m", string(parser.ExecMode), "Parse mode (exec or eval)")
	flags.StringVar(&typeKey, "type-key", common.DefaultTypeKey, "Name of the member that holds the node kind")
	flags.BoolVar(&noAttributes, "no-attributes", false, "Leave out position attributes")
	flags.BoolVar(&pythonSeparators, "python-separators", false, "Use the separators of Python's json.dumps")
	flags.IntVar(&trim, "trim", 0, "Trim values for display purposes")
	flags.IntVar(&indent, "indent", DEFAULT_INDENT, "Indentation step for multi-line formats")

	if err := flags.Parse(args); err != nil {
		return 1
	}

	if showHelp {
		flags.Usage()
		return 0
	}

	if showVersion {
		fmt.Fprintf(stdout, "pyast-dump version %s\n", Version)
		return 0
	}

	// Reject any positional arguments.
	if flags.NArg() > 0 {
		fmt.Fprintf(stderr, "Error: Unexpected positional arguments. Use --input and --output flags instead.\n\n")
		flags.Usage()
		return 1
	}

	config := &common.DumpConfig{}
	if configFile != "" {
		var err error
		config, err = common.LoadDumpConfig(configFile)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading config file: %v\n", err)
			return 1
		}
	}
	if flags.Changed("format") || config.Format == "" {
		config.Format = format
	}
	if flags.Changed("mode") || config.Mode == "" {
		config.Mode = mode
	}
	if flags.Changed("type-key") || config.TypeKey == "" {
		config.TypeKey = typeKey
	}
	if flags.Changed("indent") || config.Indent == 0 {
		config.Indent = indent
	}
	if flags.Changed("trim") {
		config.TrimTokenOnOutput = trim
	}
	if flags.Changed("no-attributes") {
		config.ExcludeAttributes = noAttributes
	}
	if flags.Changed("python-separators") {
		config.PythonSeparators = pythonSeparators
	}

	parseMode, err := parser.ParseMode(config.Mode)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	printFunc, err := common.PickPrintFunc(config.Format)
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

	s := serializer.New(ast.Python, serializer.Options{
		TypeKey:           config.TypeKey,
		ExcludeAttributes: config.ExcludeAttributes,
	})
	doc, err := s.Serialize(root)
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

	if err := printFunc(doc, strings.Repeat(" ", config.Indent), output, &config.PrintOptions); err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return 1
	}
	return 0
}
