package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsonshape/internal/config"
	"github.com/mcncl/jsonshape/internal/errors"
	"github.com/mcncl/jsonshape/internal/formatter"
	"github.com/mcncl/jsonshape/internal/models"
	"github.com/mcncl/jsonshape/internal/parser"
	"github.com/mcncl/jsonshape/internal/validator"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input JSON or YAML file. If not specified, reads from stdin." short:"i" type:"path"`
	InputFormat string `help:"Input format: auto, json or yaml." short:"t" name:"input-format"`
	Format      string `help:"Report format: text, json or yaml." short:"f"`
	Output      string `help:"Path to write the report to. If not specified, writes to stdout." short:"o" type:"path"`
	Config      string `help:"Path to a config file. Defaults to the nearest .jsonshape.yml." short:"c" type:"path"`
	MaxDepth    int    `help:"Maximum nesting depth of composites (0 = unlimited)." name:"max-depth"`
	Quiet       bool   `help:"Do not print a report; only set the exit code." short:"q"`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Logger *log.Logger
}

// Version information
const (
	Version = "0.1.0"
)

// Exit codes
const (
	exitValid   = 0
	exitError   = 1
	exitInvalid = 2
)

func main() {
	app := kong.Must(&CLI,
		kong.Name("jsonshape"),
		kong.Description("Check that a JSON or YAML document fits the JSON data model and contains no cycles"),
		kong.UsageOnError(),
	)

	// Without arguments on a terminal, default to interactive mode
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if _, err := app.Parse(os.Args[1:]); err != nil {
		// kong.UsageOnError() has already printed the usage
		os.Exit(exitError)
	}

	if CLI.Version {
		fmt.Printf("jsonshape version %s\n", Version)
		return
	}

	ctx, err := newContext()
	if err == nil {
		var valid bool
		valid, err = run(ctx)
		if err == nil && !valid {
			os.Exit(exitInvalid)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonshape --help\n")
		os.Exit(exitError)
	}
	os.Exit(exitValid)
}

// newContext resolves configuration from the config file and CLI flags
func newContext() (*Context, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, CLI.InputFormat, CLI.Format, CLI.MaxDepth)
	if err != nil {
		return nil, errors.NewConfigError("failed to load configuration", err)
	}
	if CLI.Quiet {
		cfg.Output.Quiet = true
	}

	debug := CLI.Debug || cfg.Dev.Debug
	ctx := &Context{
		Debug:  debug,
		Config: cfg,
		Logger: newLogger(debug),
	}
	if configPath != "" {
		ctx.Logger.Printf("using config file %s", configPath)
	}
	return ctx, nil
}

func newLogger(debug bool) *log.Logger {
	if !debug {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "jsonshape: ", log.Ltime|log.Lmicroseconds)
}

// run validates the input document and writes a report. It returns whether
// the document is valid; err is reserved for failures to produce a verdict.
func run(ctx *Context) (bool, error) {
	if ctx.Config == nil {
		ctx.Config = config.NewConfig()
	}
	if ctx.Logger == nil {
		ctx.Logger = newLogger(ctx.Debug)
	}

	// 1. Parse input
	ir, err := parseInput(ctx)
	if err != nil {
		return false, err
	}
	ctx.Logger.Printf("parsed %s document, root kind %s", ir.Format, ir.RootKind)

	// 2. Validate structure
	res, err := validate(ctx, ir)
	if err != nil {
		return false, err
	}
	ctx.Logger.Printf("visited %d nodes, depth %d, valid=%t", res.Nodes, res.Depth, res.Valid)

	// 3. Report
	if ctx.Config.Output.Quiet {
		return res.Valid, nil
	}
	report := formatter.NewReport(CLI.Input, res)
	out, err := formatter.NewFormatter().Format(report, ctx.Config.Output.Format)
	if err != nil {
		return false, errors.NewOutputError("failed to render report", err)
	}
	if err := writeOutput(out); err != nil {
		return false, err
	}
	return res.Valid, nil
}

// validate checks the parsed document
func validate(ctx *Context, ir models.IntermediateRepresentation) (validator.Result, error) {
	// A literal null document is a value, not an absent root.
	if ir.Root == nil {
		return validator.Result{
			Reason: validator.ReasonRootNotMapping,
			Path:   "$",
			Kind:   models.KindNull,
			Nodes:  1,
		}, nil
	}
	return validator.New(ctx.Config.ValidatorOptions()).Check(ir.Root)
}

// parseInput reads a document from file or stdin
func parseInput(ctx *Context) (models.IntermediateRepresentation, error) {
	format := parser.FormatAuto
	if ctx.Config != nil {
		format = ctx.Config.Input.Format
	}

	if CLI.Input != "" {
		return parser.ParseFile(CLI.Input, format)
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput(format)
		}
		return models.IntermediateRepresentation{}, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError("failed to read from stdin", err)
	}

	if len(data) == 0 {
		return models.IntermediateRepresentation{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return parser.ParseBytes(data, format)
}

// writeOutput writes the report to file or stdout
func writeOutput(report string) error {
	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(report), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		return nil
	}

	_, err := fmt.Println(strings.TrimSpace(report))
	if err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste a
// document and signal completion with Ctrl+D (EOF)
func readInteractiveInput(format string) (models.IntermediateRepresentation, error) {
	fmt.Fprintln(os.Stderr, "jsonshape interactive mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON or YAML below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var builder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		builder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.IntermediateRepresentation{}, errors.NewInputError("error reading input", err)
		}
	}

	data := builder.String()
	if strings.TrimSpace(data) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nChecking document...")
	return parser.ParseBytes([]byte(data), format)
}
