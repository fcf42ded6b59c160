package main

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/slayercode1/Convert-Json-To-Typescript/internal/config"
	"github.com/slayercode1/Convert-Json-To-Typescript/internal/errors"
	"github.com/slayercode1/Convert-Json-To-Typescript/internal/formatter"
	"github.com/slayercode1/Convert-Json-To-Typescript/internal/logging"
	"github.com/slayercode1/Convert-Json-To-Typescript/internal/runner"
)

// CLI defines the command-line interface
var CLI struct {
	Sources     []string      `arg:"" optional:"" name:"source" help:"JSON files or http(s) URLs. Reads stdin when omitted or when a source is '-'."`
	Name        string        `help:"Name of the generated interface." short:"n"`
	Unwrap      bool          `help:"Unwrap a {\"data\": ...} envelope, then take the first element of an array." short:"u"`
	Indent      int           `help:"Spaces per indentation level (default 2)."`
	Select      string        `help:"jq expression selecting the value to convert, e.g. '.results[0]'."`
	DetectDates bool          `help:"Type ISO-8601 date strings as Date."`
	PascalCase  bool          `help:"Convert interface names to PascalCase." short:"p"`
	ShowSource  bool          `help:"Print the pretty-printed source JSON before each interface." short:"s"`
	Output      string        `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Config      string        `help:"Path to config file. Searches for .json2ts.yml when not specified." short:"c" type:"path"`
	Debug       bool          `help:"Enable debug logging." short:"d"`
	LogFile     string        `help:"Write logs to a rotating file instead of stderr." type:"path"`
	Timeout     time.Duration `help:"Timeout for URL sources (default 10s)."`
	Concurrency int           `help:"Maximum number of sources processed at once (default 4)." short:"j"`
	Version     bool          `help:"Show version information." short:"v"`
	Interactive bool          `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	// Stdin and Stdout default to the process streams when nil.
	Stdin  io.Reader
	Stdout io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("json2ts"),
		kong.Description("A tool to convert JSON to TypeScript interfaces"),
		kong.UsageOnError(),
	)

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		parser.FatalIfErrorf(err)
	}

	// No arguments at all: paste JSON interactively.
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if CLI.Version {
		fmt.Printf("json2ts version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	closeLog, err := logging.Setup(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error setting up logging: %v\n", err)
		os.Exit(1)
	}

	err = run(&Context{Debug: CLI.Debug, Config: cfg})
	_ = closeLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", describeError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: json2ts --help\n")
		os.Exit(1)
	}
}

// loadConfig merges the config file (explicit or discovered) with CLI flags.
func loadConfig() (*config.Config, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	return config.LoadConfigWithCLI(configPath, config.Overrides{
		InterfaceName: CLI.Name,
		Select:        CLI.Select,
		Unwrap:        CLI.Unwrap,
		IndentSize:    CLI.Indent,
		DetectDates:   CLI.DetectDates,
		PascalCase:    CLI.PascalCase,
		ShowSource:    CLI.ShowSource,
		Timeout:       CLI.Timeout,
		Concurrency:   CLI.Concurrency,
		Debug:         CLI.Debug,
		LogFile:       CLI.LogFile,
	})
}

// run executes the main program logic
func run(ctx *Context) error {
	cfg := ctx.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}

	// 1. Build one job per source
	jobs := make([]runner.Job, 0, len(CLI.Sources))
	needsStdin := len(CLI.Sources) == 0
	for _, source := range CLI.Sources {
		jobs = append(jobs, runner.Job{Source: source})
		if source == runner.StdinSource {
			needsStdin = true
		}
	}
	if len(jobs) == 0 {
		jobs = append(jobs, runner.Job{Source: runner.StdinSource})
	}

	var opts []runner.Option
	if needsStdin {
		stdin, err := stdinReader(ctx)
		if err != nil {
			return err
		}
		opts = append(opts, runner.WithStdin(stdin))
	}

	// 2. Load, select and generate
	rn, err := runner.New(cfg, opts...)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := rn.RunAll(runCtx, jobs)
	if err != nil {
		return err
	}

	// 3. Output the result
	return writeOutput(ctx, results)
}

// stdinReader returns the reader for the "-" source. Piped data is read as
// is; a terminal is only read in interactive mode.
func stdinReader(ctx *Context) (io.Reader, error) {
	if ctx.Stdin != nil {
		return ctx.Stdin, nil
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return nil, errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		if CLI.Interactive {
			return readInteractiveInput(os.Stdin)
		}
		return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	return os.Stdin, nil
}

// render joins the results: declarations are separated by a blank line and,
// with show-source, each is preceded by its pretty-printed JSON.
func render(results []runner.Result) string {
	f := formatter.NewFormatter()

	var sb strings.Builder
	for i, res := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		if res.Pretty != "" {
			sb.WriteString(res.Pretty)
			sb.WriteString("\n\n")
		}
		sb.WriteString(f.FormatDeclaration(res.Declaration))
	}
	return sb.String()
}

// writeOutput writes the generated interfaces to file or stdout
func writeOutput(ctx *Context, results []runner.Result) error {
	code := render(results)

	if CLI.Output != "" {
		err := os.WriteFile(CLI.Output, []byte(code), 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(os.Stderr, "Generated %d interface(s) written to %s\n", len(results), CLI.Output)
		return nil
	}

	out := ctx.Stdout
	if out == nil {
		out = os.Stdout
	}
	if _, err := io.WriteString(out, code); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// describeError adds the failing source to the message when several sources
// were given.
func describeError(err error) string {
	msg := errors.UserFriendlyError(err)
	var jobErr *runner.JobError
	if len(CLI.Sources) > 1 && stderrors.As(err, &jobErr) {
		return fmt.Sprintf("%s (source: %s)", msg, jobErr.Source)
	}
	return msg
}

// readInteractiveInput provides an interactive mode for users to paste JSON
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput(in io.Reader) (io.Reader, error) {
	fmt.Fprintln(os.Stderr, "json2ts Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(in)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		jsonBuilder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewInputError("error reading input", err)
		}
	}

	jsonData := jsonBuilder.String()
	if strings.TrimSpace(jsonData) == "" {
		return nil, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSON...")
	return strings.NewReader(jsonData), nil
}
