// Package runner wires loading, selection, generation and formatting into
// jobs, and runs batches of jobs concurrently.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/slayercode1/Convert-Json-To-Typescript/internal/config"
	"github.com/slayercode1/Convert-Json-To-Typescript/internal/errors"
	"github.com/slayercode1/Convert-Json-To-Typescript/internal/fetch"
	"github.com/slayercode1/Convert-Json-To-Typescript/internal/formatter"
	"github.com/slayercode1/Convert-Json-To-Typescript/internal/generator"
	"github.com/slayercode1/Convert-Json-To-Typescript/internal/models"
	"github.com/slayercode1/Convert-Json-To-Typescript/internal/parser"
	"github.com/slayercode1/Convert-Json-To-Typescript/internal/selector"
)

// StdinSource names standard input as a job source.
const StdinSource = "-"

// Job is one document to convert.
type Job struct {
	// Source is a file path, an http(s) URL, or "-" (or "") for stdin.
	Source string
	// Name is the interface name; empty means the configured default.
	Name string
}

// Result is the outcome of a successful job.
type Result struct {
	Source      string
	Name        string
	Declaration string
	// Pretty is the selected source JSON, pretty-printed. Only set when
	// output.show_source is enabled.
	Pretty string
}

// JobError ties a failure to the source that caused it.
type JobError struct {
	Source string
	Err    error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("%s: %v", displaySource(e.Source), e.Err)
}

func (e *JobError) Unwrap() error {
	return e.Err
}

// Runner executes jobs against a fixed configuration. A Runner is safe for
// concurrent use as long as at most one job reads stdin.
type Runner struct {
	cfg       *config.Config
	client    *fetch.Client
	generator *generator.Generator
	formatter *formatter.Formatter
	selector  *selector.Selector
	stdin     io.Reader
}

// Option is a functional option for configuring the Runner.
type Option func(*Runner)

// WithStdin sets the reader used for the "-" source.
func WithStdin(r io.Reader) Option {
	return func(rn *Runner) {
		rn.stdin = r
	}
}

// WithFetchClient replaces the fetch client built from the config.
func WithFetchClient(c *fetch.Client) Option {
	return func(rn *Runner) {
		rn.client = c
	}
}

// New creates a Runner. It fails when the configured selection expression
// does not compile.
func New(cfg *config.Config, opts ...Option) (*Runner, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.NewInputError("invalid configuration", err)
	}

	sel, err := selector.New(cfg.Select)
	if err != nil {
		return nil, err
	}

	rn := &Runner{
		cfg: cfg,
		client: fetch.New(
			fetch.WithTimeout(cfg.Fetch.Timeout),
			fetch.WithUserAgent(cfg.Fetch.UserAgent),
			fetch.WithMaxBodyBytes(cfg.Fetch.MaxBodyBytes),
		),
		generator: generator.NewGenerator(),
		formatter: formatter.NewFormatterWithIndent(cfg.Generation.IndentSize),
		selector:  sel,
	}
	for _, opt := range opts {
		opt(rn)
	}
	return rn, nil
}

// Run converts a single job.
func (r *Runner) Run(ctx context.Context, job Job) (Result, error) {
	start := time.Now()

	value, err := r.load(ctx, job.Source)
	if err != nil {
		return Result{}, &JobError{Source: job.Source, Err: err}
	}

	selected, err := r.selector.Apply(value)
	if err != nil {
		return Result{}, &JobError{Source: job.Source, Err: err}
	}

	name := r.cfg.InterfaceNameFor(job.Name)
	declaration, err := r.generator.Generate(selected, name, r.generatorOptions())
	if err != nil {
		return Result{}, &JobError{Source: job.Source, Err: err}
	}

	result := Result{
		Source:      job.Source,
		Name:        name,
		Declaration: declaration,
	}
	if r.cfg.Output.ShowSource {
		pretty, err := r.formatter.FormatJSON(selected)
		if err != nil {
			return Result{}, &JobError{Source: job.Source, Err: errors.NewOutputError("failed to format source JSON", err)}
		}
		result.Pretty = pretty
	}

	slog.Debug("job completed",
		slog.String("source", displaySource(job.Source)),
		slog.String("name", name),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return result, nil
}

// RunAll converts jobs concurrently, at most cfg.Concurrency at a time.
// Results are returned in job order. The first failure cancels the jobs that
// have not started yet and is returned.
// With more than one job, jobs without a name are named after their source.
func (r *Runner) RunAll(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)

	for i, job := range jobs {
		i, job := i, job
		if job.Name == "" && len(jobs) > 1 {
			job.Name = config.NameFromSource(job.Source)
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.Run(ctx, job)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Runner) generatorOptions() generator.Options {
	return generator.Options{
		UnwrapEnvelope: r.cfg.Generation.UnwrapData,
		IndentWidth:    r.cfg.Generation.IndentSize,
		DetectDates:    r.cfg.Generation.DetectDates,
		CacheSize:      r.cfg.Generation.CacheSize,
	}
}

// load reads and parses the document behind source.
func (r *Runner) load(ctx context.Context, source string) (models.JSONValue, error) {
	var (
		ir  models.IntermediateRepresentation
		err error
	)

	switch {
	case source == "" || source == StdinSource:
		if r.stdin == nil {
			return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
		}
		ir, err = parser.Parse(r.stdin)
	case fetch.IsURL(source):
		var body []byte
		body, err = r.client.Fetch(ctx, source)
		if err != nil {
			return nil, err
		}
		ir, err = parser.ParseBytes(body)
	default:
		ir, err = parser.ParseFile(source)
	}
	if err != nil {
		return nil, err
	}
	return ir.Root, nil
}

func displaySource(source string) string {
	if source == "" || source == StdinSource {
		return "stdin"
	}
	return source
}
