package lib

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/slok/cirun/internal/app/phase"
	"github.com/slok/cirun/internal/app/pipeline"
	"github.com/slok/cirun/internal/conventions"
	"github.com/slok/cirun/internal/log"
	"github.com/slok/cirun/internal/model"
	"github.com/slok/cirun/internal/printer"
	"github.com/slok/cirun/internal/runner/process"
	"github.com/slok/cirun/internal/storage"
	storageio "github.com/slok/cirun/internal/storage/io"
)

// Config configures the SDK client. All fields are optional.
type Config struct {
	// Stdout receives the run report (status lines and failure details).
	// Default: discarded.
	Stdout io.Writer

	// WorkingDir is the directory the tasks run in.
	// Default: the current directory.
	WorkingDir string

	// Env is set on every task on top of the host environment.
	Env map[string]string

	// MaxParallel caps the tasks running at the same time in a phase.
	// Default: 0, every task of a phase runs at once.
	MaxParallel int

	// Logger receives structured log output from the SDK.
	// Default: noop (silent). See the log sub-package for the interface.
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.Stdout == nil {
		c.Stdout = io.Discard
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	return nil
}

// Client is the main SDK entry point to run pipelines.
// A Client is safe for concurrent use, although concurrent runs share Stdout.
type Client struct {
	svc    *pipeline.Service
	logger log.Logger
}

// New creates a new SDK client that runs tasks as local processes.
func New(cfg Config) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	r, err := process.NewRunner(process.RunnerConfig{
		WorkingDir: cfg.WorkingDir,
		Env:        cfg.Env,
		Logger:     cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create runner: %w", err)
	}

	p := printer.NewTextPrinter(cfg.Stdout)
	phaseSvc, err := phase.NewService(phase.ServiceConfig{
		Runner:      r,
		Printer:     p,
		MaxParallel: cfg.MaxParallel,
		Logger:      cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create phase service: %w", err)
	}

	svc, err := pipeline.NewService(pipeline.ServiceConfig{
		PhaseExecutor: phaseSvc,
		Printer:       p,
		Logger:        cfg.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create pipeline service: %w", err)
	}

	return &Client{svc: svc, logger: cfg.Logger}, nil
}

// Run runs the fix phase and, if it succeeds, the check phase.
//
// A failed phase is not an error, check [Result.Success]. Errors are returned
// when the pipeline can't run, e.g. the context is cancelled before a phase starts.
func (c *Client) Run(ctx context.Context, p Pipeline) (*Result, error) {
	res, err := c.svc.Run(ctx, p.toModel())
	if err != nil {
		return nil, err
	}

	return resultFromModel(*res), nil
}

// DefaultPipeline returns the built-in pipeline used by the CLI when no file is given.
func DefaultPipeline() Pipeline {
	return pipelineFromModel(conventions.DefaultPipeline())
}

// LoadPipeline loads a pipeline definition from a YAML (.yaml, .yml) or TOML (.toml) file.
func LoadPipeline(ctx context.Context, path string) (Pipeline, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Pipeline{}, fmt.Errorf("could not resolve pipeline file path: %w", err)
	}

	return loadPipeline(ctx, storageio.NewPipelineFileRepository(os.DirFS("/")), abs[1:])
}

// LoadPipelineFS is like [LoadPipeline] but reads the file from fsys.
func LoadPipelineFS(ctx context.Context, fsys fs.FS, path string) (Pipeline, error) {
	return loadPipeline(ctx, storageio.NewPipelineFileRepository(fsys), path)
}

func loadPipeline(ctx context.Context, repo storage.PipelineRepository, path string) (Pipeline, error) {
	p, err := repo.GetPipeline(ctx, path)
	if err != nil {
		return Pipeline{}, err
	}

	return pipelineFromModel(p), nil
}

// IsNotFound returns true if the error is caused by a missing pipeline file.
func IsNotFound(err error) bool {
	return errors.Is(err, model.ErrNotFound)
}

// IsNotValid returns true if the error is caused by an invalid pipeline definition.
func IsNotValid(err error) bool {
	return errors.Is(err, model.ErrNotValid)
}
