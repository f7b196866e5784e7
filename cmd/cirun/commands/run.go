package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/cirun/internal/app/phase"
	"github.com/slok/cirun/internal/app/pipeline"
	"github.com/slok/cirun/internal/conventions"
	"github.com/slok/cirun/internal/model"
	"github.com/slok/cirun/internal/printer"
	"github.com/slok/cirun/internal/runner/process"
	"github.com/slok/cirun/internal/storage"
	"github.com/slok/cirun/internal/storage/io"
	utilsenv "github.com/slok/cirun/internal/utils/env"
)

type RunCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	// PipelineRepo loads pipeline files, paths are absolute without the leading slash.
	PipelineRepo storage.PipelineRepository

	pipelineFile string
	envSpecs     []string
	workingDir   string
	maxParallel  int
}

// NewRunCommand returns the run command.
func NewRunCommand(rootCmd *RootCommand, app *kingpin.Application) *RunCommand {
	c := &RunCommand{
		rootCmd:      rootCmd,
		PipelineRepo: io.NewPipelineFileRepository(os.DirFS("/")),
	}

	c.Cmd = app.Command("run", "Run the CI pipeline: the fix phase and then the check phase.").Default()
	c.Cmd.Flag("file", "Pipeline definition file (YAML or TOML), the built-in pipeline is used if missing.").Short('f').StringVar(&c.pipelineFile)
	c.Cmd.Flag("env", "Environment variables for all tasks (KEY=VALUE or KEY from current environment). Can be repeated.").Short('e').StringsVar(&c.envSpecs)
	c.Cmd.Flag("workdir", "Working directory for the tasks.").Short('w').StringVar(&c.workingDir)
	c.Cmd.Flag("max-parallel", "Maximum tasks running at the same time in a phase (0 runs all the phase tasks at once).").Default("0").IntVar(&c.maxParallel)

	return c
}

func (c RunCommand) Name() string { return c.Cmd.FullCommand() }

func (c RunCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	pl, err := c.loadPipeline(ctx)
	if err != nil {
		return err
	}

	cliEnv, err := utilsenv.ParseSpecs(c.envSpecs)
	if err != nil {
		return fmt.Errorf("invalid --env value: %w", err)
	}

	r, err := process.NewRunner(process.RunnerConfig{
		WorkingDir: c.workingDir,
		Env:        cliEnv,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create runner: %w", err)
	}

	p := printer.NewTextPrinter(c.rootCmd.Stdout)

	phaseSvc, err := phase.NewService(phase.ServiceConfig{
		Runner:      r,
		Printer:     p,
		MaxParallel: c.maxParallel,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("could not create phase service: %w", err)
	}

	svc, err := pipeline.NewService(pipeline.ServiceConfig{
		PhaseExecutor: phaseSvc,
		Printer:       p,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("could not create pipeline service: %w", err)
	}

	res, err := svc.Run(ctx, pl)
	if err != nil {
		return fmt.Errorf("could not run pipeline: %w", err)
	}

	if !res.Success {
		return fmt.Errorf("%q: %w", res.FailedPhase, model.ErrPhaseFailed)
	}

	return nil
}

func (c RunCommand) loadPipeline(ctx context.Context) (model.Pipeline, error) {
	if c.pipelineFile == "" {
		c.rootCmd.Logger.Debugf("Using built-in pipeline")
		return conventions.DefaultPipeline(), nil
	}

	path, err := filepath.Abs(c.pipelineFile)
	if err != nil {
		return model.Pipeline{}, fmt.Errorf("could not resolve pipeline file path: %w", err)
	}

	pl, err := c.PipelineRepo.GetPipeline(ctx, path[1:])
	if err != nil {
		return model.Pipeline{}, fmt.Errorf("could not load pipeline: %w", err)
	}

	return pl, nil
}
