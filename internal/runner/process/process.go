package process

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/slok/cirun/internal/log"
	"github.com/slok/cirun/internal/model"
	"github.com/slok/cirun/internal/utils/env"
)

// RunnerConfig is the configuration for the process runner.
type RunnerConfig struct {
	// WorkingDir is the directory the processes run in, empty uses the current one.
	WorkingDir string
	// Env is applied to every task on top of the host environment.
	// Task level env takes precedence.
	Env    map[string]string
	Logger log.Logger
}

func (c *RunnerConfig) defaults() error {
	if c.WorkingDir != "" {
		st, err := os.Stat(c.WorkingDir)
		if err != nil {
			return fmt.Errorf("working dir %q: %w", c.WorkingDir, err)
		}
		if !st.IsDir() {
			return fmt.Errorf("working dir %q is not a directory: %w", c.WorkingDir, model.ErrNotValid)
		}
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "runner.Process"})
	return nil
}

// Runner runs tasks as local OS processes.
type Runner struct {
	workingDir string
	env        map[string]string
	logger     log.Logger
}

// NewRunner creates a new process runner.
func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Runner{
		workingDir: cfg.WorkingDir,
		env:        cfg.Env,
		logger:     cfg.Logger,
	}, nil
}

// Run executes the task command and waits until it exits.
//
// The process is not bound to the context, once launched it always runs to completion.
func (r *Runner) Run(ctx context.Context, task model.Task) model.Outcome {
	logger := r.logger.WithCtxValues(ctx).WithValues(log.Kv{"task": task.Name})

	if err := task.Validate(); err != nil {
		return model.Outcome{Name: task.Name, Output: err.Error()}
	}

	cmd := exec.Command(task.Command[0], task.Command[1:]...)
	cmd.Dir = r.workingDir
	cmd.Env = r.environ(task.Env)

	start := time.Now()
	out, err := cmd.CombinedOutput()
	duration := time.Since(start)

	outcome := model.Outcome{
		Name:     task.Name,
		Success:  err == nil,
		Output:   string(out),
		Duration: duration,
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			logger.Debugf("Task exited with code %d after %s", exitErr.ExitCode(), duration)
			return outcome
		}

		// The process could not be launched, the only diagnostic is the error itself.
		logger.Warningf("Task could not be launched: %s", err)
		if outcome.Output != "" {
			outcome.Output += "\n"
		}
		outcome.Output += err.Error()
		return outcome
	}

	logger.Debugf("Task finished successfully after %s", duration)
	return outcome
}

func (r *Runner) environ(taskEnv map[string]string) []string {
	return env.Environ(os.Environ(), env.MergeMaps(r.env, taskEnv))
}
