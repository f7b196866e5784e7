package phase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/slok/cirun/internal/log"
	"github.com/slok/cirun/internal/model"
	"github.com/slok/cirun/internal/printer"
	"github.com/slok/cirun/internal/runner"
)

// ServiceConfig is the configuration for the phase service.
type ServiceConfig struct {
	Runner  runner.Runner
	Printer printer.Printer
	// MaxParallel limits the tasks running at the same time, 0 runs all the
	// phase tasks at once.
	MaxParallel int
	Logger      log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Runner == nil {
		return fmt.Errorf("runner is required")
	}
	if c.Printer == nil {
		return fmt.Errorf("printer is required")
	}
	if c.MaxParallel < 0 {
		return fmt.Errorf("max parallel must be 0 or positive, got: %d", c.MaxParallel)
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Phase"})
	return nil
}

// Service runs all the tasks of a phase concurrently and reports them as they finish.
type Service struct {
	runner      runner.Runner
	printer     printer.Printer
	maxParallel int
	logger      log.Logger
}

// NewService creates a new phase service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		runner:      cfg.Runner,
		printer:     cfg.Printer,
		maxParallel: cfg.MaxParallel,
		logger:      cfg.Logger,
	}, nil
}

// Run executes every task of the phase and waits for all of them.
//
// A failed task never stops its siblings. Status lines are printed in completion
// order and, if any task failed, the failure details are printed once all tasks
// have finished. The returned error is only set when the report can't be printed,
// failed tasks are reported through the result.
func (s *Service) Run(ctx context.Context, phase model.Phase) (*model.PhaseResult, error) {
	logger := s.logger.WithCtxValues(ctx).WithValues(log.Kv{"phase": phase.Name})

	if err := s.printer.PrintPhaseHeader(phase.Name); err != nil {
		return nil, fmt.Errorf("could not print phase header: %w", err)
	}

	logger.Debugf("Launching %d tasks", len(phase.Tasks))
	outcomes := s.launch(ctx, phase.Tasks)

	result := &model.PhaseResult{
		Name:     phase.Name,
		Success:  true,
		Outcomes: make([]model.Outcome, 0, len(phase.Tasks)),
	}

	// Drain every outcome even if printing fails, a phase is only complete when all its tasks are.
	var printErr error
	for outcome := range outcomes {
		result.Outcomes = append(result.Outcomes, outcome)
		if !outcome.Success {
			result.Success = false
			result.Failures = append(result.Failures, model.Failure{Name: outcome.Name, Output: outcome.Output})
		}

		logger.Debugf("Task %q finished in %s (success: %t)", outcome.Name, outcome.Duration, outcome.Success)

		if err := s.printer.PrintOutcome(outcome); err != nil && printErr == nil {
			printErr = err
		}
	}

	if printErr != nil {
		return nil, fmt.Errorf("could not print task status: %w", printErr)
	}

	if !result.Success {
		if err := s.printer.PrintFailureDetails(result.Failures); err != nil {
			return nil, fmt.Errorf("could not print failure details: %w", err)
		}
	}

	logger.Infof("Phase finished: %d/%d tasks succeeded", len(result.Outcomes)-len(result.Failures), len(result.Outcomes))

	return result, nil
}

// launch starts the tasks and returns a channel that receives the outcomes as tasks
// finish. The channel is closed once every task has finished.
func (s *Service) launch(ctx context.Context, tasks []model.Task) <-chan model.Outcome {
	// Buffered so finished tasks never wait on the reader.
	outcomes := make(chan model.Outcome, len(tasks))

	var g errgroup.Group
	if s.maxParallel > 0 {
		g.SetLimit(s.maxParallel)
	}

	// With a limit g.Go blocks, launching from a goroutine lets the caller read outcomes meanwhile.
	go func() {
		for _, task := range tasks {
			task := task
			g.Go(func() error {
				outcomes <- s.runner.Run(ctx, task)
				return nil
			})
		}

		_ = g.Wait()
		close(outcomes)
	}()

	return outcomes
}
