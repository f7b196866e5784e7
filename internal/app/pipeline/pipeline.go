package pipeline

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/cirun/internal/log"
	"github.com/slok/cirun/internal/model"
	"github.com/slok/cirun/internal/printer"
)

const (
	fixFailedMsg   = "Fix phase failed. Stopping."
	checkFailedMsg = "Check phase failed."
	successMsg     = "\n🎉 All CI tasks passed!"
)

// PhaseExecutor runs all the tasks of a phase.
type PhaseExecutor interface {
	Run(ctx context.Context, phase model.Phase) (*model.PhaseResult, error)
}

// ServiceConfig is the configuration for the pipeline service.
type ServiceConfig struct {
	PhaseExecutor PhaseExecutor
	Printer       printer.Printer
	Logger        log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.PhaseExecutor == nil {
		return fmt.Errorf("phase executor is required")
	}
	if c.Printer == nil {
		return fmt.Errorf("printer is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Pipeline"})
	return nil
}

// Service runs the fix phase and then the check phase, stopping at the first failing one.
type Service struct {
	phaseExecutor PhaseExecutor
	printer       printer.Printer
	logger        log.Logger
}

// NewService creates a new pipeline service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		phaseExecutor: cfg.PhaseExecutor,
		printer:       cfg.Printer,
		logger:        cfg.Logger,
	}, nil
}

type step struct {
	phase     model.Phase
	failedMsg string
}

// Run runs the pipeline.
//
// A failed phase is not an error, it is reported with an unsuccessful result. Errors
// are returned when the pipeline can't continue (e.g. context cancelled between phases).
func (s *Service) Run(ctx context.Context, p model.Pipeline) (*model.PipelineResult, error) {
	runID := ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
	ctx = s.logger.SetValuesOnCtx(ctx, log.Kv{"run-id": runID})
	logger := s.logger.WithCtxValues(ctx)

	// Fixing always goes first so the checks validate the fixed code.
	steps := []step{
		{phase: p.Fix, failedMsg: fixFailedMsg},
		{phase: p.Check, failedMsg: checkFailedMsg},
	}

	result := &model.PipelineResult{ID: runID}
	for _, st := range steps {
		// In-flight tasks are never cancelled, but a new phase doesn't start after a termination request.
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("pipeline stopped before %q phase: %w", st.phase.Name, err)
		}

		logger.Debugf("Running %q phase", st.phase.Name)
		res, err := s.phaseExecutor.Run(ctx, st.phase)
		if err != nil {
			return nil, fmt.Errorf("could not run %q phase: %w", st.phase.Name, err)
		}
		result.Phases = append(result.Phases, *res)

		if !res.Success {
			logger.Warningf("Phase %q failed with %d failed tasks", st.phase.Name, len(res.Failures))
			result.FailedPhase = st.phase.Name
			if err := s.printer.PrintMessage(st.failedMsg); err != nil {
				return nil, fmt.Errorf("could not print message: %w", err)
			}
			return result, nil
		}
	}

	result.Success = true
	if err := s.printer.PrintMessage(successMsg); err != nil {
		return nil, fmt.Errorf("could not print message: %w", err)
	}
	logger.Infof("Pipeline finished successfully")

	return result, nil
}
