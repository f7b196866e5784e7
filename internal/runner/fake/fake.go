package fake

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/slok/cirun/internal/log"
	"github.com/slok/cirun/internal/model"
)

// Result is the scripted result of a task.
type Result struct {
	Success bool
	Output  string
	// Delay is how long the task takes before finishing.
	Delay time.Duration
}

// RunnerConfig is the configuration for the fake runner.
type RunnerConfig struct {
	// Results by task name. Tasks not present finish successfully without output.
	Results map[string]Result
	Logger  log.Logger
}

func (c *RunnerConfig) defaults() error {
	if c.Results == nil {
		c.Results = map[string]Result{}
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "runner.Fake"})
	return nil
}

// Runner is a fake implementation of the runner.Runner interface.
// It simulates tasks without launching processes and records what ran.
type Runner struct {
	results  map[string]Result
	launched []string
	inFlight int
	maxIn    int
	mu       sync.Mutex
	logger   log.Logger
}

// NewRunner creates a new fake runner.
func NewRunner(cfg RunnerConfig) (*Runner, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Runner{
		results: cfg.Results,
		logger:  cfg.Logger,
	}, nil
}

// Run simulates the task using its scripted result.
func (r *Runner) Run(ctx context.Context, task model.Task) model.Outcome {
	r.mu.Lock()
	r.launched = append(r.launched, task.Name)
	r.inFlight++
	if r.inFlight > r.maxIn {
		r.maxIn = r.inFlight
	}
	res, ok := r.results[task.Name]
	r.mu.Unlock()

	if !ok {
		res = Result{Success: true}
	}

	start := time.Now()
	time.Sleep(res.Delay)

	r.mu.Lock()
	r.inFlight--
	r.mu.Unlock()

	r.logger.Debugf("Fake task %s finished (success: %t)", task.Name, res.Success)

	return model.Outcome{
		Name:     task.Name,
		Success:  res.Success,
		Output:   res.Output,
		Duration: time.Since(start),
	}
}

// Launched returns the task names that have been run, in launch order.
func (r *Runner) Launched() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string{}, r.launched...)
}

// MaxInFlight returns the maximum number of tasks that were running at the same time.
func (r *Runner) MaxInFlight() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.maxIn
}
