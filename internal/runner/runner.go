package runner

import (
	"context"

	"github.com/slok/cirun/internal/model"
)

// Runner runs a single task to completion.
//
// Run blocks until the task process exits and never returns an error: a task that
// can't be launched is reported as a failed outcome carrying the launch error text.
// There is no timeout, a hung process hangs the caller. The task name is only
// used for reporting and may be empty.
type Runner interface {
	Run(ctx context.Context, task model.Task) model.Outcome
}

//go:generate mockery --case underscore --output runnermock --outpkg runnermock --name Runner
