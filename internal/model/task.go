package model

import (
	"fmt"
	"time"
)

// Task is a named external command.
type Task struct {
	// Name is the display name used on status lines and failure details.
	Name string
	// Command is the argument vector, the first element is the program.
	// It is never interpreted by a shell.
	Command []string
	// Env contains extra environment variables for this task (optional).
	Env map[string]string
}

// Validate checks the task can be executed. The name is only used for display,
// so an empty one is allowed.
func (t Task) Validate() error {
	if len(t.Command) == 0 || t.Command[0] == "" {
		return fmt.Errorf("task %q command is required: %w", t.Name, ErrNotValid)
	}
	return nil
}

// Outcome is the result of running a single task.
type Outcome struct {
	Name    string
	Success bool
	// Output is the combined standard output and standard error.
	Output   string
	Duration time.Duration
}
