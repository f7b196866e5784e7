package lib

import (
	"time"

	"github.com/slok/cirun/internal/model"
)

// Task is a named external command.
type Task struct {
	// Name is shown on the status line and failure details of the task.
	Name string
	// Command is the argument vector, the first element is the program.
	Command []string
	// Env contains extra environment variables for this task.
	Env map[string]string
}

// Phase is a named set of tasks that run concurrently.
type Phase struct {
	// Name is printed as the phase header, empty prints no header.
	Name  string
	Tasks []Task
}

// Pipeline is the two phase pipeline, fix tasks always run before check tasks.
type Pipeline struct {
	Fix   Phase
	Check Phase
}

// TaskResult is the result of a single task.
type TaskResult struct {
	Name     string
	Success  bool
	Output   string
	Duration time.Duration
}

// PhaseResult is the result of a phase. Tasks are in completion order.
type PhaseResult struct {
	Name    string
	Success bool
	Tasks   []TaskResult
}

// Result is the result of a pipeline run.
type Result struct {
	// ID is the unique identifier (ULID) of the run.
	ID      string
	Success bool
	// Phases that ran, in execution order. A phase after a failed one is never run.
	Phases []PhaseResult
	// FailedPhase is the name of the phase that stopped the pipeline.
	FailedPhase string
}

func (p Pipeline) toModel() model.Pipeline {
	return model.Pipeline{
		Fix:   p.Fix.toModel(),
		Check: p.Check.toModel(),
	}
}

func (p Phase) toModel() model.Phase {
	m := model.Phase{Name: p.Name}
	for _, t := range p.Tasks {
		m.Tasks = append(m.Tasks, model.Task{Name: t.Name, Command: t.Command, Env: t.Env})
	}
	return m
}

func pipelineFromModel(m model.Pipeline) Pipeline {
	return Pipeline{
		Fix:   phaseFromModel(m.Fix),
		Check: phaseFromModel(m.Check),
	}
}

func phaseFromModel(m model.Phase) Phase {
	p := Phase{Name: m.Name}
	for _, t := range m.Tasks {
		p.Tasks = append(p.Tasks, Task{Name: t.Name, Command: t.Command, Env: t.Env})
	}
	return p
}

func resultFromModel(m model.PipelineResult) *Result {
	r := &Result{
		ID:          m.ID,
		Success:     m.Success,
		FailedPhase: m.FailedPhase,
	}

	for _, ph := range m.Phases {
		pr := PhaseResult{Name: ph.Name, Success: ph.Success}
		for _, o := range ph.Outcomes {
			pr.Tasks = append(pr.Tasks, TaskResult{
				Name:     o.Name,
				Success:  o.Success,
				Output:   o.Output,
				Duration: o.Duration,
			})
		}
		r.Phases = append(r.Phases, pr)
	}

	return r
}
