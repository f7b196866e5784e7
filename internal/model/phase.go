package model

// Phase is a named set of tasks that run concurrently.
// Tasks are ordered for display only.
type Phase struct {
	Name  string
	Tasks []Task
}

// Failure holds the captured output of a failed task.
type Failure struct {
	Name   string
	Output string
}

// PhaseResult is the aggregated result of a phase once every task has finished.
type PhaseResult struct {
	Name    string
	Success bool
	// Outcomes are stored in completion order.
	Outcomes []Outcome
	// Failures are stored in completion order and only contain failed tasks.
	Failures []Failure
}

// Pipeline is the fixed two phase CI pipeline, fix tasks always run before check tasks.
type Pipeline struct {
	Fix   Phase
	Check Phase
}

// PipelineResult is the result of a pipeline run.
type PipelineResult struct {
	// ID identifies the run.
	ID      string
	Success bool
	// Phases contains the results of the phases that ran, in execution order.
	Phases []PhaseResult
	// FailedPhase is the name of the phase that stopped the pipeline, if any.
	FailedPhase string
}
