package conventions

import "github.com/slok/cirun/internal/model"

const (
	// FixPhaseName is the default name of the fix phase.
	FixPhaseName = "Auto Fix Phase"
	// CheckPhaseName is the default name of the check phase.
	CheckPhaseName = "Check Phase"

	// RulesSourceDir is the default directory scanned by the rule checker.
	RulesSourceDir = "src"
)

// DefaultPipeline returns the built-in pipeline, every task is a make target.
func DefaultPipeline() model.Pipeline {
	return model.Pipeline{
		// Fix tasks may change the code, they run before any check.
		Fix: model.Phase{
			Name: FixPhaseName,
			Tasks: []model.Task{
				{Name: "TS Fix", Command: []string{"make", "ts-fix-diff"}},
				{Name: "HTML Fix", Command: []string{"make", "html-fix-diff"}},
			},
		},
		Check: model.Phase{
			Name: CheckPhaseName,
			Tasks: []model.Task{
				{Name: "TS Check", Command: []string{"make", "ts-check-diff"}},
				{Name: "HTML Check", Command: []string{"make", "html-check-diff"}},
				{Name: "Type Check", Command: []string{"make", "type-check"}},
				{Name: "Custom Rules", Command: []string{"make", "check-ts-rules"}},
				{Name: "Tests", Command: []string{"make", "test"}},
			},
		},
	}
}
