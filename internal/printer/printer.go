package printer

import "github.com/slok/cirun/internal/model"

// Printer knows how to print the CI run report.
type Printer interface {
	PrintPhaseHeader(name string) error
	PrintOutcome(outcome model.Outcome) error
	PrintFailureDetails(failures []model.Failure) error
	PrintRuleViolations(violations []model.RuleViolation) error
	PrintMessage(msg string) error
}
