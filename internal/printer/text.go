package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/slok/cirun/internal/model"
)

const (
	successMarker = "✅"
	failureMarker = "❌"

	failureDetailsHeader = "=== FAILURE DETAILS ==="
	failureSeparator     = "-----------------------"
)

// TextPrinter prints the report as human readable lines.
type TextPrinter struct {
	writer io.Writer
}

// NewTextPrinter creates a new text printer.
func NewTextPrinter(w io.Writer) *TextPrinter {
	return &TextPrinter{writer: w}
}

// PrintPhaseHeader prints the phase header, an empty name prints nothing.
func (t *TextPrinter) PrintPhaseHeader(name string) error {
	if name == "" {
		return nil
	}

	_, err := fmt.Fprintf(t.writer, "--- %s ---\n", name)
	return err
}

// PrintOutcome prints the status line of a finished task.
func (t *TextPrinter) PrintOutcome(outcome model.Outcome) error {
	marker := successMarker
	if !outcome.Success {
		marker = failureMarker
	}

	_, err := fmt.Fprintf(t.writer, "%s %s (%s)\n", marker, outcome.Name, FormatDuration(outcome.Duration))
	return err
}

// PrintFailureDetails prints the captured output of each failed task.
func (t *TextPrinter) PrintFailureDetails(failures []model.Failure) error {
	if len(failures) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", failureDetailsHeader)
	for _, f := range failures {
		fmt.Fprintf(&b, "--- %s Output ---\n", f.Name)
		fmt.Fprintln(&b, strings.TrimSpace(f.Output))
		fmt.Fprintln(&b, failureSeparator)
	}

	// Single write so a failure block is never split.
	_, err := io.WriteString(t.writer, b.String())
	return err
}

// PrintRuleViolations prints one line per violation followed by the total.
func (t *TextPrinter) PrintRuleViolations(violations []model.RuleViolation) error {
	if len(violations) == 0 {
		return nil
	}

	var b strings.Builder
	for _, v := range violations {
		// Violations without line affect the whole file.
		if v.Line == 0 {
			fmt.Fprintf(&b, "%s: %s\n", v.Path, v.Message)
			continue
		}
		fmt.Fprintf(&b, "%s:%d: %s\n", v.Path, v.Line, v.Message)
	}
	fmt.Fprintf(&b, "\nTotal errors found: %d\n", len(violations))

	_, err := io.WriteString(t.writer, b.String())
	return err
}

// PrintMessage prints a simple text message.
func (t *TextPrinter) PrintMessage(msg string) error {
	_, err := fmt.Fprintln(t.writer, msg)
	return err
}
