package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/cirun/internal/conventions"
	"github.com/slok/cirun/internal/model"
	"github.com/slok/cirun/internal/printer"
	"github.com/slok/cirun/internal/rules"
)

type CheckRulesCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	dir string
}

// NewCheckRulesCommand returns the check-rules command.
func NewCheckRulesCommand(rootCmd *RootCommand, app *kingpin.Application) *CheckRulesCommand {
	c := &CheckRulesCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("check-rules", "Check TypeScript sources for forbidden patterns (explicit any, @ts-ignore, @ts-nocheck).")
	c.Cmd.Arg("dir", "Source directory to scan.").Default(conventions.RulesSourceDir).StringVar(&c.dir)

	return c
}

func (c CheckRulesCommand) Name() string { return c.Cmd.FullCommand() }

func (c CheckRulesCommand) Run(ctx context.Context) error {
	checker, err := rules.NewChecker(rules.CheckerConfig{
		FS:          os.DirFS(c.dir),
		DisplayRoot: c.dir,
		Logger:      c.rootCmd.Logger,
	})
	if err != nil {
		return fmt.Errorf("could not create rule checker: %w", err)
	}

	violations, err := checker.Check(ctx)
	if err != nil {
		return fmt.Errorf("could not check rules: %w", err)
	}

	p := printer.NewTextPrinter(c.rootCmd.Stdout)
	if !model.HasViolations(violations) {
		return p.PrintMessage("No TS rule violations found.")
	}

	if err := p.PrintRuleViolations(violations); err != nil {
		return fmt.Errorf("could not print violations: %w", err)
	}

	return fmt.Errorf("%d rule violations found: %w", len(violations), model.ErrNotValid)
}
