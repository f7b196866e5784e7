// Package rules implements the source rule checker used as a CI check task.
//
// The checker scans TypeScript sources line by line looking for patterns that are
// forbidden in the code base:
//
//   - Explicit `any` types (`: any`, `as any`).
//   - `@ts-ignore` and `@ts-nocheck` directives.
package rules

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"

	"github.com/slok/cirun/internal/log"
	"github.com/slok/cirun/internal/model"
)

// Rule is a forbidden pattern.
type Rule struct {
	Regexp  *regexp.Regexp
	Message string
}

// DefaultRules are the rules checked when none are configured.
var DefaultRules = []Rule{
	{Regexp: regexp.MustCompile(`(:|as)\s+any\b`), Message: "Found explicit 'any'"},
	{Regexp: regexp.MustCompile(`@ts-(ignore|nocheck)`), Message: "Found @ts-ignore or @ts-nocheck"},
}

// CheckerConfig is the configuration for the rule checker.
type CheckerConfig struct {
	// FS is the source tree to scan.
	FS fs.FS
	// DisplayRoot is prefixed to the reported paths (e.g. the scanned directory).
	DisplayRoot string
	Rules       []Rule
	Logger      log.Logger
}

func (c *CheckerConfig) defaults() error {
	if c.FS == nil {
		return fmt.Errorf("fs is required")
	}
	if len(c.Rules) == 0 {
		c.Rules = DefaultRules
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "rules.Checker"})
	return nil
}

// Checker checks source files against the rules.
type Checker struct {
	fs          fs.FS
	displayRoot string
	rules       []Rule
	logger      log.Logger
}

// NewChecker creates a new rule checker.
func NewChecker(cfg CheckerConfig) (*Checker, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Checker{
		fs:          cfg.FS,
		displayRoot: cfg.DisplayRoot,
		rules:       cfg.Rules,
		logger:      cfg.Logger,
	}, nil
}

// Check scans every checked file and returns the violations found.
// Files that can't be read are reported as violations, a missing source tree
// is a model.ErrNotFound error.
func (c *Checker) Check(ctx context.Context) ([]model.RuleViolation, error) {
	var violations []model.RuleViolation
	files := 0

	err := fs.WalkDir(c.fs, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !isChecked(p) {
			return nil
		}

		files++
		violations = append(violations, c.checkFile(p)...)
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("source directory %q: %w", c.displayRoot, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not scan files: %w", err)
	}

	c.logger.Debugf("Checked %d files, %d files with violations", files, len(model.CountByPath(violations)))

	return violations, nil
}

func (c *Checker) checkFile(p string) []model.RuleViolation {
	displayPath := path.Join(c.displayRoot, p)

	data, err := fs.ReadFile(c.fs, p)
	if err != nil {
		return []model.RuleViolation{{Path: displayPath, Message: fmt.Sprintf("Error reading file: %s", err)}}
	}

	var violations []model.RuleViolation
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		for _, r := range c.rules {
			if r.Regexp.MatchString(line) {
				violations = append(violations, model.RuleViolation{Path: displayPath, Line: i + 1, Message: r.Message})
			}
		}
	}

	return violations
}

// isChecked returns true for TypeScript sources, `.test.ts` files are excluded.
func isChecked(p string) bool {
	switch {
	case strings.HasSuffix(p, ".tsx"):
		return true
	case strings.HasSuffix(p, ".test.ts"):
		return false
	default:
		return strings.HasSuffix(p, ".ts")
	}
}
