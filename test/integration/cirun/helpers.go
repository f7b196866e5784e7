package cirun

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/slok/cirun/test/integration/testutils"
)

// Config holds integration test configuration loaded from environment variables.
type Config struct {
	Binary string
}

func (c *Config) defaults() error {
	if c.Binary == "" {
		return fmt.Errorf("cirun binary is required (CIRUN_INTEGRATION_BINARY)")
	}

	// go test changes the CWD to the test package directory, relative paths would be ambiguous.
	if !filepath.IsAbs(c.Binary) {
		return fmt.Errorf("CIRUN_INTEGRATION_BINARY must be an absolute path, got %q", c.Binary)
	}
	if _, err := os.Stat(c.Binary); err != nil {
		return fmt.Errorf("cirun binary not found at %q: %w", c.Binary, err)
	}

	return nil
}

// NewConfig loads integration test configuration from environment variables.
// If the config is invalid or the activation env var is not set, the test is skipped.
func NewConfig(t *testing.T) Config {
	t.Helper()

	const (
		envActivation = "CIRUN_INTEGRATION"
		envBinary     = "CIRUN_INTEGRATION_BINARY"
	)

	if os.Getenv(envActivation) != "true" {
		t.Skipf("Skipping integration test: %s is not set to 'true'", envActivation)
	}

	c := Config{Binary: os.Getenv(envBinary)}
	if err := c.defaults(); err != nil {
		t.Skipf("Skipping due to invalid config: %s", err)
	}

	return c
}

// RunCmd runs a cirun command inside dir.
func RunCmd(ctx context.Context, config Config, dir string, args ...string) (stdout, stderr []byte, err error) {
	return testutils.RunCirun(ctx, nil, config.Binary, dir, args)
}

// WriteMakefile writes a Makefile in dir with the targets used by the built-in pipeline.
// Each target runs the given recipe, missing targets succeed.
func WriteMakefile(t *testing.T, dir string, recipes map[string]string) {
	t.Helper()

	targets := []string{"ts-fix-diff", "html-fix-diff", "ts-check-diff", "html-check-diff", "type-check", "check-ts-rules", "test"}

	data := ".PHONY: " + strings.Join(targets, " ") + "\n"
	for _, tg := range targets {
		recipe, ok := recipes[tg]
		if !ok {
			recipe = "@true"
		}
		data += fmt.Sprintf("%s:\n\t%s\n", tg, recipe)
	}

	if err := os.WriteFile(filepath.Join(dir, "Makefile"), []byte(data), 0o644); err != nil {
		t.Fatalf("could not write Makefile: %s", err)
	}
}
