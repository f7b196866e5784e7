package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/cirun/internal/model"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func TestRun(t *testing.T) {
	tests := map[string]struct {
		files  map[string]string
		args   func(dir string) []string
		expErr error
		expOut func(t *testing.T, dir, out string)
	}{
		"Running a passing pipeline should succeed": {
			files: map[string]string{
				"pipeline.yaml": `
fix:
  tasks:
    - name: Fix
      command: [sh, -c, "echo fixing > fixed.txt"]
check:
  tasks:
    - name: Check
      command: [sh, -c, "test \"$CIRUN_E2E\" = yes && cat fixed.txt"]
`,
			},
			args: func(dir string) []string {
				return []string{"cirun", "run", "-f", filepath.Join(dir, "pipeline.yaml"), "-w", dir, "-e", "CIRUN_E2E=yes"}
			},
			expOut: func(t *testing.T, dir, out string) {
				assert.Contains(t, out, "--- Auto Fix Phase ---\n✅ Fix (")
				assert.Contains(t, out, "--- Check Phase ---\n✅ Check (")
				assert.True(t, strings.HasSuffix(out, "🎉 All CI tasks passed!\n"))
			},
		},

		"Running a failing pipeline should fail with a phase error": {
			files: map[string]string{
				"pipeline.toml": `
[[check.tasks]]
name = "Broken"
command = ["sh", "-c", "echo broken; exit 1"]
`,
			},
			args: func(dir string) []string {
				return []string{"cirun", "run", "--file", filepath.Join(dir, "pipeline.toml"), "--max-parallel", "1"}
			},
			expErr: model.ErrPhaseFailed,
			expOut: func(t *testing.T, dir, out string) {
				assert.Contains(t, out, "❌ Broken (")
				assert.Contains(t, out, "--- Broken Output ---\nbroken\n")
				assert.True(t, strings.HasSuffix(out, "Check phase failed.\n"))
			},
		},

		"Checking clean sources should succeed": {
			files: map[string]string{
				"src/main.ts": "const a: number = 1;\n",
			},
			args: func(dir string) []string {
				return []string{"cirun", "check-rules", filepath.Join(dir, "src")}
			},
			expOut: func(t *testing.T, dir, out string) {
				assert.Equal(t, "No TS rule violations found.\n", out)
			},
		},

		"Checking sources with violations should fail": {
			files: map[string]string{
				"src/main.ts": "const a: any = 1;\n",
			},
			args: func(dir string) []string {
				return []string{"cirun", "check-rules", filepath.Join(dir, "src")}
			},
			expErr: model.ErrNotValid,
			expOut: func(t *testing.T, dir, out string) {
				assert.Equal(t, filepath.Join(dir, "src", "main.ts")+":1: Found explicit 'any'\n\nTotal errors found: 1\n", out)
			},
		},

		"Checking a missing source directory should fail": {
			args: func(dir string) []string {
				return []string{"cirun", "check-rules", filepath.Join(dir, "src")}
			},
			expErr: model.ErrNotFound,
			expOut: func(t *testing.T, dir, out string) {
				assert.Empty(t, out)
			},
		},

		"Running a missing pipeline file should fail": {
			args: func(dir string) []string {
				return []string{"cirun", "run", "-f", filepath.Join(dir, "missing.yaml")}
			},
			expErr: model.ErrNotFound,
			expOut: func(t *testing.T, dir, out string) {
				assert.Empty(t, out)
			},
		},

		"Version should be printed": {
			args: func(dir string) []string { return []string{"cirun", "version"} },
			expOut: func(t *testing.T, dir, out string) {
				assert.Equal(t, "dev\n", out)
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			for p, data := range test.files {
				writeFile(t, filepath.Join(dir, p), data)
			}

			var stdout, stderr bytes.Buffer
			err := Run(context.Background(), test.args(dir), &bytes.Buffer{}, &stdout, &stderr)

			if test.expErr != nil {
				assert.ErrorIs(t, err, test.expErr)
			} else {
				assert.NoError(t, err)
			}
			test.expOut(t, dir, stdout.String())
		})
	}
}

func TestRunInvalidArgs(t *testing.T) {
	err := Run(context.Background(), []string{"cirun", "run", "--max-parallel", "-1"}, &bytes.Buffer{}, &bytes.Buffer{}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRunTerminationSignal(t *testing.T) {
	tests := map[string]struct {
		fixCmd string
	}{
		"A signal during a failing phase should fail the run": {
			fixCmd: "sleep 0.5; echo broken; exit 1",
		},

		"A signal during a passing phase should fail the run": {
			fixCmd: "sleep 0.5",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			p := filepath.Join(dir, "pipeline.yaml")
			writeFile(t, p, `
fix:
  tasks:
    - name: Fix
      command: [sh, -c, "`+test.fixCmd+`"]
check:
  tasks:
    - name: Check
      command: [touch, check-ran]
`)

			go func() {
				time.Sleep(150 * time.Millisecond)
				_ = syscall.Kill(syscall.Getpid(), syscall.SIGINT)
			}()

			var stdout bytes.Buffer
			err := Run(context.Background(), []string{"cirun", "run", "-f", p, "-w", dir}, &bytes.Buffer{}, &stdout, &bytes.Buffer{})

			require.Error(t, err)
			assert.Contains(t, err.Error(), "termination signal received")
			assert.Contains(t, stdout.String(), "--- Auto Fix Phase ---\n")
			assert.NotContains(t, stdout.String(), "--- Check Phase ---")
			assert.NoFileExists(t, filepath.Join(dir, "check-ran"))
		})
	}
}
