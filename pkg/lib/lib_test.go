package lib_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/cirun/pkg/lib"
)

func TestClientRun(t *testing.T) {
	tests := map[string]struct {
		cfg        lib.Config
		pipeline   lib.Pipeline
		expSuccess bool
		expPhases  int
		expOut     string
	}{
		"A passing pipeline should run both phases": {
			pipeline: lib.Pipeline{
				Fix:   lib.Phase{Name: "Fix", Tasks: []lib.Task{{Name: "fix", Command: []string{"true"}}}},
				Check: lib.Phase{Name: "Check", Tasks: []lib.Task{{Name: "check", Command: []string{"true"}}}},
			},
			expSuccess: true,
			expPhases:  2,
			expOut:     "🎉 All CI tasks passed!",
		},

		"Config env should reach the tasks": {
			cfg: lib.Config{Env: map[string]string{"CIRUN_LIB_TEST": "yes"}},
			pipeline: lib.Pipeline{
				Check: lib.Phase{Name: "Check", Tasks: []lib.Task{
					{Name: "env", Command: []string{"sh", "-c", `test "$CIRUN_LIB_TEST" = yes`}},
				}},
			},
			expSuccess: true,
			expPhases:  2,
			expOut:     "✅ env (",
		},

		"A failing check should fail the pipeline": {
			pipeline: lib.Pipeline{
				Check: lib.Phase{Name: "Check", Tasks: []lib.Task{{Name: "check", Command: []string{"false"}}}},
			},
			expSuccess: false,
			expPhases:  2,
			expOut:     "Check phase failed.",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			test.cfg.Stdout = &out

			client, err := lib.New(test.cfg)
			require.NoError(t, err)

			res, err := client.Run(context.Background(), test.pipeline)
			require.NoError(t, err)

			assert.Equal(t, test.expSuccess, res.Success)
			assert.Len(t, res.Phases, test.expPhases)
			assert.NotEmpty(t, res.ID)
			assert.Contains(t, out.String(), test.expOut)
		})
	}
}

func TestLoadPipeline(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "pipeline.yaml")
	require.NoError(t, os.WriteFile(valid, []byte(`check:
  tasks:
    - name: Tests
      command: [make, test]
`), 0o644))

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte(`check:
  tasks:
    - name: Tests
`), 0o644))

	p, err := lib.LoadPipeline(context.Background(), valid)
	require.NoError(t, err)
	assert.Equal(t, "Auto Fix Phase", p.Fix.Name)
	assert.Equal(t, []lib.Task{{Name: "Tests", Command: []string{"make", "test"}}}, p.Check.Tasks)

	_, err = lib.LoadPipeline(context.Background(), invalid)
	assert.True(t, lib.IsNotValid(err))
	assert.True(t, strings.Contains(err.Error(), "command is required"))
}

func TestLoadPipelineFS(t *testing.T) {
	fsys := fstest.MapFS{
		"ci/pipeline.toml": &fstest.MapFile{Data: []byte(`
[fix]
name = "Fix"

[[fix.tasks]]
name = "Format"
command = ["make", "fmt"]
`)},
	}

	p, err := lib.LoadPipelineFS(context.Background(), fsys, "ci/pipeline.toml")
	require.NoError(t, err)
	assert.Equal(t, "Fix", p.Fix.Name)
	assert.Equal(t, []lib.Task{{Name: "Format", Command: []string{"make", "fmt"}}}, p.Fix.Tasks)
	assert.Equal(t, "Check Phase", p.Check.Name)

	_, err = lib.LoadPipelineFS(context.Background(), fsys, "ci/missing.toml")
	assert.True(t, lib.IsNotFound(err))
	assert.False(t, lib.IsNotValid(err))
}
