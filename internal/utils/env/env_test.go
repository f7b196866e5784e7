package env_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/cirun/internal/utils/env"
)

func TestParseSpecs(t *testing.T) {
	t.Setenv("CIRUN_FROM_HOST", "host-value")

	tests := map[string]struct {
		specs  []string
		expEnv map[string]string
		expErr bool
	}{
		"KEY=VALUE should parse": {
			specs:  []string{"FOO=bar"},
			expEnv: map[string]string{"FOO": "bar"},
		},
		"KEY= should parse as empty value": {
			specs:  []string{"FOO="},
			expEnv: map[string]string{"FOO": ""},
		},
		"KEY should inherit from host": {
			specs:  []string{"CIRUN_FROM_HOST"},
			expEnv: map[string]string{"CIRUN_FROM_HOST": "host-value"},
		},
		"Later entries should override earlier ones": {
			specs:  []string{"FOO=one", "FOO=two"},
			expEnv: map[string]string{"FOO": "two"},
		},
		"Missing inherited var should fail": {
			specs:  []string{"CIRUN_DOES_NOT_EXIST"},
			expErr: true,
		},
		"Invalid key should fail": {
			specs:  []string{"1INVALID=value"},
			expErr: true,
		},
		"Empty spec should fail": {
			specs:  []string{""},
			expErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := env.ParseSpecs(tc.specs)

			if tc.expErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expEnv, got)
		})
	}
}

func TestMergeMaps(t *testing.T) {
	got := env.MergeMaps(
		map[string]string{"A": "base", "B": "base"},
		map[string]string{"B": "override", "C": "override"},
	)

	assert.Equal(t, map[string]string{"A": "base", "B": "override", "C": "override"}, got)
	assert.Equal(t, map[string]string{}, env.MergeMaps(nil, nil))
}

func TestEnviron(t *testing.T) {
	got := env.Environ([]string{"PATH=/bin", "B=host"}, map[string]string{"B": "task", "A": "task"})

	assert.Equal(t, []string{"PATH=/bin", "B=host", "A=task", "B=task"}, got)
}
