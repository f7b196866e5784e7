package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/cirun/internal/model"
)

func TestTaskValidate(t *testing.T) {
	tests := map[string]struct {
		task   model.Task
		expErr bool
	}{
		"A task with name and command should be valid": {
			task: model.Task{Name: "Tests", Command: []string{"make", "test"}},
		},

		"A task without name should be valid": {
			task: model.Task{Command: []string{"make", "test"}},
		},

		"A task without command should not be valid": {
			task:   model.Task{Name: "Tests"},
			expErr: true,
		},

		"A task with an empty program should not be valid": {
			task:   model.Task{Name: "Tests", Command: []string{"", "test"}},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := test.task.Validate()
			if test.expErr {
				assert.ErrorIs(t, err, model.ErrNotValid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRuleViolationCounts(t *testing.T) {
	vs := []model.RuleViolation{
		{Path: "src/a.ts", Line: 1},
		{Path: "src/a.ts", Line: 2},
		{Path: "src/b.tsx", Line: 1},
	}

	assert.True(t, model.HasViolations(vs))
	assert.False(t, model.HasViolations(nil))
	assert.Equal(t, map[string]int{"src/a.ts": 2, "src/b.tsx": 1}, model.CountByPath(vs))
}
