package log_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/cirun/internal/log"
)

func TestCtxValues(t *testing.T) {
	tests := map[string]struct {
		ctx       func() context.Context
		expValues log.Kv
	}{
		"A context without values should return empty values": {
			ctx:       context.Background,
			expValues: log.Kv{},
		},

		"Values set on the context should be returned": {
			ctx: func() context.Context {
				return log.CtxWithValues(context.Background(), log.Kv{"run-id": "abc"})
			},
			expValues: log.Kv{"run-id": "abc"},
		},

		"Values set multiple times should be merged and overridden": {
			ctx: func() context.Context {
				ctx := log.CtxWithValues(context.Background(), log.Kv{"run-id": "abc", "phase": "fix"})
				return log.CtxWithValues(ctx, log.Kv{"phase": "check"})
			},
			expValues: log.Kv{"run-id": "abc", "phase": "check"},
		},

		"Noop logger should not set values on the context": {
			ctx: func() context.Context {
				return log.Noop.SetValuesOnCtx(context.Background(), log.Kv{"run-id": "abc"})
			},
			expValues: log.Kv{},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expValues, log.ValuesFromCtx(test.ctx()))
		})
	}
}
