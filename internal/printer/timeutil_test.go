package printer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/slok/cirun/internal/printer"
)

func TestFormatDuration(t *testing.T) {
	tests := map[string]struct {
		d      time.Duration
		expStr string
	}{
		"Zero":                    {d: 0, expStr: "0.00s"},
		"Milliseconds":            {d: 40 * time.Millisecond, expStr: "0.04s"},
		"Seconds should round":    {d: 1249 * time.Millisecond, expStr: "1.25s"},
		"Minutes stay in seconds": {d: 73*time.Second + 100*time.Millisecond, expStr: "73.10s"},
		"Negative should be zero": {d: -time.Second, expStr: "0.00s"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expStr, printer.FormatDuration(test.d))
		})
	}
}
