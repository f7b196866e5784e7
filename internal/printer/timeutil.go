package printer

import (
	"fmt"
	"time"
)

// FormatDuration returns the duration in seconds with two decimals.
// Examples: "0.00s", "1.25s", "73.10s".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%.2fs", d.Seconds())
}
