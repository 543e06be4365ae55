package analytics

import (
	"fmt"
	"math"
)

// FormatHours renders a duration in hours the way the dashboard displays
// response times: minutes under one hour, one decimal of hours under a
// day, then days with the rounded remainder hours omitted when zero.
func FormatHours(hours float64) string {
	if hours < 1 {
		return fmt.Sprintf("%dm", int(math.Round(hours*60)))
	}
	if hours < 24 {
		return fmt.Sprintf("%.1fh", hours)
	}
	days := int(hours / 24)
	rem := int(math.Round(hours - float64(days)*24))
	if rem == 24 {
		days++
		rem = 0
	}
	if rem == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd %dh", days, rem)
}
