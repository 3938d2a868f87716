package timing

import (
	"fmt"
	"time"
)

// FormatHMS renders a duration as HH:MM:SS for processing-time logs.
func FormatHMS(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// Since is shorthand for FormatHMS(time.Since(start)).
func Since(start time.Time) string {
	return FormatHMS(time.Since(start))
}
