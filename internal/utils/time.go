package utils

import (
	"time"
)

// FormatClock renders t as a 12-hour time of day such as "02:05 pm".
func FormatClock(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(EmergencyClockLayout)
}
