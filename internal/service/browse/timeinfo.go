package browse

import (
	"fmt"
	"time"
)

// Interpretation renders where a meeting stands relative to now, like
// "Starts in 10 minutes" or "Ended 2 hours ago". It returns "" when the
// meeting has no resolvable times.
func Interpretation(now time.Time, start, end *time.Time) string {
	if start != nil && now.Before(*start) {
		return "Starts in " + formatDuration(start.Sub(now))
	}
	if end != nil && now.After(*end) {
		return "Ended " + formatDuration(now.Sub(*end)) + " ago"
	}
	if start != nil && end != nil {
		return "Ongoing"
	}
	if start != nil {
		return "Started " + formatDuration(now.Sub(*start)) + " ago"
	}
	if end != nil {
		return "Ends in " + formatDuration(end.Sub(now))
	}
	return ""
}

// formatDuration picks the largest whole unit.
func formatDuration(d time.Duration) string {
	switch {
	case d >= 24*time.Hour:
		return plural(int(d/(24*time.Hour)), "day")
	case d >= time.Hour:
		return plural(int(d/time.Hour), "hour")
	case d >= time.Minute:
		return plural(int(d/time.Minute), "minute")
	default:
		return plural(int(d/time.Second), "second")
	}
}

func plural(count int, unit string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, unit)
	}
	return fmt.Sprintf("%d %ss", count, unit)
}
