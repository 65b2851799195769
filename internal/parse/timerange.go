package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/doublemix/msche-team-visit/internal/domain"
)

// The three recognized time-label shapes, tried in this order:
//
//	"Up to 2:30 p.m."       end bound only
//	"9:00 a.m."             start bound only
//	"11:00-1:00 p.m."       explicit end, inferred start
//
// Meridiem markers accept "a.m."/"p.m." case-insensitively. The en dash is
// accepted alongside the hyphen in ranges.
var (
	upToPattern  = regexp.MustCompile(`(?i)^up to (\d{1,2}):(\d{2}) (a\.m\.|p\.m\.)$`)
	startPattern = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2}) (a\.m\.|p\.m\.)$`)
	rangePattern = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})\s*[-–]\s*(\d{1,2}):(\d{2}) (a\.m\.|p\.m\.)$`)
)

// TimeRange interprets a free-text time label into an optional start and
// end time-of-day. Both bounds are nil only for blank input, which callers
// filter before parsing; a non-blank label matching none of the recognized
// shapes is an UnparseableTime error.
//
// In the range shape only the end carries a meridiem. The start uses the
// same meridiem unless that would place it after the end in 24-hour terms,
// in which case it flips to morning. Ranges that cross noon rely on this
// exact rule, so it must not be "improved".
func TimeRange(label string) (start, end *domain.TimeOfDay, err error) {
	text := strings.TrimSpace(label)

	if m := upToPattern.FindStringSubmatch(text); m != nil {
		t, ok := timeOfDay(m[1], m[2], isAfternoon(m[3]))
		if !ok {
			return nil, nil, &domain.UnparseableTimeError{Text: label}
		}
		return nil, &t, nil
	}

	if m := startPattern.FindStringSubmatch(text); m != nil {
		t, ok := timeOfDay(m[1], m[2], isAfternoon(m[3]))
		if !ok {
			return nil, nil, &domain.UnparseableTimeError{Text: label}
		}
		return &t, nil, nil
	}

	if m := rangePattern.FindStringSubmatch(text); m != nil {
		afternoon := isAfternoon(m[5])
		endTime, ok := timeOfDay(m[3], m[4], afternoon)
		if !ok {
			return nil, nil, &domain.UnparseableTimeError{Text: label}
		}
		startTime, ok := timeOfDay(m[1], m[2], afternoon)
		if !ok {
			return nil, nil, &domain.UnparseableTimeError{Text: label}
		}
		if startTime.MinuteOfDay() > endTime.MinuteOfDay() {
			startTime, ok = timeOfDay(m[1], m[2], false)
			if !ok {
				return nil, nil, &domain.UnparseableTimeError{Text: label}
			}
		}
		if startTime.MinuteOfDay() > endTime.MinuteOfDay() {
			return nil, nil, &domain.UnparseableTimeError{Text: label}
		}
		return &startTime, &endTime, nil
	}

	return nil, nil, &domain.UnparseableTimeError{Text: label}
}

func isAfternoon(meridiem string) bool {
	return strings.EqualFold(meridiem, "p.m.")
}

// timeOfDay converts a 12-hour clock reading. Hour 12 is 0 in the morning
// and 12 in the afternoon; any other hour h is h or h+12.
func timeOfDay(hourText, minuteText string, afternoon bool) (domain.TimeOfDay, bool) {
	hour, err := strconv.Atoi(hourText)
	if err != nil || hour < 1 || hour > 12 {
		return domain.TimeOfDay{}, false
	}
	minute, err := strconv.Atoi(minuteText)
	if err != nil || minute < 0 || minute > 59 {
		return domain.TimeOfDay{}, false
	}

	hour24 := hour
	if hour == 12 {
		hour24 = 0
	}
	if afternoon {
		hour24 += 12
	}

	return domain.TimeOfDay{Hour24: hour24, Minute: minute}, true
}
