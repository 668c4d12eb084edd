package booking

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var timeLabelPattern = regexp.MustCompile(`(?i)^\s*(\d{1,2}):(\d{2})\s*(AM|PM)\s*$`)

// ParseTimeLabel turns "9:00 AM" / "2:30 pm" into 24-hour components.
// 12 AM is hour 0 and 12 PM stays hour 12.
func ParseTimeLabel(label string) (hour, minute int, err error) {
	m := timeLabelPattern.FindStringSubmatch(label)
	if m == nil {
		return 0, 0, ErrValidation("time", CodeInvalidTime)
	}

	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return 0, 0, ErrValidation("time", CodeInvalidTime)
	}

	pm := strings.EqualFold(m[3], "PM")
	switch {
	case pm && hour != 12:
		hour += 12
	case !pm && hour == 12:
		hour = 0
	}
	return hour, minute, nil
}

// FormatTimeLabel is the inverse of ParseTimeLabel.
func FormatTimeLabel(hour, minute int) string {
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, minute, suffix)
}

// CombineDateTime places the parsed label on the calendar day of date, in loc.
func CombineDateTime(date time.Time, label string, loc *time.Location) (time.Time, error) {
	hour, minute, err := ParseTimeLabel(label)
	if err != nil {
		return time.Time{}, err
	}
	if loc == nil {
		loc = date.Location()
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc), nil
}
