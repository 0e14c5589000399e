package notice

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is the calendar date format used by notices and events.
	DateLayout = "2006-01-02"
	// ClockLayout is the 24-hour event time format.
	ClockLayout = "15:04"
)

// ParseDate parses a YYYY-MM-DD date in the local zone.
func ParseDate(v string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(v), time.Local)
}

// DateString formats t as a YYYY-MM-DD date.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// SameDay reports whether the date string names the same calendar day as t.
func SameDay(date string, t time.Time) bool {
	return date == DateString(t)
}

// FormatDate renders "2026-02-12" as "Feb 12, 2026". Unparseable input is
// returned unchanged.
func FormatDate(v string) string {
	if v == "" {
		return ""
	}
	t, err := ParseDate(v)
	if err != nil {
		return v
	}
	return t.Format("Jan 2, 2006")
}

// FormatDateShort renders "2026-02-12" as "Thu, Feb 12".
func FormatDateShort(v string) string {
	t, err := ParseDate(v)
	if err != nil {
		return v
	}
	return t.Format("Mon, Jan 2")
}

// FormatTime converts "14:00" to "2:00 PM". Values that are not HH:MM, such
// as "10:00 AM" from older data, are returned unchanged.
func FormatTime(v string) string {
	if v == "" {
		return ""
	}
	hours, minutes, ok := strings.Cut(v, ":")
	if !ok || len(minutes) != 2 {
		return v
	}
	h, err := strconv.Atoi(hours)
	if err != nil || h < 0 || h > 23 {
		return v
	}
	if _, err := strconv.Atoi(minutes); err != nil {
		return v
	}
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%s %s", h12, minutes, ampm)
}

// ValidClock reports whether v is a 24-hour HH:MM time.
func ValidClock(v string) bool {
	_, err := time.Parse(ClockLayout, v)
	return err == nil && len(v) == len(ClockLayout)
}

// ValidDate reports whether v is a YYYY-MM-DD date.
func ValidDate(v string) bool {
	_, err := time.Parse(DateLayout, v)
	return err == nil
}
