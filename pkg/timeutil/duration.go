// Package timeutil parses the human duration strings used in configuration.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultRotate is how long each slide stays on screen.
	DefaultRotate = 15 * time.Second
	// DefaultIdle is how long the board waits without input before presenting.
	DefaultIdle = time.Minute
)

var (
	segmentPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	unitMap        = map[string]time.Duration{
		"ms":      time.Millisecond,
		"s":       time.Second,
		"sec":     time.Second,
		"secs":    time.Second,
		"second":  time.Second,
		"seconds": time.Second,
		"m":       time.Minute,
		"min":     time.Minute,
		"mins":    time.Minute,
		"minute":  time.Minute,
		"minutes": time.Minute,
		"h":       time.Hour,
		"hr":      time.Hour,
		"hrs":     time.Hour,
		"hour":    time.Hour,
		"hours":   time.Hour,
	}
)

// ParseInterval parses strings such as "15s", "1m" or "1m30s". Empty input
// yields fallback.
func ParseInterval(input string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		return fallback, nil
	}

	remaining := trimmed
	total := time.Duration(0)
	for len(remaining) > 0 {
		matches := segmentPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, fmt.Errorf("invalid duration segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration value %q: %w", matches[1], err)
		}
		base, ok := unitMap[matches[2]]
		if !ok {
			return 0, fmt.Errorf("unsupported duration unit %q", matches[2])
		}
		total += time.Duration(value) * base
		remaining = remaining[len(matches[0]):]
	}

	if total <= 0 {
		return 0, fmt.Errorf("duration must be greater than zero")
	}
	return total, nil
}

// FormatInterval renders a duration using hour/minute/second tokens.
func FormatInterval(d time.Duration) string {
	if d < time.Second {
		return d.String()
	}

	type unit struct {
		label string
		value time.Duration
	}
	units := []unit{
		{"h", time.Hour},
		{"m", time.Minute},
		{"s", time.Second},
	}

	var parts []string
	remaining := d
	for _, u := range units {
		if remaining < u.value {
			continue
		}
		count := remaining / u.value
		remaining -= count * u.value
		parts = append(parts, fmt.Sprintf("%d%s", count, u.label))
	}
	return strings.Join(parts, "")
}
